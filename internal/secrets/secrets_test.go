package secrets

import (
	"os"
	"path/filepath"
	"testing"
)

type mapProvider map[string]string

func (m mapProvider) Get(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

func TestFileProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.yaml")
	content := "GEMINI_API_KEY: abc123\nEMPTY_KEY: \"\"\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	p, err := NewFileProvider(path)
	if err != nil {
		t.Fatalf("NewFileProvider failed: %v", err)
	}

	if v, ok := p.Get("GEMINI_API_KEY"); !ok || v != "abc123" {
		t.Errorf("Get(GEMINI_API_KEY) = %q, %v", v, ok)
	}
	if _, ok := p.Get("EMPTY_KEY"); ok {
		t.Error("empty value reported as present")
	}
	if _, ok := p.Get("MISSING"); ok {
		t.Error("missing key reported as present")
	}
}

func TestFileProviderMissingFile(t *testing.T) {
	p, err := NewFileProvider(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if _, ok := p.Get("ANYTHING"); ok {
		t.Error("empty provider returned a value")
	}
}

func TestChainOrder(t *testing.T) {
	chain := Chain{
		mapProvider{"KEY": "first"},
		mapProvider{"KEY": "second", "ONLY_SECOND": "yes"},
	}

	if v, _ := chain.Get("KEY"); v != "first" {
		t.Errorf("Get(KEY) = %q, want first provider to win", v)
	}
	if v, _ := chain.Get("ONLY_SECOND"); v != "yes" {
		t.Errorf("Get(ONLY_SECOND) = %q, want yes", v)
	}
	if _, ok := chain.Get("NONE"); ok {
		t.Error("unknown key reported as present")
	}
}

func TestResolveDoesNotTouchEnvironment(t *testing.T) {
	const name = "GENAIKIT_TEST_RESOLVE_KEY"
	os.Unsetenv(name)

	values := Resolve(mapProvider{name: "secret", "FOUND": "x"}, []string{name, "ABSENT"})

	if values[name] != "secret" {
		t.Errorf("values[%s] = %q, want secret", name, values[name])
	}
	if _, ok := values["ABSENT"]; ok {
		t.Error("unresolvable name present in result")
	}
	if os.Getenv(name) != "" {
		t.Error("Resolve wrote to the environment")
	}
}

func TestApply(t *testing.T) {
	const name = "GENAIKIT_TEST_APPLY_KEY"
	t.Setenv(name, "")

	if err := Apply(map[string]string{name: "bound"}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if os.Getenv(name) != "bound" {
		t.Errorf("env %s = %q, want bound", name, os.Getenv(name))
	}
}
