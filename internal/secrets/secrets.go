// Package secrets resolves named API keys from a local secrets file
// or the process environment. Resolution returns a plain mapping;
// binding values into the environment is a separate, explicit step.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Provider looks up a secret by name.
type Provider interface {
	Get(name string) (string, bool)
}

// EnvProvider reads secrets from the process environment.
type EnvProvider struct{}

// Get returns the environment variable value, if set and non-empty.
func (EnvProvider) Get(name string) (string, bool) {
	value := os.Getenv(name)
	return value, value != ""
}

// FileProvider reads secrets from a YAML file of name: value pairs.
// Missing files are treated as an empty store.
type FileProvider struct {
	values map[string]string
}

// DefaultSecretsPath returns the per-user secrets file location.
func DefaultSecretsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".genaikit", "secrets.yaml")
}

// NewFileProvider loads the secrets file at path.
func NewFileProvider(path string) (*FileProvider, error) {
	p := &FileProvider{values: map[string]string{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return nil, fmt.Errorf("failed to read secrets file: %w", err)
	}
	if err := yaml.Unmarshal(data, &p.values); err != nil {
		return nil, fmt.Errorf("failed to parse secrets file: %w", err)
	}
	return p, nil
}

// Get returns the stored value for name, if present and non-empty.
func (p *FileProvider) Get(name string) (string, bool) {
	value, ok := p.values[name]
	return value, ok && value != ""
}

// Chain queries providers in order and returns the first hit.
type Chain []Provider

func (c Chain) Get(name string) (string, bool) {
	for _, p := range c {
		if value, ok := p.Get(name); ok {
			return value, true
		}
	}
	return "", false
}

// Default returns the standard lookup chain: secrets file first, then
// the environment.
func Default() (Provider, error) {
	file, err := NewFileProvider(DefaultSecretsPath())
	if err != nil {
		return nil, err
	}
	return Chain{file, EnvProvider{}}, nil
}

// Resolve looks up each name and returns the values that were found.
// Names without a value are simply absent from the result. Resolve
// never touches the environment.
func Resolve(p Provider, names []string) map[string]string {
	values := map[string]string{}
	for _, name := range names {
		if value, ok := p.Get(name); ok {
			values[name] = value
		}
	}
	return values
}

// Apply binds resolved values into the process environment. Callers
// invoke this deliberately; nothing in this package sets environment
// variables on its own.
func Apply(values map[string]string) error {
	for name, value := range values {
		if err := os.Setenv(name, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", name, err)
		}
	}
	return nil
}
