package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMenuNavigationAndRun(t *testing.T) {
	ran := false
	actions := []menuAction{
		{title: "first", run: func([]string) (string, error) { return "first output", nil }},
		{title: "second", run: func([]string) (string, error) {
			ran = true
			return "second output", nil
		}},
	}
	m := newMenuModel(actions)

	if !strings.Contains(m.View(), "1. first") {
		t.Errorf("menu view missing items:\n%s", m.View())
	}

	next, _ := m.Update(keyPress("down"))
	next, _ = next.Update(keyPress("enter"))

	model := next.(menuModel)
	if !ran {
		t.Fatal("selected action did not run")
	}
	if model.stage != stageResult || !strings.Contains(model.View(), "second output") {
		t.Errorf("result view = %q", model.View())
	}

	// Any key returns to the menu
	next, _ = model.Update(keyPress("x"))
	if next.(menuModel).stage != stageMenu {
		t.Error("result view did not return to menu")
	}
}

func TestMenuInputStage(t *testing.T) {
	var got []string
	actions := []menuAction{
		{
			title:   "needs input",
			prompts: []string{"Name:"},
			run: func(values []string) (string, error) {
				got = values
				return "done", nil
			},
		},
	}
	m := newMenuModel(actions)

	next, _ := m.Update(keyPress("enter"))
	if next.(menuModel).stage != stageInput {
		t.Fatal("enter did not move to input stage")
	}

	next, _ = next.Update(keyPress("a"))
	next, _ = next.Update(keyPress("b"))
	next, _ = next.Update(keyPress("enter"))

	if len(got) != 1 || got[0] != "ab" {
		t.Errorf("values = %v, want [ab]", got)
	}
	if next.(menuModel).stage != stageResult {
		t.Error("completed input did not run the action")
	}
}

func TestSplitNames(t *testing.T) {
	got := splitNames(" a, b ,, c ")
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("splitNames = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitNames[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseCount(t *testing.T) {
	if n, err := parseCount("", 5); err != nil || n != 5 {
		t.Errorf("parseCount(empty) = %d, %v", n, err)
	}
	if n, err := parseCount("12", 5); err != nil || n != 12 {
		t.Errorf("parseCount(12) = %d, %v", n, err)
	}
	if _, err := parseCount("abc", 5); err == nil {
		t.Error("parseCount(abc) did not fail")
	}
	if _, err := parseCount("-3", 5); err == nil {
		t.Error("parseCount(-3) did not fail")
	}
}
