package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestCompleter_Complete(t *testing.T) {
	c := NewCompleter([]string{"/settings", "/setup", "/clear", "/code"})

	got, ok := c.Complete("/se")
	if !ok || got != "/set" {
		t.Errorf("expected common prefix /set, got %q (%v)", got, ok)
	}

	got, _ = c.Complete(got)
	if got != "/settings" {
		t.Errorf("expected first match /settings, got %q", got)
	}
	got, _ = c.Complete(got)
	if got != "/setup" {
		t.Errorf("expected to cycle to /setup, got %q", got)
	}
	got, _ = c.Complete(got)
	if got != "/settings" {
		t.Errorf("expected to wrap to /settings, got %q", got)
	}
}

func TestCompleter_SingleAndNone(t *testing.T) {
	c := NewCompleter([]string{"/clear", "/code"})

	if got, ok := c.Complete("/cl"); !ok || got != "/clear" {
		t.Errorf("expected /clear, got %q (%v)", got, ok)
	}
	c.Reset()
	if got, ok := c.Complete("/x"); ok || got != "/x" {
		t.Errorf("expected no completion, got %q (%v)", got, ok)
	}
}

func TestCompleter_Matches(t *testing.T) {
	c := NewCompleter([]string{"Beta", "alpha", "alps"})

	tests := []struct {
		input    string
		expected []string
	}{
		{"al", []string{"alpha", "alps"}},
		{"b", []string{"Beta"}},
		{"", nil},
		{"z", nil},
	}
	for _, tt := range tests {
		got := c.Matches(tt.input)
		if strings.Join(got, ",") != strings.Join(tt.expected, ",") {
			t.Errorf("input %q: expected %v, got %v", tt.input, tt.expected, got)
		}
	}
}

func TestRenderCompletionMenu(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	view := ansi.Strip(RenderCompletionMenu(items, 4, 3, 20))
	lines := strings.Split(view, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(lines))
	}
	if strings.TrimSpace(lines[0]) != "c" || strings.TrimSpace(lines[2]) != "e" {
		t.Errorf("expected window scrolled to the selection, got %q", lines)
	}

	if RenderCompletionMenu(nil, 0, 3, 20) != "" {
		t.Error("expected empty menu for no items")
	}
	if RenderCompletionMenu(items, 0, 0, 20) != "" {
		t.Error("expected empty menu for zero height")
	}
}
