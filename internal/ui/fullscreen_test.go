package ui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

func TestHistoryView_FollowsUntilScrolledUp(t *testing.T) {
	h := NewHistoryView()
	h.SetSize(20, 3)
	h.SetContent(strings.TrimSuffix(numbered(10), "\n"))

	if view := ansi.Strip(h.View()); !strings.Contains(view, "line 10") {
		t.Fatalf("expected pinned view to show the last line, got %q", view)
	}

	h.Update(tea.KeyPressMsg{Code: tea.KeyPgUp})
	if h.Pinned() {
		t.Fatal("expected page up to unpin")
	}

	h.SetContent(strings.TrimSuffix(numbered(12), "\n"))
	if view := ansi.Strip(h.View()); strings.Contains(view, "line 12") {
		t.Errorf("expected unpinned view to stay put, got %q", view)
	}

	h.Update(tea.KeyPressMsg{Code: tea.KeyEnd})
	if !h.Pinned() {
		t.Fatal("expected End to pin")
	}
	if view := ansi.Strip(h.View()); !strings.Contains(view, "line 12") {
		t.Errorf("expected view at the bottom, got %q", view)
	}
}
