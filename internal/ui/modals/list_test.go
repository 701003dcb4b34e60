package modals

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/thinkprompt/internal/errors"
)

func newList(t *testing.T, title, text string, options []string, def string) *ListState {
	t.Helper()
	s, err := NewListState(title, text, options, def)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func TestListState_Default(t *testing.T) {
	tests := []struct {
		name     string
		def      string
		expected string
	}{
		{"known default", "beta", "beta"},
		{"unknown default", "zeta", "alpha"},
		{"empty default", "", "alpha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newList(t, "Pick", "Greek", []string{"alpha", "beta", "gamma"}, tt.def)
			if s.Selected() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, s.Selected())
			}
		})
	}
}

func TestListState_EnterConfirms(t *testing.T) {
	s := newList(t, "Pick", "Greek", []string{"alpha", "beta"}, "beta")
	send(t, s, press(tea.KeyEnter))

	r, ok := s.Result()
	if !ok || r.Cancelled || r.Value != "beta" {
		t.Errorf("expected beta, got %+v (closed=%v)", r, ok)
	}
}

func TestListState_EscapeCancels(t *testing.T) {
	s := newList(t, "Pick", "", []string{"alpha"}, "")
	send(t, s, press(tea.KeyEscape), press(tea.KeyEnter))

	r, ok := s.Result()
	if !ok || !r.Cancelled {
		t.Errorf("expected cancellation, got %+v", r)
	}
}

func TestListState_Render(t *testing.T) {
	s := newList(t, "Pick one", "Greek", []string{"alpha", "beta"}, "")
	if s.Render() == "" {
		t.Error("expected non-empty view")
	}
	if s.Title() != "Pick one" {
		t.Errorf("expected title, got %q", s.Title())
	}
}

func TestListState_EmptyOptions(t *testing.T) {
	s, err := NewListState("Pick", "Greek", nil, "")
	if !errors.Is(err, errors.KindInvalidControl) {
		t.Errorf("expected invalid control error, got %v", err)
	}
	if s != nil {
		t.Error("expected no dialog")
	}
}
