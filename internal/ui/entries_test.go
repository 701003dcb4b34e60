package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/thinkprompt/internal/config"
	"github.com/zhubert/thinkprompt/internal/history"
)

func TestEntryRenderer_Prefixes(t *testing.T) {
	r := NewEntryRenderer("> ")

	tests := []struct {
		entry    history.Entry
		expected string
	}{
		{history.Entry{Kind: history.KindError, Payload: "boom\n"}, "[ERROR] boom"},
		{history.Entry{Kind: history.KindWarning, Payload: "careful"}, "[WARN] careful"},
		{history.Entry{Kind: history.KindSuccess, Payload: "done"}, "[OK] done"},
		{history.Entry{Kind: history.KindResponse, Payload: "plain reply\n\n"}, "plain reply"},
		{history.Entry{Kind: history.KindMessage, Role: history.RoleUser, Payload: "hi"}, "> hi"},
		{history.Entry{Kind: history.KindMessage, Role: history.RoleSystem, Payload: "note"}, "note"},
		{history.Entry{Kind: history.KindRich, Payload: "\x1b[1mbold\x1b[0m\n"}, "bold"},
	}

	for _, tt := range tests {
		t.Run(tt.entry.Kind.String(), func(t *testing.T) {
			if got := ansi.Strip(r.Render(tt.entry)); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestEntryRenderer_RichPassesThrough(t *testing.T) {
	r := NewEntryRenderer("> ")
	raw := "\x1b[31mred\x1b[0m"
	if got := r.Render(history.Entry{Kind: history.KindRich, Payload: raw}); got != raw {
		t.Errorf("expected pre-rendered text untouched, got %q", got)
	}
}

func TestEntryRenderer_Code(t *testing.T) {
	r := NewEntryRenderer("> ")
	got := ansi.Strip(r.Render(history.Entry{Kind: history.KindCode, Payload: "x := 1\n", Language: "go"}))
	if !strings.Contains(got, "x := 1") {
		t.Errorf("expected code text to survive highlighting, got %q", got)
	}

	unknown := ansi.Strip(r.Render(history.Entry{Kind: history.KindCode, Payload: "foo bar", Language: "nope"}))
	if !strings.Contains(unknown, "foo bar") {
		t.Errorf("expected fallback lexer output, got %q", unknown)
	}
}

func TestEntryRenderer_Markdown(t *testing.T) {
	r := NewEntryRenderer("> ")
	r.SetWidth(60)

	got := ansi.Strip(r.Render(history.Entry{Kind: history.KindResponse, Payload: "# Title\n\n- one\n- two", Markdown: true}))
	if strings.Contains(got, "# Title") {
		t.Errorf("expected heading markup to be rendered, got %q", got)
	}
	for _, want := range []string{"Title", "one", "two"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in %q", want, got)
		}
	}
}

func TestEntryRenderer_RenderAll(t *testing.T) {
	r := NewEntryRenderer("> ")
	got := ansi.Strip(r.RenderAll([]history.Entry{
		{Kind: history.KindSuccess, Payload: "a"},
		{Kind: history.KindError, Payload: "b"},
	}))
	if got != "[OK] a\n[ERROR] b" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestRenderWelcome(t *testing.T) {
	if got := RenderWelcome(config.AppInfo{}); got != "" {
		t.Errorf("expected no banner, got %q", got)
	}

	got := ansi.Strip(RenderWelcome(config.AppInfo{Name: "demo", Version: "1.0"}))
	if !strings.Contains(got, "demo v1.0") || !strings.HasPrefix(got, "┌") {
		t.Errorf("expected boxed title, got %q", got)
	}
}
