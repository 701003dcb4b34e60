package demo

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/zhubert/thinkprompt/internal/app"
	"github.com/zhubert/thinkprompt/internal/config"
	"github.com/zhubert/thinkprompt/internal/errors"
	"github.com/zhubert/thinkprompt/internal/history"
	"github.com/zhubert/thinkprompt/internal/logger"
	"github.com/zhubert/thinkprompt/internal/thinking"
)

func TestMain(m *testing.M) {
	logger.Reset()
	logger.Init(os.DevNull)

	code := m.Run()

	logger.Reset()
	os.Exit(code)
}

func newSession(t *testing.T) (*Demo, *app.Session) {
	t.Helper()
	cfg := config.Default()
	d := New(cfg, 0)
	s, err := app.New(cfg, app.WithHandler(d.Handle), app.WithCompletions(d.Completions()...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return d, s
}

// lastEntry returns the newest history entry of s.
func lastEntry(s *app.Session) (history.Entry, bool) {
	entries := s.History().Entries()
	if len(entries) == 0 {
		return history.Entry{}, false
	}
	return entries[len(entries)-1], true
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line     string
		wantName string
		wantArgs string
		wantOK   bool
	}{
		{"/help", "/help", "", true},
		{"/Choice a b", "/choice", "a b", true},
		{"/yesno   Ship it? ", "/yesno", "Ship it?", true},
		{"hello", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			name, args, ok := parseCommand(strings.TrimSpace(tt.line))
			if name != tt.wantName || args != tt.wantArgs || ok != tt.wantOK {
				t.Errorf("expected (%q, %q, %v), got (%q, %q, %v)",
					tt.wantName, tt.wantArgs, tt.wantOK, name, args, ok)
			}
		})
	}
}

func TestCompletions(t *testing.T) {
	d := New(config.Default(), 0)
	got := d.Completions()
	if len(got) != len(d.commands) {
		t.Fatalf("expected %d completions, got %d", len(d.commands), len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1] > got[i] {
			t.Errorf("expected sorted completions, got %v", got)
		}
	}
}

func TestHandle_EchoesWithThinking(t *testing.T) {
	d, s := newSession(t)

	if err := d.Handle(context.Background(), s, "hello world"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := s.History().Entries()
	if len(entries) != 2 {
		t.Fatalf("expected thinking and reply, got %d entries", len(entries))
	}
	if entries[0].Role != history.RoleThinking || !strings.Contains(entries[0].Payload, `Word 2 is "world"`) {
		t.Errorf("expected streamed thinking, got %+v", entries[0])
	}
	if entries[1].Kind != history.KindResponse || entries[1].Payload != "**You said:** hello world" {
		t.Errorf("expected echo reply, got %+v", entries[1])
	}
}

func TestHandle_EmptyLine(t *testing.T) {
	d, s := newSession(t)
	if err := d.Handle(context.Background(), s, "   "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.History().Len() != 0 {
		t.Error("expected no output for an empty line")
	}
}

func TestHandle_UnknownCommand(t *testing.T) {
	d, s := newSession(t)
	if err := d.Handle(context.Background(), s, "/nope"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last, _ := lastEntry(s)
	if last.Kind != history.KindWarning || !strings.Contains(last.Payload, "/nope") {
		t.Errorf("expected unknown command warning, got %+v", last)
	}
}

func TestHandle_OutputCommands(t *testing.T) {
	tests := []struct {
		line string
		kind history.Kind
	}{
		{"/code", history.KindCode},
		{"/md", history.KindResponse},
		{"/help", history.KindResponse},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			d, s := newSession(t)
			if err := d.Handle(context.Background(), s, tt.line); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			last, ok := lastEntry(s)
			if !ok || last.Kind != tt.kind {
				t.Errorf("expected %s entry, got %+v", tt.kind, last)
			}
		})
	}
}

func TestHandle_ProgressUsesProvider(t *testing.T) {
	d, s := newSession(t)
	if err := d.Handle(context.Background(), s, "/progress"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entries := s.History().Entries()
	if len(entries) != 2 {
		t.Fatalf("expected thinking and success, got %d entries", len(entries))
	}
	if !strings.Contains(entries[0].Payload, "20/20") {
		t.Errorf("expected final provider snapshot, got %q", entries[0].Payload)
	}
}

func TestHandle_ClearEmptiesHistory(t *testing.T) {
	d, s := newSession(t)
	s.AddSuccess("before")
	if err := d.Handle(context.Background(), s, "/clear"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.History().Len() != 0 {
		t.Error("expected history to be cleared")
	}
}

func TestHandle_DialogsNeedARunningSession(t *testing.T) {
	for _, line := range []string{"/yesno", "/choice", "/list", "/settings"} {
		t.Run(line, func(t *testing.T) {
			d, s := newSession(t)
			err := d.Handle(context.Background(), s, line)
			if !errors.Is(err, errors.KindNotRunning) {
				t.Errorf("expected NotRunning, got %v", err)
			}
		})
	}
}

func TestSettingsItems(t *testing.T) {
	cfg := config.Default()
	cfg.MaxCollapsedHeight = 7
	cfg.Theme = "no-such-theme"
	d := New(cfg, 0)

	items, err := d.settingsItems()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items[1].Default() != "7" {
		t.Errorf("expected the current height to be offered, got %v", items[1].Default())
	}
	if items[0].Default() == "no-such-theme" {
		t.Error("expected an unknown theme to fall back to the first option")
	}
}

func TestScenario_StreamStopsOnCancel(t *testing.T) {
	_, s := newSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Thinking(ctx, func(ctx context.Context, w thinking.Writer) error {
		return ScenarioFor("a b c").Stream(ctx, w, time.Hour)
	})
	if !errors.Is(err, errors.KindProducer) {
		t.Errorf("expected producer error, got %v", err)
	}
	if s.IsThinking() {
		t.Error("expected the cycle to be finished")
	}
}

func TestScenarioFor_Question(t *testing.T) {
	sc := ScenarioFor("why?")
	joined := strings.Join(sc.Chunks, "")
	if !strings.Contains(joined, "question") {
		t.Errorf("expected question to be noticed, got %q", joined)
	}
}
