package app

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/zhubert/thinkprompt/internal/config"
	"github.com/zhubert/thinkprompt/internal/errors"
	"github.com/zhubert/thinkprompt/internal/history"
	"github.com/zhubert/thinkprompt/internal/notification"
	"github.com/zhubert/thinkprompt/internal/thinking"
)

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.MaxCollapsedHeight = 1
	if _, err := New(cfg); !errors.Is(err, errors.KindConfig) {
		t.Errorf("expected config error, got %v", err)
	}
}

func TestNew_ClonesConfig(t *testing.T) {
	cfg := config.Default()
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg.PromptMessage = "changed> "
	if s.Config().PromptMessage != "> " {
		t.Errorf("expected session config to be unaffected, got %q", s.Config().PromptMessage)
	}
	if s.ID() == "" {
		t.Error("expected a session id")
	}
}

func TestSession_OutputKeepsCallOrder(t *testing.T) {
	s, m, _ := newTestSession(t, nil)

	s.AddError("a")
	s.AddSuccess("b")
	s.AddWarning("c")
	s.AddMessage(history.RoleUser, "d")

	m.held = s.drain()
	got := ansi.Strip(m.renderHeld())
	if got != "[ERROR] a\n[OK] b\n[WARN] c\n> d" {
		t.Errorf("unexpected console output %q", got)
	}
	if s.History().Len() != 4 {
		t.Errorf("expected 4 history entries, got %d", s.History().Len())
	}
}

func TestSession_AddResponseAndCode(t *testing.T) {
	s, _, _ := newTestSession(t, nil)

	s.AddResponse("# hi", WithMarkdown())
	s.AddCode("x := 1", "go")
	s.AddRich("\x1b[1mbold\x1b[0m")

	entries := s.History().Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Kind != history.KindResponse || !entries[0].Markdown {
		t.Errorf("expected markdown response, got %+v", entries[0])
	}
	if entries[1].Kind != history.KindCode || entries[1].Language != "go" {
		t.Errorf("expected go code entry, got %+v", entries[1])
	}
	if entries[2].Kind != history.KindRich {
		t.Errorf("expected rich entry, got %+v", entries[2])
	}
}

func TestSession_FinishThinking(t *testing.T) {
	tests := []struct {
		name        string
		opts        []FinishOption
		wantHistory bool
		wantSilent  bool
		wantConsole bool
	}{
		{"defaults", nil, true, false, true},
		{"without history", []FinishOption{WithoutHistory()}, false, false, true},
		{"without echo", []FinishOption{WithEcho(false)}, true, true, false},
		{"neither", []FinishOption{WithoutHistory(), WithEcho(false)}, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, _ := newTestSession(t, nil)

			if err := s.StartThinking(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			s.AppendThinking("step one\n")
			s.AppendThinking("step two")

			if got := s.FinishThinking(tt.opts...); got != "step one\nstep two" {
				t.Errorf("expected full text, got %q", got)
			}

			last, ok := lastEntry(s)
			if ok != tt.wantHistory {
				t.Fatalf("expected history entry %v, got %v", tt.wantHistory, ok)
			}
			if ok {
				if last.Role != history.RoleThinking || last.Payload != "step one\nstep two" {
					t.Errorf("unexpected entry %+v", last)
				}
				if last.Silent != tt.wantSilent {
					t.Errorf("expected silent %v, got %v", tt.wantSilent, last.Silent)
				}
			}

			console := s.drain()
			if (len(console) == 1) != tt.wantConsole {
				t.Fatalf("expected console output %v, got %d entries", tt.wantConsole, len(console))
			}
		})
	}
}

func TestSession_FinishThinkingEchoesCollapsedText(t *testing.T) {
	s, _, _ := newTestSession(t, func(c *config.Config) { c.MaxCollapsedHeight = 3 })

	s.StartThinking()
	s.AppendThinking("1\n2\n3\n4\n5")
	s.FinishThinking()

	console := s.drain()
	if len(console) != 1 {
		t.Fatalf("expected one console entry, got %d", len(console))
	}
	if got := console[0].Console(); got != "1\n2\n..." {
		t.Errorf("expected truncated echo, got %q", got)
	}
	last, _ := lastEntry(s)
	if last.Payload != "1\n2\n3\n4\n5" {
		t.Errorf("expected full text in history, got %q", last.Payload)
	}
}

func TestSession_FinishThinkingWhileIdle(t *testing.T) {
	s, _, _ := newTestSession(t, nil)
	if got := s.FinishThinking(); got != "" {
		t.Errorf("expected empty result, got %q", got)
	}
	if s.History().Len() != 0 {
		t.Error("expected no history entry")
	}
}

func TestSession_WhitespaceThinkingIsNotRecorded(t *testing.T) {
	s, _, _ := newTestSession(t, nil)
	s.StartThinking()
	s.AppendThinking("  \n ")
	s.FinishThinking()

	if s.History().Len() != 0 || len(s.drain()) != 0 {
		t.Error("expected whitespace-only thinking to be dropped")
	}
}

func TestSession_AbortThinking(t *testing.T) {
	s, _, _ := newTestSession(t, nil)
	s.StartThinking()
	s.AppendThinking("partial")

	if !s.AbortThinking() {
		t.Fatal("expected abort to finish the cycle")
	}
	if s.IsThinking() {
		t.Error("expected no active cycle")
	}
	if s.History().Len() != 0 || len(s.drain()) != 0 {
		t.Error("expected aborted thinking to leave no output")
	}
}

func TestSession_ThinkingScope(t *testing.T) {
	s, _, _ := newTestSession(t, nil)

	err := s.Thinking(context.Background(), func(ctx context.Context, w thinking.Writer) error {
		fmt.Fprint(w, "reading files")
		if !s.IsThinking() {
			t.Error("expected cycle to be active inside the scope")
		}
		return fmt.Errorf("disk gone")
	})

	if !errors.Is(err, errors.KindProducer) {
		t.Errorf("expected producer error, got %v", err)
	}
	if s.IsThinking() {
		t.Error("expected cycle to be finished after a failed scope")
	}
	last, ok := lastEntry(s)
	if !ok || last.Payload != "reading files" {
		t.Errorf("expected partial text in history, got %+v", last)
	}
}

func TestSession_ThinkingWithProvider(t *testing.T) {
	s, _, _ := newTestSession(t, nil)

	err := s.ThinkingWith(context.Background(), func() (string, error) {
		return "from provider", nil
	}, func(ctx context.Context) error { return nil }, WithoutHistory())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.ThinkingContent(); got != "from provider" {
		t.Errorf("expected provider text, got %q", got)
	}
}

func TestSession_StartThinkingTwiceFails(t *testing.T) {
	s, _, _ := newTestSession(t, nil)
	if err := s.StartThinking(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.StartThinkingWith(nil); !errors.Is(err, errors.KindAlreadyActive) {
		t.Errorf("expected AlreadyActive, got %v", err)
	}
}

func TestSession_NotifiesWhenUnfocused(t *testing.T) {
	titles := make(chan string, 1)
	notification.SetNotifier(func(title, message string, icon any) error {
		titles <- title
		return nil
	})
	defer notification.ResetNotifier()

	s, m, _ := newTestSession(t, func(c *config.Config) { c.NotifyOnFinish = true })
	m.Update(tea.BlurMsg{})

	s.StartThinking()
	s.AppendThinking("done")
	s.FinishThinking()

	select {
	case title := <-titles:
		if title != "thinkprompt" {
			t.Errorf("expected app name as title, got %q", title)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a notification")
	}
}

func TestSession_Clear(t *testing.T) {
	s, m, sender := newTestSession(t, nil)
	s.AddError("old")
	s.StartThinking()
	s.AppendThinking("old thoughts")

	s.Clear()

	if s.History().Len() != 0 {
		t.Error("expected history to be cleared")
	}
	if s.IsThinking() || s.ThinkingContent() != "" {
		t.Error("expected thinking to be cleared")
	}

	msg := <-sender.msgs
	if _, ok := msg.(clearMsg); !ok {
		t.Fatalf("expected clearMsg, got %T", msg)
	}
	m.fullscreen = true
	m.Update(msg)
	if m.fullscreen {
		t.Error("expected clear to leave fullscreen")
	}
	if !m.printing {
		t.Error("expected the welcome banner to be printed")
	}
}

func TestSession_ExitCancelsContext(t *testing.T) {
	s, _, _ := newTestSession(t, nil)
	ctx := s.context()
	s.Exit()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("expected Exit to cancel the session context")
	}
}

func TestSession_HandlerPanicBecomesError(t *testing.T) {
	s, _, _ := newTestSession(t, nil)
	err := s.handle(context.Background(), func(ctx context.Context, s *Session, line string) error {
		panic("oops")
	}, "x")
	if err == nil || !strings.Contains(err.Error(), "oops") {
		t.Errorf("expected panic to be reported, got %v", err)
	}
}
