// Package app is the session coordinator: the public API embedding
// programs call, and the Bubble Tea model that owns the terminal.
//
// A Session is driven from two sides. The event loop (Model) owns the
// overlay, prompt, viewports and key routing. Everything else, input
// handlers and thinking producers included, runs on its own goroutine and
// reaches the loop through messages or the redraw scheduler.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/zhubert/thinkprompt/internal/config"
	"github.com/zhubert/thinkprompt/internal/errors"
	"github.com/zhubert/thinkprompt/internal/history"
	"github.com/zhubert/thinkprompt/internal/logger"
	"github.com/zhubert/thinkprompt/internal/notification"
	"github.com/zhubert/thinkprompt/internal/thinking"
	"github.com/zhubert/thinkprompt/internal/ui"
)

// Handler processes one submitted line. It runs off the event loop, one
// line at a time; lines submitted meanwhile are queued. A returned error
// is shown to the user as an error entry.
type Handler func(ctx context.Context, s *Session, line string) error

// Option configures a Session.
type Option func(*Session)

// WithHandler registers the per-line input handler.
func WithHandler(h Handler) Option {
	return func(s *Session) { s.handler = h }
}

// WithCompletions sets the words offered by prompt completion.
func WithCompletions(words ...string) Option {
	return func(s *Session) { s.completions = append(s.completions, words...) }
}

// WithProgramOptions passes options through to the Bubble Tea program,
// e.g. tea.WithInput and tea.WithOutput.
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(s *Session) { s.programOpts = append(s.programOpts, opts...) }
}

// Session is one interactive prompt with its thinking box, history and
// dialogs. All methods are safe to call from any goroutine other than the
// event loop itself.
type Session struct {
	id  string
	cfg *config.Config
	log *slog.Logger

	thinking  *thinking.State
	history   *history.Log
	scheduler *ui.Scheduler
	model     *Model

	handler     Handler
	completions []string
	programOpts []tea.ProgramOption

	// writeMu keeps the console queue in history order.
	writeMu sync.Mutex
	outMu   sync.Mutex
	outbox  []history.Entry

	focused atomic.Bool

	mu      sync.Mutex
	sender  ui.Sender
	program *tea.Program
	ctx     context.Context
	cancel  context.CancelFunc
}

// New creates a session. cfg is cloned and validated; later changes to it
// do not affect the session. A nil cfg selects the defaults.
func New(cfg *config.Config, opts ...Option) (*Session, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	cfg = cfg.Clone()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ui.SetThemeByName(cfg.Theme)

	s := &Session{
		id:  uuid.NewString(),
		cfg: cfg,
		ctx: context.Background(),
	}
	s.log = logger.WithSession(s.id)
	s.history = history.New(s.enqueue)
	s.thinking = thinking.NewState(cfg.MaxCollapsedHeight, s.thinkingFinished)
	s.scheduler = ui.NewScheduler(nil)
	s.thinking.OnChange(s.scheduler.Request)
	s.focused.Store(true)

	for _, opt := range opts {
		opt(s)
	}
	s.model = newModel(s)

	s.log.Debug("session created", "completions", len(s.completions))
	return s, nil
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string {
	return s.id
}

// Config returns the session's private copy of the configuration.
func (s *Session) Config() *config.Config {
	return s.cfg
}

// History returns the session's history log.
func (s *Session) History() *history.Log {
	return s.history
}

// OnInput registers the per-line input handler, replacing any earlier one.
// It must be called before Run.
func (s *Session) OnInput(h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = h
}

// Run takes over the terminal and blocks until the user exits, Exit is
// called, or ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, s.programOpts...)
	p := tea.NewProgram(s.model, opts...)
	s.attach(ctx, cancel, p)
	defer s.detach()

	s.log.Info("session started")
	_, err := p.Run()
	s.thinking.Abort()
	// The loop has stopped, so the model is safe to touch here.
	s.model.shutdown()

	if err != nil && ctx.Err() != nil {
		// Cancellation is a normal way out.
		err = nil
	}
	if err != nil {
		s.log.Error("program exited with error", "error", err)
		return fmt.Errorf("error running session: %w", err)
	}
	s.log.Info("session ended")
	return nil
}

func (s *Session) attach(ctx context.Context, cancel context.CancelFunc, sender ui.Sender) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctx = ctx
	s.cancel = cancel
	s.sender = sender
	if p, ok := sender.(*tea.Program); ok {
		s.program = p
	}
	s.scheduler.SetSender(sender)
}

func (s *Session) detach() {
	s.scheduler.Stop()
	s.scheduler.LogStats()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
	s.sender = nil
	s.program = nil
}

// Exit ends Run. Calling it when the session is not running does nothing.
func (s *Session) Exit() {
	s.mu.Lock()
	p := s.program
	cancel := s.cancel
	s.mu.Unlock()

	if p != nil {
		p.Quit()
		return
	}
	if cancel != nil {
		cancel()
	}
}

func (s *Session) loop() ui.Sender {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sender
}

func (s *Session) context() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx
}

func (s *Session) inputHandler() Handler {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handler
}

// handle runs the input handler for line, turning a panic into an error.
func (s *Session) handle(ctx context.Context, h Handler, line string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("input handler panicked", "panic", r)
			err = fmt.Errorf("input handler panicked: %v", r)
		}
	}()
	return h(ctx, s, line)
}

// =============================================================================
// Thinking
// =============================================================================

// FinishOption adjusts where finished thinking text goes.
type FinishOption func(*thinking.FinishOptions)

// WithoutHistory keeps the finished text out of the history log.
func WithoutHistory() FinishOption {
	return func(o *thinking.FinishOptions) { o.AddToHistory = false }
}

// WithEcho overrides the configured echo_thinking for one cycle.
func WithEcho(echo bool) FinishOption {
	return func(o *thinking.FinishOptions) { o.EchoToConsole = echo }
}

func (s *Session) finishOptions(opts []FinishOption) thinking.FinishOptions {
	fo := thinking.FinishOptions{AddToHistory: true, EchoToConsole: s.cfg.EchoThinking}
	for _, opt := range opts {
		opt(&fo)
	}
	return fo
}

// StartThinking opens the thinking box fed by AppendThinking. It fails
// with an AlreadyActive error while another cycle is running.
func (s *Session) StartThinking() error {
	return s.thinking.Start(nil)
}

// StartThinkingWith opens the thinking box with a custom snapshot
// provider, pulled on every animation tick.
func (s *Session) StartThinkingWith(provider thinking.ContentProvider) error {
	return s.thinking.Start(provider)
}

// AppendThinking adds chunk to the active cycle. It is dropped if no
// cycle is active.
func (s *Session) AppendThinking(chunk string) {
	s.thinking.Append(chunk)
}

// FinishThinking ends the active cycle and returns its full text, or ""
// if no cycle was active.
func (s *Session) FinishThinking(opts ...FinishOption) string {
	if !s.thinking.IsActive() {
		return ""
	}
	s.thinking.Finish(s.finishOptions(opts))
	return s.thinking.Content()
}

// AbortThinking ends the active cycle without adding it to history or
// echoing it.
func (s *Session) AbortThinking() bool {
	return s.thinking.Abort()
}

// IsThinking reports whether a cycle is streaming.
func (s *Session) IsThinking() bool {
	return s.thinking.IsActive()
}

// ThinkingContent returns the latest thinking text.
func (s *Session) ThinkingContent() string {
	return s.thinking.Content()
}

// Thinking runs fn inside a thinking cycle fed through w. The cycle is
// finished on every exit path of fn; an error from fn is returned after
// that.
func (s *Session) Thinking(ctx context.Context, fn func(ctx context.Context, w thinking.Writer) error, opts ...FinishOption) error {
	return s.thinking.Run(ctx, s.finishOptions(opts), fn)
}

// ThinkingWith is Thinking for producers that expose their own snapshot
// provider.
func (s *Session) ThinkingWith(ctx context.Context, provider thinking.ContentProvider, fn func(ctx context.Context) error, opts ...FinishOption) error {
	return s.thinking.RunProvider(ctx, provider, s.finishOptions(opts), fn)
}

func (s *Session) thinkingFinished(r thinking.Result) {
	defer s.scheduler.Request()

	if !r.AddToHistory && !r.EchoToConsole {
		s.log.Debug("thinking aborted")
		return
	}

	if strings.TrimSpace(r.Text) != "" {
		echo := thinking.ConsoleText(r.Text, s.cfg.MaxCollapsedHeight, r.WasExpanded)
		switch {
		case r.AddToHistory:
			s.add(history.Entry{
				Kind:    history.KindMessage,
				Role:    history.RoleThinking,
				Payload: r.Text,
				Summary: echo,
				Silent:  !r.EchoToConsole,
			})
		case r.EchoToConsole:
			s.echo(history.Entry{Kind: history.KindMessage, Role: history.RoleThinking, Payload: echo})
		}
	}

	if s.cfg.NotifyOnFinish && !s.focused.Load() {
		go notification.ThinkingFinished(s.cfg.App.Title())
	}
}

// =============================================================================
// Output
// =============================================================================

// ResponseOption adjusts a response entry.
type ResponseOption func(*history.Entry)

// WithMarkdown renders the response as markdown.
func WithMarkdown() ResponseOption {
	return func(e *history.Entry) { e.Markdown = true }
}

// AddResponse appends an assistant response.
func (s *Session) AddResponse(text string, opts ...ResponseOption) {
	e := history.Entry{Kind: history.KindResponse, Payload: text}
	for _, opt := range opts {
		opt(&e)
	}
	s.add(e)
}

// AddMessage appends a message from role. User messages are shown after
// the prompt string.
func (s *Session) AddMessage(role history.Role, text string) {
	s.add(history.Entry{Kind: history.KindMessage, Role: role, Payload: text})
}

// AddError appends an error line.
func (s *Session) AddError(text string) {
	s.add(history.Entry{Kind: history.KindError, Payload: text})
}

// AddWarning appends a warning line.
func (s *Session) AddWarning(text string) {
	s.add(history.Entry{Kind: history.KindWarning, Payload: text})
}

// AddSuccess appends a success line.
func (s *Session) AddSuccess(text string) {
	s.add(history.Entry{Kind: history.KindSuccess, Payload: text})
}

// AddCode appends a code block highlighted as language.
func (s *Session) AddCode(code, language string) {
	s.add(history.Entry{Kind: history.KindCode, Payload: code, Language: language})
}

// AddRich appends text that is already styled.
func (s *Session) AddRich(rendered string) {
	s.add(history.Entry{Kind: history.KindRich, Payload: rendered})
}

// Clear drops the history and the thinking box, leaves fullscreen and
// reprints the welcome banner.
func (s *Session) Clear() {
	s.writeMu.Lock()
	dropped := s.history.Len()
	s.thinking.Clear()
	s.history.Clear()
	s.drain()
	s.writeMu.Unlock()

	s.log.Debug("session cleared", "entries", dropped)
	if sender := s.loop(); sender != nil {
		sender.Send(clearMsg{})
	}
}

func (s *Session) add(e history.Entry) {
	s.writeMu.Lock()
	s.history.Append(e)
	s.writeMu.Unlock()
	s.scheduler.Request()
}

// echo queues console output that is not part of the history.
func (s *Session) echo(e history.Entry) {
	s.writeMu.Lock()
	s.enqueue(e)
	s.writeMu.Unlock()
	s.scheduler.Request()
}

func (s *Session) enqueue(e history.Entry) {
	if e.Silent {
		return
	}
	s.outMu.Lock()
	s.outbox = append(s.outbox, e)
	s.outMu.Unlock()
}

// drain takes everything queued for the console.
func (s *Session) drain() []history.Entry {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	out := s.outbox
	s.outbox = nil
	return out
}

// errNotRunning is returned by dialog calls made outside Run.
func errNotRunning(op string) error {
	return errors.NotRunning("app.Session." + op)
}
