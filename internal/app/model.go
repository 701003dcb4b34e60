package app

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/thinkprompt/internal/clipboard"
	"github.com/zhubert/thinkprompt/internal/config"
	"github.com/zhubert/thinkprompt/internal/history"
	"github.com/zhubert/thinkprompt/internal/keys"
	"github.com/zhubert/thinkprompt/internal/ui"
	"github.com/zhubert/thinkprompt/internal/ui/modals"
)

// animationTickMsg advances the thinking spinner.
type animationTickMsg struct{}

// printedMsg follows a console print; the next flush may start.
type printedMsg struct{}

// handlerDoneMsg reports that the input handler returned.
type handlerDoneMsg struct {
	err error
}

// clearMsg resets the screen after Session.Clear.
type clearMsg struct{}

// Model is the Bubble Tea model behind a Session. Only the event loop
// touches it.
type Model struct {
	s   *Session
	cfg *config.Config

	input     textinput.Model
	keys      ui.KeyMap
	box       *ui.ThinkingBox
	overlay   *ui.Overlay
	status    *ui.StatusBar
	entries   *ui.EntryRenderer
	completer *ui.Completer
	full      *ui.HistoryView

	width  int
	height int

	fullscreen bool
	animating  bool

	// Console output waits here while a print is in flight or the
	// fullscreen view is up.
	held     []history.Entry
	printing bool

	menu      []string
	menuIndex int

	busy  bool
	queue []string
}

func newModel(s *Session) *Model {
	cfg := s.cfg

	input := textinput.New()
	input.Prompt = cfg.PromptMessage
	styles := input.Styles()
	styles.Focused.Prompt = ui.PromptStyle
	styles.Blurred.Prompt = ui.PromptStyle
	input.SetStyles(styles)
	input.Focus()

	km := ui.NewKeyMap(cfg)
	m := &Model{
		s:         s,
		cfg:       cfg,
		input:     input,
		keys:      km,
		box:       ui.NewThinkingBox(cfg),
		overlay:   ui.NewOverlay(),
		status:    ui.NewStatusBar(km),
		entries:   ui.NewEntryRenderer(cfg.PromptMessage),
		completer: ui.NewCompleter(s.completions),
		full:      ui.NewHistoryView(),
		width:     ui.DefaultWrapWidth,
		height:    ui.DefaultHeight,
	}
	m.updateSizes()
	return m
}

// Init prints the welcome banner and opens the scheduler.
func (m *Model) Init() tea.Cmd {
	m.s.scheduler.MarkLive()
	m.holdWelcome()
	return tea.Batch(textinput.Blink, m.sync())
}

// Update handles one message and then brings the console and the animation
// up to date.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	return m, tea.Batch(cmd, m.sync())
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return nil

	case tea.FocusMsg:
		m.s.focused.Store(true)
		return nil

	case tea.BlurMsg:
		m.s.focused.Store(false)
		return nil

	case ui.RedrawMsg:
		m.s.scheduler.Done()
		return nil

	case animationTickMsg:
		if m.s.thinking.Tick(len(m.cfg.AnimationFrames)) {
			return m.tick()
		}
		m.animating = false
		return nil

	case printedMsg:
		m.printing = false
		return nil

	case ui.FlashTickMsg:
		if m.status.HasFlash() && !m.status.ClearIfExpired() {
			return ui.FlashTick()
		}
		return nil

	case openDialogMsg:
		result, err := m.overlay.Open(msg.state)
		msg.reply <- openDialogReply{result: result, err: err}
		if err == nil {
			m.input.Blur()
		}
		return nil

	case cancelDialogMsg:
		if m.overlay.Current() == msg.state {
			m.overlay.Close(modals.CancelResult)
		}
		return nil

	case handlerDoneMsg:
		m.busy = false
		if msg.err != nil && m.s.context().Err() == nil {
			m.s.log.Debug("input handler failed", "error", msg.err)
			m.s.AddError(msg.err.Error())
		}
		if len(m.queue) > 0 {
			line := m.queue[0]
			m.queue = m.queue[1:]
			return m.dispatch(line)
		}
		return nil

	case clearMsg:
		m.fullscreen = false
		m.held = nil
		m.menu = nil
		m.holdWelcome()
		return tea.ClearScreen

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.MouseWheelMsg:
		switch {
		case m.overlay.IsOpen():
			return nil
		case m.fullscreen:
			return m.full.Update(msg)
		case m.s.thinking.IsExpanded():
			return m.box.Scroll(msg)
		}
		return nil
	}

	if m.overlay.IsOpen() {
		return m.overlay.Update(msg)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// shutdown resolves an open dialog with the cancel sentinel once the loop
// has stopped.
func (m *Model) shutdown() {
	if m.overlay.Close(modals.CancelResult) {
		m.s.log.Debug("cancelled open dialog on exit")
	}
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if m.overlay.IsOpen() {
		return m.overlay.Update(msg)
	}

	switch msg.String() {
	case keys.CtrlC:
		if m.s.thinking.IsActive() {
			m.s.thinking.Abort()
			return nil
		}
		return tea.Quit
	case keys.CtrlD:
		return tea.Quit
	}

	switch {
	case key.Matches(msg, m.keys.Fullscreen):
		m.toggleFullscreen()
		return nil
	case key.Matches(msg, m.keys.Copy):
		return m.copyThinking()
	}

	if m.fullscreen {
		if msg.String() == keys.Escape {
			m.toggleFullscreen()
			return nil
		}
		return m.full.Update(msg)
	}

	switch msg.String() {
	case keys.PgUp, keys.PgDown, keys.End:
		if m.s.thinking.IsExpanded() {
			return m.box.Scroll(msg)
		}
	}

	switch {
	case key.Matches(msg, m.keys.Expand):
		if m.s.thinking.CanToggle() {
			m.s.thinking.ToggleExpand()
		}
		return nil
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	}

	switch msg.String() {
	case keys.Tab:
		m.complete()
		return nil
	case keys.Up, keys.Down:
		if len(m.menu) > 0 {
			m.moveMenu(msg.String() == keys.Up)
			return nil
		}
	case keys.Escape:
		if len(m.menu) > 0 {
			m.closeMenu()
			return nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.completer.Reset()
		m.menu = nil
		if m.cfg.CompleteWhileTyping {
			m.menu = m.completer.Matches(m.input.Value())
			m.menuIndex = 0
		}
	}
	return cmd
}

func (m *Model) toggleFullscreen() {
	m.fullscreen = !m.fullscreen
	if m.fullscreen {
		// Fullscreen shows the box whole.
		if m.s.thinking.IsActive() {
			m.s.thinking.Expand()
		}
		m.full.Pin()
		m.input.Blur()
	}
	m.s.log.Debug("fullscreen toggled", "fullscreen", m.fullscreen)
}

func (m *Model) copyThinking() tea.Cmd {
	text := m.s.thinking.Content()
	switch {
	case strings.TrimSpace(text) == "":
		m.status.SetFlash("Nothing to copy", ui.FlashWarning)
	default:
		if err := clipboard.WriteText(text); err != nil {
			m.s.log.Warn("copy failed", "error", err)
			m.status.SetFlash("Copy failed: "+err.Error(), ui.FlashError)
		} else {
			m.status.SetFlash("Copied thinking text", ui.FlashSuccess)
		}
	}
	return ui.FlashTick()
}

// =============================================================================
// Input
// =============================================================================

func (m *Model) submit() tea.Cmd {
	line := m.input.Value()
	m.input.Reset()
	m.closeMenu()

	if m.cfg.EchoInput {
		m.s.AddMessage(history.RoleUser, line)
	}
	if m.busy {
		m.queue = append(m.queue, line)
		return nil
	}
	return m.dispatch(line)
}

func (m *Model) dispatch(line string) tea.Cmd {
	h := m.s.inputHandler()
	if h == nil {
		return nil
	}
	m.busy = true
	s := m.s
	ctx := s.context()
	return func() tea.Msg {
		return handlerDoneMsg{err: s.handle(ctx, h, line)}
	}
}

func (m *Model) complete() {
	if m.cfg.CompleteWhileTyping && len(m.menu) > 0 {
		m.input.SetValue(m.menu[m.menuIndex])
		m.input.CursorEnd()
		m.closeMenu()
		return
	}
	completed, ok := m.completer.Complete(m.input.Value())
	if !ok {
		return
	}
	m.input.SetValue(completed)
	m.input.CursorEnd()
	m.menu = m.completer.Completions()
	m.menuIndex = max(0, m.completer.Index())
	if len(m.menu) < 2 {
		m.menu = nil
	}
}

func (m *Model) moveMenu(up bool) {
	if up {
		m.menuIndex = max(0, m.menuIndex-1)
	} else {
		m.menuIndex = min(len(m.menu)-1, m.menuIndex+1)
	}
	if !m.cfg.CompleteWhileTyping {
		m.input.SetValue(m.menu[m.menuIndex])
		m.input.CursorEnd()
	}
}

func (m *Model) closeMenu() {
	m.menu = nil
	m.menuIndex = 0
	m.completer.Reset()
}

// =============================================================================
// Console output and animation
// =============================================================================

// sync runs after every message: it flushes queued console output in
// order, keeps the spinner ticking while a cycle is active, and hands the
// prompt back its focus once the overlay closes.
func (m *Model) sync() tea.Cmd {
	var cmds []tea.Cmd

	m.held = append(m.held, m.s.drain()...)
	if !m.fullscreen && !m.printing && len(m.held) > 0 {
		text := m.renderHeld()
		m.held = nil
		m.printing = true
		cmds = append(cmds, tea.Sequence(
			tea.Println(text),
			func() tea.Msg { return printedMsg{} },
		))
	}

	if !m.animating && m.s.thinking.IsActive() {
		m.animating = true
		cmds = append(cmds, m.tick())
	}

	if !m.overlay.IsOpen() && !m.fullscreen && !m.input.Focused() {
		cmds = append(cmds, m.input.Focus())
	}
	return tea.Batch(cmds...)
}

// renderHeld renders the held console output, oldest first.
func (m *Model) renderHeld() string {
	parts := make([]string, 0, len(m.held))
	for _, e := range m.held {
		e.Payload = e.Console()
		parts = append(parts, m.entries.Render(e))
	}
	return strings.Join(parts, "\n")
}

func (m *Model) holdWelcome() {
	if banner := ui.RenderWelcome(m.cfg.App); banner != "" {
		m.held = append(m.held, history.Entry{Kind: history.KindRich, Payload: banner})
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.cfg.AnimationInterval(), func(time.Time) tea.Msg {
		return animationTickMsg{}
	})
}
