// Package thinking implements the lifecycle of the thinking box: the
// streaming content buffer, the phase state machine and its scoped form.
//
// Phase transitions:
//
//	Idle/Collapsed/Expanded --Start--> Active
//	Active --Finish--> Finishing --> Collapsed
//	Collapsed <--ToggleExpand--> Expanded
//	any --Clear--> Idle
package thinking

import (
	"sync"

	"github.com/zhubert/thinkprompt/internal/errors"
	"github.com/zhubert/thinkprompt/internal/logger"
)

// Phase is the lifecycle phase of the thinking box.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseFinishing
	PhaseCollapsed
	PhaseExpanded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseFinishing:
		return "finishing"
	case PhaseCollapsed:
		return "collapsed"
	case PhaseExpanded:
		return "expanded"
	default:
		return "unknown"
	}
}

// ContentProvider returns the full current text of a thinking cycle. It is
// pulled by the render loop on every tick, so it must return a consistent
// snapshot rather than a delta.
type ContentProvider func() (string, error)

// FinishOptions controls where the final text goes when a cycle finishes.
type FinishOptions struct {
	AddToHistory  bool
	EchoToConsole bool
}

// Result describes a finished cycle. It is handed to the finish hook.
type Result struct {
	Text        string
	WasExpanded bool
	FinishOptions
}

// Snapshot is a consistent view of the state for rendering.
type Snapshot struct {
	Phase    Phase
	Text     string
	Revision uint64
	Expanded bool
	Frame    int
	Visible  bool
}

// State is the thinking box state machine. It is safe for concurrent use:
// producers call Append from their own goroutines while the render loop
// takes snapshots.
type State struct {
	mu        sync.Mutex
	phase     Phase
	expanded  bool
	echoed    bool
	maxHeight int
	width     int
	frame     int

	buf      *Buffer
	provider ContentProvider
	custom   bool
	last     string
	final    string

	onFinish func(Result)
	onChange func()
}

// NewState creates an idle state. onFinish, if non-nil, is called once per
// finished cycle after the phase has moved to Collapsed.
func NewState(maxHeight int, onFinish func(Result)) *State {
	if maxHeight < 2 {
		maxHeight = 2
	}
	return &State{
		maxHeight: maxHeight,
		buf:       NewBuffer(),
		onFinish:  onFinish,
	}
}

// OnChange registers fn to be called, outside the lock, whenever a cycle
// starts or its built-in buffer grows.
func (s *State) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

func (s *State) changed() {
	s.mu.Lock()
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// SetWidth sets the terminal width that long lines wrap at when deciding
// whether content overflows. Zero disables wrapping.
func (s *State) SetWidth(width int) {
	s.mu.Lock()
	s.width = max(0, width)
	s.mu.Unlock()
}

// MaxHeight returns the collapsed height limit in lines.
func (s *State) MaxHeight() int {
	return s.maxHeight
}

// Start begins a new cycle. A nil provider selects the built-in buffer fed
// by Append. Starting while a cycle is Active or Finishing fails with an
// AlreadyActive error.
func (s *State) Start(provider ContentProvider) error {
	if err := s.start(provider); err != nil {
		return err
	}
	s.changed()
	return nil
}

func (s *State) start(provider ContentProvider) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseActive || s.phase == PhaseFinishing {
		return errors.AlreadyActive()
	}

	s.buf = NewBuffer()
	s.custom = provider != nil
	if provider == nil {
		buf := s.buf
		provider = func() (string, error) { return buf.String(), nil }
	}
	s.provider = provider
	s.phase = PhaseActive
	s.expanded = false
	s.echoed = false
	s.frame = 0
	s.last = ""
	s.final = ""

	logger.Debug("thinking: started cycle")
	return nil
}

// Append adds chunk to the built-in buffer. Appends outside the Active
// phase are dropped.
func (s *State) Append(chunk string) {
	s.mu.Lock()
	if s.phase != PhaseActive {
		s.mu.Unlock()
		logger.Debug("thinking: dropped append in phase %s", s.phase)
		return
	}
	buf := s.buf
	s.mu.Unlock()

	if !buf.Append(chunk) {
		if buf.Frozen() {
			logger.Debug("thinking: dropped append to a finished buffer")
		}
		return
	}
	s.changed()
}

// Finish ends the active cycle: Active -> Finishing -> Collapsed. The final
// snapshot is pulled once from the provider and handed to the finish hook.
// Finish on a cycle that is not Active is a no-op and reports false.
func (s *State) Finish(opts FinishOptions) bool {
	s.mu.Lock()
	if s.phase != PhaseActive {
		s.mu.Unlock()
		return false
	}
	s.phase = PhaseFinishing
	provider := s.provider
	s.mu.Unlock()

	text := pull(provider)

	s.mu.Lock()
	if s.phase != PhaseFinishing {
		// Cleared while the final snapshot was being pulled.
		s.mu.Unlock()
		logger.Debug("thinking: dropped finish, phase is now %s", s.phase)
		return false
	}
	s.buf.Freeze()
	s.final = text
	s.last = text
	s.provider = nil
	wasExpanded := s.expanded
	s.expanded = false
	s.echoed = opts.EchoToConsole
	s.phase = PhaseCollapsed
	hook := s.onFinish
	s.mu.Unlock()

	logger.Debug("thinking: finished cycle (history=%v, echo=%v, bytes=%d)",
		opts.AddToHistory, opts.EchoToConsole, len(text))

	if hook != nil {
		hook(Result{Text: text, WasExpanded: wasExpanded, FinishOptions: opts})
	}
	return true
}

// Abort finishes the active cycle without adding to history or echoing.
func (s *State) Abort() bool {
	return s.Finish(FinishOptions{})
}

// Clear drops the current cycle's content and returns to Idle. An active
// cycle is finished silently first.
func (s *State) Clear() {
	s.Abort()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = PhaseIdle
	s.expanded = false
	s.echoed = false
	s.buf = NewBuffer()
	s.last = ""
	s.final = ""
}

// ToggleExpand flips between collapsed and expanded display. It is allowed
// in any phase once content exists, including while Active; otherwise it is
// a no-op and reports false. Two consecutive calls restore the prior phase.
func (s *State) ToggleExpand() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseIdle || s.currentLocked() == "" {
		return false
	}

	switch s.phase {
	case PhaseCollapsed:
		s.phase = PhaseExpanded
	case PhaseExpanded:
		s.phase = PhaseCollapsed
	default:
		s.expanded = !s.expanded
	}
	return true
}

// Expand forces the expanded display if content exists.
func (s *State) Expand() {
	if !s.IsExpanded() {
		s.ToggleExpand()
	}
}

// CanToggle reports whether the expand key should do anything: the box is
// already expanded, or its content overflows the collapsed height.
func (s *State) CanToggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.expandedLocked() {
		return true
	}
	if s.phase == PhaseIdle {
		return false
	}
	return Overflows(s.currentLocked(), s.maxHeight, s.width)
}

// Phase returns the current phase.
func (s *State) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// IsActive reports whether a cycle is streaming.
func (s *State) IsActive() bool {
	return s.Phase() == PhaseActive
}

// IsExpanded reports whether the box is showing its full content.
func (s *State) IsExpanded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expandedLocked()
}

func (s *State) expandedLocked() bool {
	return s.phase == PhaseExpanded || (s.expanded && (s.phase == PhaseActive || s.phase == PhaseFinishing))
}

// Tick advances the animation frame modulo frames while Active and reports
// whether the cycle is still Active. Outside Active the frame is frozen.
func (s *State) Tick(frames int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseActive {
		return false
	}
	if frames > 0 {
		s.frame = (s.frame + 1) % frames
	}
	return true
}

// Frame returns the animation frame index.
func (s *State) Frame() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// Content returns the latest known text without pulling the provider.
func (s *State) Content() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentLocked()
}

func (s *State) currentLocked() string {
	switch s.phase {
	case PhaseCollapsed, PhaseExpanded:
		return s.final
	case PhaseActive, PhaseFinishing:
		if !s.custom {
			return s.buf.String()
		}
	}
	return s.last
}

// Snapshot pulls the provider while a cycle is Active and returns a
// consistent view for rendering. The provider is called without holding
// the state lock.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	provider := s.provider
	active := s.phase == PhaseActive
	s.mu.Unlock()

	var text string
	if active && provider != nil {
		text = pull(provider)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The cycle may have moved on while the provider ran.
	if active && s.phase == PhaseActive {
		s.last = text
	}
	return Snapshot{
		Phase:    s.phase,
		Text:     s.currentLocked(),
		Revision: s.buf.Revision(),
		Expanded: s.expandedLocked(),
		Frame:    s.frame,
		Visible:  s.visibleLocked(),
	}
}

// The box stays on screen after finishing only when its text was not echoed
// to the console above it.
func (s *State) visibleLocked() bool {
	switch s.phase {
	case PhaseActive, PhaseFinishing:
		return true
	case PhaseCollapsed, PhaseExpanded:
		return !s.echoed && s.final != ""
	}
	return false
}

func pull(provider ContentProvider) string {
	if provider == nil {
		return ""
	}
	text, err := provider()
	if err != nil {
		logger.ComponentLogger("thinking").Error("content provider failed", "error", err)
		return ""
	}
	return text
}
