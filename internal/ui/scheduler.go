package ui

import (
	"sync/atomic"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/thinkprompt/internal/logger"
)

// Sender delivers messages into the event loop. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// RedrawMsg asks the event loop for one redraw pass. Handling it must call
// Scheduler.Done so the next request can be dispatched.
type RedrawMsg struct{}

// Scheduler coalesces redraw requests coming from outside the event loop.
// At most one RedrawMsg is in flight at a time; requests that arrive while
// one is pending are folded into it. Triggers raised inside the loop (key
// presses, resizes, overlay changes) redraw on their own and do not need
// the scheduler.
type Scheduler struct {
	sender    Sender
	live      atomic.Bool
	pending   atomic.Bool
	requested atomic.Uint64
	coalesced atomic.Uint64
}

// NewScheduler creates a scheduler that dispatches through sender once
// MarkLive has been called.
func NewScheduler(sender Sender) *Scheduler {
	return &Scheduler{sender: sender}
}

// SetSender replaces the sink. The program is created after the model, so
// the sink is usually wired late.
func (s *Scheduler) SetSender(sender Sender) {
	s.sender = sender
}

// MarkLive enables dispatch. Requests before the loop runs are dropped; the
// first frame renders everything anyway.
func (s *Scheduler) MarkLive() {
	s.live.Store(true)
}

// Stop disables dispatch. Later requests are dropped.
func (s *Scheduler) Stop() {
	s.live.Store(false)
}

// Request asks for a redraw. It never blocks and is safe to call from any
// goroutine, including producers streaming into the thinking box.
func (s *Scheduler) Request() {
	s.requested.Add(1)
	if !s.live.Load() || s.sender == nil {
		return
	}
	if !s.pending.CompareAndSwap(false, true) {
		s.coalesced.Add(1)
		return
	}
	// Program.Send blocks until the loop reads the message, and the loop
	// may itself be the caller.
	go s.sender.Send(RedrawMsg{})
}

// Done marks the pending redraw as handled.
func (s *Scheduler) Done() {
	s.pending.Store(false)
}

// Pending reports whether a redraw message is in flight.
func (s *Scheduler) Pending() bool {
	return s.pending.Load()
}

// Stats returns how many redraws were requested and how many of those were
// folded into an already pending one.
func (s *Scheduler) Stats() (requested, coalesced uint64) {
	return s.requested.Load(), s.coalesced.Load()
}

// LogStats writes the request counters at debug level.
func (s *Scheduler) LogStats() {
	requested, coalesced := s.Stats()
	logger.Debug("scheduler: %d redraws requested, %d coalesced", requested, coalesced)
}
