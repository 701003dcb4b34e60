package ui

import (
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
)

// fakeSender records messages and blocks until released, like an event
// loop that is busy.
type fakeSender struct {
	mu      sync.Mutex
	msgs    []tea.Msg
	release chan struct{}
}

func newFakeSender() *fakeSender {
	return &fakeSender{release: make(chan struct{}, 16)}
}

func (f *fakeSender) Send(msg tea.Msg) {
	<-f.release
	f.mu.Lock()
	f.msgs = append(f.msgs, msg)
	f.mu.Unlock()
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.msgs)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for condition")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestScheduler_DropsRequestsBeforeLive(t *testing.T) {
	f := newFakeSender()
	s := NewScheduler(f)

	s.Request()
	if s.Pending() {
		t.Error("expected no pending redraw before the loop is live")
	}
	if requested, _ := s.Stats(); requested != 1 {
		t.Errorf("expected 1 request counted, got %d", requested)
	}
}

func TestScheduler_CoalescesBursts(t *testing.T) {
	f := newFakeSender()
	s := NewScheduler(f)
	s.MarkLive()

	for range 50 {
		s.Request()
	}
	if !s.Pending() {
		t.Fatal("expected a pending redraw")
	}
	requested, coalesced := s.Stats()
	if requested != 50 || coalesced != 49 {
		t.Errorf("expected 50 requested and 49 coalesced, got %d and %d", requested, coalesced)
	}

	f.release <- struct{}{}
	waitFor(t, func() bool { return f.count() == 1 })
	if _, ok := f.msgs[0].(RedrawMsg); !ok {
		t.Errorf("expected RedrawMsg, got %T", f.msgs[0])
	}

	// Still pending until the loop reports the pass done.
	s.Request()
	if _, coalesced := s.Stats(); coalesced != 50 {
		t.Errorf("expected request before Done to coalesce, got %d", coalesced)
	}

	s.Done()
	s.Request()
	f.release <- struct{}{}
	waitFor(t, func() bool { return f.count() == 2 })
}

func TestScheduler_Stop(t *testing.T) {
	f := newFakeSender()
	s := NewScheduler(f)
	s.MarkLive()
	s.Stop()

	s.Request()
	if s.Pending() {
		t.Error("expected requests to be dropped after Stop")
	}
}

func TestScheduler_NilSender(t *testing.T) {
	s := NewScheduler(nil)
	s.MarkLive()
	s.Request()
	if s.Pending() {
		t.Error("expected no dispatch without a sender")
	}

	f := newFakeSender()
	s.SetSender(f)
	s.Request()
	if !s.Pending() {
		t.Error("expected dispatch after the sender is wired")
	}
	f.release <- struct{}{}
	waitFor(t, func() bool { return f.count() == 1 })
}
