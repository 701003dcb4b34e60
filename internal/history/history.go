// Package history holds the ordered log of completed output entries shown
// above the prompt.
package history

import (
	"sync"
	"time"
)

// Kind tags what an entry holds and how it is rendered.
type Kind int

const (
	KindResponse Kind = iota
	KindMessage
	KindError
	KindWarning
	KindSuccess
	KindCode
	KindRich
)

func (k Kind) String() string {
	switch k {
	case KindResponse:
		return "response"
	case KindMessage:
		return "message"
	case KindError:
		return "error"
	case KindWarning:
		return "warning"
	case KindSuccess:
		return "success"
	case KindCode:
		return "code"
	case KindRich:
		return "rich"
	default:
		return "unknown"
	}
}

// Role identifies the speaker of a KindMessage entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleThinking  Role = "thinking"
	RoleSystem    Role = "system"
)

// Entry is one completed piece of output. Entries are values: once
// appended they never change.
type Entry struct {
	Seq      uint64
	Kind     Kind
	Payload  string
	Role     Role   // KindMessage only
	Language string // KindCode only
	Markdown bool   // KindResponse only
	At       time.Time

	// Summary, when set, is printed above the prompt in place of Payload.
	// Fullscreen always shows Payload.
	Summary string
	// Silent entries are kept for fullscreen but never printed above the
	// prompt.
	Silent bool
}

// Console returns the text printed above the prompt for e.
func (e Entry) Console() string {
	if e.Summary != "" {
		return e.Summary
	}
	return e.Payload
}

// Log is an append-only, ordered sequence of entries. Sequence numbers
// follow call order and keep increasing across Clear.
type Log struct {
	mu       sync.RWMutex
	entries  []Entry
	nextSeq  uint64
	onAppend func(Entry)
}

// New creates an empty log. onAppend, if non-nil, is called after each
// append, outside the log's lock.
func New(onAppend func(Entry)) *Log {
	return &Log{nextSeq: 1, onAppend: onAppend}
}

// Append stamps e with the next sequence number and the current time,
// stores it, and returns the stored entry.
func (l *Log) Append(e Entry) Entry {
	l.mu.Lock()
	e.Seq = l.nextSeq
	l.nextSeq++
	if e.At.IsZero() {
		e.At = time.Now()
	}
	l.entries = append(l.entries, e)
	hook := l.onAppend
	l.mu.Unlock()

	if hook != nil {
		hook(e)
	}
	return e
}

// Entries returns a copy of all entries in append order.
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Clear drops all entries. Sequence numbering continues.
func (l *Log) Clear() {
	l.mu.Lock()
	l.entries = nil
	l.mu.Unlock()
}
