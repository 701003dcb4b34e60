package thinking

import (
	"strings"
	"sync"
)

// Buffer is an append-only text accumulator with a monotonic revision.
// Producers may append from any goroutine while the render loop reads
// snapshots; a snapshot is always a whole number of appends.
type Buffer struct {
	mu     sync.RWMutex
	text   strings.Builder
	rev    uint64
	frozen bool
}

// NewBuffer returns an empty buffer at revision 0.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append adds chunk to the end of the buffer and bumps the revision.
// It reports false when the buffer is frozen or chunk is empty.
func (b *Buffer) Append(chunk string) bool {
	if chunk == "" {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.frozen {
		return false
	}
	b.text.WriteString(chunk)
	b.rev++
	return true
}

// Snapshot returns the full text and the revision it corresponds to.
func (b *Buffer) Snapshot() (string, uint64) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text.String(), b.rev
}

// String returns the full text.
func (b *Buffer) String() string {
	text, _ := b.Snapshot()
	return text
}

// Revision returns the number of successful appends so far.
func (b *Buffer) Revision() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rev
}

// Freeze stops the buffer from accepting further appends.
func (b *Buffer) Freeze() {
	b.mu.Lock()
	b.frozen = true
	b.mu.Unlock()
}

// Frozen reports whether Freeze has been called.
func (b *Buffer) Frozen() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.frozen
}
