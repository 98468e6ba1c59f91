// Package logbuf captures recent slog output in memory so the harness can
// dump run diagnostics after a scenario fails, independent of the log level
// printed to the console.
package logbuf

import (
	"log/slog"
	"sync"
	"time"
)

// Entry is a single captured log record.
type Entry struct {
	Time    time.Time      `json:"time"`
	Level   slog.Level     `json:"level"`
	Message string         `json:"message"`
	Attrs   map[string]any `json:"attrs,omitempty"`
}

// Buffer is a thread-safe ring buffer of log entries.
type Buffer struct {
	mu      sync.Mutex
	entries []Entry
	size    int
	pos     int
	count   int
}

// New creates a ring buffer holding up to size entries.
func New(size int) *Buffer {
	return &Buffer{
		entries: make([]Entry, size),
		size:    size,
	}
}

// Write appends an entry, evicting the oldest when full.
func (b *Buffer) Write(e Entry) {
	b.mu.Lock()
	b.entries[b.pos] = e
	b.pos = (b.pos + 1) % b.size
	if b.count < b.size {
		b.count++
	}
	b.mu.Unlock()
}

// Len returns the number of captured entries.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// Tail returns the most recent n entries, oldest first. n <= 0 returns
// everything captured.
func (b *Buffer) Tail(n int) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Entry, 0, b.count)
	start := 0
	if b.count == b.size {
		start = b.pos // oldest entry when the buffer has wrapped
	}
	for i := 0; i < b.count; i++ {
		out = append(out, b.entries[(start+i)%b.size])
	}
	if n > 0 && len(out) > n {
		out = out[len(out)-n:]
	}
	return out
}
