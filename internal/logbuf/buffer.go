package logbuf

import (
	"sync"
	"time"
)

// Level classifies an entry for display.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
)

// DefaultCapacity is the number of entries kept when no capacity is given.
const DefaultCapacity = 100

const timeLayout = "15:04:05"

// Entry is a single activity log line.
type Entry struct {
	Time    string
	Message string
	Level   Level
}

// Option customizes a Buffer.
type Option func(*Buffer)

// WithClock overrides the time source used to stamp entries.
func WithClock(now func() time.Time) Option {
	return func(b *Buffer) {
		if now != nil {
			b.now = now
		}
	}
}

type subscriber struct {
	fn func([]Entry)
}

// Buffer is a bounded, ordered activity log. The zero value is ready to use
// with DefaultCapacity.
type Buffer struct {
	// emitMu serializes mutation plus notification so subscribers observe
	// appends in call order. Subscribers must not call Append or Clear.
	emitMu sync.Mutex

	mu       sync.RWMutex
	ring     []Entry
	next     int
	count    int
	capacity int
	now      func() time.Time

	subsMu sync.Mutex
	subs   []*subscriber
}

// New builds a Buffer holding at most capacity entries.
func New(capacity int, opts ...Option) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	b := &Buffer{capacity: capacity}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Capacity reports the maximum number of retained entries.
func (b *Buffer) Capacity() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.capacity <= 0 {
		return DefaultCapacity
	}
	return b.capacity
}

// Append stamps and stores an entry, evicting the oldest one when full, then
// notifies subscribers with the full ordered sequence.
func (b *Buffer) Append(message string, level Level) {
	b.emitMu.Lock()
	defer b.emitMu.Unlock()

	b.mu.Lock()
	b.initLocked()
	b.ring[b.next] = Entry{
		Time:    b.now().Format(timeLayout),
		Message: message,
		Level:   level,
	}
	b.next = (b.next + 1) % b.capacity
	if b.count < b.capacity {
		b.count++
	}
	entries := b.entriesLocked()
	b.mu.Unlock()

	b.notify(entries)
}

// Clear drops every entry and notifies subscribers with an empty sequence.
func (b *Buffer) Clear() {
	b.emitMu.Lock()
	defer b.emitMu.Unlock()

	b.mu.Lock()
	b.initLocked()
	for i := range b.ring {
		b.ring[i] = Entry{}
	}
	b.next = 0
	b.count = 0
	b.mu.Unlock()

	b.notify([]Entry{})
}

// Snapshot returns the current entries, oldest first.
func (b *Buffer) Snapshot() []Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.entriesLocked()
}

// Len reports how many entries are stored.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.count
}

// Subscribe registers fn to receive the full sequence after every Append and
// Clear. The returned function removes the registration; calling it more
// than once is harmless.
func (b *Buffer) Subscribe(fn func([]Entry)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	sub := &subscriber{fn: fn}
	b.subsMu.Lock()
	b.subs = append(b.subs, sub)
	b.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.subsMu.Lock()
			defer b.subsMu.Unlock()
			for i, s := range b.subs {
				if s == sub {
					b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (b *Buffer) notify(entries []Entry) {
	b.subsMu.Lock()
	subs := make([]*subscriber, len(b.subs))
	copy(subs, b.subs)
	b.subsMu.Unlock()

	for _, s := range subs {
		dup := make([]Entry, len(entries))
		copy(dup, entries)
		s.fn(dup)
	}
}

func (b *Buffer) initLocked() {
	if b.capacity <= 0 {
		b.capacity = DefaultCapacity
	}
	if b.now == nil {
		b.now = time.Now
	}
	if len(b.ring) != b.capacity {
		b.ring = make([]Entry, b.capacity)
	}
}

func (b *Buffer) entriesLocked() []Entry {
	entries := make([]Entry, b.count)
	if b.count == 0 {
		return entries
	}
	if b.count == len(b.ring) {
		for i := 0; i < b.count; i++ {
			entries[i] = b.ring[(b.next+i)%len(b.ring)]
		}
		return entries
	}
	copy(entries, b.ring[:b.count])
	return entries
}
