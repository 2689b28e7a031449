package otel

import "sync"

// DefaultRingSize holds roughly one feed session's worth of events
// (page fetches, visibility changes, watch completions). Kept a power of
// two so the index wrap stays cheap.
const DefaultRingSize = 1024

// RingBuffer keeps the most recent events in memory so the current
// session can be inspected without touching the JSONL file on disk.
// Goroutine-safe for concurrent Push and read operations.
type RingBuffer struct {
	mu     sync.Mutex
	events []Event
	next   int // next write slot
	filled int // valid entries, 0..len(events)
}

// NewRingBuffer creates a ring buffer with the given capacity. A
// non-positive size falls back to DefaultRingSize.
func NewRingBuffer(size int) *RingBuffer {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &RingBuffer{events: make([]Event, size)}
}

// Push adds an event, overwriting the oldest when full. The Extra map is
// shallow-copied so a caller reusing its map cannot alias buffered state.
func (r *RingBuffer) Push(e Event) {
	if e.Extra != nil {
		cp := make(map[string]any, len(e.Extra))
		for k, v := range e.Extra {
			cp[k] = v
		}
		e.Extra = cp
	}
	r.mu.Lock()
	r.events[r.next] = e
	r.next = (r.next + 1) % len(r.events)
	if r.filled < len(r.events) {
		r.filled++
	}
	r.mu.Unlock()
}

// Snapshot returns a copy of every buffered event, oldest first. The
// returned slice is the caller's to keep.
func (r *RingBuffer) Snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastLocked(r.filled)
}

// Last returns the n most recent events, oldest first. Asking for more
// than is buffered returns everything; n <= 0 returns nil.
func (r *RingBuffer) Last(n int) []Event {
	if n <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if n > r.filled {
		n = r.filled
	}
	return r.lastLocked(n)
}

// lastLocked copies out the n newest events in order. Caller holds mu.
func (r *RingBuffer) lastLocked(n int) []Event {
	if n == 0 {
		return nil
	}
	out := make([]Event, n)
	start := (r.next - n + len(r.events)) % len(r.events)
	for i := 0; i < n; i++ {
		out[i] = r.events[(start+i)%len(r.events)]
	}
	return out
}

// Len returns the number of buffered events.
func (r *RingBuffer) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filled
}

// Cap returns the buffer capacity.
func (r *RingBuffer) Cap() int {
	return len(r.events)
}

// Stats counts buffered events by kind, e.g. how many page fetches vs.
// watch records the session has produced so far.
func (r *RingBuffer) Stats() map[EventKind]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := make(map[EventKind]int)
	for _, e := range r.lastLocked(r.filled) {
		counts[e.Kind]++
	}
	return counts
}
