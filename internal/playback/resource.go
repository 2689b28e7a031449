// Package playback owns the scarce playback resource. At most one
// resource exists per lane manager at any instant; the manager enforces
// release-before-construct so the old surface is gone before the new one
// is built. Nothing here runs goroutines or timers. Resources advance when
// the owner calls Tick on the event loop and report what happened as
// events.
package playback

import (
	"errors"
	"time"
)

// Lane distinguishes the two consumers of playback.
type Lane int

const (
	// LaneFeed plays the active feed row: muted, looping.
	LaneFeed Lane = iota
	// LaneOverlay plays an expanded item: audible, single pass.
	LaneOverlay
)

// Config is the construction-time policy for a resource.
type Config struct {
	Muted bool
	Loop  bool
}

// LaneConfig returns the fixed policy for a lane.
func LaneConfig(l Lane) Config {
	if l == LaneOverlay {
		return Config{Muted: false, Loop: false}
	}
	return Config{Muted: true, Loop: true}
}

// EventKind classifies resource events.
type EventKind int

const (
	// EventReady fires once when the resource is prepared.
	EventReady EventKind = iota
	// EventEnded fires once, at the first time the stream reaches its
	// end. Looping resources keep playing afterwards without re-firing.
	EventEnded
	// EventError fires when the resource fails mid-stream.
	EventError
)

// Event is one thing a resource did during a tick.
type Event struct {
	Kind   EventKind
	ItemID string
	Err    error
}

// Source describes what a resource should play.
type Source struct {
	ItemID   string
	URL      string
	Duration time.Duration
}

// Resource is one live playback surface.
type Resource interface {
	ItemID() string
	// Tick advances the resource to now and returns events raised since
	// the previous tick, in order.
	Tick(now time.Time) []Event
	// Position is the playhead within the current pass.
	Position(now time.Time) time.Duration
	// Release tears the surface down. Idempotent; a released resource
	// ticks to nothing.
	Release()
}

// Factory constructs a resource for a source under a lane policy.
type Factory func(src Source, cfg Config) (Resource, error)

var (
	ErrNoURL      = errors.New("playback: source has no url")
	ErrNoDuration = errors.New("playback: source has no duration")
)

// clip is the wall-clock resource implementation. It starts on its first
// tick and derives the playhead from elapsed time, so a missed tick never
// loses position.
type clip struct {
	src      Source
	cfg      Config
	started  bool
	start    time.Time
	ready    bool
	ended    bool
	released bool
}

// NewClip builds a clock-driven resource for src.
func NewClip(src Source, cfg Config) (Resource, error) {
	if src.URL == "" {
		return nil, ErrNoURL
	}
	if src.Duration <= 0 {
		return nil, ErrNoDuration
	}
	return &clip{src: src, cfg: cfg}, nil
}

func (c *clip) ItemID() string { return c.src.ItemID }

func (c *clip) Tick(now time.Time) []Event {
	if c.released {
		return nil
	}
	var events []Event
	if !c.ready {
		c.ready = true
		events = append(events, Event{Kind: EventReady, ItemID: c.src.ItemID})
	}
	if !c.started {
		c.started = true
		c.start = now
		return events
	}

	elapsed := now.Sub(c.start)
	if elapsed < c.src.Duration {
		return events
	}
	if !c.ended {
		c.ended = true
		events = append(events, Event{Kind: EventEnded, ItemID: c.src.ItemID})
	}
	if c.cfg.Loop {
		// Rebase the start so Position keeps tracking within the pass.
		c.start = now.Add(-(elapsed % c.src.Duration))
	}
	return events
}

func (c *clip) Position(now time.Time) time.Duration {
	if !c.started || c.released {
		return 0
	}
	elapsed := now.Sub(c.start)
	if elapsed < c.src.Duration {
		return elapsed
	}
	if c.cfg.Loop {
		return elapsed % c.src.Duration
	}
	return c.src.Duration
}

func (c *clip) Release() { c.released = true }
