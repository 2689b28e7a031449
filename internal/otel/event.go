// Package otel provides structured observability for zivo.
//
// Events are typed structs serialized as JSONL lines. The Logger writes
// events asynchronously via a buffered channel and background drain goroutine.
// An optional RingBuffer provides live in-memory inspection for the debug overlay.
package otel

import (
	"encoding/json"
	"time"
)

// Level defines event severity for filtering.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// EventKind identifies the category of an observability event.
// Dot-delimited: "<subsystem>.<action>".
type EventKind string

const (
	// Catalog paging events
	KindPageFetchStart   EventKind = "page.fetch.start"
	KindPageFetchApplied EventKind = "page.fetch.applied"
	KindPageFetchStale   EventKind = "page.fetch.stale"
	KindPageFetchError   EventKind = "page.fetch.error"
	KindSearchDebounce   EventKind = "search.debounce"
	KindSearchCommit     EventKind = "search.commit"

	// Visibility and playback events
	KindActiveChange    EventKind = "visibility.change"
	KindPlaybackAcquire EventKind = "playback.acquire"
	KindPlaybackRelease EventKind = "playback.release"
	KindPlaybackEnded   EventKind = "playback.ended"
	KindPlaybackError   EventKind = "playback.error"

	// Watch completion events
	KindWatchArm      EventKind = "watch.arm"
	KindWatchComplete EventKind = "watch.complete"
	KindWatchRecord   EventKind = "watch.record"
	KindWatchRollback EventKind = "watch.rollback"
	KindQuizInvite    EventKind = "quiz.invite"
	KindQuizAnswer    EventKind = "quiz.answer"

	// History store events
	KindHistoryError EventKind = "history.error"

	// UI events
	KindKeyPress   EventKind = "ui.key"
	KindViewRender EventKind = "ui.render"

	// System events
	KindStartup  EventKind = "sys.startup"
	KindShutdown EventKind = "sys.shutdown"
	KindError    EventKind = "sys.error"

	// Trace events
	KindMsgReceived EventKind = "trace.msg_received"
	KindMsgHandled  EventKind = "trace.msg_handled"
)

// Event is the universal observability record. Every field except Kind and
// Time is optional. Serialized as a single JSONL line.
type Event struct {
	Time      time.Time      `json:"t"`
	Level     Level          `json:"level,omitempty"`
	Kind      EventKind      `json:"kind"`
	Comp      string         `json:"comp,omitempty"`       // component: "feed", "playback", "api", "ui", "main"
	SessionID string         `json:"session_id,omitempty"` // random hex, same for entire app run
	Item      string         `json:"item,omitempty"`       // media id
	Page      int            `json:"page,omitempty"`
	Query     string         `json:"query,omitempty"` // search term
	Gen       uint64         `json:"gen,omitempty"`   // fetch generation
	Dur       time.Duration  `json:"-"`               // not serialized directly
	DurMs     float64        `json:"dur_ms,omitempty"` // computed from Dur at marshal time
	Count     int            `json:"count,omitempty"`
	Reward    int            `json:"reward,omitempty"`
	Err       string         `json:"err,omitempty"`
	Msg       string         `json:"msg,omitempty"`   // free text
	Extra     map[string]any `json:"extra,omitempty"` // escape hatch for unusual fields
}

// MarshalJSON implements json.Marshaler, converting Dur to DurMs.
func (e Event) MarshalJSON() ([]byte, error) {
	type Alias Event
	a := struct {
		Alias
	}{Alias: Alias(e)}
	if e.Dur > 0 {
		a.DurMs = float64(e.Dur) / float64(time.Millisecond)
	}
	return json.Marshal(a)
}
