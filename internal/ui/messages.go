// Package ui provides the Bubble Tea TUI for zivo.
package ui

import (
	"time"

	"github.com/zivolabs/zivo/internal/api"
	"github.com/zivolabs/zivo/internal/feed"
)

// PageFetched is sent when a catalog page request finishes.
type PageFetched struct {
	Intent feed.FetchIntent
	Page   feed.Page
	Err    error
}

// SearchDebounceFired is sent when a search term's quiet period elapses.
// Gen identifies which edit the timer belongs to; stale timers are ignored.
type SearchDebounceFired struct {
	Gen int
}

// VisibilityResolveTick asks the tracker to promote a pending candidate.
type VisibilityResolveTick struct {
	At time.Time
}

// WatchTimerFired is sent when a static-media dwell timer expires.
type WatchTimerFired struct {
	Token feed.ArmToken
}

// PlaybackFrame drives the playback clock and the scroll animation.
type PlaybackFrame struct {
	At time.Time
}

// WatchRecorded is sent when the durable watch call finishes.
type WatchRecorded struct {
	ItemID   string
	Mutation *feed.WatchMutation
	Result   api.WatchResult
	Err      error
}

// HistoryLoaded carries the locally cached watched set at startup.
type HistoryLoaded struct {
	Watched map[string]bool
	Err     error
}

// QuizAnswered is sent when a quiz answer has been graded.
type QuizAnswered struct {
	Outcome api.QuizOutcome
	Err     error
}

// ThumbnailsWarmed reports a finished prefetch batch.
type ThumbnailsWarmed struct {
	Count int
}
