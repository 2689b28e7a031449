// Package feed implements the viewport-driven feed engine: page storage,
// cursor pagination, visibility tracking, watch-completion detection, and
// optimistic mutation of watch state.
//
// All types in this package are synchronous state machines. They hold no
// goroutines and set no timers themselves; callers (the Bubble Tea update
// loop) schedule timers and network calls from the intents these types
// return, and feed the results back in. That keeps every transition on the
// UI event loop and makes the ordering invariants testable without sleeps.
package feed

// MediaKind distinguishes static media from time-based media.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// TimeBased reports whether the media plays over time and therefore needs a
// playback resource. Anything unrecognized renders as a static image.
func (k MediaKind) TimeBased() bool {
	return k == MediaVideo
}

// Tag is a catalog tag attached to an item.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Item is one unit of media plus its metadata, shown as one feed row.
type Item struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Kind             MediaKind `json:"media_type"`
	URL              string    `json:"url"`
	Thumbnail        string    `json:"thumbnail"`
	Description      string    `json:"description"`
	Reward           int       `json:"reward"` // minor currency units ("zivos")
	Tags             []Tag     `json:"tags"`
	UploaderID       string    `json:"uploader_id"`
	UploaderUsername string    `json:"uploader_username"`
	ViewCount        int       `json:"view_count"`
	HasWatched       bool      `json:"has_watched"`
}

// Cursor marks fetch progress through the server-side collection.
type Cursor struct {
	Current int `json:"current_page"`
	Last    int `json:"last_page"`
}

// HasNext reports whether another page exists beyond Current.
func (c Cursor) HasNext() bool {
	return c.Current < c.Last
}

// Next returns the page number following Current.
func (c Cursor) Next() int {
	return c.Current + 1
}

// Page is one fetched page of items plus its cursor descriptor.
type Page struct {
	Items  []Item
	Cursor Cursor
}

// QueryKey identifies a cached result set: the normalized search term.
// The empty key is the unfiltered catalog.
type QueryKey string

// ActiveNone is the ActiveIndex value meaning no row owns the playback
// resource (empty viewport, overlay open, or screen closing).
const ActiveNone = -1
