package feed

import "time"

// WatchState is the per-item completion state.
type WatchState int

const (
	WatchUnarmed WatchState = iota
	WatchArmed
	WatchCompleted
)

// ArmMode tells the caller what work, if any, an activation requires.
type ArmMode int

const (
	// ArmNone: no timer and no listener. Either the item is already
	// completed (or server-watched) or there is nothing to do.
	ArmNone ArmMode = iota
	// ArmTimer: static media. Schedule the dwell timer carried in the
	// token and call TimerFired when it expires.
	ArmTimer
	// ArmStream: time-based media. Route the playback resource's first
	// end-of-stream signal to StreamEnded.
	ArmStream
)

// ArmToken identifies one arming of one item. Timers scheduled for a token
// that has since been disarmed are rejected by TimerFired, so a late tick
// from a cancelled dwell can never complete the wrong visit.
type ArmToken struct {
	ItemID string
	seq    uint64
}

// Completion is raised at most once per item per tracker lifetime.
type Completion struct {
	ItemID string
}

// WatchTracker runs the completion policy for the feed: a fixed dwell
// timer for static media, first end-of-stream for time-based media. At
// most one item is armed at a time (the active row); activating a new item
// implicitly disarms the previous one.
type WatchTracker struct {
	dwell  time.Duration
	states map[string]WatchState
	armed  string // item id currently armed, "" if none
	seq    uint64
}

// NewWatchTracker creates a tracker using dwell as the static-media
// completion window.
func NewWatchTracker(dwell time.Duration) *WatchTracker {
	return &WatchTracker{
		dwell:  dwell,
		states: make(map[string]WatchState),
	}
}

// Dwell returns the static-media completion window.
func (t *WatchTracker) Dwell() time.Duration { return t.dwell }

// State returns the tracker's view of an item.
func (t *WatchTracker) State(itemID string) WatchState {
	return t.states[itemID]
}

// Activate arms the completion policy for the newly active item. If the
// item is already completed here, or already watched per the server, it is
// short-circuited to WatchCompleted with zero timer or listener work. The
// previously armed item, if any, is disarmed first; its dwell does not
// accumulate across visits.
func (t *WatchTracker) Activate(item Item) (ArmToken, ArmMode) {
	if t.armed != "" && t.armed != item.ID {
		t.disarm(t.armed)
	}
	if item.HasWatched || t.states[item.ID] == WatchCompleted {
		t.states[item.ID] = WatchCompleted
		return ArmToken{}, ArmNone
	}
	if t.states[item.ID] == WatchArmed && t.armed == item.ID {
		// Already armed for this item; keep the existing timer running.
		return ArmToken{}, ArmNone
	}
	t.states[item.ID] = WatchArmed
	t.armed = item.ID
	t.seq++
	tok := ArmToken{ItemID: item.ID, seq: t.seq}
	if item.Kind.TimeBased() {
		return tok, ArmStream
	}
	return tok, ArmTimer
}

// Armed returns the id of the currently armed item, if any.
func (t *WatchTracker) Armed() (string, bool) {
	return t.armed, t.armed != ""
}

// Deactivate disarms the item if it is currently armed. A later
// re-activation restarts the policy from scratch.
func (t *WatchTracker) Deactivate(itemID string) {
	if t.armed == itemID {
		t.disarm(itemID)
	}
}

func (t *WatchTracker) disarm(itemID string) {
	if t.states[itemID] == WatchArmed {
		t.states[itemID] = WatchUnarmed
	}
	t.armed = ""
	t.seq++ // invalidates outstanding tokens
}

// TimerFired completes a static-media item when its dwell timer expires.
// Tokens from disarmed or superseded armings are ignored.
func (t *WatchTracker) TimerFired(tok ArmToken) (Completion, bool) {
	if tok.seq != t.seq || t.armed != tok.ItemID {
		return Completion{}, false
	}
	return t.complete(tok.ItemID)
}

// StreamEnded completes a time-based item on its first end-of-stream
// signal. Signals for items that are not the armed item (already
// completed, or no longer active) are ignored.
func (t *WatchTracker) StreamEnded(itemID string) (Completion, bool) {
	if t.armed != itemID {
		return Completion{}, false
	}
	return t.complete(itemID)
}

func (t *WatchTracker) complete(itemID string) (Completion, bool) {
	if t.states[itemID] == WatchCompleted {
		return Completion{}, false
	}
	t.states[itemID] = WatchCompleted
	t.armed = ""
	t.seq++
	return Completion{ItemID: itemID}, true
}
