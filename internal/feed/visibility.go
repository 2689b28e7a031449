package feed

import (
	"time"

	"golang.org/x/time/rate"
)

// ViewportEntry names one row currently intersecting the viewport and how
// much of it is visible.
type ViewportEntry struct {
	Index int
	Ratio float64 // 0..1 intersection ratio
}

// VisibilityTracker computes the single active row from a stream of
// viewport events. A row becomes the candidate when it is the first entry
// (lowest index wins ties) whose ratio meets the threshold; it is promoted
// to active only after the candidate survives the dwell window, which
// suppresses flicker during fast flings.
//
// An empty entry set (overlay open, screen clearing) demotes to ActiveNone
// immediately; the dwell gate debounces scrolling, it does not delay
// releasing the playback resource.
type VisibilityTracker struct {
	threshold float64
	dwell     time.Duration
	limiter   *rate.Limiter

	active         int
	candidate      int
	candidateSince time.Time

	// Events arriving faster than the limiter allows are coalesced here
	// and applied at the next Resolve, so the latest state is never lost.
	deferred    []ViewportEntry
	deferredAt  time.Time
	hasDeferred bool
}

// NewVisibilityTracker creates a tracker with the given threshold (e.g.
// 0.5) and dwell (e.g. 100ms). Events beyond ~30/s are coalesced.
func NewVisibilityTracker(threshold float64, dwell time.Duration) *VisibilityTracker {
	return &VisibilityTracker{
		threshold: threshold,
		dwell:     dwell,
		limiter:   rate.NewLimiter(rate.Limit(30), 30),
		active:    ActiveNone,
		candidate: ActiveNone,
	}
}

// Active returns the confirmed active index, or ActiveNone.
func (t *VisibilityTracker) Active() int { return t.active }

// Observe consumes a viewport event. It returns the time at which the
// caller should invoke Resolve to let a pending candidate mature, and
// whether such a resolve is needed at all.
func (t *VisibilityTracker) Observe(entries []ViewportEntry, now time.Time) (resolveAt time.Time, pending bool) {
	if len(entries) > 0 && !t.limiter.AllowN(now, 1) {
		t.deferred = append(t.deferred[:0], entries...)
		t.deferredAt = now
		t.hasDeferred = true
		return now.Add(t.dwell), true
	}
	return t.observe(entries, now)
}

func (t *VisibilityTracker) observe(entries []ViewportEntry, now time.Time) (time.Time, bool) {
	cand := ActiveNone
	for _, e := range entries {
		if e.Ratio >= t.threshold && (cand == ActiveNone || e.Index < cand) {
			cand = e.Index
		}
	}

	if cand == ActiveNone {
		// Immediate demotion; no dwell on release.
		t.candidate = ActiveNone
		t.active = ActiveNone
		return time.Time{}, false
	}

	if cand != t.candidate {
		t.candidate = cand
		t.candidateSince = now
	}
	if t.candidate == t.active {
		return time.Time{}, false
	}
	return t.candidateSince.Add(t.dwell), true
}

// Pending reports whether a candidate is still waiting out its dwell, and
// when the caller should next call Resolve.
func (t *VisibilityTracker) Pending() (time.Time, bool) {
	if t.hasDeferred {
		return t.deferredAt.Add(t.dwell), true
	}
	if t.candidate != t.active && t.candidate != ActiveNone {
		return t.candidateSince.Add(t.dwell), true
	}
	return time.Time{}, false
}

// Resolve promotes the pending candidate if its dwell has elapsed. It
// returns the newly active index and true exactly when the active index
// changed.
func (t *VisibilityTracker) Resolve(now time.Time) (int, bool) {
	if t.hasDeferred {
		// Deferred events are applied with their arrival time so the
		// dwell clock measures real stability, not limiter latency.
		entries := t.deferred
		t.hasDeferred = false
		t.observe(entries, t.deferredAt)
	}
	if t.candidate == t.active {
		return t.active, false
	}
	if t.candidate == ActiveNone {
		t.active = ActiveNone
		return t.active, true
	}
	if now.Sub(t.candidateSince) < t.dwell {
		return t.active, false
	}
	t.active = t.candidate
	return t.active, true
}
