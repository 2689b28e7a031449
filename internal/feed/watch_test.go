package feed

import (
	"testing"
	"time"
)

func staticItem(id string) Item {
	return Item{ID: id, Name: id, Kind: MediaImage}
}

func videoItem(id string) Item {
	return Item{ID: id, Name: id, Kind: MediaVideo}
}

func TestActivateArmsByKind(t *testing.T) {
	tr := NewWatchTracker(10 * time.Second)

	tok, mode := tr.Activate(staticItem("img-1"))
	if mode != ArmTimer {
		t.Errorf("static item mode = %v, want ArmTimer", mode)
	}
	if tok.ItemID != "img-1" {
		t.Errorf("token item = %q, want img-1", tok.ItemID)
	}

	_, mode = tr.Activate(videoItem("vid-1"))
	if mode != ArmStream {
		t.Errorf("video item mode = %v, want ArmStream", mode)
	}
}

func TestTimerCompletesOnce(t *testing.T) {
	tr := NewWatchTracker(10 * time.Second)
	tok, _ := tr.Activate(staticItem("img-1"))

	c, ok := tr.TimerFired(tok)
	if !ok || c.ItemID != "img-1" {
		t.Fatalf("TimerFired = (%v, %v), want (img-1, true)", c, ok)
	}
	if tr.State("img-1") != WatchCompleted {
		t.Errorf("state = %v, want WatchCompleted", tr.State("img-1"))
	}

	// A duplicate fire of the same token must not complete again.
	if _, ok := tr.TimerFired(tok); ok {
		t.Error("second fire of the same token completed the item again")
	}
}

func TestScrollAwayCancelsDwell(t *testing.T) {
	tr := NewWatchTracker(10 * time.Second)
	tok, _ := tr.Activate(staticItem("img-1"))

	// User scrolls to the next row before the timer expires.
	tr.Activate(staticItem("img-2"))

	if _, ok := tr.TimerFired(tok); ok {
		t.Error("stale timer for the disarmed item must be rejected")
	}
	if tr.State("img-1") != WatchUnarmed {
		t.Errorf("img-1 state = %v, want WatchUnarmed", tr.State("img-1"))
	}
}

func TestDwellDoesNotAccumulateAcrossVisits(t *testing.T) {
	tr := NewWatchTracker(10 * time.Second)

	old, _ := tr.Activate(staticItem("img-1"))
	tr.Activate(staticItem("img-2"))

	// Returning to img-1 issues a fresh token; the first visit's timer
	// must not be able to complete the second visit.
	fresh, mode := tr.Activate(staticItem("img-1"))
	if mode != ArmTimer {
		t.Fatalf("re-activation mode = %v, want ArmTimer", mode)
	}
	if _, ok := tr.TimerFired(old); ok {
		t.Error("token from the first visit completed the second visit")
	}
	if c, ok := tr.TimerFired(fresh); !ok || c.ItemID != "img-1" {
		t.Errorf("fresh token TimerFired = (%v, %v), want (img-1, true)", c, ok)
	}
}

func TestReActivateWhileArmedKeepsTimer(t *testing.T) {
	tr := NewWatchTracker(10 * time.Second)
	tok, _ := tr.Activate(staticItem("img-1"))

	// A repeat visibility event for the same active row must not restart
	// the dwell clock.
	_, mode := tr.Activate(staticItem("img-1"))
	if mode != ArmNone {
		t.Errorf("repeat activation mode = %v, want ArmNone", mode)
	}
	if _, ok := tr.TimerFired(tok); !ok {
		t.Error("original timer was invalidated by a repeat activation")
	}
}

func TestStreamEndedCompletesFirstEndOnly(t *testing.T) {
	tr := NewWatchTracker(10 * time.Second)
	tr.Activate(videoItem("vid-1"))

	c, ok := tr.StreamEnded("vid-1")
	if !ok || c.ItemID != "vid-1" {
		t.Fatalf("StreamEnded = (%v, %v), want (vid-1, true)", c, ok)
	}

	// Looping playback emits further end signals; none may complete.
	if _, ok := tr.StreamEnded("vid-1"); ok {
		t.Error("second end-of-stream completed the item again")
	}
}

func TestStreamEndedIgnoresInactiveItem(t *testing.T) {
	tr := NewWatchTracker(10 * time.Second)
	tr.Activate(videoItem("vid-1"))
	tr.Activate(videoItem("vid-2"))

	if _, ok := tr.StreamEnded("vid-1"); ok {
		t.Error("end-of-stream for a disarmed item must be ignored")
	}
}

func TestServerWatchedShortCircuits(t *testing.T) {
	tr := NewWatchTracker(10 * time.Second)

	it := staticItem("img-1")
	it.HasWatched = true
	_, mode := tr.Activate(it)
	if mode != ArmNone {
		t.Errorf("already-watched activation mode = %v, want ArmNone", mode)
	}
	if tr.State("img-1") != WatchCompleted {
		t.Errorf("state = %v, want WatchCompleted", tr.State("img-1"))
	}
}

func TestCompletedItemNeverRearms(t *testing.T) {
	tr := NewWatchTracker(10 * time.Second)
	tok, _ := tr.Activate(staticItem("img-1"))
	tr.TimerFired(tok)

	tr.Activate(staticItem("img-2"))
	_, mode := tr.Activate(staticItem("img-1"))
	if mode != ArmNone {
		t.Errorf("completed item re-activation mode = %v, want ArmNone", mode)
	}
}

func TestDeactivateDisarms(t *testing.T) {
	tr := NewWatchTracker(10 * time.Second)
	tok, _ := tr.Activate(staticItem("img-1"))

	tr.Deactivate("img-1")
	if _, ok := tr.TimerFired(tok); ok {
		t.Error("timer for a deactivated item must be rejected")
	}
}

func TestArmedReportsCurrentItem(t *testing.T) {
	tr := NewWatchTracker(10 * time.Second)

	if id, ok := tr.Armed(); ok {
		t.Fatalf("Armed = (%q, true) on a fresh tracker, want none", id)
	}

	tr.Activate(staticItem("img-1"))
	id, ok := tr.Armed()
	if !ok || id != "img-1" {
		t.Fatalf("Armed = (%q, %v), want (img-1, true)", id, ok)
	}

	tr.Deactivate("img-1")
	if id, ok := tr.Armed(); ok {
		t.Fatalf("Armed = (%q, true) after deactivation, want none", id)
	}
}
