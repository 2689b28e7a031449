package history

import (
	"testing"
	"time"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestOpenCreatesSchema(t *testing.T) {
	st := openTest(t)

	var name string
	err := st.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='watches'").Scan(&name)
	if err != nil {
		t.Fatalf("watches table not created: %v", err)
	}
}

func TestRecordOncePerMediaAndUser(t *testing.T) {
	st := openTest(t)
	w := Watch{MediaID: "m1", UserID: "u1", MediaName: "surf reel", Reward: 5, WatchedAt: time.Now()}

	fresh, err := st.Record(w)
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if !fresh {
		t.Error("first record should be new")
	}

	fresh, err = st.Record(w)
	if err != nil {
		t.Fatalf("duplicate Record failed: %v", err)
	}
	if fresh {
		t.Error("duplicate record must be ignored")
	}

	// The same media for a different user is a distinct watch.
	fresh, err = st.Record(Watch{MediaID: "m1", UserID: "u2", WatchedAt: time.Now()})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if !fresh {
		t.Error("another user's watch of the same media should be new")
	}
}

func TestHasWatched(t *testing.T) {
	st := openTest(t)
	st.Record(Watch{MediaID: "m1", UserID: "u1", WatchedAt: time.Now()})

	got, err := st.HasWatched("u1", "m1")
	if err != nil {
		t.Fatalf("HasWatched failed: %v", err)
	}
	if !got {
		t.Error("expected HasWatched true for recorded watch")
	}

	got, _ = st.HasWatched("u1", "m2")
	if got {
		t.Error("expected HasWatched false for unknown media")
	}
	got, _ = st.HasWatched("u2", "m1")
	if got {
		t.Error("expected HasWatched false for another user")
	}
}

func TestWatchedSet(t *testing.T) {
	st := openTest(t)
	now := time.Now()
	st.Record(Watch{MediaID: "m1", UserID: "u1", WatchedAt: now})
	st.Record(Watch{MediaID: "m2", UserID: "u1", WatchedAt: now})
	st.Record(Watch{MediaID: "m3", UserID: "u2", WatchedAt: now})

	set, err := st.WatchedSet("u1")
	if err != nil {
		t.Fatalf("WatchedSet failed: %v", err)
	}
	if len(set) != 2 || !set["m1"] || !set["m2"] {
		t.Errorf("set = %v, want m1 and m2", set)
	}
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	st := openTest(t)
	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"m1", "m2", "m3"} {
		st.Record(Watch{MediaID: id, UserID: "u1", WatchedAt: base.Add(time.Duration(i) * time.Minute)})
	}

	got, err := st.Recent("u1", 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d watches, want 2", len(got))
	}
	if got[0].MediaID != "m3" || got[1].MediaID != "m2" {
		t.Errorf("order = %s, %s; want m3, m2", got[0].MediaID, got[1].MediaID)
	}
}

func TestUserStats(t *testing.T) {
	st := openTest(t)
	now := time.Now()
	st.Record(Watch{MediaID: "m1", UserID: "u1", Reward: 5, WatchedAt: now})
	st.Record(Watch{MediaID: "m2", UserID: "u1", Reward: 3, WatchedAt: now})
	st.Record(Watch{MediaID: "m1", UserID: "u1", Reward: 5, WatchedAt: now}) // ignored

	stats, err := st.UserStats("u1")
	if err != nil {
		t.Fatalf("UserStats failed: %v", err)
	}
	if stats.Watched != 2 || stats.Reward != 8 {
		t.Errorf("stats = %+v, want 2 watched, 8 reward", stats)
	}

	empty, _ := st.UserStats("nobody")
	if empty.Watched != 0 || empty.Reward != 0 {
		t.Errorf("empty stats = %+v", empty)
	}
}
