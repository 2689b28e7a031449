package prefetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/zivolabs/zivo/internal/feed"
)

func TestWarmFetchesEachThumbnailOnce(t *testing.T) {
	var mu sync.Mutex
	hits := make(map[string]int)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits[r.URL.Path]++
		mu.Unlock()
		w.Write([]byte("jpeg bytes"))
	}))
	defer srv.Close()

	items := []feed.Item{
		{ID: "m1", Thumbnail: srv.URL + "/m1.jpg"},
		{ID: "m2", Thumbnail: srv.URL + "/m2.jpg"},
		{ID: "m3"}, // no thumbnail
	}

	w := NewWarmer(2)
	if got := w.Warm(context.Background(), items); got != 2 {
		t.Errorf("first Warm = %d, want 2", got)
	}
	if got := w.Warm(context.Background(), items); got != 0 {
		t.Errorf("second Warm = %d, want 0 (already warmed)", got)
	}

	mu.Lock()
	defer mu.Unlock()
	for path, n := range hits {
		if n != 1 {
			t.Errorf("%s fetched %d times, want 1", path, n)
		}
	}
	if len(hits) != 2 {
		t.Errorf("fetched %d urls, want 2", len(hits))
	}
}

func TestWarmRetriesFailedURL(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		first := calls == 1
		mu.Unlock()
		if first {
			http.Error(w, "cold cache", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("jpeg bytes"))
	}))
	defer srv.Close()

	items := []feed.Item{{ID: "m1", Thumbnail: srv.URL + "/m1.jpg"}}

	w := NewWarmer(1)
	if got := w.Warm(context.Background(), items); got != 0 {
		t.Errorf("failed Warm = %d, want 0", got)
	}
	if w.Warmed(items[0].Thumbnail) {
		t.Error("failed URL must stay cold")
	}
	if got := w.Warm(context.Background(), items); got != 1 {
		t.Errorf("retry Warm = %d, want 1", got)
	}
	if !w.Warmed(items[0].Thumbnail) {
		t.Error("retried URL should be warm")
	}
}

func TestWarmRespectsCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no fetch should happen with a cancelled context")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := NewWarmer(2)
	items := []feed.Item{{ID: "m1", Thumbnail: srv.URL + "/m1.jpg"}}
	if got := w.Warm(ctx, items); got != 0 {
		t.Errorf("Warm = %d, want 0", got)
	}
}
