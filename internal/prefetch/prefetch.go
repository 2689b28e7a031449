// Package prefetch warms media thumbnails ahead of the viewport so rows
// render with art the moment they scroll in.
package prefetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zivolabs/zivo/internal/feed"
)

// maxWarmBytes caps how much of each thumbnail is read. Enough to prime
// the CDN and OS caches without pulling full-size originals.
const maxWarmBytes = 1 << 20

// Warmer fetches thumbnails with bounded concurrency, at most once per URL
// for the lifetime of the warmer.
type Warmer struct {
	client  *http.Client
	workers int

	mu     sync.Mutex
	warmed map[string]bool
}

// NewWarmer creates a warmer running at most workers concurrent fetches.
func NewWarmer(workers int) *Warmer {
	if workers <= 0 {
		workers = 4
	}
	return &Warmer{
		client:  &http.Client{Timeout: 10 * time.Second},
		workers: workers,
		warmed:  make(map[string]bool),
	}
}

// Warm fetches the thumbnails of items that have not been warmed yet and
// returns how many fetches succeeded. Individual failures never fail the
// batch; a failed URL stays cold and is retried on the next call.
func (w *Warmer) Warm(ctx context.Context, items []feed.Item) int {
	var targets []string
	w.mu.Lock()
	for _, it := range items {
		if it.Thumbnail == "" || w.warmed[it.Thumbnail] {
			continue
		}
		targets = append(targets, it.Thumbnail)
		// Claim now so a concurrent Warm does not double-fetch.
		w.warmed[it.Thumbnail] = true
	}
	w.mu.Unlock()

	if len(targets) == 0 {
		return 0
	}

	var g errgroup.Group
	g.SetLimit(w.workers)

	var done sync.Map
	for _, url := range targets {
		g.Go(func() error {
			if ctx.Err() != nil {
				w.release(url)
				return nil
			}
			if err := w.fetch(ctx, url); err != nil {
				w.release(url)
				return nil // never fail the group - cold URLs retry later
			}
			done.Store(url, true)
			return nil
		})
	}
	g.Wait()

	count := 0
	done.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

// Warmed reports whether the URL has been successfully fetched.
func (w *Warmer) Warmed(url string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.warmed[url]
}

func (w *Warmer) release(url string) {
	w.mu.Lock()
	delete(w.warmed, url)
	w.mu.Unlock()
}

func (w *Warmer) fetch(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := w.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("prefetch: %s returned status %d", url, resp.StatusCode)
	}
	_, err = io.Copy(io.Discard, io.LimitReader(resp.Body, maxWarmBytes))
	return err
}
