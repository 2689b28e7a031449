package feed

import "errors"

// ErrStale marks a fetch result that arrived for a superseded query
// generation. Stale results are discarded silently, never surfaced.
var ErrStale = errors.New("stale fetch result")

// FetchIntent describes a page fetch the caller should execute. Intents
// are tagged with the generation they were issued under; CompleteFetch
// compares that against the current generation and drops late arrivals
// for superseded queries or refreshes.
type FetchIntent struct {
	Key  QueryKey
	Page int
	Gen  uint64
}

// FetchOutcome classifies what CompleteFetch did with a result.
type FetchOutcome int

const (
	FetchApplied FetchOutcome = iota // page appended to the store
	FetchStale                       // superseded generation, dropped
	FetchFailed                      // error recorded, retryable
)

// Paginator orchestrates forward-only cursor fetching for the feed. It
// issues at most one in-flight fetch per generation, deduplicates repeat
// LoadNext calls for the same cursor, and owns the search-debounce
// bookkeeping.
//
// Like PageStore, it is event-loop state: not safe for concurrent use.
type Paginator struct {
	store *PageStore

	key QueryKey
	gen uint64 // bumped by query changes and refreshes

	inflight     bool
	inflightPage int
	err          error

	// Search debounce: each keystroke bumps debounceGen; only the commit
	// carrying the latest generation takes effect.
	pendingTerm string
	debounceGen int
}

// NewPaginator creates a paginator over store, starting on the empty
// (unfiltered) query key.
func NewPaginator(store *PageStore) *Paginator {
	return &Paginator{store: store}
}

// Key returns the active query key.
func (p *Paginator) Key() QueryKey { return p.key }

// Loading reports whether a fetch is in flight for the active key.
func (p *Paginator) Loading() bool { return p.inflight }

// LoadingNext reports whether the in-flight fetch is a load-more (any page
// past the first).
func (p *Paginator) LoadingNext() bool { return p.inflight && p.inflightPage > 1 }

// Err returns the last fetch error for the active key, cleared by the next
// applied fetch.
func (p *Paginator) Err() error { return p.err }

// BeginLoadNext returns an intent for the page following the last-known
// cursor. It returns ok=false when a fetch is already in flight, when no
// pages are cached yet (use BeginRefresh for the first page), or when the
// cursor reports no next page.
func (p *Paginator) BeginLoadNext() (FetchIntent, bool) {
	if p.inflight {
		return FetchIntent{}, false
	}
	cur, ok := p.store.Cursor(p.key)
	if !ok || !cur.HasNext() {
		return FetchIntent{}, false
	}
	p.inflight = true
	p.inflightPage = cur.Next()
	return FetchIntent{Key: p.key, Page: p.inflightPage, Gen: p.gen}, true
}

// BeginRefresh discards cached pages for the active key and returns an
// intent for page 1. Any in-flight fetch from before the refresh is
// invalidated (its result will arrive with a stale generation).
func (p *Paginator) BeginRefresh() FetchIntent {
	p.store.Invalidate(p.key)
	p.gen++
	p.inflight = true
	p.inflightPage = 1
	p.err = nil
	return FetchIntent{Key: p.key, Page: 1, Gen: p.gen}
}

// SetSearch records a keystroke in the search box and returns the debounce
// generation the caller should schedule a commit for. A later keystroke
// supersedes the returned generation.
func (p *Paginator) SetSearch(term string) int {
	p.pendingTerm = term
	p.debounceGen++
	return p.debounceGen
}

// CommitSearch applies the debounced search if gen is still current. On
// commit it switches the active key, invalidates the previous key's pages
// and in-flight fetches, and returns an intent for page 1 of the new key.
// Committing the already-active term only refreshes nothing and returns
// ok=false.
func (p *Paginator) CommitSearch(gen int) (FetchIntent, bool) {
	if gen != p.debounceGen {
		return FetchIntent{}, false
	}
	newKey := QueryKey(p.pendingTerm)
	if newKey == p.key {
		return FetchIntent{}, false
	}
	p.store.Invalidate(p.key)
	p.key = newKey
	p.gen++ // orphans any in-flight fetch for the old key
	p.inflight = true
	p.inflightPage = 1
	p.err = nil
	return FetchIntent{Key: p.key, Page: 1, Gen: p.gen}, true
}

// CompleteFetch feeds a fetch result back into the paginator. Results
// tagged with a stale generation are dropped without touching the store or
// the error state. Errors are recorded and retryable via BeginLoadNext /
// BeginRefresh.
func (p *Paginator) CompleteFetch(in FetchIntent, page Page, err error) FetchOutcome {
	if in.Gen != p.gen {
		return FetchStale
	}
	p.inflight = false
	p.inflightPage = 0
	if err != nil {
		p.err = err
		return FetchFailed
	}
	p.err = nil
	p.store.Append(in.Key, page)
	return FetchApplied
}
