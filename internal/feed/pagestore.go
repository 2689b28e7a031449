package feed

// PageStore holds fetched pages keyed by query. It is the single source of
// truth for item state on the feed screen: items are mutated only through
// Append and PatchItem, and FlatList hands out copies so callers cannot
// invalidate rollback snapshots by writing through returned values.
//
// Not safe for concurrent use; the store lives on the UI event loop.
type PageStore struct {
	pages map[QueryKey][]Page
}

// NewPageStore creates an empty store.
func NewPageStore() *PageStore {
	return &PageStore{pages: make(map[QueryKey][]Page)}
}

// Append adds a fetched page under key. Re-appending a page whose cursor
// position is already stored is a no-op; Append reports whether the page
// was actually added.
func (s *PageStore) Append(key QueryKey, p Page) bool {
	for _, existing := range s.pages[key] {
		if existing.Cursor.Current == p.Cursor.Current {
			return false
		}
	}
	// Own the item slice so later fetches reusing a buffer can't alias it.
	cp := p
	cp.Items = make([]Item, len(p.Items))
	copy(cp.Items, p.Items)
	s.pages[key] = append(s.pages[key], cp)
	return true
}

// Cursor returns the cursor of the most recently appended page for key.
func (s *PageStore) Cursor(key QueryKey) (Cursor, bool) {
	pages := s.pages[key]
	if len(pages) == 0 {
		return Cursor{}, false
	}
	return pages[len(pages)-1].Cursor, true
}

// ItemPatch is a partial update of the mutable fields of an Item. Nil
// fields are left untouched. PatchItem returns the previous values of the
// fields it changed in the same shape, so a rollback is just a second
// patch.
type ItemPatch struct {
	HasWatched *bool
	ViewCount  *int
}

// isZero reports whether the patch changes nothing.
func (p ItemPatch) isZero() bool {
	return p.HasWatched == nil && p.ViewCount == nil
}

// PatchItem applies patch to the item with the given id under key. Items
// are matched by id, never by position, and the patch never reorders or
// duplicates entries. Returns the inverse patch (previous values of the
// patched fields) and whether the item was found.
func (s *PageStore) PatchItem(key QueryKey, id string, patch ItemPatch) (ItemPatch, bool) {
	for pi := range s.pages[key] {
		items := s.pages[key][pi].Items
		for ii := range items {
			if items[ii].ID != id {
				continue
			}
			var prev ItemPatch
			if patch.HasWatched != nil {
				old := items[ii].HasWatched
				prev.HasWatched = &old
				items[ii].HasWatched = *patch.HasWatched
			}
			if patch.ViewCount != nil {
				old := items[ii].ViewCount
				prev.ViewCount = &old
				items[ii].ViewCount = *patch.ViewCount
			}
			return prev, true
		}
	}
	return ItemPatch{}, false
}

// PatchEverywhere applies patch to the item under every query key that
// currently holds it, returning the inverse patch per key for rollback.
func (s *PageStore) PatchEverywhere(id string, patch ItemPatch) map[QueryKey]ItemPatch {
	prev := make(map[QueryKey]ItemPatch)
	for key := range s.pages {
		if p, ok := s.PatchItem(key, id, patch); ok {
			prev[key] = p
		}
	}
	return prev
}

// Rollback re-applies previously captured inverse patches.
func (s *PageStore) Rollback(id string, prev map[QueryKey]ItemPatch) {
	for key, patch := range prev {
		if !patch.isZero() {
			s.PatchItem(key, id, patch)
		}
	}
}

// FlatList returns the logical concatenation of all pages for key in fetch
// order. The returned slice and its items are copies.
func (s *PageStore) FlatList(key QueryKey) []Item {
	var n int
	for _, p := range s.pages[key] {
		n += len(p.Items)
	}
	if n == 0 {
		return nil
	}
	out := make([]Item, 0, n)
	for _, p := range s.pages[key] {
		out = append(out, p.Items...)
	}
	return out
}

// Get returns a copy of the item with the given id under key.
func (s *PageStore) Get(key QueryKey, id string) (Item, bool) {
	for _, p := range s.pages[key] {
		for _, it := range p.Items {
			if it.ID == id {
				return it, true
			}
		}
	}
	return Item{}, false
}

// GetAny returns a copy of the item with the given id under any query key.
func (s *PageStore) GetAny(id string) (Item, bool) {
	for key := range s.pages {
		if it, ok := s.Get(key, id); ok {
			return it, true
		}
	}
	return Item{}, false
}

// Len returns the total item count under key.
func (s *PageStore) Len(key QueryKey) int {
	var n int
	for _, p := range s.pages[key] {
		n += len(p.Items)
	}
	return n
}

// Invalidate drops all cached pages for key.
func (s *PageStore) Invalidate(key QueryKey) {
	delete(s.pages, key)
}
