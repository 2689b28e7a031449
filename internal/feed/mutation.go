package feed

import "github.com/google/uuid"

// QuizQuestion is the question attached to a quiz invitation.
type QuizQuestion struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	OptionA  string `json:"option_a"`
	OptionB  string `json:"option_b"`
	OptionC  string `json:"option_c"`
	OptionD  string `json:"option_d"`
	Answer   string `json:"answer"`
}

// QuizInvitation is the downstream payload a successful watch record may
// carry. The feed core only raises it; the quiz collaborator owns what
// happens next.
type QuizInvitation struct {
	MediaID  string
	Reward   int
	Question QuizQuestion
}

// WatchMutation is one optimistic watch-record in flight: the item, the
// idempotency key sent with the durable call (stable across retries of
// this mutation, fresh for the next one), and the captured inverse patches
// needed for rollback.
type WatchMutation struct {
	ItemID         string
	IdempotencyKey string
	prev           map[QueryKey]ItemPatch
}

// MutationCoordinator applies the optimistic "watched" patch, tracks the
// in-flight durable call, and rolls the store back if the call fails. It
// refuses to begin a second mutation for an item already watched
// client-side or already in flight, even if the watch
// tracker already fired for it.
type MutationCoordinator struct {
	store    *PageStore
	inflight map[string]bool
}

// NewMutationCoordinator creates a coordinator over store.
func NewMutationCoordinator(store *PageStore) *MutationCoordinator {
	return &MutationCoordinator{
		store:    store,
		inflight: make(map[string]bool),
	}
}

// Begin starts a watch mutation for item: it captures the pre-mutation
// state and optimistically sets has_watched=true under every query key
// holding the item. Returns ok=false (and does nothing) when the item is
// already watched client-side or a mutation for it is already in flight.
// The caller then issues the durable call and reports back via Succeed or
// Fail.
func (c *MutationCoordinator) Begin(item Item) (*WatchMutation, bool) {
	if c.inflight[item.ID] {
		return nil, false
	}
	if cur, ok := c.store.GetAny(item.ID); ok && cur.HasWatched {
		return nil, false
	}
	if item.HasWatched {
		return nil, false
	}

	watched := true
	prev := c.store.PatchEverywhere(item.ID, ItemPatch{HasWatched: &watched})
	c.inflight[item.ID] = true
	return &WatchMutation{
		ItemID:         item.ID,
		IdempotencyKey: uuid.NewString(),
		prev:           prev,
	}, true
}

// Succeed confirms the durable call. The optimistic patch stands; the
// snapshot is discarded.
func (c *MutationCoordinator) Succeed(m *WatchMutation) {
	delete(c.inflight, m.ItemID)
	m.prev = nil
}

// Fail reverts the optimistic patch to the captured pre-mutation values.
// The item is again eligible for a fresh mutation (with a new idempotency
// key) on its next completion.
func (c *MutationCoordinator) Fail(m *WatchMutation) {
	c.store.Rollback(m.ItemID, m.prev)
	delete(c.inflight, m.ItemID)
	m.prev = nil
}

// InFlight reports whether a durable call for the item is outstanding.
func (c *MutationCoordinator) InFlight(itemID string) bool {
	return c.inflight[itemID]
}
