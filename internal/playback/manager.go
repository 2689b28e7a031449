package playback

import "time"

// Manager holds the lane's single resource slot. SetActive always releases
// the incumbent before constructing the replacement, so two surfaces never
// coexist, not even transiently, and not even when construction fails.
type Manager struct {
	factory Factory
	active  Resource
}

// NewManager creates a manager that builds resources with factory.
func NewManager(factory Factory) *Manager {
	return &Manager{factory: factory}
}

// SetActive swaps the slot to a resource for src. On a factory error the
// slot is left empty and the error is returned; the caller degrades to a
// placeholder and the rest of the feed keeps working.
func (m *Manager) SetActive(src Source, lane Lane) error {
	m.Release()
	r, err := m.factory(src, LaneConfig(lane))
	if err != nil {
		return err
	}
	m.active = r
	return nil
}

// Release empties the slot. Safe to call when already empty.
func (m *Manager) Release() {
	if m.active != nil {
		m.active.Release()
		m.active = nil
	}
}

// ActiveID returns the item the slot is playing, if any.
func (m *Manager) ActiveID() (string, bool) {
	if m.active == nil {
		return "", false
	}
	return m.active.ItemID(), true
}

// Tick advances the slot's resource and returns its events.
func (m *Manager) Tick(now time.Time) []Event {
	if m.active == nil {
		return nil
	}
	return m.active.Tick(now)
}

// Position returns the playhead of the slot's resource.
func (m *Manager) Position(now time.Time) (time.Duration, bool) {
	if m.active == nil {
		return 0, false
	}
	return m.active.Position(now), true
}
