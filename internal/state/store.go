package state

import (
	"slices"
	"sync"
	"time"

	"github.com/five82/plotsync/internal/widget"
)

// Snapshot represents the latest data available to the inspector.
type Snapshot struct {
	Objects     []widget.View
	Stats       widget.Stats
	Clients     int
	LastUpdated time.Time
}

// Find returns the view with the given wire or bare id.
func (s Snapshot) Find(id string) (widget.View, bool) {
	for _, v := range s.Objects {
		if v.ID.String() == id || v.ID.Wire() == id {
			return v, true
		}
	}
	return widget.View{}, false
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored snapshot.
func (s *Store) Update(objects []widget.View, stats widget.Stats, clients int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = Snapshot{
		Objects:     slices.Clone(objects),
		Stats:       stats,
		Clients:     clients,
		LastUpdated: time.Now(),
	}
}

// Snapshot returns a copy of the current snapshot. Views are shared
// read-only; their state maps were already copied by the manager.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Objects = slices.Clone(s.snapshot.Objects)
	return snap
}
