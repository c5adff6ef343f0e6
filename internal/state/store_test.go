package state

import (
	"testing"
	"time"

	"github.com/five82/plotsync/internal/registry"
	"github.com/five82/plotsync/internal/widget"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	a, b := registry.NewID(), registry.NewID()
	views := []widget.View{{ID: a, Model: "LinesModel"}, {ID: b, Model: "BarsModel"}}

	before := time.Now()
	s.Update(views, widget.Stats{Applied: 3}, 2)

	snap := s.Snapshot()
	if len(snap.Objects) != 2 || snap.Objects[0].Model != "LinesModel" {
		t.Fatalf("snapshot objects = %#v, want 2 views", snap.Objects)
	}
	if snap.Stats.Applied != 3 || snap.Clients != 2 {
		t.Fatalf("stats/clients = %+v/%d", snap.Stats, snap.Clients)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Objects[0].Model = "changed"
	views[1].Model = "changed"
	snap2 := s.Snapshot()
	if snap2.Objects[0].Model != "LinesModel" || snap2.Objects[1].Model != "BarsModel" {
		t.Fatalf("Snapshot should clone views; got %q %q", snap2.Objects[0].Model, snap2.Objects[1].Model)
	}
}

func TestSnapshot_Find(t *testing.T) {
	var s Store
	id := registry.NewID()
	s.Update([]widget.View{{ID: id, Model: "HistModel"}}, widget.Stats{}, 0)
	snap := s.Snapshot()

	for _, key := range []string{id.String(), id.Wire()} {
		v, ok := snap.Find(key)
		if !ok || v.Model != "HistModel" {
			t.Fatalf("Find(%q) = %v, %v", key, v, ok)
		}
	}
	if _, ok := snap.Find("missing"); ok {
		t.Fatalf("Find(missing) reported a view")
	}
}
