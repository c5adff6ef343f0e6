// Package state shares the inspector's view of the object graph between the
// snapshot poller and the UI.
//
// # Architecture
//
//	Producer (poller):             Consumer (UI):
//	┌────────────────────┐         ┌──────────────────┐
//	│ manager.Snapshot() │         │                  │
//	│ manager.Stats()    │         │                  │
//	│ hub.Clients()      │         │                  │
//	│      ↓             │         │                  │
//	│ store.Update()     │────────→│ store.Snapshot() │
//	│      ↓             │ (mutex) │      ↓           │
//	│  repeat...         │         │  render          │
//	└────────────────────┘         └──────────────────┘
//
// The UI never takes the manager lock while rendering; it reads the last
// copy published here. Snapshot returns a fresh slice of views, so callers
// may reorder or edit it without affecting the store.
//
// Snapshot.Find looks a view up by bare id or by its IPY_MODEL_ wire form,
// which is how ids appear inside reference-valued properties.
package state
