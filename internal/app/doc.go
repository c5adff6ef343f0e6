// Package app is the composition root of the plotsync server.
//
// # Startup
//
//  1. Load configuration (config.Load) and install the shared logger
//  2. Create the widget.Manager stamped with the configured renderer module
//  3. Create the comm.Hub and install it as the manager's sink
//  4. Optionally register the demo scene (BuildDemo)
//  5. Serve the hub on <listen><path>
//  6. Either block until the context is cancelled, or run the inspector
//     until the user quits
//
// # Logging
//
// Without the inspector, logs go to stderr in slog text format. With it, the
// terminal belongs to bubbletea, so logs are appended to <log_dir>/plotsync.log
// instead and the inspector's log pane tails that file.
//
// # Data Flow
//
//	renderer ──ws──→ comm.Hub ──Apply──→ widget.Manager ──Send──→ comm.Hub ──ws──→ renderers
//	                                          │
//	                               poller (Snapshot, Stats)
//	                                          ↓
//	                                     state.Store ──→ ui inspector ──Update──→ manager
//
// The poller copies the object graph into a state.Store every 500ms so the
// inspector renders without holding the manager lock.
//
// # Shutdown
//
// On exit the hub sends a close frame to every renderer and the HTTP server
// is shut down with a five second grace period.
package app
