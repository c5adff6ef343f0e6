// Package ui is the terminal inspector for a running plotsync server,
// built on Bubble Tea.
//
// # Layout
//
//	┌ header: endpoint · renderers · objects · applied/rejected/ignored ┐
//	│ command bar                                                      │
//	├─ Objects (n) ─────────┬─ <Model> <id> ───────────────────────────┤
//	│ Scale LinearScale…    │ id      IPY_MODEL_…                       │
//	│ Mark  LinesModel  ×1  │ chain   Lines → Mark → Widget             │
//	│                       │ colors  ■■■ ["#1f77b4",…]                 │
//	├─ Logs ≥ INFO ─────────┴───────────────────────────────────────────┤
//	└ status line / patch prompt ───────────────────────────────────────┘
//
// The object list and state pane read a state.Snapshot published by the
// app poller. Local actions (patch, release) go straight to the
// widget.Manager and re-read it so the panes reflect the result at once.
//
// # Patching
//
// p opens a prompt for a JSON object that is applied with
// widget.Manager.Update, the same path as a programmatic local change, so
// connected renderers receive the resulting update frame. Per-key
// rejections are reported on the status line; the valid keys of the patch
// still apply.
//
// # Preferences
//
// The theme (T), the log pane (l) and its minimum level (L) persist through
// the prefs package.
package ui
