// Package logtail reads the tail of the plotsync server log for the
// inspector's log pane.
//
// Tail scans the file once with a ring buffer of maxLines entries, so memory
// stays bounded by the window and not by the file size. Lines are expected
// in log/slog text format; ParseLevel pulls the level=... attribute out of
// each line so the pane can hide entries below a threshold. Lines without a
// recognizable level count as info.
//
//	entries, err := logtail.Tail(cfg.LogPath(), 200, slog.LevelWarn)
//
// A missing log file is not an error: the server may not have written
// anything yet.
package logtail
