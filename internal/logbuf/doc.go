// Package logbuf holds the activity log shown in the log panel.
//
// # Overview
//
// Buffer is a fixed-size ring of Entry values. It keeps the most recent
// entries (100 by default) and drops the oldest one when a new entry arrives
// on a full buffer. The ring layout is the same one logtail used for reading
// the end of a file: a slice of capacity entries, a write index that wraps,
// and a count that saturates at capacity.
//
// # Notification
//
// Every Append and Clear notifies all subscribers synchronously, in
// registration order, with a private copy of the full sequence:
//
//	buf := logbuf.New(logbuf.DefaultCapacity)
//	stop := buf.Subscribe(func(entries []logbuf.Entry) {
//		render(entries)
//	})
//	defer stop()
//
//	buf.Append("Fetching printers...", logbuf.LevelInfo)
//
// Notifications are serialized, so subscribers see appends in exactly the
// order the calls were made even when several goroutines log at once. A
// subscriber must not call Append or Clear from inside its callback.
//
// Snapshot lets a component that subscribes late (for example after a
// locale change rebuilt the view) recover the present state without waiting
// for the next append.
package logbuf
