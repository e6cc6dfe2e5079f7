// Package state holds the two stores the sharing engine reconciles.
//
// # Overview
//
// Store is the device directory: the printer inventory plus the set of
// printer ids the daemon reports as shared. Overlay records toggles that are
// still waiting for the daemon. The view is always derived from both, so a
// refresh that knows nothing about an in-flight toggle cannot hide it.
//
// # Architecture
//
//	Refresh (engine):                Toggle (engine):
//	┌──────────────────┐            ┌──────────────────────┐
//	│ seq := Begin()   │            │ overlay.Begin(id,op) │
//	│ fetch inventory  │            │ daemon share/unshare │
//	│ fetch membership │            │ store.SetShared()    │
//	│ Commit(seq, ...) │            │ overlay.Clear(id)    │
//	│  or Fail(seq)    │            └──────────────────────┘
//	└──────────────────┘
//	           │                               │
//	           └──────────→ view.Project ←─────┘
//
// # Update Semantics
//
// Commits are atomic and ordered by sequence number. Every refresh takes a
// number from Begin; Commit discards a result whose number is lower than the
// one already committed, so a slow stale fetch never overwrites fresher
// data:
//
//	a := store.Begin()           // 1
//	b := store.Begin()           // 2
//	store.Commit(b, devsB, idsB) // installed
//	store.Commit(a, devsA, idsA) // false, ignored
//
// Fail keeps the previous directory and only records the error, exactly like
// the poller store this package grew out of. Available stays false until the
// first successful commit, which is how the UI tells "never loaded" apart
// from "loaded, then failed".
//
// A confirmed toggle (SetShared) that lands while refreshes are in flight is
// remembered and re-applied when one of those refreshes commits, because its
// membership fetch may predate the toggle.
//
// # Defensive Copying
//
// Snapshot clones the device slice, the shared set and the error. Overlay
// hands out copies of its map. Callers can hold on to what they receive.
//
// # Testing Considerations
//
// Both Store and Overlay are ready to use as zero values.
package state
