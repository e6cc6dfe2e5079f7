// Package sharing is the reconciliation engine behind the printer list.
//
// # Overview
//
// Engine owns two stores, the device directory (state.Store) and the
// pending overlay (state.Overlay), and is their only writer. Three
// independent triggers drive it:
//
//   - Refresh: fetch inventory and membership concurrently, commit both or
//     neither, discard results that lost a race against a newer refresh
//   - Toggle: optimistic share/unshare of one printer with rollback on failure
//   - SetLocale: relabel everything without touching either store
//
// After each state change the engine projects a View (view.Project over a
// consistent read of both stores plus the active locale) and hands it to
// every SubscribeDirectory callback. Because the overlay is layered over the
// directory on every projection, a refresh that commits while a toggle is in
// flight still shows that printer as busy.
//
// # Toggle State Machine
//
//	Idle   ── Toggle ──> PendingShare   ── ok ──> Shared
//	                                    └─ err ─> Idle
//	Shared ── Toggle ──> PendingUnshare ── ok ──> Idle
//	                                    └─ err ─> Shared
//
// A second Toggle while one is pending for the same printer fails with
// ErrOperationInProgress; nothing is queued. Starting to share an offline
// printer fails with ErrDeviceOffline; stopping an offline shared printer is
// always allowed.
//
// # Errors and the Activity Log
//
// Every failure is returned to the caller and also appended to the activity
// log (logbuf.Buffer) as an error or warning entry, translated for the active
// locale. None of them leaves a pending entry behind.
//
// # Lifecycle
//
// New registers the engine as a locale listener; Close unregisters it and
// waits for any background language notification to the daemon. Every
// Subscribe* method returns its own disposal function, and views being torn
// down are expected to call it.
package sharing
