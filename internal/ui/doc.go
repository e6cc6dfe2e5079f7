// Package ui provides the Bubble Tea terminal interface for airshare.
//
// # Layout
//
//	airshare  Printers  ● 2  Language: en       header
//
//	› HP LaserJet     ID p1   online    [share]  printer rows
//	  Canon           ID p2   offline   [share]
//
//	Activity log                                 log panel (viewport)
//	╭────────────────────────────────────────╮
//	│12:00:01 Found 2 printer(s), 0 shared   │
//	╰────────────────────────────────────────╯
//	enter/s Share  r Refresh  L Language ...      command bar (bubbles/help)
//
// # Data Flow
//
// The model never reads engine state while rendering. Run subscribes to the
// engine's directory and log streams and forwards each update with
// Program.Send; Update caches the latest View and log entries. Only labels
// come from the engine's translator at render time.
//
// Refresh, toggle, clear and language changes run as tea.Cmd functions off
// the event loop, because the engine notifies subscribers synchronously and
// those subscribers block on Program.Send. Errors from these commands are
// already in the activity log, so the model ignores them.
//
// # Share Control
//
// Each row shows the label and variant computed by view.Project. The toggle
// key does nothing on a disabled row (busy, or offline and not shared),
// mirroring a disabled button.
//
// # Preferences
//
// Cycling the theme or language saves both to prefs.toml so the next start
// reuses them.
package ui
