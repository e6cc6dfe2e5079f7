// Package locale tracks the active UI language and translates message keys.
//
// Signal is the single source of truth for the current locale code. Set
// rejects blank codes with ErrInvalidLocale, commits anything else, and
// notifies listeners synchronously in registration order, but only when the
// value actually changed. Listeners are registered by identity and every
// registration returns its own disposal function, so a torn-down view can
// stop receiving notifications:
//
//	off := signal.Watch(func(code string) { rerender() })
//	defer off()
//
// Catalog holds the built-in en and zh translations (embedded YAML files
// under locales/) and resolves keys against the signal's current code,
// falling back to the base language ("zh-CN" to "zh"), then to en, then to
// the key itself. Parameterless lookups are cached and the cache is flushed
// whenever the locale changes.
package locale
