package locale

import (
	"fmt"
	"strings"
	"sync"
)

// DefaultLocale is used when no usable locale has been configured.
const DefaultLocale = "en"

// Listener is notified after the active locale changes. Implementations are
// registered by identity, so they must be comparable (pointer receivers are
// the usual choice).
type Listener interface {
	LocaleChanged(code string)
}

type funcListener struct {
	fn func(string)
}

func (f *funcListener) LocaleChanged(code string) { f.fn(code) }

// Signal holds the process-wide active locale.
type Signal struct {
	mu      sync.RWMutex
	current string

	// emitMu orders commit plus notification. Listeners must not call Set.
	emitMu sync.Mutex

	listenersMu sync.Mutex
	listeners   []Listener
}

// NewSignal returns a Signal starting at initial, or DefaultLocale when
// initial is blank.
func NewSignal(initial string) *Signal {
	code := strings.TrimSpace(initial)
	if code == "" {
		code = DefaultLocale
	}
	return &Signal{current: code}
}

// Current returns the active locale code.
func (s *Signal) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == "" {
		return DefaultLocale
	}
	return s.current
}

// Set commits code as the active locale and notifies listeners in
// registration order when it differs from the previous value.
func (s *Signal) Set(code string) error {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return fmt.Errorf("%w: %q", ErrInvalidLocale, code)
	}

	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	prev := s.current
	if prev == "" {
		prev = DefaultLocale
	}
	if prev == trimmed {
		s.mu.Unlock()
		return nil
	}
	s.current = trimmed
	s.mu.Unlock()

	s.listenersMu.Lock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.listenersMu.Unlock()

	for _, l := range listeners {
		l.LocaleChanged(trimmed)
	}
	return nil
}

// On registers l. Registering the same listener again is a no-op. The
// returned function is equivalent to Off(l).
func (s *Signal) On(l Listener) (off func()) {
	if l == nil {
		return func() {}
	}
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	if s.indexLocked(l) < 0 {
		s.listeners = append(s.listeners, l)
	}
	return func() { s.Off(l) }
}

// Off removes l. Unknown listeners are ignored.
func (s *Signal) Off(l Listener) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	if i := s.indexLocked(l); i >= 0 {
		s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
	}
}

// Watch registers fn under a fresh identity.
func (s *Signal) Watch(fn func(code string)) (off func()) {
	if fn == nil {
		return func() {}
	}
	return s.On(&funcListener{fn: fn})
}

func (s *Signal) indexLocked(l Listener) int {
	for i, existing := range s.listeners {
		if existing == l {
			return i
		}
	}
	return -1
}
