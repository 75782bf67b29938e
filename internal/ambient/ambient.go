// Package ambient reports the host environment's light/dark appearance and
// notifies subscribers when it changes. The signal is owned by the
// environment; nothing here is user-controlled.
package ambient

import (
	"sync"

	"github.com/ragdeck/ragdeck/internal/theme"
)

// source holds subscriber bookkeeping shared by the watchers. Unsubscribe
// funcs are idempotent: deleting an already-removed ID is a no-op, so
// calling one twice or after teardown is safe.
type source struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(theme.Ambient)
}

// Subscribe registers fn for change notifications and returns its
// unsubscribe func.
func (s *source) Subscribe(fn func(theme.Ambient)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs == nil {
		s.subs = make(map[int]func(theme.Ambient))
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// notify delivers a to every subscriber. Callbacks run outside the lock so
// a subscriber may unsubscribe from within its own callback.
func (s *source) notify(a theme.Ambient) {
	s.mu.Lock()
	fns := make([]func(theme.Ambient), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(a)
	}
}

// clear drops all subscribers.
func (s *source) clear() {
	s.mu.Lock()
	s.subs = nil
	s.mu.Unlock()
}
