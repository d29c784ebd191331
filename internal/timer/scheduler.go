// Package timer runs delayed effects keyed by name. Scheduling a key that is
// already pending cancels the earlier timer first, so a stale effect never
// fires after a newer action has replaced it.
package timer

import (
	"sync"
	"time"
)

// Scheduler owns a set of pending keyed timers
type Scheduler struct {
	mu      sync.Mutex
	pending map[string]*entry
	gen     uint64
	stopped bool
}

type entry struct {
	t   *time.Timer
	gen uint64
}

// NewScheduler creates an empty scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{pending: make(map[string]*entry)}
}

// Schedule runs fn after delay under key, replacing any pending timer for the
// same key. A non-positive delay runs fn synchronously.
func (s *Scheduler) Schedule(key string, delay time.Duration, fn func()) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	if prev, ok := s.pending[key]; ok {
		prev.t.Stop()
		delete(s.pending, key)
	}
	if delay <= 0 {
		s.mu.Unlock()
		fn()
		return
	}

	s.gen++
	e := &entry{gen: s.gen}
	e.t = time.AfterFunc(delay, func() {
		s.mu.Lock()
		cur, ok := s.pending[key]
		if !ok || cur.gen != e.gen {
			// replaced or cancelled after the timer already fired
			s.mu.Unlock()
			return
		}
		delete(s.pending, key)
		s.mu.Unlock()
		fn()
	})
	s.pending[key] = e
	s.mu.Unlock()
}

// Cancel stops the pending timer for key. It reports whether one was pending.
func (s *Scheduler) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.pending[key]
	if !ok {
		return false
	}
	e.t.Stop()
	delete(s.pending, key)
	return true
}

// Pending reports whether key has a timer waiting to fire
func (s *Scheduler) Pending(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[key]
	return ok
}

// Stop cancels every pending timer. Later calls to Schedule are ignored.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, e := range s.pending {
		e.t.Stop()
		delete(s.pending, key)
	}
	s.stopped = true
}
