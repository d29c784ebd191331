// Package session keeps the per-visitor state: carts, review panels, the
// checkout flow, transient notices and the timers that expire them.
package session

import (
	"sync"
	"time"

	"storefront/internal/service"
	"storefront/internal/store"
	"storefront/internal/timer"
)

// Notice slots
const (
	NoticeBookCart  = "book_cart"
	NoticeCafeteria = "cafeteria"
	NoticeContact   = "contact"
)

// Session is one visitor's in-memory state. Nothing in it is persisted.
type Session struct {
	ID string

	BookCart  *store.Store
	Order     *store.Store
	Reviews   *service.ReviewBoard
	Checkout  *service.Checkout
	Scheduler *timer.Scheduler

	mu       sync.Mutex
	notices  map[string]string
	lastSeen time.Time
}

// SetNotice shows msg in slot until ttl elapses. A newer notice for the same
// slot replaces the older one together with its timer.
func (s *Session) SetNotice(slot, msg string, ttl time.Duration) {
	s.mu.Lock()
	s.notices[slot] = msg
	s.mu.Unlock()

	s.Scheduler.Schedule("notice."+slot, ttl, func() {
		s.mu.Lock()
		if s.notices[slot] == msg {
			delete(s.notices, slot)
		}
		s.mu.Unlock()
	})
}

// Notice returns the message currently shown in slot
func (s *Session) Notice(slot string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notices[slot]
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// LastSeen returns when the session was last used
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Close cancels every pending timer of the session
func (s *Session) Close() {
	s.Scheduler.Stop()
}
