package session

import (
	"context"
	"sync"
	"time"

	"storefront/internal/config"
	"storefront/internal/messaging"
	"storefront/internal/metrics"
	"storefront/internal/repository"
	"storefront/internal/service"
	"storefront/internal/store"
	"storefront/internal/timer"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Deps are the shared collaborators every new session is wired with
type Deps struct {
	Reviews     repository.ReviewRepository
	Publisher   messaging.Publisher
	OrdersTopic string
	Timing      config.TimingConfig
	Metrics     *metrics.Metrics
	Logger      *zap.Logger
}

// Registry owns all live sessions
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	deps     Deps
	ttl      time.Duration
	now      func() time.Time
}

// NewRegistry creates an empty registry. Sessions idle for longer than ttl
// are removed by Sweep.
func NewRegistry(deps Deps, ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		deps:     deps,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the session with id and marks it as used
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	s.touch(r.now())
	return s, true
}

// Create starts a new session with a random id
func (r *Registry) Create() *Session {
	id := uuid.New().String()
	s := r.build(id)

	r.mu.Lock()
	r.sessions[id] = s
	count := len(r.sessions)
	r.mu.Unlock()

	r.setGauge(count)
	r.deps.Logger.Debug("Session created", zap.String("session_id", id))
	return s
}

// Resolve returns the session for id, creating a fresh one when id is empty
// or unknown. The boolean reports whether a session was created.
func (r *Registry) Resolve(id string) (*Session, bool) {
	if id != "" {
		if s, ok := r.Get(id); ok {
			return s, false
		}
	}
	return r.Create(), true
}

func (r *Registry) build(id string) *Session {
	scheduler := timer.NewScheduler()
	order := store.New()
	logger := r.deps.Logger.With(zap.String("session_id", id))

	checkout := service.NewCheckout(order, scheduler, r.deps.Publisher, service.CheckoutOptions{
		Topic:        r.deps.OrdersTopic,
		ConfirmDelay: r.deps.Timing.ConfirmDelay,
		Metrics:      r.deps.Metrics,
	}, logger)

	return &Session{
		ID:        id,
		BookCart:  store.New(),
		Order:     order,
		Reviews:   service.NewReviewBoard(r.deps.Reviews, logger),
		Checkout:  checkout,
		Scheduler: scheduler,
		notices:   make(map[string]string),
		lastSeen:  r.now(),
	}
}

// Sweep removes sessions idle since before now-ttl and stops their timers.
// It returns the number of sessions removed.
func (r *Registry) Sweep(now time.Time) int {
	cutoff := now.Add(-r.ttl)

	r.mu.Lock()
	var expired []*Session
	for id, s := range r.sessions {
		if s.LastSeen().Before(cutoff) {
			expired = append(expired, s)
			delete(r.sessions, id)
		}
	}
	count := len(r.sessions)
	r.mu.Unlock()

	for _, s := range expired {
		s.Close()
	}
	r.setGauge(count)

	if len(expired) > 0 {
		r.deps.Logger.Info("Expired idle sessions", zap.Int("removed", len(expired)), zap.Int("active", count))
	}
	return len(expired)
}

// Run sweeps every interval until ctx is done
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			r.Sweep(now)
		}
	}
}

// Len returns the number of live sessions
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Close stops the timers of every session
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		s.Close()
		delete(r.sessions, id)
	}
	r.setGauge(0)
}

func (r *Registry) setGauge(n int) {
	if r.deps.Metrics != nil {
		r.deps.Metrics.ActiveSessions.Set(float64(n))
	}
}
