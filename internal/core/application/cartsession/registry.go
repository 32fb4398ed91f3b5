package cartsession

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

const DefaultIdleTimeout = 30 * time.Minute

type RegistryOption func(*Registry)

// WithIdleTimeout sets how long an unused session stays cached. Zero or less
// keeps sessions forever.
func WithIdleTimeout(d time.Duration) RegistryOption {
	return func(r *Registry) { r.idleTimeout = d }
}

func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) { r.now = now }
}

type entry struct {
	session  *Session
	lastSeen time.Time
}

// Registry hands out one Session per customer so that concurrent requests of
// the same customer share a single lock and in-memory cart.
//
// Sessions nobody asked for within the idle timeout are dropped, unless they
// still have subscribers. The stored cart is reloaded on the next Get.
type Registry struct {
	mu          sync.Mutex
	sessions    map[kernel.UUID]*entry
	store       ports.CartStore
	logger      *slog.Logger
	idleTimeout time.Duration
	now         func() time.Time
	lastSweep   time.Time
}

func NewRegistry(store ports.CartStore, logger *slog.Logger, opts ...RegistryOption) *Registry {
	r := &Registry{
		sessions:    make(map[kernel.UUID]*entry),
		store:       store,
		logger:      logger,
		idleTimeout: DefaultIdleTimeout,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.lastSweep = r.now()
	return r
}

// Get opens the customer's session on first use.
func (r *Registry) Get(ctx context.Context, customerID kernel.UUID) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweep(ctx, now)

	if e, ok := r.sessions[customerID]; ok {
		e.lastSeen = now
		return e.session, nil
	}

	s, err := Open(ctx, customerID, r.store, r.logger)
	if err != nil {
		return nil, err
	}
	r.sessions[customerID] = &entry{session: s, lastSeen: now}
	return s, nil
}

// Len is the number of cached sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// sweep must be called with mu held. It runs at most once per idle timeout.
func (r *Registry) sweep(ctx context.Context, now time.Time) {
	if r.idleTimeout <= 0 || now.Sub(r.lastSweep) < r.idleTimeout {
		return
	}
	r.lastSweep = now

	evicted := 0
	for id, e := range r.sessions {
		if now.Sub(e.lastSeen) < r.idleTimeout || e.session.subscribed() {
			continue
		}
		delete(r.sessions, id)
		evicted++
	}
	if evicted > 0 {
		r.logger.DebugContext(ctx, "evicted idle cart sessions", "count", evicted, "cached", len(r.sessions))
	}
}
