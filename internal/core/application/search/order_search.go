// Package search coalesces rapid filter edits into a single order listing.
package search

import (
	"context"
	"sync"
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

const DefaultQuietPeriod = 400 * time.Millisecond

type Lister interface {
	Handle(ctx context.Context, query queries.ListOrdersForRoleQuery) ([]queries.OrderView, error)
}

type Result struct {
	Filter order.Filter
	Orders []queries.OrderView
	Err    error
}

// OrderSearch runs one listing per quiet period. Results of a listing that was
// superseded by a newer Update are dropped.
type OrderSearch struct {
	lister   Lister
	actor    kernel.Actor
	onResult func(Result)
	quiet    time.Duration

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

func NewOrderSearch(lister Lister, actor kernel.Actor, quiet time.Duration, onResult func(Result)) *OrderSearch {
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &OrderSearch{lister: lister, actor: actor, onResult: onResult, quiet: quiet}
}

// Update schedules a listing for filter, replacing any pending one.
func (s *OrderSearch) Update(ctx context.Context, filter order.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	gen := s.gen
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.quiet, func() {
		s.run(ctx, gen, filter)
	})
}

// Cancel drops the pending listing and any result still in flight.
func (s *OrderSearch) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *OrderSearch) run(ctx context.Context, gen uint64, filter order.Filter) {
	if !s.current(gen) {
		return
	}

	result := Result{Filter: filter}
	query, err := queries.NewListOrdersForRoleQuery(s.actor, filter)
	if err != nil {
		result.Err = err
	} else {
		result.Orders, result.Err = s.lister.Handle(ctx, query)
	}

	if s.current(gen) {
		s.onResult(result)
	}
}

func (s *OrderSearch) current(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen == gen
}
