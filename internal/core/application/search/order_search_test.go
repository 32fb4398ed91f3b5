package search_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/core/application/search"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quiet = 30 * time.Millisecond

type fakeLister struct {
	mu      sync.Mutex
	calls   []order.Filter
	release chan struct{}
	err     error
}

func (l *fakeLister) Handle(_ context.Context, query queries.ListOrdersForRoleQuery) ([]queries.OrderView, error) {
	l.mu.Lock()
	l.calls = append(l.calls, query.Filter())
	release, err := l.release, l.err
	l.mu.Unlock()

	if release != nil {
		<-release
	}
	return []queries.OrderView{}, err
}

func (l *fakeLister) callCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.calls)
}

func (l *fakeLister) lastCall() order.Filter {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls[len(l.calls)-1]
}

type results struct {
	mu   sync.Mutex
	list []search.Result
}

func (r *results) add(result search.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.list = append(r.list, result)
}

func (r *results) snapshot() []search.Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]search.Result(nil), r.list...)
}

func salesAdmin(t *testing.T) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleSalesAdmin)
	require.NoError(t, err)
	return actor
}

func TestOrderSearch_CoalescesRapidInput(t *testing.T) {
	lister := &fakeLister{}
	got := &results{}
	s := search.NewOrderSearch(lister, salesAdmin(t), quiet, got.add)
	ctx := context.Background()

	for _, term := range []string{"p", "pi", "piz", "pizza"} {
		s.Update(ctx, order.Filter{Search: term})
		time.Sleep(quiet / 5)
	}

	require.Eventually(t, func() bool { return len(got.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Never(t, func() bool { return lister.callCount() > 1 }, 3*quiet, 5*time.Millisecond)

	assert.Equal(t, "pizza", lister.lastCall().Search)
	result := got.snapshot()[0]
	assert.Equal(t, "pizza", result.Filter.Search)
	require.NoError(t, result.Err)
}

func TestOrderSearch_SeparatedInputRunsEachTime(t *testing.T) {
	lister := &fakeLister{}
	got := &results{}
	s := search.NewOrderSearch(lister, salesAdmin(t), quiet, got.add)
	ctx := context.Background()

	s.Update(ctx, order.Filter{Search: "first"})
	require.Eventually(t, func() bool { return len(got.snapshot()) == 1 }, time.Second, 5*time.Millisecond)

	s.Update(ctx, order.Filter{Statuses: []order.Status{order.Delivered}})
	require.Eventually(t, func() bool { return len(got.snapshot()) == 2 }, time.Second, 5*time.Millisecond)

	assert.Equal(t, []order.Status{order.Delivered}, got.snapshot()[1].Filter.Statuses)
}

func TestOrderSearch_StaleResultIsDropped(t *testing.T) {
	release := make(chan struct{})
	lister := &fakeLister{release: release}
	got := &results{}
	s := search.NewOrderSearch(lister, salesAdmin(t), quiet, got.add)
	ctx := context.Background()

	s.Update(ctx, order.Filter{Search: "slow"})
	require.Eventually(t, func() bool { return lister.callCount() == 1 }, time.Second, 5*time.Millisecond)

	s.Update(ctx, order.Filter{Search: "fresh"})
	close(release)

	require.Eventually(t, func() bool { return len(got.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Never(t, func() bool { return len(got.snapshot()) > 1 }, 3*quiet, 5*time.Millisecond)
	assert.Equal(t, "fresh", got.snapshot()[0].Filter.Search)
}

func TestOrderSearch_Cancel(t *testing.T) {
	lister := &fakeLister{}
	got := &results{}
	s := search.NewOrderSearch(lister, salesAdmin(t), quiet, got.add)

	s.Update(context.Background(), order.Filter{Search: "abandoned"})
	s.Cancel()

	assert.Never(t, func() bool { return lister.callCount() > 0 }, 3*quiet, 5*time.Millisecond)
	assert.Empty(t, got.snapshot())
}

func TestOrderSearch_ListingErrorIsDelivered(t *testing.T) {
	failure := errors.New("database unavailable")
	lister := &fakeLister{err: failure}
	got := &results{}
	s := search.NewOrderSearch(lister, salesAdmin(t), quiet, got.add)

	s.Update(context.Background(), order.Filter{})

	require.Eventually(t, func() bool { return len(got.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	require.ErrorIs(t, got.snapshot()[0].Err, failure)
}

func TestOrderSearch_DefaultQuietPeriod(t *testing.T) {
	assert.Equal(t, 400*time.Millisecond, search.DefaultQuietPeriod)
}
