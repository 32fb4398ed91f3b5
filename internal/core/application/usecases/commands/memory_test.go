package commands_test

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/offer"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/rating"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// memoryState is one consistent version of the stored aggregates. Stored
// aggregates are never handed out; reads return restored copies.
type memoryState struct {
	orders   map[string]*order.Order
	couriers map[string]*courier.Courier
	ratings  map[string]*rating.Rating
	offers   map[string]*offer.Offer
	changes  []order.StatusChange
}

func (s memoryState) clone() memoryState {
	return memoryState{
		orders:   maps.Clone(s.orders),
		couriers: maps.Clone(s.couriers),
		ratings:  maps.Clone(s.ratings),
		offers:   maps.Clone(s.offers),
		changes:  slices.Clone(s.changes),
	}
}

type memoryStore struct {
	mu      sync.Mutex
	state   memoryState
	commits int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{state: memoryState{
		orders:   map[string]*order.Order{},
		couriers: map[string]*courier.Courier{},
		ratings:  map[string]*rating.Rating{},
		offers:   map[string]*offer.Offer{},
	}}
}

func (s *memoryStore) order(t *testing.T, id kernel.UUID) *order.Order {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.state.orders[id.String()]
	require.True(t, ok, "order %s not stored", id)
	return cloneOrder(o)
}

func (s *memoryStore) courier(t *testing.T, id kernel.UUID) *courier.Courier {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.state.couriers[id.String()]
	require.True(t, ok, "courier %s not stored", id)
	return cloneCourier(c)
}

func (s *memoryStore) changes() []order.StatusChange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.state.changes)
}

func (s *memoryStore) ratingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.ratings)
}

func (s *memoryStore) put(t *testing.T, aggregates ...any) {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range aggregates {
		switch v := a.(type) {
		case *order.Order:
			s.state.orders[v.ID().String()] = cloneOrder(v)
		case *courier.Courier:
			s.state.couriers[v.ID().String()] = cloneCourier(v)
		case *rating.Rating:
			s.state.ratings[v.ID().String()] = v
		case *offer.Offer:
			s.state.offers[v.ID().String()] = cloneOffer(v)
		default:
			t.Fatalf("unsupported aggregate %T", a)
		}
	}
}

// memoryUoW works on a private copy of the state taken at Begin and
// publishes it on Commit.
type memoryUoW struct {
	store     *memoryStore
	tx        *memoryState
	committed bool
	factory   *memoryFactory
}

func (u *memoryUoW) Begin(context.Context) error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	state := u.store.state.clone()
	u.tx = &state
	return nil
}

func (u *memoryUoW) Commit(context.Context) error {
	if u.tx == nil {
		return errors.New("no active transaction")
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	u.store.state = *u.tx
	u.store.commits++
	u.tx = nil
	u.committed = true
	return nil
}

func (u *memoryUoW) Rollback(context.Context) error {
	u.tx = nil
	return nil
}

func (u *memoryUoW) fail(op string) error {
	return u.factory.fail(op)
}

func (u *memoryUoW) OrderRepository() ports.OrderRepository     { return memoryOrderRepo{u} }
func (u *memoryUoW) CourierRepository() ports.CourierRepository { return memoryCourierRepo{u} }
func (u *memoryUoW) RatingRepository() ports.RatingRepository   { return memoryRatingRepo{u} }
func (u *memoryUoW) OfferRepository() ports.OfferRepository     { return memoryOfferRepo{u} }
func (u *memoryUoW) StatusChangeLog() ports.StatusChangeLog     { return memoryStatusLog{u} }

// memoryFactory injects failures: failOn fails every call of an operation,
// or only its n-th call when failAt names one.
type memoryFactory struct {
	store  *memoryStore
	failOn map[string]error
	failAt map[string]int

	mu    sync.Mutex
	calls map[string]int
}

func newMemoryFactory(store *memoryStore) *memoryFactory {
	return &memoryFactory{
		store:  store,
		failOn: map[string]error{},
		failAt: map[string]int{},
		calls:  map[string]int{},
	}
}

func (f *memoryFactory) newUoW() *memoryUoW {
	return &memoryUoW{store: f.store, factory: f}
}

func (f *memoryFactory) fail(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	if n, ok := f.failAt[op]; ok && f.calls[op] != n {
		return nil
	}
	return f.failOn[op]
}

// heal stops injecting failures.
func (f *memoryFactory) heal() {
	f.mu.Lock()
	defer f.mu.Unlock()
	clear(f.failOn)
	clear(f.failAt)
}

func (f *memoryFactory) Create() commands.UoW { return f.newUoW() }

type memoryOrderFactory struct{ *memoryFactory }

func (f memoryOrderFactory) Create() commands.OrderUoW { return f.newUoW() }

type memoryCourierFactory struct{ *memoryFactory }

func (f memoryCourierFactory) Create() commands.CourierUoW { return f.newUoW() }

type memoryOfferFactory struct{ *memoryFactory }

func (f memoryOfferFactory) Create() commands.OfferUoW { return f.newUoW() }

type memoryOrderRepo struct{ u *memoryUoW }

func (r memoryOrderRepo) Add(_ context.Context, o *order.Order) error {
	if err := r.u.fail("OrderRepository.Add"); err != nil {
		return err
	}
	r.u.tx.orders[o.ID().String()] = cloneOrder(o)
	return nil
}

func (r memoryOrderRepo) Update(_ context.Context, o *order.Order) error {
	if err := r.u.fail("OrderRepository.Update"); err != nil {
		return err
	}
	if _, ok := r.u.tx.orders[o.ID().String()]; !ok {
		return errs.NewObjectNotFoundError("order", o.ID().String())
	}
	r.u.tx.orders[o.ID().String()] = cloneOrder(o)
	return nil
}

func (r memoryOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	o, ok := r.u.tx.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return cloneOrder(o), nil
}

func (r memoryOrderRepo) ListForScope(_ context.Context, scope order.Scope) ([]*order.Order, error) {
	var result []*order.Order
	for _, o := range r.u.tx.orders {
		if scope.Matches(o) {
			result = append(result, cloneOrder(o))
		}
	}
	slices.SortFunc(result, func(a, b *order.Order) int { return b.CreatedAt().Compare(a.CreatedAt()) })
	return result, nil
}

func (r memoryOrderRepo) CountOutForDelivery(_ context.Context, courierID, exclude kernel.UUID) (int, error) {
	count := 0
	for _, o := range r.u.tx.orders {
		if o.Status() == order.OutForDelivery && o.IsAssignedTo(courierID) && !o.ID().IsEqual(exclude) {
			count++
		}
	}
	return count, nil
}

type memoryCourierRepo struct{ u *memoryUoW }

func (r memoryCourierRepo) Add(_ context.Context, c *courier.Courier) error {
	r.u.tx.couriers[c.ID().String()] = cloneCourier(c)
	return nil
}

func (r memoryCourierRepo) Update(_ context.Context, c *courier.Courier) error {
	if err := r.u.fail("CourierRepository.Update"); err != nil {
		return err
	}
	r.u.tx.couriers[c.ID().String()] = cloneCourier(c)
	return nil
}

func (r memoryCourierRepo) Get(_ context.Context, id kernel.UUID) (*courier.Courier, error) {
	c, ok := r.u.tx.couriers[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("courier", id.String())
	}
	return cloneCourier(c), nil
}

func (r memoryCourierRepo) GetByUserID(_ context.Context, userID kernel.UUID) (*courier.Courier, error) {
	for _, c := range r.u.tx.couriers {
		if c.UserID().IsEqual(userID) {
			return cloneCourier(c), nil
		}
	}
	return nil, errs.NewObjectNotFoundError("userId", userID.String())
}

func (r memoryCourierRepo) GetByDeliveredOrder(_ context.Context, orderID kernel.UUID) (*courier.Courier, error) {
	for _, c := range r.u.tx.couriers {
		if c.HasDelivered(orderID) {
			return cloneCourier(c), nil
		}
	}
	return nil, errs.NewObjectNotFoundError("orderId", orderID.String())
}

func (r memoryCourierRepo) GetMany(_ context.Context, ids []kernel.UUID) ([]*courier.Courier, error) {
	var result []*courier.Courier
	for _, id := range ids {
		if c, ok := r.u.tx.couriers[id.String()]; ok {
			result = append(result, cloneCourier(c))
		}
	}
	return result, nil
}

type memoryRatingRepo struct{ u *memoryUoW }

func (r memoryRatingRepo) Add(_ context.Context, rt *rating.Rating) error {
	r.u.tx.ratings[rt.ID().String()] = rt
	return nil
}

func (r memoryRatingRepo) Get(_ context.Context, id kernel.UUID) (*rating.Rating, error) {
	rt, ok := r.u.tx.ratings[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("rating", id.String())
	}
	return rt, nil
}

func (r memoryRatingRepo) Delete(_ context.Context, id kernel.UUID) error {
	delete(r.u.tx.ratings, id.String())
	return nil
}

func (r memoryRatingRepo) ExistsForOrder(_ context.Context, orderID kernel.UUID) (bool, error) {
	for _, rt := range r.u.tx.ratings {
		if rt.OrderID().IsEqual(orderID) {
			return true, nil
		}
	}
	return false, nil
}

func (r memoryRatingRepo) ListByOrderIDs(_ context.Context, orderIDs []kernel.UUID) ([]*rating.Rating, error) {
	var result []*rating.Rating
	for _, rt := range r.u.tx.ratings {
		if slices.ContainsFunc(orderIDs, rt.OrderID().IsEqual) {
			result = append(result, rt)
		}
	}
	return result, nil
}

type memoryOfferRepo struct{ u *memoryUoW }

func (r memoryOfferRepo) Add(_ context.Context, o *offer.Offer) error {
	r.u.tx.offers[o.ID().String()] = cloneOffer(o)
	return nil
}

func (r memoryOfferRepo) Update(_ context.Context, o *offer.Offer) error {
	r.u.tx.offers[o.ID().String()] = cloneOffer(o)
	return nil
}

func (r memoryOfferRepo) ListExpiredActive(_ context.Context, now time.Time) ([]*offer.Offer, error) {
	var result []*offer.Offer
	for _, o := range r.u.tx.offers {
		if o.IsActive() && o.IsExpired(now) {
			result = append(result, cloneOffer(o))
		}
	}
	return result, nil
}

type memoryStatusLog struct{ u *memoryUoW }

func (l memoryStatusLog) Append(_ context.Context, change order.StatusChange) error {
	if err := l.u.fail("StatusChangeLog.Append"); err != nil {
		return err
	}
	l.u.tx.changes = append(l.u.tx.changes, change)
	return nil
}

func (l memoryStatusLog) ListByOrder(_ context.Context, orderID kernel.UUID) ([]order.StatusChange, error) {
	var result []order.StatusChange
	for _, c := range l.u.tx.changes {
		if c.OrderID.IsEqual(orderID) {
			result = append(result, c)
		}
	}
	return result, nil
}

func cloneOrder(o *order.Order) *order.Order {
	restored, err := order.RestoreOrder(order.RestoreParams{
		ID:                  o.ID(),
		CustomerID:          o.CustomerID(),
		Lines:               o.Lines(),
		Status:              o.Status(),
		DeliveryAddress:     o.DeliveryAddress(),
		PaymentMethod:       o.PaymentMethod(),
		Observations:        o.Observations(),
		Subtotal:            o.Subtotal(),
		Discount:            o.Discount(),
		ShippingCost:        o.ShippingCost(),
		Total:               o.Total(),
		CourierID:           o.CourierID(),
		EstimatedDeliveryAt: o.EstimatedDeliveryAt(),
		CreatedAt:           o.CreatedAt(),
		UpdatedAt:           o.UpdatedAt(),
	})
	if err != nil {
		panic(err)
	}
	return restored
}

func cloneCourier(c *courier.Courier) *courier.Courier {
	restored, err := courier.RestoreCourier(courier.RestoreParams{
		ID:                c.ID(),
		UserID:            c.UserID(),
		Status:            c.OperationalStatus(),
		Location:          c.Location(),
		LocationUpdatedAt: c.LocationUpdatedAt(),
		History:           c.History(),
		AverageRating:     c.AverageRating(),
		RatedDeliveries:   c.RatedDeliveries(),
	})
	if err != nil {
		panic(err)
	}
	return restored
}

func cloneOffer(o *offer.Offer) *offer.Offer {
	restored, err := offer.NewOffer(o.ID(), o.Title(), o.StartsAt(), o.EndsAt(), o.IsActive())
	if err != nil {
		panic(err)
	}
	return restored
}

// fixtures

func actorOf(role kernel.Role) kernel.Actor {
	return kernel.Actor{ID: kernel.NewUUID(), Role: role}
}

func newTestOrder(t *testing.T, customerID kernel.UUID) *order.Order {
	t.Helper()
	ref, err := kernel.NewItemRef(kernel.ItemKindProduct, kernel.NewUUID())
	require.NoError(t, err)
	line, err := order.NewLine(ref, "Lomo saltado", 2, decimal.RequireFromString("18.50"))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), customerID, []order.Line{line},
		"Av. Arequipa 123", "cash", "", order.Pricing{}, time.Now())
	require.NoError(t, err)
	return o
}

// newOrderInStatus walks a fresh order to status through the sales/admin row.
func newOrderInStatus(t *testing.T, customerID kernel.UUID, status order.Status, courierID *kernel.UUID) *order.Order {
	t.Helper()
	o := newTestOrder(t, customerID)
	if courierID != nil {
		require.NoError(t, o.AssignCourier(*courierID, nil, time.Now()))
	}
	admin := actorOf(kernel.RoleSalesAdmin)
	if status == order.Cancelled {
		_, err := o.Transition(admin, order.Cancelled, time.Now())
		require.NoError(t, err)
		return o
	}
	path := []order.Status{order.Confirmed, order.InPreparation, order.OutForDelivery, order.Delivered}
	for _, next := range path {
		if o.Status() == status {
			break
		}
		_, err := o.Transition(admin, next, time.Now())
		require.NoError(t, err)
	}
	require.Equal(t, status, o.Status())
	return o
}

func newTestCourier(t *testing.T, status courier.OperationalStatus) (*courier.Courier, kernel.Actor) {
	t.Helper()
	actor := actorOf(kernel.RoleCourier)
	c, err := courier.NewCourier(kernel.NewUUID(), actor.ID)
	require.NoError(t, err)
	require.NoError(t, c.ChangeOperationalStatus(status))
	return c, actor
}
