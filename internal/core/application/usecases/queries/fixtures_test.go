package queries_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/courierrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/postgrestest"
	"fulfillment/internal/adapters/out/postgres/ratingrepo"
	"fulfillment/internal/adapters/out/postgres/statuslog"
	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/rating"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var baseTime = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func actorOf(role kernel.Role) kernel.Actor {
	return kernel.Actor{ID: kernel.NewUUID(), Role: role}
}

// store wires the GORM repositories over one in-memory database.
type store struct {
	t        *testing.T
	db       *gorm.DB
	orders   *orderrepo.GormOrderRepository
	couriers *courierrepo.GormCourierRepository
	ratings  *ratingrepo.GormRatingRepository
	log      *statuslog.GormStatusChangeLog
}

func newStore(t *testing.T) *store {
	t.Helper()
	db := postgrestest.NewDB(t)
	tracker := &postgrestest.Tracker{}
	return &store{
		t:        t,
		db:       db,
		orders:   orderrepo.NewGormOrderRepository(db, tracker),
		couriers: courierrepo.NewGormCourierRepository(db, tracker),
		ratings:  ratingrepo.NewGormRatingRepository(db, tracker),
		log:      statuslog.NewGormStatusChangeLog(db),
	}
}

type orderFixture struct {
	customerID kernel.UUID
	status     order.Status
	courierID  *kernel.UUID
	createdAt  time.Time
	address    string
	total      string
}

func (s *store) addOrder(fx orderFixture) *order.Order {
	s.t.Helper()
	if fx.customerID.IsZero() {
		fx.customerID = kernel.NewUUID()
	}
	if fx.status == order.Unknown {
		fx.status = order.Pending
	}
	if fx.createdAt.IsZero() {
		fx.createdAt = baseTime
	}
	if fx.address == "" {
		fx.address = "Av. Arequipa 123"
	}
	if fx.total == "" {
		fx.total = "10.00"
	}

	ref, err := kernel.NewItemRef(kernel.ItemKindProduct, kernel.NewUUID())
	require.NoError(s.t, err)
	total := decimal.RequireFromString(fx.total)
	line, err := order.NewLine(ref, "Burger", 1, total)
	require.NoError(s.t, err)

	o, err := order.RestoreOrder(order.RestoreParams{
		ID:              kernel.NewUUID(),
		CustomerID:      fx.customerID,
		Lines:           []order.Line{line},
		Status:          fx.status,
		DeliveryAddress: fx.address,
		PaymentMethod:   "cash",
		Subtotal:        total,
		Total:           total,
		CourierID:       fx.courierID,
		CreatedAt:       fx.createdAt,
		UpdatedAt:       fx.createdAt,
	})
	require.NoError(s.t, err)
	require.NoError(s.t, s.orders.Add(context.Background(), o))
	return o
}

func (s *store) addCourier(status courier.OperationalStatus) (*courier.Courier, kernel.Actor) {
	s.t.Helper()
	actor := actorOf(kernel.RoleCourier)
	c, err := courier.NewCourier(kernel.NewUUID(), actor.ID)
	require.NoError(s.t, err)
	require.NoError(s.t, c.ChangeOperationalStatus(status))
	require.NoError(s.t, s.couriers.Add(context.Background(), c))
	return c, actor
}

func (s *store) saveCourier(c *courier.Courier) {
	s.t.Helper()
	require.NoError(s.t, s.couriers.Update(context.Background(), c))
}

func (s *store) addRating(o *order.Order, food, service, delivery int) *rating.Rating {
	s.t.Helper()
	r, err := rating.NewRating(kernel.NewUUID(), o.ID(), o.CustomerID(), food, service, delivery, "", baseTime)
	require.NoError(s.t, err)
	require.NoError(s.t, s.ratings.Add(context.Background(), r))
	return r
}

func idPtr(id kernel.UUID) *kernel.UUID {
	return &id
}
