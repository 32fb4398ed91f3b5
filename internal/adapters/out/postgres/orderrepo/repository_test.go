package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/postgrestest"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

var baseTime = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type OrderRepositoryTestSuite struct {
	suite.Suite
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func TestOrderRepository(t *testing.T) {
	suite.Run(t, new(OrderRepositoryTestSuite))
}

func (suite *OrderRepositoryTestSuite) SetupTest() {
	suite.db = postgrestest.NewDB(suite.T())
	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryTestSuite) line(name string, qty int, price string) order.Line {
	ref, err := kernel.NewItemRef(kernel.ItemKindProduct, kernel.NewUUID())
	suite.Require().NoError(err)
	line, err := order.NewLine(ref, name, qty, decimal.RequireFromString(price))
	suite.Require().NoError(err)
	return line
}

func (suite *OrderRepositoryTestSuite) stored(p order.RestoreParams) *order.Order {
	if p.ID.IsZero() {
		p.ID = kernel.NewUUID()
	}
	if p.CustomerID.IsZero() {
		p.CustomerID = kernel.NewUUID()
	}
	if p.DeliveryAddress == "" {
		p.DeliveryAddress = "Av. Arequipa 123"
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = baseTime
	}
	p.Lines = []order.Line{suite.line("Burger", 1, "10.00")}
	p.PaymentMethod = "cash"
	p.Subtotal = decimal.RequireFromString("10.00")
	p.Total = p.Subtotal
	p.UpdatedAt = p.CreatedAt

	o, err := order.RestoreOrder(p)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), o))
	return o
}

func (suite *OrderRepositoryTestSuite) ids(orders []*order.Order) []string {
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID().String())
	}
	return ids
}

func (suite *OrderRepositoryTestSuite) TestAdd_GetRoundTrip() {
	ctx := context.Background()
	lines := []order.Line{suite.line("Burger", 2, "10.50"), suite.line("Soda", 1, "3.00")}
	pricing := order.Pricing{Discount: decimal.RequireFromString("4.00"), ShippingCost: decimal.RequireFromString("5.00")}
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), lines, "Street 1", "card", "no onions", pricing, baseTime)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", o.ID(), o)

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Equal(o.ID(), got.ID())
	suite.Equal(o.CustomerID(), got.CustomerID())
	suite.Equal(order.Pending, got.Status())
	suite.Equal("Street 1", got.DeliveryAddress())
	suite.Equal("card", got.PaymentMethod())
	suite.Equal("no onions", got.Observations())
	suite.True(decimal.RequireFromString("24.00").Equal(got.Subtotal()))
	suite.True(decimal.RequireFromString("25.00").Equal(got.Total()))
	suite.True(baseTime.Equal(got.CreatedAt()))
	suite.Nil(got.CourierID())

	suite.Require().Len(got.Lines(), 2)
	suite.Equal("Burger", got.Lines()[0].Name())
	suite.Equal(2, got.Lines()[0].Quantity())
	suite.Equal(lines[0].ProductRef(), got.Lines()[0].ProductRef())
	suite.Equal("Soda", got.Lines()[1].Name())
}

func (suite *OrderRepositoryTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryTestSuite) TestUpdate_PersistsMutableState() {
	ctx := context.Background()
	courierID := kernel.NewUUID()
	o := suite.stored(order.RestoreParams{Status: order.Confirmed})

	eta := baseTime.Add(40 * time.Minute)
	suite.Require().NoError(o.AssignCourier(courierID, &eta, baseTime.Add(time.Minute)))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(got.CourierID())
	suite.Equal(courierID, *got.CourierID())
	suite.Require().NotNil(got.EstimatedDeliveryAt())
	suite.True(eta.Equal(*got.EstimatedDeliveryAt()))
	suite.Len(got.Lines(), 1)

	suite.Require().NoError(o.UnassignCourier(baseTime.Add(2 * time.Minute)))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	got, err = suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Nil(got.CourierID())
}

func (suite *OrderRepositoryTestSuite) TestUpdate_MissingOrder() {
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(),
		[]order.Line{suite.line("Burger", 1, "1.00")}, "Street", "cash", "", order.Pricing{}, baseTime)
	suite.Require().NoError(err)

	err = suite.repository.Update(context.Background(), o)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryTestSuite) TestListForScope_RoleVisibility() {
	ctx := context.Background()
	customerID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	otherCourier := kernel.NewUUID()

	mine := suite.stored(order.RestoreParams{CustomerID: customerID, Status: order.Pending, CreatedAt: baseTime})
	claimable := suite.stored(order.RestoreParams{Status: order.Confirmed, CreatedAt: baseTime.Add(time.Minute)})
	assigned := suite.stored(order.RestoreParams{Status: order.OutForDelivery, CourierID: &courierID, CreatedAt: baseTime.Add(2 * time.Minute)})
	taken := suite.stored(order.RestoreParams{Status: order.InPreparation, CourierID: &otherCourier, CreatedAt: baseTime.Add(3 * time.Minute)})
	done := suite.stored(order.RestoreParams{CustomerID: customerID, Status: order.Delivered, CourierID: &courierID, CreatedAt: baseTime.Add(4 * time.Minute)})

	list := func(actor kernel.Actor, cID *kernel.UUID) []string {
		scope, err := order.NewScope(actor, cID, order.Filter{})
		suite.Require().NoError(err)
		orders, err := suite.repository.ListForScope(ctx, scope)
		suite.Require().NoError(err)
		return suite.ids(orders)
	}

	suite.Equal([]string{done.ID().String(), mine.ID().String()},
		list(kernel.Actor{ID: customerID, Role: kernel.RoleCustomer}, nil))

	suite.Equal([]string{taken.ID().String(), assigned.ID().String(), claimable.ID().String(), mine.ID().String()},
		list(kernel.Actor{ID: kernel.NewUUID(), Role: kernel.RoleKitchen}, nil))

	suite.Equal([]string{done.ID().String(), assigned.ID().String(), claimable.ID().String()},
		list(kernel.Actor{ID: kernel.NewUUID(), Role: kernel.RoleCourier}, &courierID))

	suite.Len(list(kernel.Actor{ID: kernel.NewUUID(), Role: kernel.RoleSalesAdmin}, nil), 5)
}

func (suite *OrderRepositoryTestSuite) TestListForScope_Filters() {
	ctx := context.Background()
	admin := kernel.Actor{ID: kernel.NewUUID(), Role: kernel.RoleSalesAdmin}

	first := suite.stored(order.RestoreParams{Status: order.Pending, DeliveryAddress: "Calle Lima 42", CreatedAt: baseTime})
	second := suite.stored(order.RestoreParams{Status: order.Cancelled, DeliveryAddress: "Jr. Cusco 7", CreatedAt: baseTime.Add(time.Hour)})

	tests := []struct {
		name   string
		filter order.Filter
		want   []string
	}{
		{"status", order.Filter{Statuses: []order.Status{order.Cancelled}}, []string{second.ID().String()}},
		{"search address case-insensitive", order.Filter{Search: "LIMA"}, []string{first.ID().String()}},
		{"search id prefix", order.Filter{Search: second.ID().String()[:8]}, []string{second.ID().String()}},
		{"created range", order.Filter{CreatedFrom: timePtr(baseTime.Add(30 * time.Minute))}, []string{second.ID().String()}},
		{"customer", order.Filter{CustomerID: idPtr(first.CustomerID())}, []string{first.ID().String()}},
		{"no match", order.Filter{Search: "nowhere"}, []string{}},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			scope, err := order.NewScope(admin, nil, tt.filter)
			suite.Require().NoError(err)
			orders, err := suite.repository.ListForScope(ctx, scope)
			suite.Require().NoError(err)
			suite.Equal(tt.want, suite.ids(orders))
		})
	}
}

func (suite *OrderRepositoryTestSuite) TestCountOutForDelivery() {
	ctx := context.Background()
	courierID := kernel.NewUUID()

	current := suite.stored(order.RestoreParams{Status: order.OutForDelivery, CourierID: &courierID})
	suite.stored(order.RestoreParams{Status: order.OutForDelivery, CourierID: &courierID})
	suite.stored(order.RestoreParams{Status: order.Delivered, CourierID: &courierID})

	count, err := suite.repository.CountOutForDelivery(ctx, courierID, current.ID())
	suite.Require().NoError(err)
	suite.Equal(1, count)

	count, err = suite.repository.CountOutForDelivery(ctx, kernel.NewUUID(), current.ID())
	suite.Require().NoError(err)
	suite.Zero(count)
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func idPtr(id kernel.UUID) *kernel.UUID {
	return &id
}
