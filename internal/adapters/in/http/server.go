package http

import (
	"log/slog"
	"net/http"

	_ "fulfillment/internal/adapters/in/http/docs"
	"fulfillment/internal/core/application/cartsession"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	Checkout                commands.CheckoutCommandHandler
	TransitionOrder         commands.TransitionOrderCommandHandler
	AssignCourier           commands.AssignCourierCommandHandler
	UnassignCourier         commands.UnassignCourierCommandHandler
	TakeOrder               commands.TakeOrderCommandHandler
	RecordDelivery          commands.RecordDeliveryCommandHandler
	CreateCourier           commands.CreateCourierCommandHandler
	ChangeOperationalStatus commands.ChangeOperationalStatusCommandHandler
	UpdateLocation          commands.UpdateLocationCommandHandler
	SubmitRating            commands.SubmitRatingCommandHandler
	DeleteRating            commands.DeleteRatingCommandHandler

	ListOrders       *queries.ListOrdersForRoleQueryHandler
	OrderTransitions *queries.GetOrderTransitionsQueryHandler
	AllCouriers      queries.GetAllCouriersQueryHandler
	ActiveDeliveries queries.GetActiveDeliveriesQueryHandler
	RatableOrders    queries.RatableOrdersQueryHandler
	CourierRating    queries.CourierRatingQueryHandler
}

// Server adapts HTTP requests to commands and queries. The acting user always
// comes from the identity provider, never from the request body.
type Server struct {
	handlers Handlers
	carts    *cartsession.Registry
	catalog  ports.Catalog
	identity ports.IdentityProvider
	logger   *slog.Logger
}

func NewServer(
	handlers Handlers,
	carts *cartsession.Registry,
	catalog ports.Catalog,
	identity ports.IdentityProvider,
	logger *slog.Logger,
) *Server {
	return &Server{
		handlers: handlers,
		carts:    carts,
		catalog:  catalog,
		identity: identity,
		logger:   logger.With("component", "http_server"),
	}
}

// Register mounts GET /health, the API docs under /swagger/ and the
// authenticated /api/v1 routes.
func (s *Server) Register(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.GET("/health", s.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", auth)

	api.POST("/checkout", s.Checkout)

	api.GET("/cart", s.GetCart)
	api.DELETE("/cart", s.ClearCart)
	api.POST("/cart/items", s.AddCartItem)
	api.PUT("/cart/items/:kind/:referenceId", s.UpdateCartItem)
	api.DELETE("/cart/items/:kind/:referenceId", s.RemoveCartItem)

	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id/transitions", s.GetOrderTransitions)
	api.POST("/orders/:id/transitions", s.TransitionOrder)
	api.PUT("/orders/:id/courier", s.AssignCourier)
	api.DELETE("/orders/:id/courier", s.UnassignCourier)
	api.POST("/orders/:id/take", s.TakeOrder)
	api.POST("/orders/:id/delivery", s.RecordDelivery)

	api.GET("/couriers", s.GetCouriers)
	api.POST("/couriers", s.CreateCourier)
	api.PUT("/couriers/:id/status", s.ChangeCourierStatus)
	api.PUT("/couriers/:id/location", s.UpdateCourierLocation)
	api.GET("/couriers/:id/rating", s.GetCourierRating)

	api.GET("/deliveries/active", s.GetActiveDeliveries)

	api.POST("/ratings", s.SubmitRating)
	api.DELETE("/ratings/:id", s.DeleteRating)
	api.GET("/ratings/ratable", s.GetRatableOrders)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

func (s *Server) actor(c echo.Context) (kernel.Actor, error) {
	return s.identity.CurrentActor(c.Request().Context())
}

func pathID(c echo.Context, name string) (kernel.UUID, error) {
	return parseID(name, c.Param(name))
}

func parseID(name, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return nil
}
