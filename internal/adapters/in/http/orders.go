package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Checkout handles POST /api/v1/checkout. The cart is cleared only when the
// order was stored.
func (s *Server) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	actor, err := s.actor(c)
	if err != nil {
		return s.writeError(c, err)
	}
	if !actor.Is(kernel.RoleCustomer) {
		return s.writeError(c, errs.NewForbiddenError("checkout", "only customers can check out"))
	}

	var req CheckoutRequest
	if err = bind(c, &req); err != nil {
		return s.writeError(c, err)
	}

	session, err := s.carts.Get(ctx, actor.ID)
	if err != nil {
		return s.writeError(c, err)
	}

	var placed *order.Order
	err = session.Checkout(ctx, func(ctx context.Context, snapshot cart.Snapshot) error {
		cmd, cmdErr := commands.NewCheckoutCommand(actor.ID, snapshot, req.DeliveryAddress, req.PaymentMethod, req.Observations)
		if cmdErr != nil {
			return cmdErr
		}
		placed, cmdErr = s.handlers.Checkout.Handle(ctx, cmd)
		return cmdErr
	})
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, toOrder(placed, placed.Courier()))
}

// ListOrders handles GET /api/v1/orders. Supported query parameters: status
// (repeatable or comma separated), from, to (RFC 3339), customerId, courierId and q.
func (s *Server) ListOrders(c echo.Context) error {
	actor, err := s.actor(c)
	if err != nil {
		return s.writeError(c, err)
	}

	filter, err := parseFilter(c)
	if err != nil {
		return s.writeError(c, err)
	}

	query, err := queries.NewListOrdersForRoleQuery(actor, filter)
	if err != nil {
		return s.writeError(c, err)
	}

	views, err := s.handlers.ListOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	response := make([]Order, len(views))
	for i, v := range views {
		response[i] = toOrder(v.Order, v.Courier)
	}
	return c.JSON(http.StatusOK, response)
}

// GetOrderTransitions handles GET /api/v1/orders/:id/transitions.
func (s *Server) GetOrderTransitions(c echo.Context) error {
	actor, err := s.actor(c)
	if err != nil {
		return s.writeError(c, err)
	}
	orderID, err := pathID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	query, err := queries.NewGetOrderTransitionsQuery(actor, orderID)
	if err != nil {
		return s.writeError(c, err)
	}

	response, err := s.handlers.OrderTransitions.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toTransitions(response))
}

// TransitionOrder handles POST /api/v1/orders/:id/transitions.
func (s *Server) TransitionOrder(c echo.Context) error {
	actor, err := s.actor(c)
	if err != nil {
		return s.writeError(c, err)
	}
	orderID, err := pathID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	var req TransitionRequest
	if err = bind(c, &req); err != nil {
		return s.writeError(c, err)
	}
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, actor, target)
	if err != nil {
		return s.writeError(c, err)
	}

	change, err := s.handlers.TransitionOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toStatusChange(change))
}

// AssignCourier handles PUT /api/v1/orders/:id/courier.
func (s *Server) AssignCourier(c echo.Context) error {
	actor, err := s.actor(c)
	if err != nil {
		return s.writeError(c, err)
	}
	orderID, err := pathID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	var req AssignCourierRequest
	if err = bind(c, &req); err != nil {
		return s.writeError(c, err)
	}
	courierID, err := parseID("courierId", req.CourierID)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewAssignCourierCommand(actor, orderID, courierID, req.EstimatedDeliveryAt)
	if err != nil {
		return s.writeError(c, err)
	}

	if err = s.handlers.AssignCourier.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// UnassignCourier handles DELETE /api/v1/orders/:id/courier.
func (s *Server) UnassignCourier(c echo.Context) error {
	actor, err := s.actor(c)
	if err != nil {
		return s.writeError(c, err)
	}
	orderID, err := pathID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewUnassignCourierCommand(actor, orderID)
	if err != nil {
		return s.writeError(c, err)
	}

	if err = s.handlers.UnassignCourier.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// TakeOrder handles POST /api/v1/orders/:id/take.
func (s *Server) TakeOrder(c echo.Context) error {
	actor, err := s.actor(c)
	if err != nil {
		return s.writeError(c, err)
	}
	orderID, err := pathID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewTakeOrderCommand(actor, orderID)
	if err != nil {
		return s.writeError(c, err)
	}

	change, err := s.handlers.TakeOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toStatusChange(change))
}

// RecordDelivery handles POST /api/v1/orders/:id/delivery.
func (s *Server) RecordDelivery(c echo.Context) error {
	actor, err := s.actor(c)
	if err != nil {
		return s.writeError(c, err)
	}
	orderID, err := pathID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	var req RecordDeliveryRequest
	if err = bind(c, &req); err != nil {
		return s.writeError(c, err)
	}
	deliveredAt := time.Now()
	if req.DeliveredAt != nil {
		deliveredAt = *req.DeliveredAt
	}

	cmd, err := commands.NewRecordDeliveryCommand(actor, orderID, deliveredAt, req.CustomerRating)
	if err != nil {
		return s.writeError(c, err)
	}

	if err = s.handlers.RecordDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetActiveDeliveries handles GET /api/v1/deliveries/active.
func (s *Server) GetActiveDeliveries(c echo.Context) error {
	actor, err := s.actor(c)
	if err != nil {
		return s.writeError(c, err)
	}

	query, err := queries.NewGetActiveDeliveriesQuery(actor)
	if err != nil {
		return s.writeError(c, err)
	}

	rows, err := s.handlers.ActiveDeliveries.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	response := make([]ActiveDelivery, len(rows))
	for i, r := range rows {
		response[i] = ActiveDelivery{
			OrderID:             r.OrderID.String(),
			CourierID:           r.CourierID.String(),
			DeliveryAddress:     r.DeliveryAddress,
			EstimatedDeliveryAt: r.EstimatedDeliveryAt,
			CourierLocation:     toLocation(r.CourierLocation),
		}
	}
	return c.JSON(http.StatusOK, response)
}

func parseFilter(c echo.Context) (order.Filter, error) {
	var params struct {
		Statuses *[]string
		From     *time.Time
		To       *time.Time
	}
	if err := runtime.BindQueryParameter("form", true, false, "status", c.QueryParams(), &params.Statuses); err != nil {
		return order.Filter{}, errs.NewValueIsInvalidErrorWithCause("status", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "from", c.QueryParams(), &params.From); err != nil {
		return order.Filter{}, errs.NewValueIsInvalidErrorWithCause("from", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "to", c.QueryParams(), &params.To); err != nil {
		return order.Filter{}, errs.NewValueIsInvalidErrorWithCause("to", err)
	}

	filter := order.Filter{CreatedFrom: params.From, CreatedTo: params.To}
	var statuses []string
	if params.Statuses != nil {
		statuses = *params.Statuses
	}
	for _, raw := range statuses {
		for _, name := range strings.Split(raw, ",") {
			if strings.TrimSpace(name) == "" {
				continue
			}
			status, err := order.ParseStatus(name)
			if err != nil {
				return order.Filter{}, err
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}

	var err error
	if filter.CustomerID, err = parseIDParam(c, "customerId"); err != nil {
		return order.Filter{}, err
	}
	if filter.CourierID, err = parseIDParam(c, "courierId"); err != nil {
		return order.Filter{}, err
	}
	filter.Search = strings.TrimSpace(c.QueryParam("q"))

	return filter, nil
}

func parseIDParam(c echo.Context, name string) (*kernel.UUID, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	id, err := parseID(name, raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
