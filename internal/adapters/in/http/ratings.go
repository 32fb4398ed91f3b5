package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// SubmitRating handles POST /api/v1/ratings.
func (s *Server) SubmitRating(c echo.Context) error {
	actor, err := s.actor(c)
	if err != nil {
		return s.writeError(c, err)
	}

	var req SubmitRatingRequest
	if err = bind(c, &req); err != nil {
		return s.writeError(c, err)
	}
	orderID, err := parseID("orderId", req.OrderID)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewSubmitRatingCommand(actor, orderID, req.FoodScore, req.ServiceScore, req.DeliveryScore, req.Comment)
	if err != nil {
		return s.writeError(c, err)
	}

	created, err := s.handlers.SubmitRating.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toRating(created))
}

// DeleteRating handles DELETE /api/v1/ratings/:id.
func (s *Server) DeleteRating(c echo.Context) error {
	actor, err := s.actor(c)
	if err != nil {
		return s.writeError(c, err)
	}
	ratingID, err := pathID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewDeleteRatingCommand(actor, ratingID)
	if err != nil {
		return s.writeError(c, err)
	}

	if err = s.handlers.DeleteRating.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetRatableOrders handles GET /api/v1/ratings/ratable.
func (s *Server) GetRatableOrders(c echo.Context) error {
	actor, err := s.actor(c)
	if err != nil {
		return s.writeError(c, err)
	}

	query, err := queries.NewRatableOrdersQuery(actor)
	if err != nil {
		return s.writeError(c, err)
	}

	rows, err := s.handlers.RatableOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	response := make([]RatableOrder, len(rows))
	for i, r := range rows {
		response[i] = RatableOrder{OrderID: r.OrderID.String(), Total: r.Total, DeliveredAt: r.DeliveredAt}
	}
	return c.JSON(http.StatusOK, response)
}
