package http

import (
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/courier"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// GetCouriers handles GET /api/v1/couriers.
func (s *Server) GetCouriers(c echo.Context) error {
	actor, err := s.actor(c)
	if err != nil {
		return s.writeError(c, err)
	}

	query, err := queries.NewGetAllCouriersQuery(actor)
	if err != nil {
		return s.writeError(c, err)
	}

	rows, err := s.handlers.AllCouriers.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	response := make([]Courier, len(rows))
	for i, r := range rows {
		response[i] = toCourierRow(r)
	}
	return c.JSON(http.StatusOK, response)
}

// CreateCourier handles POST /api/v1/couriers. An empty userId registers the caller.
func (s *Server) CreateCourier(c echo.Context) error {
	actor, err := s.actor(c)
	if err != nil {
		return s.writeError(c, err)
	}

	var req CreateCourierRequest
	if err = bind(c, &req); err != nil {
		return s.writeError(c, err)
	}

	userID := actor.ID
	if req.UserID != "" {
		if userID, err = parseID("userId", req.UserID); err != nil {
			return s.writeError(c, err)
		}
	}

	cmd, err := commands.NewCreateCourierCommand(actor, userID)
	if err != nil {
		return s.writeError(c, err)
	}

	created, err := s.handlers.CreateCourier.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toCourier(created))
}

// ChangeCourierStatus handles PUT /api/v1/couriers/:id/status.
func (s *Server) ChangeCourierStatus(c echo.Context) error {
	actor, err := s.actor(c)
	if err != nil {
		return s.writeError(c, err)
	}
	courierID, err := pathID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	var req StatusRequest
	if err = bind(c, &req); err != nil {
		return s.writeError(c, err)
	}
	status, err := courier.ParseOperationalStatus(req.Status)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewChangeOperationalStatusCommand(actor, courierID, status)
	if err != nil {
		return s.writeError(c, err)
	}

	updated, err := s.handlers.ChangeOperationalStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toCourier(updated))
}

// UpdateCourierLocation handles PUT /api/v1/couriers/:id/location.
func (s *Server) UpdateCourierLocation(c echo.Context) error {
	actor, err := s.actor(c)
	if err != nil {
		return s.writeError(c, err)
	}
	courierID, err := pathID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	var req Location
	if err = bind(c, &req); err != nil {
		return s.writeError(c, err)
	}
	location, err := kernel.NewLocation(req.Latitude, req.Longitude)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewUpdateLocationCommand(actor, courierID, location, time.Now())
	if err != nil {
		return s.writeError(c, err)
	}

	if err = s.handlers.UpdateLocation.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetCourierRating handles GET /api/v1/couriers/:id/rating.
func (s *Server) GetCourierRating(c echo.Context) error {
	if _, err := s.actor(c); err != nil {
		return s.writeError(c, err)
	}
	courierID, err := pathID(c, "id")
	if err != nil {
		return s.writeError(c, err)
	}

	query, err := queries.NewCourierRatingQuery(courierID)
	if err != nil {
		return s.writeError(c, err)
	}

	r, err := s.handlers.CourierRating.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, CourierRating{
		CourierID:       r.CourierID.String(),
		AverageRating:   r.AverageRating,
		RatedDeliveries: r.RatedDeliveries,
	})
}
