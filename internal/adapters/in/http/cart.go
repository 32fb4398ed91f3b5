package http

import (
	"net/http"

	"fulfillment/internal/core/application/cartsession"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// GetCart handles GET /api/v1/cart.
func (s *Server) GetCart(c echo.Context) error {
	session, err := s.customerCart(c)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toCart(session.Snapshot()))
}

// AddCartItem handles POST /api/v1/cart/items. Name and price are taken from
// the catalog, never from the client.
func (s *Server) AddCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	session, err := s.customerCart(c)
	if err != nil {
		return s.writeError(c, err)
	}

	var req CartItemRequest
	if err = bind(c, &req); err != nil {
		return s.writeError(c, err)
	}
	ref, err := parseItemRef(req.Kind, req.ReferenceID)
	if err != nil {
		return s.writeError(c, err)
	}

	entry, err := s.catalog.Lookup(ctx, ref)
	if err != nil {
		return s.writeError(c, err)
	}

	if err = session.AddItem(ctx, ref, entry.Name, entry.UnitPrice, req.Quantity); err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toCart(session.Snapshot()))
}

// UpdateCartItem handles PUT /api/v1/cart/items/:kind/:referenceId. A
// quantity of zero removes the item.
func (s *Server) UpdateCartItem(c echo.Context) error {
	session, err := s.customerCart(c)
	if err != nil {
		return s.writeError(c, err)
	}
	ref, err := parseItemRef(c.Param("kind"), c.Param("referenceId"))
	if err != nil {
		return s.writeError(c, err)
	}

	var req QuantityRequest
	if err = bind(c, &req); err != nil {
		return s.writeError(c, err)
	}

	if err = session.UpdateQuantity(c.Request().Context(), ref, req.Quantity); err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, toCart(session.Snapshot()))
}

// RemoveCartItem handles DELETE /api/v1/cart/items/:kind/:referenceId.
func (s *Server) RemoveCartItem(c echo.Context) error {
	session, err := s.customerCart(c)
	if err != nil {
		return s.writeError(c, err)
	}
	ref, err := parseItemRef(c.Param("kind"), c.Param("referenceId"))
	if err != nil {
		return s.writeError(c, err)
	}

	session.RemoveItem(c.Request().Context(), ref)
	return c.JSON(http.StatusOK, toCart(session.Snapshot()))
}

// ClearCart handles DELETE /api/v1/cart.
func (s *Server) ClearCart(c echo.Context) error {
	session, err := s.customerCart(c)
	if err != nil {
		return s.writeError(c, err)
	}

	session.Clear(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) customerCart(c echo.Context) (*cartsession.Session, error) {
	actor, err := s.actor(c)
	if err != nil {
		return nil, err
	}
	if !actor.Is(kernel.RoleCustomer) {
		return nil, errs.NewForbiddenError("cart", "only customers have a cart")
	}
	return s.carts.Get(c.Request().Context(), actor.ID)
}

func parseItemRef(kind, referenceID string) (kernel.ItemRef, error) {
	k, err := kernel.ParseItemKind(kind)
	if err != nil {
		return kernel.ItemRef{}, err
	}
	id, err := parseID("referenceId", referenceID)
	if err != nil {
		return kernel.ItemRef{}, err
	}
	return kernel.NewItemRef(k, id)
}
