package order

import (
	"slices"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Filter narrows an order listing. Zero values mean "no restriction".
type Filter struct {
	Statuses    []Status
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	CustomerID  *kernel.UUID
	CourierID   *kernel.UUID
	Search      string
}

// Scope is the set of orders an actor may see plus the requested filter.
type Scope struct {
	role       kernel.Role
	customerID kernel.UUID
	courierID  kernel.UUID
	filter     Filter
}

// KitchenStatuses are the statuses visible to the kitchen.
func KitchenStatuses() []Status {
	return []Status{Pending, Confirmed, InPreparation, OutForDelivery}
}

// ClaimableStatuses are the statuses in which an unassigned order is offered to couriers.
func ClaimableStatuses() []Status {
	return []Status{Confirmed, InPreparation}
}

// NewScope builds the visibility scope for actor. For couriers, courierID is
// the courier aggregate linked to the actor's user id and is required.
func NewScope(actor kernel.Actor, courierID *kernel.UUID, filter Filter) (Scope, error) {
	if err := actor.Validate(); err != nil {
		return Scope{}, err
	}

	s := Scope{role: actor.Role, filter: filter}
	switch actor.Role {
	case kernel.RoleCustomer:
		s.customerID = actor.ID
	case kernel.RoleCourier:
		if courierID == nil {
			return Scope{}, errs.NewValueIsRequiredError("courierId")
		}
		s.courierID = *courierID
	case kernel.RoleKitchen, kernel.RoleSalesAdmin, kernel.RoleUnknown:
	}

	s.filter.Search = strings.TrimSpace(filter.Search)
	return s, nil
}

func (s Scope) Role() kernel.Role {
	return s.role
}

// CustomerID is set for Customer scopes.
func (s Scope) CustomerID() kernel.UUID {
	return s.customerID
}

// CourierID is set for Courier scopes.
func (s Scope) CourierID() kernel.UUID {
	return s.courierID
}

func (s Scope) Filter() Filter {
	return s.filter
}

// Visible reports whether the role part of the scope admits o.
func (s Scope) Visible(o *Order) bool {
	switch s.role {
	case kernel.RoleCustomer:
		return o.customerID.IsEqual(s.customerID)
	case kernel.RoleKitchen:
		return slices.Contains(KitchenStatuses(), o.status)
	case kernel.RoleCourier:
		if o.courierID != nil {
			return o.courierID.IsEqual(s.courierID)
		}
		return slices.Contains(ClaimableStatuses(), o.status)
	case kernel.RoleSalesAdmin:
		return true
	default:
		return false
	}
}

// Matches reports whether o is visible and passes the filter.
func (s Scope) Matches(o *Order) bool {
	if !s.Visible(o) {
		return false
	}

	f := s.filter
	if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, o.status) {
		return false
	}
	if f.CreatedFrom != nil && o.createdAt.Before(*f.CreatedFrom) {
		return false
	}
	if f.CreatedTo != nil && o.createdAt.After(*f.CreatedTo) {
		return false
	}
	if f.CustomerID != nil && !o.customerID.IsEqual(*f.CustomerID) {
		return false
	}
	if f.CourierID != nil && !o.IsAssignedTo(*f.CourierID) {
		return false
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(o.id.String()), term) &&
			!strings.Contains(strings.ToLower(o.deliveryAddress), term) &&
			!strings.Contains(strings.ToLower(o.observations), term) {
			return false
		}
	}
	return true
}
