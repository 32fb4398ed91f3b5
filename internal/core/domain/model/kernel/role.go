package kernel

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Role is the capability an actor acts under. The order state machine is keyed by it.
type Role int

const (
	RoleUnknown Role = iota
	RoleCustomer
	RoleKitchen
	RoleSalesAdmin
	RoleCourier
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:    "Unknown",
		RoleCustomer:   "Customer",
		RoleKitchen:    "Kitchen",
		RoleSalesAdmin: "SalesAdmin",
		RoleCourier:    "Courier",
	}
}

// ParseRole accepts the String form case-insensitively plus the "sales" and
// "admin" aliases used by the identity provider.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "customer":
		return RoleCustomer, nil
	case "kitchen":
		return RoleKitchen, nil
	case "salesadmin", "sales_admin", "sales", "admin":
		return RoleSalesAdmin, nil
	case "courier":
		return RoleCourier, nil
	default:
		return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("unknown role %q", s))
	}
}

func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return fmt.Sprintf("Role(%d)", r)
}

func (r Role) Validate() error {
	if r <= RoleUnknown || r > RoleCourier {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("unsupported role value %d", r))
	}
	return nil
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   UUID
	Role Role
}

func NewActor(id UUID, role Role) (Actor, error) {
	a := Actor{ID: id, Role: role}
	if err := a.Validate(); err != nil {
		return Actor{}, err
	}
	return a, nil
}

func (a Actor) Validate() error {
	if err := a.ID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actor.id", err)
	}
	return a.Role.Validate()
}

func (a Actor) Is(role Role) bool {
	return a.Role == role
}
