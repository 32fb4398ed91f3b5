package order

import (
	"slices"

	"fulfillment/internal/core/domain/model/kernel"
)

type transitionKey struct {
	from Status
	role kernel.Role
}

// anyOther marks a table entry that allows every valid status except the current one.
var anyOther = []Status{Unknown}

// getTransitions is the single source of truth for who may move an order where.
// Roles missing for a status may not change it.
func getTransitions() map[transitionKey][]Status {
	return map[transitionKey][]Status{
		{Pending, kernel.RoleKitchen}:    {Confirmed, Cancelled},
		{Pending, kernel.RoleSalesAdmin}: {Confirmed, Cancelled},

		{Confirmed, kernel.RoleKitchen}:    {InPreparation, Cancelled},
		{Confirmed, kernel.RoleSalesAdmin}: anyOther,

		{InPreparation, kernel.RoleKitchen}:    {OutForDelivery, Cancelled},
		{InPreparation, kernel.RoleSalesAdmin}: anyOther,

		{OutForDelivery, kernel.RoleKitchen}:    {Cancelled},
		{OutForDelivery, kernel.RoleSalesAdmin}: anyOther,
		{OutForDelivery, kernel.RoleCourier}:    {Delivered},
	}
}

// AllowedTargets lists, in lifecycle order, the statuses role may move s to.
func (s Status) AllowedTargets(role kernel.Role) []Status {
	allowed, ok := getTransitions()[transitionKey{from: s, role: role}]
	if !ok {
		return []Status{}
	}

	if slices.Equal(allowed, anyOther) {
		targets := make([]Status, 0, len(AllStatuses())-1)
		for _, candidate := range AllStatuses() {
			if candidate != s {
				targets = append(targets, candidate)
			}
		}
		return targets
	}

	targets := slices.Clone(allowed)
	slices.Sort(targets)
	return targets
}

// CanTransitionTo reports whether role may move an order from s to target.
func (s Status) CanTransitionTo(target Status, role kernel.Role) bool {
	if target.Validate() != nil {
		return false
	}
	return slices.Contains(s.AllowedTargets(role), target)
}
