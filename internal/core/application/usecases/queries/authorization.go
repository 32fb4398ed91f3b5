package queries

import (
	"slices"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

func requireRole(actor kernel.Actor, operation string, roles ...kernel.Role) error {
	if slices.Contains(roles, actor.Role) {
		return nil
	}
	return errs.NewForbiddenError(operation, "role "+actor.Role.String()+" is not allowed")
}
