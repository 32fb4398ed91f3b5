package commands

import (
	"context"
)

// DeactivateExpiredOffersCommandHandler switches off every active offer whose
// end date has passed. It returns how many offers were deactivated.
type DeactivateExpiredOffersCommandHandler struct {
	uowFactory OfferUoWFactory
}

// NewDeactivateExpiredOffersCommandHandler creates the handler run by the offer
// expiration job.
func NewDeactivateExpiredOffersCommandHandler(uowFactory OfferUoWFactory) DeactivateExpiredOffersCommandHandler {
	return DeactivateExpiredOffersCommandHandler{uowFactory: uowFactory}
}

// Handle commits only when at least one offer changed.
func (h DeactivateExpiredOffersCommandHandler) Handle(ctx context.Context, cmd DeactivateExpiredOffersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	expired, err := uow.OfferRepository().ListExpiredActive(ctx, cmd.Now())
	if err != nil {
		return 0, err
	}

	deactivated := 0
	for _, o := range expired {
		if !o.Deactivate(cmd.Now()) {
			continue
		}
		if err = uow.OfferRepository().Update(ctx, o); err != nil {
			return 0, err
		}
		deactivated++
	}

	if deactivated == 0 {
		return 0, nil
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return deactivated, nil
}
