package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	RatingRepoFactory interface {
		RatingRepository() ports.RatingRepository
	}

	OfferRepoFactory interface {
		OfferRepository() ports.OfferRepository
	}

	StatusChangeLogFactory interface {
		StatusChangeLog() ports.StatusChangeLog
	}

	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	CourierUoWFactory interface {
		Create() CourierUoW
	}

	OfferUoW interface {
		TxManager
		OfferRepoFactory
	}

	OfferUoWFactory interface {
		Create() OfferUoW
	}

	UoW interface {
		TxManager
		CourierRepoFactory
		OrderRepoFactory
		RatingRepoFactory
		StatusChangeLogFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
