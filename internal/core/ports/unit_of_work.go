package ports

import (
	"context"
)

type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// Repositories are bound to the transaction started by Begin.
	CourierRepository() CourierRepository
	OrderRepository() OrderRepository
	RatingRepository() RatingRepository
	OfferRepository() OfferRepository
	StatusChangeLog() StatusChangeLog
}
