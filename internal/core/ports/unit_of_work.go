package ports

import (
	"context"
)

// UnitOfWorkFactory hands out a fresh UnitOfWork per handled command or event.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork scopes the store mutations of one pipeline stage.
// Repositories obtained before Begin run against the connection pool.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit fails if no transaction is active.
	Commit(ctx context.Context) error

	// Rollback fails if no transaction is active, so a deferred Rollback after Commit only reports.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	DemandRepository() DemandRepository
	PricingRepository() PricingRepository
}
