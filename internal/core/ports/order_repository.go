// Package ports defines the contracts between the pricing pipeline core and its
// infrastructure: repositories, the unit of work, the event bus and the
// notification channel.
package ports

import (
	"context"

	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are written once by intake and only read afterwards.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier.
	// Returns errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
