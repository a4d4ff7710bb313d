package ports

import (
	"context"

	"pricing/internal/core/domain/model/demand"
)

// DemandRepository defines the persistence contract for demand records and the
// contributions counted into them.
type DemandRepository interface {
	// Get retrieves the demand record of a product.
	// Returns errs.ObjectNotFoundError when the product has no demand yet.
	Get(ctx context.Context, productID string) (*demand.Record, error)

	// Add persists the first demand record of a product.
	Add(ctx context.Context, record *demand.Record) error

	// Update overwrites the stored demand with the record's value.
	Update(ctx context.Context, record *demand.Record) error

	// Increment adds quantity to the stored demand in a single statement, creating the
	// record when absent, and returns the demand after the update.
	Increment(ctx context.Context, productID string, quantity int) (int, error)

	// RecordContribution stores that an order was counted into demand.
	// It returns false when the order had already been recorded.
	RecordContribution(ctx context.Context, contribution demand.Contribution) (bool, error)
}
