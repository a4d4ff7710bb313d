package ports

import (
	"context"

	"pricing/internal/core/domain/model/pricing"
)

// PricingRepository defines the persistence contract for pricing records.
type PricingRepository interface {
	// Get retrieves the pricing record of a product.
	// Returns errs.ObjectNotFoundError when the product was never priced.
	Get(ctx context.Context, productID string) (*pricing.Record, error)

	// Add persists a new pricing record.
	Add(ctx context.Context, record *pricing.Record) error

	// Update writes the record's current price. Base price and factor are never rewritten.
	Update(ctx context.Context, record *pricing.Record) error
}
