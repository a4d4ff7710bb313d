package pricingrepo

import (
	"context"
	"errors"

	"pricing/internal/core/domain/model/pricing"
	"pricing/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPricingRepository implements PricingRepository using GORM.
type GormPricingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(key string, aggregate any)
}

func NewGormPricingRepository(db *gorm.DB, tracker aggregateTracker) *GormPricingRepository {
	return &GormPricingRepository{
		db:      db,
		tracker: tracker,
	}
}

// Get retrieves the pricing of a product.
func (r *GormPricingRepository) Get(ctx context.Context, productID string) (*pricing.Record, error) {
	var dto PricingDTO
	if err := r.db.WithContext(ctx).First(&dto, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pricing", productID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Add saves a new pricing record with its base price and factor.
func (r *GormPricingRepository) Add(ctx context.Context, record *pricing.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(record.ProductID(), record)
	return nil
}

// Update writes current_price only.
func (r *GormPricingRepository) Update(ctx context.Context, record *pricing.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&PricingDTO{}).
		Where("product_id = ?", record.ProductID()).
		Update("current_price", record.CurrentPrice())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(record.ProductID(), record)
	return nil
}
