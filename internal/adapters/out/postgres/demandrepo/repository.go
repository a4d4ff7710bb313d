package demandrepo

import (
	"context"
	"errors"
	"time"

	"pricing/internal/core/domain/model/demand"
	"pricing/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDemandRepository implements DemandRepository using GORM.
type GormDemandRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(key string, aggregate any)
}

func NewGormDemandRepository(db *gorm.DB, tracker aggregateTracker) *GormDemandRepository {
	return &GormDemandRepository{
		db:      db,
		tracker: tracker,
	}
}

// Get retrieves the demand of a product.
func (r *GormDemandRepository) Get(ctx context.Context, productID string) (*demand.Record, error) {
	var dto DemandDTO
	if err := r.db.WithContext(ctx).First(&dto, "product_id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("demand", productID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Add inserts the first demand row of a product.
func (r *GormDemandRepository) Add(ctx context.Context, record *demand.Record) error {
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

// Update writes the record's demand back. This is the write half of read-modify-write:
// the stored value is overwritten, not incremented.
func (r *GormDemandRepository) Update(ctx context.Context, record *demand.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&DemandDTO{}).
		Where("product_id = ?", record.ProductID()).
		Update("demand", record.Demand())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(record.ProductID(), record)
	return nil
}

// Increment adds quantity with UPDATE ... SET demand = demand + ?, inserting the row when
// the product has no demand yet, then re-reads the total. The update only applies while the
// result stays within demand.MaxDemand.
func (r *GormDemandRepository) Increment(ctx context.Context, productID string, quantity int) (int, error) {
	if quantity <= 0 || quantity > demand.MaxDemand {
		return 0, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, demand.MaxDemand)
	}

	db := r.db.WithContext(ctx)
	updated, err := r.incrementExisting(db, productID, quantity)
	if err != nil {
		return 0, err
	}

	if !updated {
		inserted := db.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&DemandDTO{ProductID: productID, Demand: quantity})
		if inserted.Error != nil {
			return 0, inserted.Error
		}
		// The row exists: either another writer created it first or the bound was hit.
		if inserted.RowsAffected == 0 {
			if updated, err = r.incrementExisting(db, productID, quantity); err != nil {
				return 0, err
			}
			if !updated {
				return 0, errs.NewValueIsOutOfRangeError("demand", quantity, 0, demand.MaxDemand)
			}
		}
	}

	record, err := r.Get(ctx, productID)
	if err != nil {
		return 0, err
	}

	r.tracker.TrackAggregate(productID, record)
	return record.Demand(), nil
}

func (r *GormDemandRepository) incrementExisting(db *gorm.DB, productID string, quantity int) (bool, error) {
	result := db.Model(&DemandDTO{}).
		Where("product_id = ? AND demand <= ?", productID, demand.MaxDemand-quantity).
		Update("demand", gorm.Expr("demand + ?", quantity))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// RecordContribution inserts the contribution unless its order was already counted.
func (r *GormDemandRepository) RecordContribution(ctx context.Context, contribution demand.Contribution) (bool, error) {
	if err := contribution.OrderID().Validate(); err != nil {
		return false, err
	}

	dto := contributionFromDomain(contribution, time.Now().UTC())
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "order_id"}}, DoNothing: true}).
		Create(&dto)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}
