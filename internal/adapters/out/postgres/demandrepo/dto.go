// Package demandrepo persists demand records and the order contributions counted into them.
package demandrepo

import (
	"time"

	"pricing/internal/core/domain/model/demand"

	"github.com/google/uuid"
)

// DemandDTO is one row of the demand table, keyed by product.
type DemandDTO struct {
	ProductID string `gorm:"column:product_id;primaryKey"`
	Demand    int    `gorm:"column:demand;not null"`
}

func (DemandDTO) TableName() string {
	return "demand"
}

// ContributionDTO marks an order as counted into demand.
type ContributionDTO struct {
	OrderID    uuid.UUID `gorm:"column:order_id;type:uuid;primaryKey"`
	ProductID  string    `gorm:"column:product_id;not null;index"`
	Quantity   int       `gorm:"column:quantity;not null"`
	RecordedAt time.Time `gorm:"column:recorded_at;not null"`
}

func (ContributionDTO) TableName() string {
	return "demand_contributions"
}

func fromDomain(r *demand.Record) DemandDTO {
	return DemandDTO{
		ProductID: r.ProductID(),
		Demand:    r.Demand(),
	}
}

func toDomain(dto DemandDTO) (*demand.Record, error) {
	return demand.RestoreRecord(dto.ProductID, dto.Demand)
}

func contributionFromDomain(c demand.Contribution, recordedAt time.Time) ContributionDTO {
	return ContributionDTO{
		OrderID:    c.OrderID().Bytes(),
		ProductID:  c.ProductID(),
		Quantity:   c.Quantity(),
		RecordedAt: recordedAt,
	}
}
