// Package pricingrepo persists pricing records with GORM.
package pricingrepo

import (
	"pricing/internal/core/domain/model/pricing"

	"github.com/shopspring/decimal"
)

// PricingDTO is one row of the pricing table, keyed by product.
type PricingDTO struct {
	ProductID    string          `gorm:"column:product_id;primaryKey"`
	BasePrice    decimal.Decimal `gorm:"column:base_price;type:numeric(20,6);not null"`
	PriceFactor  decimal.Decimal `gorm:"column:price_factor;type:numeric(20,6);not null"`
	CurrentPrice decimal.Decimal `gorm:"column:current_price;type:numeric(20,6);not null"`
}

func (PricingDTO) TableName() string {
	return "pricing"
}

func fromDomain(r *pricing.Record) PricingDTO {
	return PricingDTO{
		ProductID:    r.ProductID(),
		BasePrice:    r.BasePrice(),
		PriceFactor:  r.PriceFactor(),
		CurrentPrice: r.CurrentPrice(),
	}
}

func toDomain(dto PricingDTO) (*pricing.Record, error) {
	return pricing.RestoreRecord(dto.ProductID, dto.BasePrice, dto.PriceFactor, dto.CurrentPrice)
}
