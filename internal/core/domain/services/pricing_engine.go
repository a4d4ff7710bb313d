package services

import (
	"pricing/internal/core/domain/model/pricing"

	"github.com/shopspring/decimal"
)

const (
	// HighDemandThreshold is the demand at or above which a product is repriced.
	HighDemandThreshold = 20
)

var (
	DefaultBasePrice   = decimal.NewFromInt(100)
	DefaultPriceFactor = decimal.RequireFromString("1.5")
)

// PricingEngine is a stateless domain service deciding when a product is in high demand
// and what it costs.
//
// Example usage:
//
//	engine := services.NewPricingEngine()
//	if engine.IsHighDemand(demand) {
//	    record, _ := engine.NewPricing("sku-1", demand) // 100 + demand * 1.5
//	}
type PricingEngine struct {
	threshold   int
	basePrice   decimal.Decimal
	priceFactor decimal.Decimal
}

// NewPricingEngine returns an engine with the default threshold and pricing parameters.
func NewPricingEngine() PricingEngine {
	return PricingEngine{
		threshold:   HighDemandThreshold,
		basePrice:   DefaultBasePrice,
		priceFactor: DefaultPriceFactor,
	}
}

func (e PricingEngine) Threshold() int {
	return e.threshold
}

// IsHighDemand reports whether demand reached the threshold. It fires for every value
// at or above the threshold, not only on the crossing.
func (e PricingEngine) IsHighDemand(demand int) bool {
	return demand >= e.threshold
}

// NewPricing creates the pricing record of a product seen in high demand for the first time.
func (e PricingEngine) NewPricing(productID string, demand int) (*pricing.Record, error) {
	return pricing.NewRecord(productID, e.basePrice, e.priceFactor, demand)
}

// Reprice applies the formula with the record's own base price and factor.
func (e PricingEngine) Reprice(record *pricing.Record, demand int) (decimal.Decimal, error) {
	if err := record.Validate(); err != nil {
		return decimal.Zero, err
	}
	return record.Reprice(demand)
}
