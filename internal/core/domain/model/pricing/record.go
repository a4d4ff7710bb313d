package pricing

import (
	"errors"
	"strings"

	"pricing/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrRecordIsNotConstructed is returned when a Record bypassed NewRecord/RestoreRecord.
var ErrRecordIsNotConstructed = errors.New("pricing Record must be created via NewRecord constructor")

// Record holds the pricing parameters and the current price of one product.
// basePrice and priceFactor are fixed at creation.
type Record struct {
	productID    string
	basePrice    decimal.Decimal
	priceFactor  decimal.Decimal
	currentPrice decimal.Decimal

	isConstructed bool
}

// Price evaluates base + demand * factor.
func Price(basePrice, priceFactor decimal.Decimal, demand int) decimal.Decimal {
	return basePrice.Add(priceFactor.Mul(decimal.NewFromInt(int64(demand))))
}

// NewRecord creates the pricing of a product and computes its first price from demand.
//
// Example:
//
//	r, _ := pricing.NewRecord("sku-1", decimal.NewFromInt(100), decimal.RequireFromString("1.5"), 25)
//	r.CurrentPrice().String() // "137.5"
func NewRecord(productID string, basePrice, priceFactor decimal.Decimal, demand int) (*Record, error) {
	r := &Record{
		basePrice:     basePrice,
		priceFactor:   priceFactor,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setProductID(productID),
		validateDemand(demand),
	); err != nil {
		return nil, err
	}

	r.currentPrice = Price(basePrice, priceFactor, demand)
	return r, nil
}

// RestoreRecord rebuilds a record read from storage without recomputing its price.
func RestoreRecord(productID string, basePrice, priceFactor, currentPrice decimal.Decimal) (*Record, error) {
	r := &Record{
		basePrice:     basePrice,
		priceFactor:   priceFactor,
		currentPrice:  currentPrice,
		isConstructed: true,
	}

	if err := r.setProductID(productID); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate ensures the Record was built by a constructor.
func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

func (r *Record) ProductID() string {
	return r.productID
}

func (r *Record) BasePrice() decimal.Decimal {
	return r.basePrice
}

func (r *Record) PriceFactor() decimal.Decimal {
	return r.priceFactor
}

func (r *Record) CurrentPrice() decimal.Decimal {
	return r.currentPrice
}

// Reprice recomputes the current price from the stored base price and factor.
// It returns the new price; applying the same demand twice yields the same price.
func (r *Record) Reprice(demand int) (decimal.Decimal, error) {
	if err := validateDemand(demand); err != nil {
		return r.currentPrice, err
	}
	r.currentPrice = Price(r.basePrice, r.priceFactor, demand)
	return r.currentPrice, nil
}

func (r *Record) setProductID(productID string) error {
	if strings.TrimSpace(productID) == "" {
		return errs.NewValueIsRequiredError("product_id")
	}
	r.productID = productID
	return nil
}

func validateDemand(demand int) error {
	if demand < 0 {
		return errs.NewValueIsOutOfRangeError("demand", demand, 0, "unbounded")
	}
	return nil
}
