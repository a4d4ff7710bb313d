// Package queries contains read operations over the pipeline stores.
// Queries bypass the aggregates and read rows directly.
package queries

import (
	"errors"
	"strings"

	"pricing/internal/pkg/errs"
	"pricing/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetProductPriceQueryIsNotConstructed = errors.New(
	"GetProductPriceQuery must be created via NewGetProductPriceQuery constructor",
)

// GetProductPriceQuery reads the current pricing of a product.
//
// Example:
//
//	query, err := NewGetProductPriceQuery("sku-1")
//	price, err := handler.Handle(ctx, query)
//	fmt.Printf("%s costs %s\n", price.ProductID, price.CurrentPrice)
type GetProductPriceQuery struct {
	productID string

	guard guard.ConstructorGuard
}

func NewGetProductPriceQuery(productID string) (GetProductPriceQuery, error) {
	if strings.TrimSpace(productID) == "" {
		return GetProductPriceQuery{}, errs.NewValueIsRequiredError("product_id")
	}
	return GetProductPriceQuery{productID: productID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetProductPriceQuery) Validate() error {
	return q.guard.Validate(ErrGetProductPriceQueryIsNotConstructed)
}

func (q GetProductPriceQuery) ProductID() string {
	return q.productID
}

// GetProductPriceQueryResponse is the pricing read model.
type GetProductPriceQueryResponse struct {
	ProductID    string
	BasePrice    decimal.Decimal
	PriceFactor  decimal.Decimal
	CurrentPrice decimal.Decimal
}
