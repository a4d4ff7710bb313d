package queries

import (
	"errors"
	"strings"

	"pricing/internal/pkg/errs"
	"pricing/internal/pkg/guard"
)

var ErrGetProductDemandQueryIsNotConstructed = errors.New(
	"GetProductDemandQuery must be created via NewGetProductDemandQuery constructor",
)

// GetProductDemandQuery reads the accumulated demand of a product.
type GetProductDemandQuery struct {
	productID string

	guard guard.ConstructorGuard
}

func NewGetProductDemandQuery(productID string) (GetProductDemandQuery, error) {
	if strings.TrimSpace(productID) == "" {
		return GetProductDemandQuery{}, errs.NewValueIsRequiredError("product_id")
	}
	return GetProductDemandQuery{productID: productID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetProductDemandQuery) Validate() error {
	return q.guard.Validate(ErrGetProductDemandQueryIsNotConstructed)
}

func (q GetProductDemandQuery) ProductID() string {
	return q.productID
}

type GetProductDemandQueryResponse struct {
	ProductID string
	Demand    int
}
