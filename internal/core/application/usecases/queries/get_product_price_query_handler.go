package queries

import (
	"context"
	"database/sql"
	"errors"

	"pricing/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetProductPriceQueryHandler reads a row of the pricing table.
type GetProductPriceQueryHandler struct {
	db *gorm.DB
}

func NewGetProductPriceQueryHandler(db *gorm.DB) GetProductPriceQueryHandler {
	return GetProductPriceQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError when the product was never priced.
func (h GetProductPriceQueryHandler) Handle(
	ctx context.Context,
	query GetProductPriceQuery,
) (GetProductPriceQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetProductPriceQueryResponse{}, err
	}

	var response GetProductPriceQueryResponse
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			product_id,
			base_price,
			price_factor,
			current_price
		FROM pricing
		WHERE product_id = ?
	`, query.ProductID()).Row()

	err := row.Scan(
		&response.ProductID,
		&response.BasePrice,
		&response.PriceFactor,
		&response.CurrentPrice,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetProductPriceQueryResponse{}, errs.NewObjectNotFoundError("pricing", query.ProductID())
	}
	if err != nil {
		return GetProductPriceQueryResponse{}, err
	}

	return response, nil
}
