package queries

import (
	"context"
	"database/sql"
	"errors"

	"pricing/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetProductDemandQueryHandler reads a row of the demand table.
type GetProductDemandQueryHandler struct {
	db *gorm.DB
}

func NewGetProductDemandQueryHandler(db *gorm.DB) GetProductDemandQueryHandler {
	return GetProductDemandQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError when no order for the product was counted yet.
func (h GetProductDemandQueryHandler) Handle(
	ctx context.Context,
	query GetProductDemandQuery,
) (GetProductDemandQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetProductDemandQueryResponse{}, err
	}

	var response GetProductDemandQueryResponse
	row := h.db.WithContext(ctx).Raw(`
		SELECT product_id, demand
		FROM demand
		WHERE product_id = ?
	`, query.ProductID()).Row()

	err := row.Scan(&response.ProductID, &response.Demand)
	if errors.Is(err, sql.ErrNoRows) {
		return GetProductDemandQueryResponse{}, errs.NewObjectNotFoundError("demand", query.ProductID())
	}
	if err != nil {
		return GetProductDemandQueryResponse{}, err
	}

	return response, nil
}
