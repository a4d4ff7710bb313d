package queries

import (
	"context"
	"database/sql"
	"errors"

	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a row of the orders table.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError for an unknown order id.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var (
		response GetOrderQueryResponse
		id       uuid.UUID
	)
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			product_id,
			quantity,
			placed_at
		FROM orders
		WHERE order_id = ?
	`, query.OrderID().Bytes()).Row()

	err := row.Scan(&id, &response.ProductID, &response.Quantity, &response.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	response.OrderID = orderID

	return response, nil
}
