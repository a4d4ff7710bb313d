// Package orderrepo persists order aggregates with GORM.
// Orders are append-only: intake adds them, the demand stage reads them.
package orderrepo

import (
	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure of an order.
type OrderDTO struct {
	OrderID   uuid.UUID `gorm:"column:order_id;type:uuid;primaryKey"`
	ProductID string    `gorm:"column:product_id;not null;index"`
	Quantity  int       `gorm:"column:quantity;not null"`
	PlacedAt  int64     `gorm:"column:placed_at;not null"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		OrderID:   o.ID().Bytes(),
		ProductID: o.ProductID(),
		Quantity:  o.Quantity(),
		PlacedAt:  o.Timestamp(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, dto.ProductID, dto.Quantity, dto.PlacedAt)
}
