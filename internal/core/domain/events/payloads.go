package events

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// OrderPlaced is emitted by the intake stage after an order is persisted.
// Fields are pointers so an absent field can be told apart from a zero value.
type OrderPlaced struct {
	OrderID   *string `json:"order_id"`
	ProductID *string `json:"product_id"`
	Quantity  *int    `json:"quantity"`
	Timestamp *int64  `json:"timestamp"`
}

// NewOrderPlaced builds a fully populated payload.
func NewOrderPlaced(orderID, productID string, quantity int, timestamp int64) OrderPlaced {
	return OrderPlaced{
		OrderID:   &orderID,
		ProductID: &productID,
		Quantity:  &quantity,
		Timestamp: &timestamp,
	}
}

// HighDemandDetected is emitted when a product's demand reaches the threshold.
// Demand is informational; the recalculator re-reads it from the store.
type HighDemandDetected struct {
	ProductID *string `json:"product_id"`
	Demand    *int    `json:"demand"`
}

func NewHighDemandDetected(productID string, demand int) HighDemandDetected {
	return HighDemandDetected{ProductID: &productID, Demand: &demand}
}

// PriceChanged is emitted whenever a product's current price is written.
type PriceChanged struct {
	ProductID *string      `json:"product_id"`
	NewPrice  *json.Number `json:"new_price"`
}

// NewPriceChanged encodes price as a JSON number without losing decimal digits.
func NewPriceChanged(productID string, price decimal.Decimal) PriceChanged {
	n := json.Number(price.String())
	return PriceChanged{ProductID: &productID, NewPrice: &n}
}
