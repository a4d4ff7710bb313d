package demand

import (
	"errors"

	"pricing/internal/core/domain/model/kernel"
)

// Contribution records that the quantity of one order was added to a product's demand.
// It is keyed by order id, so a second contribution for the same order is a duplicate delivery.
type Contribution struct {
	orderID   kernel.UUID
	productID string
	quantity  int
}

// NewContribution validates and builds a contribution.
func NewContribution(orderID kernel.UUID, productID string, quantity int) (Contribution, error) {
	probe := &Record{}
	if err := errors.Join(
		orderID.Validate(),
		probe.setProductID(productID),
		validateQuantity(quantity),
	); err != nil {
		return Contribution{}, err
	}

	return Contribution{orderID: orderID, productID: productID, quantity: quantity}, nil
}

func (c Contribution) OrderID() kernel.UUID {
	return c.orderID
}

func (c Contribution) ProductID() string {
	return c.productID
}

func (c Contribution) Quantity() int {
	return c.quantity
}
