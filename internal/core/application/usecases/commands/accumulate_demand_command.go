package commands

import (
	"errors"
	"fmt"
	"strings"

	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/core/domain/model/order"
	"pricing/internal/pkg/errs"
	"pricing/internal/pkg/guard"
)

var ErrAccumulateDemandCommandIsNotConstructed = errors.New(
	"AccumulateDemandCommand must be created via NewAccumulateDemandCommand constructor",
)

// AccumulateDemandCommand carries one OrderPlaced payload into the demand stage.
type AccumulateDemandCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	productID string
	quantity  int

	guard guard.ConstructorGuard
}

// NewAccumulateDemandCommand validates an OrderPlaced payload. A zero quantity is treated
// as missing, so is an empty order or product id.
func NewAccumulateDemandCommand(orderID, productID string, quantity int) (AccumulateDemandCommand, error) {
	cmd := AccumulateDemandCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setProductID(productID),
		cmd.setQuantity(quantity),
	); err != nil {
		return AccumulateDemandCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AccumulateDemandCommand) Validate() error {
	return c.guard.Validate(ErrAccumulateDemandCommandIsNotConstructed)
}

func (c AccumulateDemandCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AccumulateDemandCommand) ProductID() string {
	return c.productID
}

func (c AccumulateDemandCommand) Quantity() int {
	return c.quantity
}

func (c *AccumulateDemandCommand) setOrderID(orderID string) error {
	if strings.TrimSpace(orderID) == "" {
		return errs.NewValueIsRequiredError("order_id")
	}

	id, err := kernel.UUIDFromString(orderID)
	if err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *AccumulateDemandCommand) setProductID(productID string) error {
	if strings.TrimSpace(productID) == "" {
		return errs.NewValueIsRequiredError("product_id")
	}

	c.productID = productID
	return nil
}

func (c *AccumulateDemandCommand) setQuantity(quantity int) error {
	if quantity == 0 {
		return errs.NewValueIsRequiredError("quantity")
	}
	if quantity < 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if quantity > order.MaxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, order.MaxQuantity)
	}

	c.quantity = quantity
	return nil
}
