package commands

import (
	"errors"
	"fmt"
	"strings"

	"pricing/internal/core/domain/model/order"
	"pricing/internal/pkg/errs"
	"pricing/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand represents a customer request to buy quantity units of a product.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand("sku-1", 5)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
//	fmt.Printf("Order %s placed", result.OrderID)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	productID string
	quantity  int

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand validates that product id is present and quantity is positive.
func NewPlaceOrderCommand(productID string, quantity int) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProductID(productID),
		cmd.setQuantity(quantity),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) ProductID() string {
	return c.productID
}

func (c PlaceOrderCommand) Quantity() int {
	return c.quantity
}

func (c *PlaceOrderCommand) setProductID(productID string) error {
	if strings.TrimSpace(productID) == "" {
		return errs.NewValueIsRequiredError("product_id")
	}

	c.productID = productID
	return nil
}

func (c *PlaceOrderCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if quantity > order.MaxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, order.MaxQuantity)
	}

	c.quantity = quantity
	return nil
}
