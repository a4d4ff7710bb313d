package commands

import (
	"errors"
	"strings"

	"pricing/internal/pkg/errs"
	"pricing/internal/pkg/guard"
)

var ErrRecalculatePriceCommandIsNotConstructed = errors.New(
	"RecalculatePriceCommand must be created via NewRecalculatePriceCommand constructor",
)

// RecalculatePriceCommand asks the pricing stage to reprice a product in high demand.
// The demand carried by HighDemandDetected is not part of the command: the stage reads
// the stored demand.
type RecalculatePriceCommand struct { //nolint:recvcheck //using for validation
	productID string

	guard guard.ConstructorGuard
}

func NewRecalculatePriceCommand(productID string) (RecalculatePriceCommand, error) {
	cmd := RecalculatePriceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setProductID(productID); err != nil {
		return RecalculatePriceCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecalculatePriceCommand) Validate() error {
	return c.guard.Validate(ErrRecalculatePriceCommandIsNotConstructed)
}

func (c RecalculatePriceCommand) ProductID() string {
	return c.productID
}

func (c *RecalculatePriceCommand) setProductID(productID string) error {
	if strings.TrimSpace(productID) == "" {
		return errs.NewValueIsRequiredError("product_id")
	}

	c.productID = productID
	return nil
}
