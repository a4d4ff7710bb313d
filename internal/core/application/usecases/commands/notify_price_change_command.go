package commands

import (
	"errors"
	"strings"

	"pricing/internal/pkg/errs"
	"pricing/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrNotifyPriceChangeCommandIsNotConstructed = errors.New(
	"NotifyPriceChangeCommand must be created via NewNotifyPriceChangeCommand constructor",
)

// NotifyPriceChangeCommand carries a PriceChanged payload to the notifier.
type NotifyPriceChangeCommand struct { //nolint:recvcheck //using for validation
	productID string
	newPrice  decimal.Decimal

	guard guard.ConstructorGuard
}

// NewNotifyPriceChangeCommand validates the product id and parses newPrice, the textual
// form of the JSON number carried by PriceChanged.
func NewNotifyPriceChangeCommand(productID, newPrice string) (NotifyPriceChangeCommand, error) {
	cmd := NotifyPriceChangeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setProductID(productID),
		cmd.setNewPrice(newPrice),
	); err != nil {
		return NotifyPriceChangeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c NotifyPriceChangeCommand) Validate() error {
	return c.guard.Validate(ErrNotifyPriceChangeCommandIsNotConstructed)
}

func (c NotifyPriceChangeCommand) ProductID() string {
	return c.productID
}

func (c NotifyPriceChangeCommand) NewPrice() decimal.Decimal {
	return c.newPrice
}

func (c *NotifyPriceChangeCommand) setProductID(productID string) error {
	if strings.TrimSpace(productID) == "" {
		return errs.NewValueIsRequiredError("product_id")
	}

	c.productID = productID
	return nil
}

func (c *NotifyPriceChangeCommand) setNewPrice(newPrice string) error {
	if strings.TrimSpace(newPrice) == "" {
		return errs.NewValueIsRequiredError("new_price")
	}

	price, err := decimal.NewFromString(newPrice)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("new_price", err)
	}

	c.newPrice = price
	return nil
}
