package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/pkg/errs"
)

// MaxQuantity bounds a single order so accumulated demand and the derived price stay
// within the store's numeric columns.
const MaxQuantity = 1_000_000

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is a placed order. It is created once by order intake and never changes afterwards:
// the type exposes no mutators.
//
// Invariants:
//   - id is a valid UUID
//   - productID is not blank
//   - quantity is in [1, MaxQuantity]
//   - placedAt is set (stored with millisecond precision)
type Order struct {
	id        kernel.UUID
	productID string
	quantity  int
	placedAt  time.Time

	isConstructed bool
}

// NewOrder validates and builds a new order placed at placedAt.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), "sku-42", 3, time.Now())
//	if err != nil {
//	    return err // validation error, nothing persisted
//	}
func NewOrder(id kernel.UUID, productID string, quantity int, placedAt time.Time) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(id),
		o.setProductID(productID),
		o.setQuantity(quantity),
		o.setPlacedAt(placedAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order read from storage; timestamp is unix milliseconds.
func RestoreOrder(id kernel.UUID, productID string, quantity int, timestamp int64) (*Order, error) {
	return NewOrder(id, productID, quantity, time.UnixMilli(timestamp))
}

// Validate ensures the Order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) ProductID() string {
	return o.productID
}

func (o *Order) Quantity() int {
	return o.quantity
}

func (o *Order) PlacedAt() time.Time {
	return o.placedAt
}

// Timestamp returns the placement time in unix milliseconds, the wire and storage format.
func (o *Order) Timestamp() int64 {
	return o.placedAt.UnixMilli()
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setProductID(productID string) error {
	if strings.TrimSpace(productID) == "" {
		return errs.NewValueIsRequiredError("product_id")
	}
	o.productID = productID
	return nil
}

func (o *Order) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if quantity > MaxQuantity {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxQuantity)
	}
	o.quantity = quantity
	return nil
}

func (o *Order) setPlacedAt(placedAt time.Time) error {
	if placedAt.IsZero() {
		return errs.NewValueIsRequiredError("timestamp")
	}
	o.placedAt = placedAt.Truncate(time.Millisecond)
	return nil
}
