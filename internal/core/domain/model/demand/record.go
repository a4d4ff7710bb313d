package demand

import (
	"errors"
	"fmt"
	"strings"

	"pricing/internal/pkg/errs"
)

// MaxDemand caps the running total. base + MaxDemand*factor still fits numeric(20,6).
const MaxDemand = 1_000_000_000_000

// ErrRecordIsNotConstructed is returned when a Record bypassed NewRecord/RestoreRecord.
var ErrRecordIsNotConstructed = errors.New("demand Record must be created via NewRecord constructor")

// Record is the running demand total of a single product, keyed by product id.
type Record struct {
	productID string
	demand    int

	isConstructed bool
}

// NewRecord starts the demand of a product with the quantity of its first order.
func NewRecord(productID string, quantity int) (*Record, error) {
	r := &Record{isConstructed: true}

	if err := errors.Join(
		r.setProductID(productID),
		validateQuantity(quantity),
	); err != nil {
		return nil, err
	}

	r.demand = quantity
	return r, nil
}

// RestoreRecord rebuilds a record read from storage.
func RestoreRecord(productID string, demand int) (*Record, error) {
	r := &Record{isConstructed: true}

	if err := r.setProductID(productID); err != nil {
		return nil, err
	}
	if demand < 0 || demand > MaxDemand {
		return nil, errs.NewValueIsOutOfRangeError("demand", demand, 0, MaxDemand)
	}

	r.demand = demand
	return r, nil
}

// Validate ensures the Record was built by a constructor.
func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

func (r *Record) ProductID() string {
	return r.productID
}

func (r *Record) Demand() int {
	return r.demand
}

// Add increases demand by quantity and returns the new total. A quantity that would push
// demand past MaxDemand leaves the record unchanged.
func (r *Record) Add(quantity int) (int, error) {
	if err := validateQuantity(quantity); err != nil {
		return r.demand, err
	}
	if quantity > MaxDemand-r.demand {
		return r.demand, errs.NewValueIsOutOfRangeError("demand", r.demand+quantity, 0, MaxDemand)
	}
	r.demand += quantity
	return r.demand, nil
}

func (r *Record) setProductID(productID string) error {
	if strings.TrimSpace(productID) == "" {
		return errs.NewValueIsRequiredError("product_id")
	}
	r.productID = productID
	return nil
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if quantity > MaxDemand {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, MaxDemand)
	}
	return nil
}
