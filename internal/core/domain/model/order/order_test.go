package order_test

import (
	"testing"
	"time"

	"pricing/internal/core/domain/model/kernel"
	"pricing/internal/core/domain/model/order"
	"pricing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	validID := kernel.NewUUID()
	placedAt := time.Date(2026, 3, 1, 10, 30, 0, 123456789, time.UTC)

	t.Run("should create valid order with all valid parameters", func(t *testing.T) {
		o, err := order.NewOrder(validID, "sku-1", 5, placedAt)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(validID))
		assert.Equal(t, "sku-1", o.ProductID())
		assert.Equal(t, 5, o.Quantity())
		assert.Equal(t, placedAt.UnixMilli(), o.Timestamp())
	})

	t.Run("should truncate placement time to milliseconds", func(t *testing.T) {
		o, err := order.NewOrder(validID, "sku-1", 5, placedAt)

		require.NoError(t, err)
		assert.Equal(t, 0, o.PlacedAt().Nanosecond()%int(time.Millisecond))
	})

	t.Run("should fail with invalid UUID", func(t *testing.T) {
		o, err := order.NewOrder(kernel.UUID{}, "sku-1", 5, placedAt)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should fail with blank product id", func(t *testing.T) {
		o, err := order.NewOrder(validID, "  ", 5, placedAt)

		require.Error(t, err)
		assert.Nil(t, o)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "product_id")
	})

	t.Run("should fail with non positive quantity", func(t *testing.T) {
		for _, quantity := range []int{0, -3} {
			o, err := order.NewOrder(validID, "sku-1", quantity, placedAt)

			require.Error(t, err)
			assert.Nil(t, o)
			require.ErrorIs(t, err, errs.ErrValidation)
			assert.Contains(t, err.Error(), "is not greater than 0")
		}
	})

	t.Run("should fail with quantity above max", func(t *testing.T) {
		o, err := order.NewOrder(validID, "sku-1", order.MaxQuantity+1, placedAt)

		assert.Nil(t, o)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should fail with zero time", func(t *testing.T) {
		_, err := order.NewOrder(validID, "sku-1", 1, time.Time{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should join every validation error", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, "", 0, time.Time{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "product_id")
		assert.Contains(t, err.Error(), "quantity")
		assert.Contains(t, err.Error(), "timestamp")
		assert.Equal(t, 400, errs.StatusCode(err))
	})
}

func TestRestoreOrder(t *testing.T) {
	id := kernel.NewUUID()
	ts := int64(1767225600123)

	o, err := order.RestoreOrder(id, "sku-9", 12, ts)

	require.NoError(t, err)
	assert.Equal(t, ts, o.Timestamp())
	assert.Equal(t, 12, o.Quantity())
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should fail validation for nil order", func(t *testing.T) {
		var o *order.Order

		assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	})

	t.Run("should fail validation for zero value order", func(t *testing.T) {
		var o order.Order

		assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
	})
}

func TestOrder_IsEqual(t *testing.T) {
	id := kernel.NewUUID()
	now := time.Now()
	o1, _ := order.NewOrder(id, "sku-1", 1, now)
	o2, _ := order.NewOrder(id, "sku-2", 7, now)
	o3, _ := order.NewOrder(kernel.NewUUID(), "sku-1", 1, now)

	assert.True(t, o1.IsEqual(o2))
	assert.False(t, o1.IsEqual(o3))
	assert.False(t, o1.IsEqual(nil))
}
