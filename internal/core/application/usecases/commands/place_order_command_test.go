package commands_test

import (
	"math"
	"testing"

	"pricing/internal/core/application/usecases/commands"
	"pricing/internal/core/domain/model/order"
	"pricing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlaceOrderCommand_ValidInput(t *testing.T) {
	cmd, err := commands.NewPlaceOrderCommand("sku-1", 5)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, "sku-1", cmd.ProductID())
	assert.Equal(t, 5, cmd.Quantity())
}

func TestNewPlaceOrderCommand_EmptyProduct(t *testing.T) {
	_, err := commands.NewPlaceOrderCommand("", 5)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Equal(t, 400, errs.StatusCode(err))
}

func TestNewPlaceOrderCommand_InvalidQuantity(t *testing.T) {
	for _, quantity := range []int{0, -3} {
		_, err := commands.NewPlaceOrderCommand("sku-1", quantity)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, 400, errs.StatusCode(err))
	}
}

func TestNewPlaceOrderCommand_QuantityAboveMax(t *testing.T) {
	for _, quantity := range []int{order.MaxQuantity + 1, math.MaxInt64} {
		_, err := commands.NewPlaceOrderCommand("sku-big", quantity)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Equal(t, 400, errs.StatusCode(err))
	}

	cmd, err := commands.NewPlaceOrderCommand("sku-big", order.MaxQuantity)
	require.NoError(t, err)
	assert.Equal(t, order.MaxQuantity, cmd.Quantity())
}

func TestPlaceOrderCommand_Validate_NotConstructed(t *testing.T) {
	err := commands.PlaceOrderCommand{}.Validate()
	require.ErrorIs(t, err, commands.ErrPlaceOrderCommandIsNotConstructed)
}
