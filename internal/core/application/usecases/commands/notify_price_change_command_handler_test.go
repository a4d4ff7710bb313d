package commands_test

import (
	"errors"
	"net/http"
	"testing"

	"pricing/internal/core/application/usecases/commands"
	"pricing/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNotifyPriceChangeCommandHandler_Handle_Success(t *testing.T) {
	cmd, _ := commands.NewNotifyPriceChangeCommand("sku-1", "137.5")
	channel := new(MockNotificationChannel)
	channel.On("Send", mock.Anything, "Price Update Notification",
		"The price of product sku-1 has been updated to $137.5.").Return(nil).Once()

	h := commands.NewNotifyPriceChangeCommandHandler(channel, discardLogger)
	result, err := h.Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	channel.AssertExpectations(t)
}

func TestNotifyPriceChangeCommandHandler_Handle_ChannelError(t *testing.T) {
	cmd, _ := commands.NewNotifyPriceChangeCommand("sku-1", "130")
	channel := new(MockNotificationChannel)
	channel.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()

	h := commands.NewNotifyPriceChangeCommandHandler(channel, discardLogger)
	result, err := h.Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrNotificationDispatch)
	assert.False(t, errs.IsRetryable(err))
	assert.Equal(t, http.StatusInternalServerError, result.StatusCode)
}

func TestNotifyPriceChangeCommandHandler_Handle_NotConstructed(t *testing.T) {
	channel := new(MockNotificationChannel)

	h := commands.NewNotifyPriceChangeCommandHandler(channel, discardLogger)
	_, err := h.Handle(t.Context(), commands.NotifyPriceChangeCommand{})

	require.ErrorIs(t, err, commands.ErrNotifyPriceChangeCommandIsNotConstructed)
	channel.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}
