package commands

import (
	"context"
	"fmt"
	"log/slog"

	"pricing/internal/core/ports"
	"pricing/internal/pkg/errs"
)

const (
	// PriceUpdateSubject is the subject of every price notification.
	PriceUpdateSubject = "Price Update Notification"

	notificationSentMessage = "Notification sent"
)

// PriceUpdateMessage renders the notification body for a product and its new price.
func PriceUpdateMessage(productID, newPrice string) string {
	return fmt.Sprintf("The price of product %s has been updated to $%s.", productID, newPrice)
}

// NotifyPriceChangeCommandHandler is the notifier stage. Nothing downstream depends on it,
// so a failed notification is logged and reported but never redelivered.
type NotifyPriceChangeCommandHandler struct {
	channel ports.NotificationChannel
	logger  *slog.Logger
}

func NewNotifyPriceChangeCommandHandler(
	channel ports.NotificationChannel,
	logger *slog.Logger,
) NotifyPriceChangeCommandHandler {
	return NotifyPriceChangeCommandHandler{
		channel: channel,
		logger:  logger.With("component", "notifier"),
	}
}

// Handle sends the price update notification.
func (h NotifyPriceChangeCommandHandler) Handle(ctx context.Context, cmd NotifyPriceChangeCommand) (Result, error) {
	ctx, span := startSpan(ctx, "notifier", cmd.ProductID())
	result, err := h.handle(ctx, cmd)
	endSpan(span, err)
	return result, err
}

func (h NotifyPriceChangeCommandHandler) handle(ctx context.Context, cmd NotifyPriceChangeCommand) (Result, error) {
	if err := cmd.Validate(); err != nil {
		return errorResult(err), err
	}

	message := PriceUpdateMessage(cmd.ProductID(), cmd.NewPrice().String())
	if err := h.channel.Send(ctx, PriceUpdateSubject, message); err != nil {
		err = errs.NewNotificationDispatchError(PriceUpdateSubject, err)
		h.logger.ErrorContext(ctx, "Price notification failed", "product_id", cmd.ProductID(), "error", err)
		return errorResult(err), err
	}

	h.logger.InfoContext(ctx, "Price notification sent", "product_id", cmd.ProductID())
	return successResult(notificationSentMessage), nil
}
