package notification

import (
	"context"
	"log/slog"

	"pricing/internal/core/ports"
)

var _ ports.NotificationChannel = (*LogChannel)(nil)

type LogChannel struct {
	logger *slog.Logger
}

func NewLogChannel(logger *slog.Logger) *LogChannel {
	return &LogChannel{logger: logger.With("component", "notification_log_channel")}
}

func (c *LogChannel) Send(ctx context.Context, subject, message string) error {
	c.logger.InfoContext(ctx, "notification sent", "subject", subject, "message", message)
	return nil
}
