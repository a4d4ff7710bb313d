package ports

import (
	"context"
)

// NotificationChannel delivers a human readable message to subscribers.
type NotificationChannel interface {
	Send(ctx context.Context, subject, message string) error
}
