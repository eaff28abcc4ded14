package notification

import (
	"context"
)

// Service defines the notification service interface
type Service interface {
	// Create persists a notification. Callers inside a transaction publish it after commit.
	Create(ctx context.Context, req CreateNotificationRequest) (Notification, error)
	Publish(notifications ...Notification)

	List(ctx context.Context, userID int64, unreadOnly bool) ([]NotificationResponse, error)
	GetUnreadCount(ctx context.Context, userID int64) (int, error)
	MarkAsRead(ctx context.Context, userID, notificationID int64) (NotificationResponse, error)
	MarkAllAsRead(ctx context.Context, userID int64) error

	// SSE subscription
	Subscribe(ctx context.Context, userID int64) (<-chan SSEEvent, func())
}
