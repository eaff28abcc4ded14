package notification

import (
	"context"
)

// Repository defines the notification repository interface
type Repository interface {
	Create(ctx context.Context, n Notification) (Notification, error)
	GetByID(ctx context.Context, id int64) (Notification, error)
	// ListByUser returns newest first.
	ListByUser(ctx context.Context, userID int64, unreadOnly bool) ([]Notification, error)
	CountUnread(ctx context.Context, userID int64) (int, error)
	MarkAsRead(ctx context.Context, id int64) (Notification, error)
	MarkAllAsRead(ctx context.Context, userID int64) (int64, error)
}
