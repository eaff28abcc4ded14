package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/notification"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/sse"
)

const eventNotification = "notification"

type service struct {
	repo notification.Repository
	hub  *sse.Hub
}

// NewNotificationService creates a new notification service
func NewNotificationService(repo notification.Repository, hub *sse.Hub) notification.Service {
	return &service{repo: repo, hub: hub}
}

// Create persists a notification without pushing it to open streams
func (s *service) Create(ctx context.Context, req notification.CreateNotificationRequest) (notification.Notification, error) {
	created, err := s.repo.Create(ctx, notification.Notification{
		UserID:   req.UserID,
		Title:    req.Title,
		Message:  req.Message,
		Type:     req.Type,
		Link:     req.Link,
		Metadata: req.Metadata,
	})
	if err != nil {
		return notification.Notification{}, fmt.Errorf("failed to create notification: %w", err)
	}
	return created, nil
}

// Publish pushes stored notifications to their recipients' SSE subscribers
func (s *service) Publish(notifications ...notification.Notification) {
	for _, n := range notifications {
		s.hub.Publish(n.UserID, sse.Event{
			UserID: n.UserID,
			Event:  eventNotification,
			Data:   notification.NewNotificationResponse(n),
		})
	}
}

// List retrieves a user's notifications, newest first
func (s *service) List(ctx context.Context, userID int64, unreadOnly bool) ([]notification.NotificationResponse, error) {
	notifications, err := s.repo.ListByUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]notification.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = notification.NewNotificationResponse(n)
	}
	return responses, nil
}

// GetUnreadCount returns the count of unread notifications
func (s *service) GetUnreadCount(ctx context.Context, userID int64) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}

// MarkAsRead marks one notification read after checking it belongs to userID
func (s *service) MarkAsRead(ctx context.Context, userID, notificationID int64) (notification.NotificationResponse, error) {
	n, err := s.repo.GetByID(ctx, notificationID)
	if err != nil {
		return notification.NotificationResponse{}, err
	}
	if n.UserID != userID {
		return notification.NotificationResponse{}, notification.ErrNotOwner
	}
	if n.IsRead {
		return notification.NewNotificationResponse(n), nil
	}

	updated, err := s.repo.MarkAsRead(ctx, notificationID)
	if err != nil {
		return notification.NotificationResponse{}, err
	}
	return notification.NewNotificationResponse(updated), nil
}

// MarkAllAsRead marks all notifications as read for a user
func (s *service) MarkAllAsRead(ctx context.Context, userID int64) error {
	n, err := s.repo.MarkAllAsRead(ctx, userID)
	if err != nil {
		return err
	}
	slog.Debug("Notifications marked as read", "user_id", userID, "count", n)
	return nil
}

// Subscribe creates an SSE subscription for a user
func (s *service) Subscribe(ctx context.Context, userID int64) (<-chan notification.SSEEvent, func()) {
	ch, cleanup := s.hub.Subscribe(userID)

	out := make(chan notification.SSEEvent, 10)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				resp, ok := event.Data.(notification.NotificationResponse)
				if !ok {
					continue
				}
				select {
				case out <- notification.SSEEvent{Event: event.Event, Data: resp}:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}
