package notification

import (
	"time"
)

// NotificationType drives the client's icon and colour
type NotificationType string

const (
	TypeHoliday NotificationType = "holiday"
	TypeSuccess NotificationType = "success"
	TypeError   NotificationType = "error"
	TypeInfo    NotificationType = "info"
)

// Notification represents a notification entity
type Notification struct {
	ID        int64
	UserID    int64
	Title     string
	Message   string
	Type      NotificationType
	IsRead    bool
	Link      *string
	Metadata  map[string]interface{}
	CreatedAt time.Time
}
