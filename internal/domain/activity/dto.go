package activity

import "time"

const (
	DefaultLimit = 4
	MaxLimit     = 50
)

// RecordRequest is built by other services; it is never decoded from a client.
type RecordRequest struct {
	UserID      int64
	Type        Type
	Description string
	Metadata    map[string]interface{}
}

type ActivityResponse struct {
	ID          int64                  `json:"id"`
	UserID      int64                  `json:"userId"`
	Type        Type                   `json:"type"`
	Description string                 `json:"description"`
	Metadata    map[string]interface{} `json:"metadata"`
	CreatedAt   time.Time              `json:"createdAt"`
}

func NewActivityResponse(a Activity) ActivityResponse {
	return ActivityResponse{
		ID:          a.ID,
		UserID:      a.UserID,
		Type:        a.Type,
		Description: a.Description,
		Metadata:    a.Metadata,
		CreatedAt:   a.CreatedAt,
	}
}
