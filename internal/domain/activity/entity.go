package activity

import "time"

type Type string

const (
	TypeHolidayRequest   Type = "holiday_request"
	TypeHolidayApproved  Type = "holiday_approved"
	TypeHolidayRejected  Type = "holiday_rejected"
	TypePolicyUpdate     Type = "policy_update"
	TypeCourseCompletion Type = "course_completion"
)

// Activity is an append-only entry in a user's feed. Description is an HTML fragment.
type Activity struct {
	ID          int64
	UserID      int64
	Type        Type
	Description string
	Metadata    map[string]interface{}
	CreatedAt   time.Time
}
