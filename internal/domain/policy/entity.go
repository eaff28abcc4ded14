package policy

import "time"

// Policy is a published company document. Content is an HTML fragment.
type Policy struct {
	ID        int64
	Title     string
	Category  string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
