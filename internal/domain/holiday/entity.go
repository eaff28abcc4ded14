package holiday

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// IsTerminal reports whether the status ends the request lifecycle.
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

type Request struct {
	ID           int64
	UserID       int64
	StartDate    time.Time
	EndDate      time.Time
	Duration     int
	Status       Status
	Reason       *string
	ApprovedByID *int64
	CreatedAt    time.Time
}

// Covers reports whether day falls inside the request's date range.
func (r *Request) Covers(day time.Time) bool {
	d := truncateDay(day)
	return !d.Before(truncateDay(r.StartDate)) && !d.After(truncateDay(r.EndDate))
}

// BusinessDays counts Monday to Friday between start and end inclusive, never less than 1.
func BusinessDays(start, end time.Time) int {
	start, end = truncateDay(start), truncateDay(end)
	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
	}
	if days < 1 {
		return 1
	}
	return days
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
