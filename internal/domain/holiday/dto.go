package holiday

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/validator"
)

// CreateRequest is submitted by the requester. Status and owner are set server-side.
type CreateRequest struct {
	StartDate string  `json:"startDate" validate:"required"`
	EndDate   string  `json:"endDate" validate:"required"`
	Duration  *int    `json:"duration" validate:"omitempty,gte=0"`
	Reason    *string `json:"reason" validate:"omitempty,max=1000"`

	start time.Time
	end   time.Time
}

func (r *CreateRequest) Validate() error {
	errs := validator.Struct(r)

	if !errs.Has("startDate") {
		if d, ok := validator.ParseDay(r.StartDate); ok {
			r.start = d
		} else {
			errs.Add("startDate", "startDate must be a date (YYYY-MM-DD or RFC 3339)")
		}
	}
	if !errs.Has("endDate") {
		if d, ok := validator.ParseDay(r.EndDate); ok {
			r.end = d
		} else {
			errs.Add("endDate", "endDate must be a date (YYYY-MM-DD or RFC 3339)")
		}
	}
	if !r.start.IsZero() && !r.end.IsZero() {
		if r.end.Before(r.start) {
			errs.Add("endDate", "endDate must not be before startDate")
		} else if r.Duration != nil && *r.Duration > 0 && !errs.Has("duration") {
			if want := BusinessDays(r.start, r.end); *r.Duration != want {
				errs.Add("duration", fmt.Sprintf("duration must be %d business days for this date range", want))
			}
		}
	}

	return errs.Err()
}

// Period returns the parsed date range; call after Validate.
func (r *CreateRequest) Period() (time.Time, time.Time) {
	return r.start, r.end
}

// EffectiveDuration is the client value when given (Validate has checked it against
// the range), otherwise the business-day count.
func (r *CreateRequest) EffectiveDuration() int {
	if r.Duration != nil && *r.Duration > 0 {
		return *r.Duration
	}
	return BusinessDays(r.start, r.end)
}

type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required,oneof=approved rejected"`
}

func (r *UpdateStatusRequest) Validate() error {
	return validator.Struct(r).Err()
}

type RequestResponse struct {
	ID           int64         `json:"id"`
	UserID       int64         `json:"userId"`
	StartDate    time.Time     `json:"startDate"`
	EndDate      time.Time     `json:"endDate"`
	Duration     int           `json:"duration"`
	Status       Status        `json:"status"`
	Reason       *string       `json:"reason"`
	ApprovedByID *int64        `json:"approvedById"`
	CreatedAt    time.Time     `json:"createdAt"`
	User         *user.Summary `json:"user,omitempty"`
}

func NewRequestResponse(r Request, owner *user.Summary) RequestResponse {
	return RequestResponse{
		ID:           r.ID,
		UserID:       r.UserID,
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		Duration:     r.Duration,
		Status:       r.Status,
		Reason:       r.Reason,
		ApprovedByID: r.ApprovedByID,
		CreatedAt:    r.CreatedAt,
		User:         owner,
	}
}

type BalanceResponse struct {
	Allowance int `json:"allowance"`
	Used      int `json:"used"`
	Remaining int `json:"remaining"`
}
