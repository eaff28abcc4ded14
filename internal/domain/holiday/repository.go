package holiday

import "context"

// Filter narrows List; nil fields match everything.
type Filter struct {
	UserID *int64
	Status *Status
}

type Repository interface {
	Create(ctx context.Context, req Request) (Request, error)
	GetByID(ctx context.Context, id int64) (Request, error)
	List(ctx context.Context, filter Filter) ([]Request, error)
	// Decide moves a pending request to status. It returns ErrHolidayRequestAlreadyProcessed
	// when the request is no longer pending.
	Decide(ctx context.Context, id int64, status Status, approverID int64) (Request, error)
}
