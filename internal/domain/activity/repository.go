package activity

import "context"

type Repository interface {
	Create(ctx context.Context, a Activity) (Activity, error)
	// ListByUser returns the newest entries first, at most limit of them.
	ListByUser(ctx context.Context, userID int64, limit int) ([]Activity, error)
}
