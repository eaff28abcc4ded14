package policy

import "context"

type Repository interface {
	Create(ctx context.Context, p Policy) (Policy, error)
	GetByID(ctx context.Context, id int64) (Policy, error)
	List(ctx context.Context) ([]Policy, error)
}
