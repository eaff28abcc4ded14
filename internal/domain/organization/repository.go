package organization

import "context"

type DepartmentRepository interface {
	Create(ctx context.Context, d Department) (Department, error)
	GetByName(ctx context.Context, name string) (Department, error)
	List(ctx context.Context) ([]Department, error)
	// ClearHead unsets HeadID on every department headed by userID.
	ClearHead(ctx context.Context, userID int64) error
}
