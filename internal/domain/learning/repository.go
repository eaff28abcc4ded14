package learning

import "context"

type CourseRepository interface {
	Create(ctx context.Context, c Course) (Course, error)
	GetByID(ctx context.Context, id int64) (Course, error)
	List(ctx context.Context) ([]Course, error)
}

type ModuleRepository interface {
	Create(ctx context.Context, m Module) (Module, error)
	// ListByCourse returns modules sorted ascending by Order.
	ListByCourse(ctx context.Context, courseID int64) ([]Module, error)
}

type ProgressRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]Progress, error)
	GetByUserAndCourse(ctx context.Context, userID, courseID int64) (Progress, error)
	// Upsert inserts or replaces the row keyed by (UserID, CourseID).
	Upsert(ctx context.Context, p Progress) (Progress, error)
}
