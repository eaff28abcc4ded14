package learning

import "context"

type Service interface {
	ListCourses(ctx context.Context) ([]CourseResponse, error)
	Categories(ctx context.Context) ([]string, error)
	GetCourse(ctx context.Context, id int64) (CourseResponse, error)
	ListModules(ctx context.Context, courseID int64) ([]ModuleResponse, error)
	ListProgress(ctx context.Context, userID int64) ([]ProgressResponse, error)
	CurrentCourses(ctx context.Context, userID int64) ([]CurrentCourseResponse, error)
	Stats(ctx context.Context, userID int64) (StatsResponse, error)
	UpdateProgress(ctx context.Context, userID, courseID int64, req UpdateProgressRequest) (ProgressResponse, error)
	CreateCourse(ctx context.Context, req CreateCourseRequest) (CourseResponse, error)
	CreateModule(ctx context.Context, courseID int64, req CreateModuleRequest) (ModuleResponse, error)
}
