package learning

import "time"

type Course struct {
	ID           int64
	Title        string
	Description  string
	Category     string
	TotalModules int
	ImageURL     *string
	CreatedAt    time.Time
}

type Module struct {
	ID       int64
	CourseID int64
	Title    string
	Content  string
	Order    int
}

// Progress is one user's engagement with one course.
type Progress struct {
	ID               int64
	UserID           int64
	CourseID         int64
	CompletedModules int
	IsCompleted      bool
	LastAccessedAt   time.Time
}
