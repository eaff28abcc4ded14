package learning

import (
	"time"

	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/validator"
)

type CourseResponse struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	TotalModules int       `json:"totalModules"`
	ImageURL     *string   `json:"imageUrl"`
	CreatedAt    time.Time `json:"createdAt"`
}

func NewCourseResponse(c Course) CourseResponse {
	return CourseResponse{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		Category:     c.Category,
		TotalModules: c.TotalModules,
		ImageURL:     c.ImageURL,
		CreatedAt:    c.CreatedAt,
	}
}

type ModuleResponse struct {
	ID       int64  `json:"id"`
	CourseID int64  `json:"courseId"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Order    int    `json:"order"`
}

func NewModuleResponse(m Module) ModuleResponse {
	return ModuleResponse{ID: m.ID, CourseID: m.CourseID, Title: m.Title, Content: m.Content, Order: m.Order}
}

type ProgressResponse struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"userId"`
	CourseID         int64     `json:"courseId"`
	CompletedModules int       `json:"completedModules"`
	IsCompleted      bool      `json:"isCompleted"`
	LastAccessedAt   time.Time `json:"lastAccessedAt"`
}

func NewProgressResponse(p Progress) ProgressResponse {
	return ProgressResponse{
		ID:               p.ID,
		UserID:           p.UserID,
		CourseID:         p.CourseID,
		CompletedModules: p.CompletedModules,
		IsCompleted:      p.IsCompleted,
		LastAccessedAt:   p.LastAccessedAt,
	}
}

// CurrentCourseResponse pairs an unfinished course with the caller's progress on it.
type CurrentCourseResponse struct {
	Course   CourseResponse   `json:"course"`
	Progress ProgressResponse `json:"progress"`
}

type CategoryStats struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

type StatsResponse struct {
	TotalCourses        int                      `json:"totalCourses"`
	CompletedCourses    int                      `json:"completedCourses"`
	InProgressCourses   int                      `json:"inProgressCourses"`
	TotalCompletionRate int                      `json:"totalCompletionRate"`
	CompletedByCategory map[string]CategoryStats `json:"completedByCategory"`
	MostActiveCategory  string                   `json:"mostActiveCategory"`
}

type UpdateProgressRequest struct {
	CompletedModules *int `json:"completedModules" validate:"required,gte=0"`
}

func (r *UpdateProgressRequest) Validate() error {
	return validator.Struct(r).Err()
}

type CreateCourseRequest struct {
	Title        string  `json:"title" validate:"required,max=200"`
	Description  string  `json:"description" validate:"required"`
	Category     string  `json:"category" validate:"required,max=100"`
	TotalModules int     `json:"totalModules" validate:"required,gte=1"`
	ImageURL     *string `json:"imageUrl" validate:"omitempty,url"`
}

func (r *CreateCourseRequest) Validate() error {
	return validator.Struct(r).Err()
}

type CreateModuleRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content"`
	Order   int    `json:"order" validate:"required,gte=1"`
}

func (r *CreateModuleRequest) Validate() error {
	return validator.Struct(r).Err()
}
