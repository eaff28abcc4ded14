package learning

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/activity"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/learning"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/database"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/validator"
)

const (
	currentCoursesLimit = 3
	noCategory          = "None"
)

type LearningServiceImpl struct {
	db               database.Transactor
	courseRepository learning.CourseRepository
	moduleRepository learning.ModuleRepository
	learning.ProgressRepository
	activityService activity.Service
	now             func() time.Time
}

func NewLearningService(
	db database.Transactor,
	courseRepository learning.CourseRepository,
	moduleRepository learning.ModuleRepository,
	progressRepository learning.ProgressRepository,
	activityService activity.Service,
) learning.Service {
	return &LearningServiceImpl{
		db:                 db,
		courseRepository:   courseRepository,
		moduleRepository:   moduleRepository,
		ProgressRepository: progressRepository,
		activityService:    activityService,
		now:                time.Now,
	}
}

// ListCourses implements learning.Service.
func (s *LearningServiceImpl) ListCourses(ctx context.Context) ([]learning.CourseResponse, error) {
	courses, err := s.courseRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	responses := make([]learning.CourseResponse, len(courses))
	for i, c := range courses {
		responses[i] = learning.NewCourseResponse(c)
	}
	return responses, nil
}

// Categories implements learning.Service.
func (s *LearningServiceImpl) Categories(ctx context.Context) ([]string, error) {
	courses, err := s.courseRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	seen := make(map[string]struct{})
	categories := []string{}
	for _, c := range courses {
		if _, ok := seen[c.Category]; !ok {
			seen[c.Category] = struct{}{}
			categories = append(categories, c.Category)
		}
	}
	return categories, nil
}

// GetCourse implements learning.Service.
func (s *LearningServiceImpl) GetCourse(ctx context.Context, id int64) (learning.CourseResponse, error) {
	c, err := s.courseRepository.GetByID(ctx, id)
	if err != nil {
		return learning.CourseResponse{}, err
	}
	return learning.NewCourseResponse(c), nil
}

// ListModules implements learning.Service.
func (s *LearningServiceImpl) ListModules(ctx context.Context, courseID int64) ([]learning.ModuleResponse, error) {
	if _, err := s.courseRepository.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	modules, err := s.moduleRepository.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list modules: %w", err)
	}
	responses := make([]learning.ModuleResponse, len(modules))
	for i, m := range modules {
		responses[i] = learning.NewModuleResponse(m)
	}
	return responses, nil
}

// ListProgress implements learning.Service.
func (s *LearningServiceImpl) ListProgress(ctx context.Context, userID int64) ([]learning.ProgressResponse, error) {
	progress, err := s.ProgressRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	responses := make([]learning.ProgressResponse, len(progress))
	for i, p := range progress {
		responses[i] = learning.NewProgressResponse(p)
	}
	return responses, nil
}

// CurrentCourses returns up to three unfinished courses with the caller's progress.
func (s *LearningServiceImpl) CurrentCourses(ctx context.Context, userID int64) ([]learning.CurrentCourseResponse, error) {
	progress, err := s.ProgressRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}

	current := []learning.CurrentCourseResponse{}
	for _, p := range progress {
		if p.IsCompleted {
			continue
		}
		c, err := s.courseRepository.GetByID(ctx, p.CourseID)
		if err != nil {
			if errors.Is(err, learning.ErrCourseNotFound) {
				continue
			}
			return nil, err
		}
		current = append(current, learning.CurrentCourseResponse{
			Course:   learning.NewCourseResponse(c),
			Progress: learning.NewProgressResponse(p),
		})
		if len(current) == currentCoursesLimit {
			break
		}
	}
	return current, nil
}

// Stats implements learning.Service. The most active category is the one with the
// highest completed/total ratio; the first category in course order wins ties.
func (s *LearningServiceImpl) Stats(ctx context.Context, userID int64) (learning.StatsResponse, error) {
	courses, err := s.courseRepository.List(ctx)
	if err != nil {
		return learning.StatsResponse{}, fmt.Errorf("failed to list courses: %w", err)
	}
	progress, err := s.ProgressRepository.ListByUser(ctx, userID)
	if err != nil {
		return learning.StatsResponse{}, fmt.Errorf("failed to list progress: %w", err)
	}

	stats := learning.StatsResponse{
		TotalCourses:        len(courses),
		CompletedByCategory: make(map[string]learning.CategoryStats),
		MostActiveCategory:  noCategory,
	}

	completed := make(map[int64]bool)
	for _, p := range progress {
		if p.IsCompleted {
			stats.CompletedCourses++
			completed[p.CourseID] = true
		} else {
			stats.InProgressCourses++
		}
	}
	if stats.TotalCourses > 0 {
		stats.TotalCompletionRate = int(math.Round(float64(stats.CompletedCourses) / float64(stats.TotalCourses) * 100))
	}

	var order []string
	for _, c := range courses {
		cat, ok := stats.CompletedByCategory[c.Category]
		if !ok {
			order = append(order, c.Category)
		}
		cat.Total++
		if completed[c.ID] {
			cat.Completed++
		}
		stats.CompletedByCategory[c.Category] = cat
	}

	highest := 0.0
	for _, name := range order {
		cat := stats.CompletedByCategory[name]
		if rate := float64(cat.Completed) / float64(cat.Total); rate > highest {
			highest = rate
			stats.MostActiveCategory = name
		}
	}

	return stats, nil
}

// UpdateProgress implements learning.Service.
func (s *LearningServiceImpl) UpdateProgress(ctx context.Context, userID, courseID int64, req learning.UpdateProgressRequest) (learning.ProgressResponse, error) {
	if err := req.Validate(); err != nil {
		return learning.ProgressResponse{}, err
	}

	course, err := s.courseRepository.GetByID(ctx, courseID)
	if err != nil {
		return learning.ProgressResponse{}, err
	}
	if *req.CompletedModules > course.TotalModules {
		var errs validator.ValidationErrors
		errs.Add("completedModules", fmt.Sprintf("completedModules must not exceed %d", course.TotalModules))
		return learning.ProgressResponse{}, errs
	}

	var saved learning.Progress
	err = s.db.WithTransaction(ctx, func(ctx context.Context) error {
		previous, err := s.ProgressRepository.GetByUserAndCourse(ctx, userID, courseID)
		if err != nil && !errors.Is(err, learning.ErrProgressNotFound) {
			return err
		}

		saved, err = s.ProgressRepository.Upsert(ctx, learning.Progress{
			UserID:           userID,
			CourseID:         courseID,
			CompletedModules: *req.CompletedModules,
			IsCompleted:      *req.CompletedModules == course.TotalModules,
			LastAccessedAt:   s.now(),
		})
		if err != nil {
			return fmt.Errorf("failed to save progress: %w", err)
		}

		if !saved.IsCompleted || previous.IsCompleted {
			return nil
		}
		_, err = s.activityService.Record(ctx, activity.RecordRequest{
			UserID:      userID,
			Type:        activity.TypeCourseCompletion,
			Description: fmt.Sprintf(`You completed <span class="font-medium">%s</span> course`, html.EscapeString(course.Title)),
			Metadata:    map[string]interface{}{"courseId": course.ID},
		})
		return err
	})
	if err != nil {
		return learning.ProgressResponse{}, err
	}

	return learning.NewProgressResponse(saved), nil
}

// CreateCourse implements learning.Service.
func (s *LearningServiceImpl) CreateCourse(ctx context.Context, req learning.CreateCourseRequest) (learning.CourseResponse, error) {
	if err := req.Validate(); err != nil {
		return learning.CourseResponse{}, err
	}
	created, err := s.courseRepository.Create(ctx, learning.Course{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		TotalModules: req.TotalModules,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		return learning.CourseResponse{}, fmt.Errorf("failed to create course: %w", err)
	}
	slog.Info("Course created", "course_id", created.ID, "modules", created.TotalModules)
	return learning.NewCourseResponse(created), nil
}

// CreateModule implements learning.Service.
func (s *LearningServiceImpl) CreateModule(ctx context.Context, courseID int64, req learning.CreateModuleRequest) (learning.ModuleResponse, error) {
	if err := req.Validate(); err != nil {
		return learning.ModuleResponse{}, err
	}
	course, err := s.courseRepository.GetByID(ctx, courseID)
	if err != nil {
		return learning.ModuleResponse{}, err
	}
	if req.Order > course.TotalModules {
		var errs validator.ValidationErrors
		errs.Add("order", fmt.Sprintf("order must not exceed %d", course.TotalModules))
		return learning.ModuleResponse{}, errs
	}

	created, err := s.moduleRepository.Create(ctx, learning.Module{
		CourseID: courseID,
		Title:    req.Title,
		Content:  req.Content,
		Order:    req.Order,
	})
	if err != nil {
		return learning.ModuleResponse{}, err
	}
	return learning.NewModuleResponse(created), nil
}
