package learning

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/activity"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/learning"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/validator"
	"github.com/cmlabs-hris/hr-portal-backend/internal/repository/memory"
	activityService "github.com/cmlabs-hris/hr-portal-backend/internal/service/activity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userID int64 = 1

func setup(t *testing.T) (learning.Service, activity.Repository) {
	t.Helper()
	store := memory.NewStore()
	t.Cleanup(store.Close)

	activities := memory.NewActivityRepository(store)
	svc := NewLearningService(
		store,
		memory.NewCourseRepository(store),
		memory.NewModuleRepository(store),
		memory.NewProgressRepository(store),
		activityService.NewActivityService(activities),
	)
	return svc, activities
}

func course(t *testing.T, svc learning.Service, title, category string, modules int) learning.CourseResponse {
	t.Helper()
	c, err := svc.CreateCourse(context.Background(), learning.CreateCourseRequest{
		Title:        title,
		Description:  title + " description",
		Category:     category,
		TotalModules: modules,
	})
	require.NoError(t, err)
	return c
}

func progress(t *testing.T, svc learning.Service, courseID int64, completed int) learning.ProgressResponse {
	t.Helper()
	p, err := svc.UpdateProgress(context.Background(), userID, courseID, learning.UpdateProgressRequest{CompletedModules: &completed})
	require.NoError(t, err)
	return p
}

func TestCategories(t *testing.T) {
	svc, _ := setup(t)
	course(t, svc, "Leadership", "Management", 5)
	course(t, svc, "Design", "Design", 8)
	course(t, svc, "Coaching", "Management", 3)

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Management", "Design"}, categories)
}

func TestModules(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	c := course(t, svc, "Leadership", "Management", 3)

	for _, order := range []int{3, 1, 2} {
		_, err := svc.CreateModule(ctx, c.ID, learning.CreateModuleRequest{Title: "Module", Order: order})
		require.NoError(t, err)
	}

	modules, err := svc.ListModules(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, modules, 3)
	for i, m := range modules {
		assert.Equal(t, i+1, m.Order)
	}

	_, err = svc.ListModules(ctx, 999)
	assert.ErrorIs(t, err, learning.ErrCourseNotFound)

	_, err = svc.CreateModule(ctx, c.ID, learning.CreateModuleRequest{Title: "Extra", Order: 4})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.True(t, verrs.Has("order"))
}

func TestUpdateProgress(t *testing.T) {
	svc, activities := setup(t)
	ctx := context.Background()
	c := course(t, svc, "Leadership <Essentials>", "Management", 5)

	first := progress(t, svc, c.ID, 2)
	assert.False(t, first.IsCompleted)

	done := progress(t, svc, c.ID, 5)
	assert.Equal(t, first.ID, done.ID, "progress is updated in place")
	assert.True(t, done.IsCompleted)

	// Repeating the completion does not add a second entry
	progress(t, svc, c.ID, 5)

	feed, err := activities.ListByUser(ctx, userID, 0)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, activity.TypeCourseCompletion, feed[0].Type)
	assert.Contains(t, feed[0].Description, "Leadership &lt;Essentials&gt;")

	t.Run("above total", func(t *testing.T) {
		six := 6
		_, err := svc.UpdateProgress(ctx, userID, c.ID, learning.UpdateProgressRequest{CompletedModules: &six})
		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.True(t, verrs.Has("completedModules"))
	})

	t.Run("missing value", func(t *testing.T) {
		_, err := svc.UpdateProgress(ctx, userID, c.ID, learning.UpdateProgressRequest{})
		var verrs validator.ValidationErrors
		require.True(t, errors.As(err, &verrs))
	})

	t.Run("unknown course", func(t *testing.T) {
		one := 1
		_, err := svc.UpdateProgress(ctx, userID, 999, learning.UpdateProgressRequest{CompletedModules: &one})
		assert.ErrorIs(t, err, learning.ErrCourseNotFound)
	})
}

func TestStats(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	t.Run("nothing completed", func(t *testing.T) {
		stats, err := svc.Stats(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "None", stats.MostActiveCategory)
		assert.Zero(t, stats.TotalCompletionRate)
	})

	leadership := course(t, svc, "Leadership", "Management", 5)
	design := course(t, svc, "Design Systems", "Design", 8)
	coaching := course(t, svc, "Coaching", "Management", 5)
	course(t, svc, "Research", "Design", 4)

	progress(t, svc, leadership.ID, 5)
	progress(t, svc, design.ID, 8)
	progress(t, svc, coaching.ID, 2)

	stats, err := svc.Stats(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalCourses)
	assert.Equal(t, 2, stats.CompletedCourses)
	assert.Equal(t, 1, stats.InProgressCourses)
	assert.Equal(t, 50, stats.TotalCompletionRate)
	assert.Equal(t, learning.CategoryStats{Completed: 1, Total: 2}, stats.CompletedByCategory["Management"])
	assert.Equal(t, learning.CategoryStats{Completed: 1, Total: 2}, stats.CompletedByCategory["Design"])
	assert.Equal(t, "Management", stats.MostActiveCategory, "first category wins a tie")

	current, err := svc.CurrentCourses(ctx, userID)
	require.NoError(t, err)
	require.Len(t, current, 1)
	assert.Equal(t, coaching.ID, current[0].Course.ID)
}

func TestCurrentCourses_Limit(t *testing.T) {
	svc, _ := setup(t)
	for i := 0; i < 5; i++ {
		c := course(t, svc, "Course", "General", 4)
		progress(t, svc, c.ID, 1)
	}

	current, err := svc.CurrentCourses(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, current, 3)

	empty, err := svc.CurrentCourses(context.Background(), 42)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
