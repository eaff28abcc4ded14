package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/learning"
)

type courseRepository struct {
	s *Store
}

func NewCourseRepository(s *Store) learning.CourseRepository {
	return &courseRepository{s: s}
}

func (r *courseRepository) Create(ctx context.Context, c learning.Course) (learning.Course, error) {
	err := r.s.write(ctx, func() error {
		c.ID = r.s.nextID(coursesCol)
		c.CreatedAt = r.s.stamp(c.CreatedAt)
		r.s.courses[c.ID] = c
		return nil
	})
	return c, err
}

func (r *courseRepository) GetByID(ctx context.Context, id int64) (learning.Course, error) {
	var (
		c  learning.Course
		ok bool
	)
	r.s.read(ctx, func() { c, ok = r.s.courses[id] })
	if !ok {
		return learning.Course{}, learning.ErrCourseNotFound
	}
	return c, nil
}

func (r *courseRepository) List(ctx context.Context) ([]learning.Course, error) {
	var out []learning.Course
	r.s.read(ctx, func() {
		for _, c := range r.s.courses {
			out = append(out, c)
		}
	})
	slices.SortFunc(out, func(a, b learning.Course) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

type moduleRepository struct {
	s *Store
}

func NewModuleRepository(s *Store) learning.ModuleRepository {
	return &moduleRepository{s: s}
}

func (r *moduleRepository) Create(ctx context.Context, m learning.Module) (learning.Module, error) {
	err := r.s.write(ctx, func() error {
		if _, ok := r.s.courses[m.CourseID]; !ok {
			return learning.ErrCourseNotFound
		}
		m.ID = r.s.nextID(modulesCol)
		r.s.modules[m.ID] = m
		return nil
	})
	return m, err
}

func (r *moduleRepository) ListByCourse(ctx context.Context, courseID int64) ([]learning.Module, error) {
	var out []learning.Module
	r.s.read(ctx, func() {
		for _, m := range r.s.modules {
			if m.CourseID == courseID {
				out = append(out, m)
			}
		}
	})
	slices.SortFunc(out, func(a, b learning.Module) int {
		if c := cmp.Compare(a.Order, b.Order); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

type progressRepository struct {
	s *Store
}

func NewProgressRepository(s *Store) learning.ProgressRepository {
	return &progressRepository{s: s}
}

func (r *progressRepository) ListByUser(ctx context.Context, userID int64) ([]learning.Progress, error) {
	var out []learning.Progress
	r.s.read(ctx, func() {
		for _, p := range r.s.progress {
			if p.UserID == userID {
				out = append(out, p)
			}
		}
	})
	slices.SortFunc(out, func(a, b learning.Progress) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *progressRepository) GetByUserAndCourse(ctx context.Context, userID, courseID int64) (learning.Progress, error) {
	var (
		found learning.Progress
		ok    bool
	)
	r.s.read(ctx, func() {
		found, ok = r.lookup(userID, courseID)
	})
	if !ok {
		return learning.Progress{}, learning.ErrProgressNotFound
	}
	return found, nil
}

func (r *progressRepository) lookup(userID, courseID int64) (learning.Progress, bool) {
	for _, p := range r.s.progress {
		if p.UserID == userID && p.CourseID == courseID {
			return p, true
		}
	}
	return learning.Progress{}, false
}

func (r *progressRepository) Upsert(ctx context.Context, p learning.Progress) (learning.Progress, error) {
	err := r.s.write(ctx, func() error {
		if _, ok := r.s.courses[p.CourseID]; !ok {
			return learning.ErrCourseNotFound
		}
		if existing, ok := r.lookup(p.UserID, p.CourseID); ok {
			p.ID = existing.ID
		} else {
			p.ID = r.s.nextID(progressCol)
		}
		p.LastAccessedAt = r.s.stamp(p.LastAccessedAt)
		r.s.progress[p.ID] = p
		return nil
	})
	return p, err
}
