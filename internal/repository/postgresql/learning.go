package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/learning"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const foreignKeyViolation = "23503"

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation
}

type courseRepositoryImpl struct {
	db *database.DB
}

func NewCourseRepository(db *database.DB) learning.CourseRepository {
	return &courseRepositoryImpl{db: db}
}

func scanCourse(row pgx.Row) (learning.Course, error) {
	var c learning.Course
	err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Category, &c.TotalModules, &c.ImageURL, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return learning.Course{}, learning.ErrCourseNotFound
	}
	return c, err
}

func (r *courseRepositoryImpl) Create(ctx context.Context, c learning.Course) (learning.Course, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO courses (title, description, category, total_modules, image_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, description, category, total_modules, image_url, created_at
	`
	return scanCourse(q.QueryRow(ctx, query, c.Title, c.Description, c.Category, c.TotalModules, c.ImageURL))
}

func (r *courseRepositoryImpl) GetByID(ctx context.Context, id int64) (learning.Course, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT id, title, description, category, total_modules, image_url, created_at FROM courses WHERE id = $1`
	return scanCourse(q.QueryRow(ctx, query, id))
}

func (r *courseRepositoryImpl) List(ctx context.Context) ([]learning.Course, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, title, description, category, total_modules, image_url, created_at FROM courses ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []learning.Course
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

type moduleRepositoryImpl struct {
	db *database.DB
}

func NewModuleRepository(db *database.DB) learning.ModuleRepository {
	return &moduleRepositoryImpl{db: db}
}

func (r *moduleRepositoryImpl) Create(ctx context.Context, m learning.Module) (learning.Module, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO course_modules (course_id, title, content, sort_order)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	if err := q.QueryRow(ctx, query, m.CourseID, m.Title, m.Content, m.Order).Scan(&m.ID); err != nil {
		if isForeignKeyViolation(err) {
			return learning.Module{}, learning.ErrCourseNotFound
		}
		return learning.Module{}, err
	}
	return m, nil
}

func (r *moduleRepositoryImpl) ListByCourse(ctx context.Context, courseID int64) ([]learning.Module, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, course_id, title, content, sort_order
		FROM course_modules
		WHERE course_id = $1
		ORDER BY sort_order, id
	`
	rows, err := q.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var modules []learning.Module
	for rows.Next() {
		var m learning.Module
		if err := rows.Scan(&m.ID, &m.CourseID, &m.Title, &m.Content, &m.Order); err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}
	return modules, rows.Err()
}

type progressRepositoryImpl struct {
	db *database.DB
}

func NewProgressRepository(db *database.DB) learning.ProgressRepository {
	return &progressRepositoryImpl{db: db}
}

const progressColumns = `id, user_id, course_id, completed_modules, is_completed, last_accessed_at`

func scanProgress(row pgx.Row) (learning.Progress, error) {
	var p learning.Progress
	err := row.Scan(&p.ID, &p.UserID, &p.CourseID, &p.CompletedModules, &p.IsCompleted, &p.LastAccessedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return learning.Progress{}, learning.ErrProgressNotFound
	}
	return p, err
}

func (r *progressRepositoryImpl) ListByUser(ctx context.Context, userID int64) ([]learning.Progress, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+progressColumns+` FROM user_course_progress WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var progress []learning.Progress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		progress = append(progress, p)
	}
	return progress, rows.Err()
}

func (r *progressRepositoryImpl) GetByUserAndCourse(ctx context.Context, userID, courseID int64) (learning.Progress, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT ` + progressColumns + ` FROM user_course_progress WHERE user_id = $1 AND course_id = $2`
	return scanProgress(q.QueryRow(ctx, query, userID, courseID))
}

func (r *progressRepositoryImpl) Upsert(ctx context.Context, p learning.Progress) (learning.Progress, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO user_course_progress (user_id, course_id, completed_modules, is_completed, last_accessed_at)
		VALUES ($1, $2, $3, $4, COALESCE($5, NOW()))
		ON CONFLICT (user_id, course_id) DO UPDATE SET
			completed_modules = EXCLUDED.completed_modules,
			is_completed = EXCLUDED.is_completed,
			last_accessed_at = EXCLUDED.last_accessed_at
		RETURNING ` + progressColumns

	saved, err := scanProgress(q.QueryRow(ctx, query,
		p.UserID,
		p.CourseID,
		p.CompletedModules,
		p.IsCompleted,
		nullTime(p.LastAccessedAt),
	))
	if isForeignKeyViolation(err) {
		return learning.Progress{}, learning.ErrCourseNotFound
	}
	return saved, err
}
