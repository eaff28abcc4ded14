package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const holidayColumns = `id, user_id, start_date, end_date, duration, status, reason, approved_by_id, created_at`

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.Repository {
	return &holidayRepositoryImpl{db: db}
}

func scanHoliday(row pgx.Row) (holiday.Request, error) {
	var h holiday.Request
	err := row.Scan(
		&h.ID,
		&h.UserID,
		&h.StartDate,
		&h.EndDate,
		&h.Duration,
		&h.Status,
		&h.Reason,
		&h.ApprovedByID,
		&h.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return holiday.Request{}, holiday.ErrHolidayRequestNotFound
	}
	return h, err
}

func (r *holidayRepositoryImpl) Create(ctx context.Context, req holiday.Request) (holiday.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holiday_requests (user_id, start_date, end_date, duration, status, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, NOW()))
		RETURNING ` + holidayColumns

	return scanHoliday(q.QueryRow(ctx, query,
		req.UserID,
		req.StartDate,
		req.EndDate,
		req.Duration,
		string(req.Status),
		req.Reason,
		nullTime(req.CreatedAt),
	))
}

func (r *holidayRepositoryImpl) GetByID(ctx context.Context, id int64) (holiday.Request, error) {
	q := GetQuerier(ctx, r.db)
	return scanHoliday(q.QueryRow(ctx, `SELECT `+holidayColumns+` FROM holiday_requests WHERE id = $1`, id))
}

func (r *holidayRepositoryImpl) List(ctx context.Context, filter holiday.Filter) ([]holiday.Request, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions []string
		args       []interface{}
	)
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + holidayColumns + ` FROM holiday_requests`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []holiday.Request
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, h)
	}
	return requests, rows.Err()
}

// Decide only touches rows that are still pending, so two concurrent decisions
// cannot both succeed.
func (r *holidayRepositoryImpl) Decide(ctx context.Context, id int64, status holiday.Status, approverID int64) (holiday.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE holiday_requests
		SET status = $2, approved_by_id = $3
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + holidayColumns

	decided, err := scanHoliday(q.QueryRow(ctx, query, id, string(status), approverID))
	if !errors.Is(err, holiday.ErrHolidayRequestNotFound) {
		return decided, err
	}

	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM holiday_requests WHERE id = $1)`, id).Scan(&exists); err != nil {
		return holiday.Request{}, err
	}
	if exists {
		return holiday.Request{}, holiday.ErrHolidayRequestAlreadyProcessed
	}
	return holiday.Request{}, holiday.ErrHolidayRequestNotFound
}
