package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/organization"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) organization.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

func scanDepartment(row pgx.Row) (organization.Department, error) {
	var d organization.Department
	err := row.Scan(&d.ID, &d.Name, &d.Description, &d.HeadID)
	if errors.Is(err, pgx.ErrNoRows) {
		return organization.Department{}, organization.ErrDepartmentNotFound
	}
	return d, err
}

func (r *departmentRepositoryImpl) Create(ctx context.Context, d organization.Department) (organization.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO departments (name, description, head_id)
		VALUES ($1, $2, $3)
		RETURNING id, name, description, head_id
	`
	created, err := scanDepartment(q.QueryRow(ctx, query, d.Name, d.Description, d.HeadID))
	if name, ok := uniqueConstraint(err); ok && name == "departments_name_key" {
		return organization.Department{}, organization.ErrDepartmentNameExists
	}
	return created, err
}

func (r *departmentRepositoryImpl) GetByName(ctx context.Context, name string) (organization.Department, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT id, name, description, head_id FROM departments WHERE LOWER(name) = LOWER($1)`
	return scanDepartment(q.QueryRow(ctx, query, name))
}

func (r *departmentRepositoryImpl) List(ctx context.Context) ([]organization.Department, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, description, head_id FROM departments ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []organization.Department
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

func (r *departmentRepositoryImpl) ClearHead(ctx context.Context, userID int64) error {
	q := GetQuerier(ctx, r.db)
	_, err := q.Exec(ctx, `UPDATE departments SET head_id = NULL WHERE head_id = $1`, userID)
	return err
}
