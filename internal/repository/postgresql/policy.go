package postgresql

import (
	"context"
	"errors"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/policy"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type policyRepositoryImpl struct {
	db *database.DB
}

func NewPolicyRepository(db *database.DB) policy.Repository {
	return &policyRepositoryImpl{db: db}
}

func scanPolicy(row pgx.Row) (policy.Policy, error) {
	var p policy.Policy
	err := row.Scan(&p.ID, &p.Title, &p.Category, &p.Content, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return policy.Policy{}, policy.ErrPolicyNotFound
	}
	return p, err
}

func (r *policyRepositoryImpl) Create(ctx context.Context, p policy.Policy) (policy.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO policies (title, category, content)
		VALUES ($1, $2, $3)
		RETURNING id, title, category, content, created_at, updated_at
	`
	return scanPolicy(q.QueryRow(ctx, query, p.Title, p.Category, p.Content))
}

func (r *policyRepositoryImpl) GetByID(ctx context.Context, id int64) (policy.Policy, error) {
	q := GetQuerier(ctx, r.db)
	query := `SELECT id, title, category, content, created_at, updated_at FROM policies WHERE id = $1`
	return scanPolicy(q.QueryRow(ctx, query, id))
}

func (r *policyRepositoryImpl) List(ctx context.Context) ([]policy.Policy, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, title, category, content, created_at, updated_at FROM policies ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var policies []policy.Policy
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, rows.Err()
}
