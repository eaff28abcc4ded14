package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/activity"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/database"
)

type activityRepositoryImpl struct {
	db *database.DB
}

func NewActivityRepository(db *database.DB) activity.Repository {
	return &activityRepositoryImpl{db: db}
}

func (r *activityRepositoryImpl) Create(ctx context.Context, a activity.Activity) (activity.Activity, error) {
	q := GetQuerier(ctx, r.db)

	dataJSON, err := marshalMetadata(a.Metadata)
	if err != nil {
		return activity.Activity{}, fmt.Errorf("failed to marshal activity metadata: %w", err)
	}

	query := `
		INSERT INTO activities (user_id, type, description, metadata, created_at)
		VALUES ($1, $2, $3, $4, COALESCE($5, NOW()))
		RETURNING id, created_at
	`
	err = q.QueryRow(ctx, query,
		a.UserID,
		string(a.Type),
		a.Description,
		dataJSON,
		nullTime(a.CreatedAt),
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return activity.Activity{}, err
	}
	return a, nil
}

func (r *activityRepositoryImpl) ListByUser(ctx context.Context, userID int64, limit int) ([]activity.Activity, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, type, description, metadata, created_at
		FROM activities
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT NULLIF($2, 0)
	`
	rows, err := q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []activity.Activity
	for rows.Next() {
		var (
			a   activity.Activity
			raw []byte
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.Type, &a.Description, &raw, &a.CreatedAt); err != nil {
			return nil, err
		}
		if a.Metadata, err = unmarshalMetadata(raw); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
