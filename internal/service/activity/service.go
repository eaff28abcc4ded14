package activity

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/activity"
)

type ActivityServiceImpl struct {
	activity.Repository
}

func NewActivityService(repo activity.Repository) activity.Service {
	return &ActivityServiceImpl{Repository: repo}
}

// Record appends an entry to a user's feed
func (s *ActivityServiceImpl) Record(ctx context.Context, req activity.RecordRequest) (activity.Activity, error) {
	created, err := s.Repository.Create(ctx, activity.Activity{
		UserID:      req.UserID,
		Type:        req.Type,
		Description: req.Description,
		Metadata:    req.Metadata,
	})
	if err != nil {
		return activity.Activity{}, fmt.Errorf("failed to record activity: %w", err)
	}
	return created, nil
}

// ListRecent returns the newest entries, clamping limit to [1, MaxLimit]
func (s *ActivityServiceImpl) ListRecent(ctx context.Context, userID int64, limit int) ([]activity.ActivityResponse, error) {
	if limit <= 0 {
		limit = activity.DefaultLimit
	}
	if limit > activity.MaxLimit {
		limit = activity.MaxLimit
	}

	activities, err := s.Repository.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]activity.ActivityResponse, len(activities))
	for i, a := range activities {
		responses[i] = activity.NewActivityResponse(a)
	}
	return responses, nil
}
