package activity

import "context"

type Service interface {
	Record(ctx context.Context, req RecordRequest) (Activity, error)
	ListRecent(ctx context.Context, userID int64, limit int) ([]ActivityResponse, error)
}
