package dashboard

import (
	"context"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
)

type DashboardService interface {
	Stats(ctx context.Context, actor user.User) (StatsResponse, error)
}
