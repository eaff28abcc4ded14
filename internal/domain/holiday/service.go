package holiday

import (
	"context"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
)

type Service interface {
	Create(ctx context.Context, actor user.User, req CreateRequest) (RequestResponse, error)
	List(ctx context.Context, actor user.User) ([]RequestResponse, error)
	ListPending(ctx context.Context) ([]RequestResponse, error)
	UpdateStatus(ctx context.Context, actor user.User, id int64, req UpdateStatusRequest) (RequestResponse, error)
	Balance(ctx context.Context, userID int64) (BalanceResponse, error)
	Upcoming(ctx context.Context) ([]RequestResponse, error)
}
