package policy

import (
	"context"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
)

type Service interface {
	List(ctx context.Context) ([]PolicyResponse, error)
	Categories(ctx context.Context) ([]string, error)
	GetByID(ctx context.Context, id int64) (PolicyResponse, error)
	Create(ctx context.Context, actor user.User, req CreatePolicyRequest) (PolicyResponse, error)
}
