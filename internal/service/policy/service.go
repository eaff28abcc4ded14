package policy

import (
	"context"
	"fmt"
	"html"
	"log/slog"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/activity"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/policy"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/database"
)

type PolicyServiceImpl struct {
	db database.Transactor
	policy.Repository
	activityService activity.Service
}

func NewPolicyService(db database.Transactor, policyRepository policy.Repository, activityService activity.Service) policy.Service {
	return &PolicyServiceImpl{
		db:              db,
		Repository:      policyRepository,
		activityService: activityService,
	}
}

// List implements policy.Service.
func (s *PolicyServiceImpl) List(ctx context.Context) ([]policy.PolicyResponse, error) {
	policies, err := s.Repository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}
	responses := make([]policy.PolicyResponse, len(policies))
	for i, p := range policies {
		responses[i] = policy.NewPolicyResponse(p)
	}
	return responses, nil
}

// Categories returns each distinct category in the order it first appears.
func (s *PolicyServiceImpl) Categories(ctx context.Context) ([]string, error) {
	policies, err := s.Repository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}
	seen := make(map[string]struct{})
	categories := []string{}
	for _, p := range policies {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories, nil
}

// GetByID implements policy.Service.
func (s *PolicyServiceImpl) GetByID(ctx context.Context, id int64) (policy.PolicyResponse, error) {
	p, err := s.Repository.GetByID(ctx, id)
	if err != nil {
		return policy.PolicyResponse{}, err
	}
	return policy.NewPolicyResponse(p), nil
}

// Create implements policy.Service.
func (s *PolicyServiceImpl) Create(ctx context.Context, actor user.User, req policy.CreatePolicyRequest) (policy.PolicyResponse, error) {
	if !user.Authorize(actor, user.PermissionPolicyCreate) {
		return policy.PolicyResponse{}, user.ErrInsufficientPermissions
	}
	if err := req.Validate(); err != nil {
		return policy.PolicyResponse{}, err
	}

	var created policy.Policy
	err := s.db.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.Repository.Create(ctx, policy.Policy{
			Title:    req.Title,
			Category: req.Category,
			Content:  req.Content,
		})
		if err != nil {
			return fmt.Errorf("failed to create policy: %w", err)
		}

		_, err = s.activityService.Record(ctx, activity.RecordRequest{
			UserID:      actor.ID,
			Type:        activity.TypePolicyUpdate,
			Description: fmt.Sprintf(`New policy update: <span class="font-medium">%s</span>`, html.EscapeString(created.Title)),
			Metadata:    map[string]interface{}{"policyId": created.ID},
		})
		return err
	})
	if err != nil {
		return policy.PolicyResponse{}, err
	}

	slog.Info("Policy created", "policy_id", created.ID, "category", created.Category, "by", actor.ID)
	return policy.NewPolicyResponse(created), nil
}
