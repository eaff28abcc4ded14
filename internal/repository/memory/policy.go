package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/policy"
)

type policyRepository struct {
	s *Store
}

func NewPolicyRepository(s *Store) policy.Repository {
	return &policyRepository{s: s}
}

func (r *policyRepository) Create(ctx context.Context, p policy.Policy) (policy.Policy, error) {
	err := r.s.write(ctx, func() error {
		p.ID = r.s.nextID(policiesCol)
		p.CreatedAt = r.s.stamp(p.CreatedAt)
		if p.UpdatedAt.IsZero() {
			p.UpdatedAt = p.CreatedAt
		}
		r.s.policies[p.ID] = p
		return nil
	})
	return p, err
}

func (r *policyRepository) GetByID(ctx context.Context, id int64) (policy.Policy, error) {
	var (
		p  policy.Policy
		ok bool
	)
	r.s.read(ctx, func() { p, ok = r.s.policies[id] })
	if !ok {
		return policy.Policy{}, policy.ErrPolicyNotFound
	}
	return p, nil
}

func (r *policyRepository) List(ctx context.Context) ([]policy.Policy, error) {
	var out []policy.Policy
	r.s.read(ctx, func() {
		for _, p := range r.s.policies {
			out = append(out, p)
		}
	})
	slices.SortFunc(out, func(a, b policy.Policy) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}
