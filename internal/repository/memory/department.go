package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/organization"
)

type departmentRepository struct {
	s *Store
}

func NewDepartmentRepository(s *Store) organization.DepartmentRepository {
	return &departmentRepository{s: s}
}

func (r *departmentRepository) Create(ctx context.Context, d organization.Department) (organization.Department, error) {
	err := r.s.write(ctx, func() error {
		for _, existing := range r.s.departments {
			if strings.EqualFold(existing.Name, d.Name) {
				return organization.ErrDepartmentNameExists
			}
		}
		d.ID = r.s.nextID(departmentsCol)
		r.s.departments[d.ID] = d
		return nil
	})
	return d, err
}

func (r *departmentRepository) GetByName(ctx context.Context, name string) (organization.Department, error) {
	var (
		found organization.Department
		ok    bool
	)
	r.s.read(ctx, func() {
		for _, d := range r.s.departments {
			if strings.EqualFold(d.Name, name) {
				found, ok = d, true
				return
			}
		}
	})
	if !ok {
		return organization.Department{}, organization.ErrDepartmentNotFound
	}
	return found, nil
}

func (r *departmentRepository) List(ctx context.Context) ([]organization.Department, error) {
	var out []organization.Department
	r.s.read(ctx, func() {
		for _, d := range r.s.departments {
			out = append(out, d)
		}
	})
	slices.SortFunc(out, func(a, b organization.Department) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *departmentRepository) ClearHead(ctx context.Context, userID int64) error {
	return r.s.write(ctx, func() error {
		for id, d := range r.s.departments {
			if d.HeadID != nil && *d.HeadID == userID {
				d.HeadID = nil
				r.s.departments[id] = d
			}
		}
		return nil
	})
}
