package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/holiday"
)

type holidayRepository struct {
	s *Store
}

func NewHolidayRepository(s *Store) holiday.Repository {
	return &holidayRepository{s: s}
}

func (r *holidayRepository) Create(ctx context.Context, req holiday.Request) (holiday.Request, error) {
	err := r.s.write(ctx, func() error {
		req.ID = r.s.nextID(holidaysCol)
		req.CreatedAt = r.s.stamp(req.CreatedAt)
		r.s.holidays[req.ID] = req
		return nil
	})
	return req, err
}

func (r *holidayRepository) GetByID(ctx context.Context, id int64) (holiday.Request, error) {
	var (
		req holiday.Request
		ok  bool
	)
	r.s.read(ctx, func() { req, ok = r.s.holidays[id] })
	if !ok {
		return holiday.Request{}, holiday.ErrHolidayRequestNotFound
	}
	return req, nil
}

func (r *holidayRepository) List(ctx context.Context, filter holiday.Filter) ([]holiday.Request, error) {
	var out []holiday.Request
	r.s.read(ctx, func() {
		for _, req := range r.s.holidays {
			if filter.UserID != nil && req.UserID != *filter.UserID {
				continue
			}
			if filter.Status != nil && req.Status != *filter.Status {
				continue
			}
			out = append(out, req)
		}
	})
	slices.SortFunc(out, func(a, b holiday.Request) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *holidayRepository) Decide(ctx context.Context, id int64, status holiday.Status, approverID int64) (holiday.Request, error) {
	var req holiday.Request
	err := r.s.write(ctx, func() error {
		existing, ok := r.s.holidays[id]
		if !ok {
			return holiday.ErrHolidayRequestNotFound
		}
		if existing.Status != holiday.StatusPending {
			return holiday.ErrHolidayRequestAlreadyProcessed
		}
		existing.Status = status
		existing.ApprovedByID = &approverID
		r.s.holidays[id] = existing
		req = existing
		return nil
	})
	return req, err
}
