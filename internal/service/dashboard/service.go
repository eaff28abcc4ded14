package dashboard

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/dashboard"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/learning"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	holidayService  holiday.Service
	learningService learning.Service
	holiday.Repository
	user.UserRepository
	now func() time.Time
}

func NewDashboardService(holidayService holiday.Service, learningService learning.Service, holidayRepository holiday.Repository, userRepository user.UserRepository) dashboard.DashboardService {
	return &DashboardServiceImpl{
		holidayService:  holidayService,
		learningService: learningService,
		Repository:      holidayRepository,
		UserRepository:  userRepository,
		now:             time.Now,
	}
}

// Stats gathers the landing-page figures for actor using parallel reads.
func (s *DashboardServiceImpl) Stats(ctx context.Context, actor user.User) (dashboard.StatsResponse, error) {
	var (
		balance          holiday.BalanceResponse
		learningStats    learning.StatsResponse
		pendingRequests  int
		awaitingApproval int
		teamAvailability int
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Holiday balance
	g.Go(func() error {
		var err error
		balance, err = s.holidayService.Balance(gCtx, actor.ID)
		return err
	})

	// 2. Caller's own pending requests
	g.Go(func() error {
		pending := holiday.StatusPending
		requests, err := s.Repository.List(gCtx, holiday.Filter{UserID: &actor.ID, Status: &pending})
		if err != nil {
			return fmt.Errorf("failed to list pending requests: %w", err)
		}
		pendingRequests = len(requests)
		return nil
	})

	// 3. Approval queue, only for approvers
	if user.Authorize(actor, user.PermissionHolidayApprove) {
		g.Go(func() error {
			pending := holiday.StatusPending
			requests, err := s.Repository.List(gCtx, holiday.Filter{Status: &pending})
			if err != nil {
				return fmt.Errorf("failed to list approval queue: %w", err)
			}
			awaitingApproval = len(requests)
			return nil
		})
	}

	// 4. Learning completion
	g.Go(func() error {
		var err error
		learningStats, err = s.learningService.Stats(gCtx, actor.ID)
		return err
	})

	// 5. Department availability today
	g.Go(func() error {
		var err error
		teamAvailability, err = s.teamAvailability(gCtx, actor.Department)
		return err
	})

	if err := g.Wait(); err != nil {
		return dashboard.StatsResponse{}, err
	}

	return dashboard.StatsResponse{
		HolidayBalance:     balance.Remaining,
		Accrued:            int(math.Round(float64(balance.Allowance) / 12)),
		PendingRequests:    pendingRequests,
		AwaitingApproval:   awaitingApproval,
		LearningCompletion: learningStats.TotalCompletionRate,
		TeamAvailability:   teamAvailability,
	}, nil
}

// teamAvailability is the share of department members not on approved holiday today.
func (s *DashboardServiceImpl) teamAvailability(ctx context.Context, department string) (int, error) {
	users, err := s.UserRepository.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list users: %w", err)
	}
	members := make(map[int64]bool)
	for _, u := range users {
		if u.Department == department {
			members[u.ID] = true
		}
	}
	if len(members) == 0 {
		return 100, nil
	}

	approved := holiday.StatusApproved
	requests, err := s.Repository.List(ctx, holiday.Filter{Status: &approved})
	if err != nil {
		return 0, fmt.Errorf("failed to list approved requests: %w", err)
	}

	today := s.now()
	away := make(map[int64]bool)
	for _, r := range requests {
		if members[r.UserID] && r.Covers(today) {
			away[r.UserID] = true
		}
	}

	available := len(members) - len(away)
	return int(math.Round(float64(available) / float64(len(members)) * 100)), nil
}
