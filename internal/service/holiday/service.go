package holiday

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/activity"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/notification"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/database"
)

const (
	upcomingLimit = 5
	holidayLink   = "/holiday"
)

// TransitionRecorder counts decided requests by outcome.
type TransitionRecorder interface {
	RecordHolidayTransition(status string)
}

type HolidayServiceImpl struct {
	db database.Transactor
	holiday.Repository
	user.UserRepository
	activityService     activity.Service
	notificationService notification.Service
	metrics             TransitionRecorder
	allowance           int
	now                 func() time.Time
}

func NewHolidayService(
	db database.Transactor,
	holidayRepository holiday.Repository,
	userRepository user.UserRepository,
	activityService activity.Service,
	notificationService notification.Service,
	metrics TransitionRecorder,
	allowance int,
) holiday.Service {
	return &HolidayServiceImpl{
		db:                  db,
		Repository:          holidayRepository,
		UserRepository:      userRepository,
		activityService:     activityService,
		notificationService: notificationService,
		metrics:             metrics,
		allowance:           allowance,
		now:                 time.Now,
	}
}

// summaries indexes every user so a list of requests can be annotated in one pass.
func (s *HolidayServiceImpl) summaries(ctx context.Context) (map[int64]*user.Summary, error) {
	users, err := s.UserRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	index := make(map[int64]*user.Summary, len(users))
	for _, u := range users {
		summary := u.Summary()
		index[u.ID] = &summary
	}
	return index, nil
}

func (s *HolidayServiceImpl) annotate(ctx context.Context, requests []holiday.Request) ([]holiday.RequestResponse, error) {
	index, err := s.summaries(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]holiday.RequestResponse, len(requests))
	for i, r := range requests {
		responses[i] = holiday.NewRequestResponse(r, index[r.UserID])
	}
	return responses, nil
}

// Create implements holiday.Service.
func (s *HolidayServiceImpl) Create(ctx context.Context, actor user.User, req holiday.CreateRequest) (holiday.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.RequestResponse{}, err
	}
	start, end := req.Period()

	approvers, err := s.UserRepository.ListByRoles(ctx, user.RolesWith(user.PermissionHolidayApprove))
	if err != nil {
		return holiday.RequestResponse{}, fmt.Errorf("failed to list approvers: %w", err)
	}

	var (
		created holiday.Request
		pending []notification.Notification
	)
	err = s.db.WithTransaction(ctx, func(ctx context.Context) error {
		created, err = s.Repository.Create(ctx, holiday.Request{
			UserID:    actor.ID,
			StartDate: start,
			EndDate:   end,
			Duration:  req.EffectiveDuration(),
			Status:    holiday.StatusPending,
			Reason:    req.Reason,
		})
		if err != nil {
			return fmt.Errorf("failed to create holiday request: %w", err)
		}

		if _, err := s.activityService.Record(ctx, activity.RecordRequest{
			UserID:      actor.ID,
			Type:        activity.TypeHolidayRequest,
			Description: "You submitted a holiday request",
			Metadata:    map[string]interface{}{"holidayRequestId": created.ID},
		}); err != nil {
			return err
		}

		link := holidayLink
		for _, approver := range approvers {
			if approver.ID == actor.ID {
				continue
			}
			n, err := s.notificationService.Create(ctx, notification.CreateNotificationRequest{
				UserID:   approver.ID,
				Title:    "New Holiday Request",
				Message:  fmt.Sprintf("%s has submitted a holiday request", actor.FullName()),
				Type:     notification.TypeHoliday,
				Link:     &link,
				Metadata: map[string]interface{}{"holidayRequestId": created.ID},
			})
			if err != nil {
				return err
			}
			pending = append(pending, n)
		}
		return nil
	})
	if err != nil {
		return holiday.RequestResponse{}, err
	}

	s.notificationService.Publish(pending...)
	slog.Info("Holiday request submitted", "request_id", created.ID, "user_id", actor.ID, "duration", created.Duration)

	owner := actor.Summary()
	return holiday.NewRequestResponse(created, &owner), nil
}

// List implements holiday.Service. Callers without holiday.view_all only see their own requests.
func (s *HolidayServiceImpl) List(ctx context.Context, actor user.User) ([]holiday.RequestResponse, error) {
	var filter holiday.Filter
	if !user.Authorize(actor, user.PermissionHolidayViewAll) {
		filter.UserID = &actor.ID
	}
	requests, err := s.Repository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list holiday requests: %w", err)
	}
	return s.annotate(ctx, requests)
}

// ListPending implements holiday.Service.
func (s *HolidayServiceImpl) ListPending(ctx context.Context) ([]holiday.RequestResponse, error) {
	status := holiday.StatusPending
	requests, err := s.Repository.List(ctx, holiday.Filter{Status: &status})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending holiday requests: %w", err)
	}
	return s.annotate(ctx, requests)
}

// UpdateStatus implements holiday.Service. The decision, the requester's activity
// entry and notification are written together; a request can only be decided once.
func (s *HolidayServiceImpl) UpdateStatus(ctx context.Context, actor user.User, id int64, req holiday.UpdateStatusRequest) (holiday.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return holiday.RequestResponse{}, err
	}

	var (
		decided holiday.Request
		sent    notification.Notification
	)
	err := s.db.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		decided, err = s.Repository.Decide(ctx, id, req.Status, actor.ID)
		if err != nil {
			return err
		}

		activityType, tone, notificationType := activity.TypeHolidayApproved, "text-success", notification.TypeSuccess
		if req.Status == holiday.StatusRejected {
			activityType, tone, notificationType = activity.TypeHolidayRejected, "text-destructive", notification.TypeError
		}

		if _, err := s.activityService.Record(ctx, activity.RecordRequest{
			UserID:      decided.UserID,
			Type:        activityType,
			Description: fmt.Sprintf(`Your holiday request was <span class="font-medium %s">%s</span>`, tone, decided.Status),
			Metadata:    map[string]interface{}{"holidayRequestId": decided.ID},
		}); err != nil {
			return err
		}

		link := holidayLink
		sent, err = s.notificationService.Create(ctx, notification.CreateNotificationRequest{
			UserID:   decided.UserID,
			Title:    "Holiday Request Status",
			Message:  fmt.Sprintf("Your holiday request has been %s by %s", decided.Status, actor.FullName()),
			Type:     notificationType,
			Link:     &link,
			Metadata: map[string]interface{}{"holidayRequestId": decided.ID},
		})
		return err
	})
	if err != nil {
		return holiday.RequestResponse{}, err
	}

	s.notificationService.Publish(sent)
	if s.metrics != nil {
		s.metrics.RecordHolidayTransition(string(decided.Status))
	}
	slog.Info("Holiday request decided", "request_id", decided.ID, "status", decided.Status, "by", actor.ID)

	var owner *user.Summary
	if u, err := s.UserRepository.GetByID(ctx, decided.UserID); err == nil {
		summary := u.Summary()
		owner = &summary
	}
	return holiday.NewRequestResponse(decided, owner), nil
}

// Balance implements holiday.Service.
func (s *HolidayServiceImpl) Balance(ctx context.Context, userID int64) (holiday.BalanceResponse, error) {
	approved := holiday.StatusApproved
	requests, err := s.Repository.List(ctx, holiday.Filter{UserID: &userID, Status: &approved})
	if err != nil {
		return holiday.BalanceResponse{}, fmt.Errorf("failed to list approved holiday requests: %w", err)
	}

	used := 0
	for _, r := range requests {
		used += r.Duration
	}
	return holiday.BalanceResponse{
		Allowance: s.allowance,
		Used:      used,
		Remaining: s.allowance - used,
	}, nil
}

// Upcoming lists everyone's non-rejected requests starting today or later, so the
// team can see who will be away.
func (s *HolidayServiceImpl) Upcoming(ctx context.Context) ([]holiday.RequestResponse, error) {
	requests, err := s.Repository.List(ctx, holiday.Filter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list holiday requests: %w", err)
	}

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	upcoming := make([]holiday.Request, 0, len(requests))
	for _, r := range requests {
		if r.Status != holiday.StatusRejected && !r.StartDate.Before(today) {
			upcoming = append(upcoming, r)
		}
	}
	slices.SortStableFunc(upcoming, func(a, b holiday.Request) int { return a.StartDate.Compare(b.StartDate) })
	if len(upcoming) > upcomingLimit {
		upcoming = upcoming[:upcomingLimit]
	}
	return s.annotate(ctx, upcoming)
}
