// Package app assembles the repositories, services and HTTP handlers into one router.
package app

import (
	"log/slog"

	"github.com/cmlabs-hris/hr-portal-backend/internal/config"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/activity"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/learning"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/notification"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/organization"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/policy"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend/internal/fixtures"
	appHTTP "github.com/cmlabs-hris/hr-portal-backend/internal/handler/http"
	"github.com/cmlabs-hris/hr-portal-backend/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/database"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/jwt"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/metrics"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/oauth"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/sse"
	"github.com/cmlabs-hris/hr-portal-backend/internal/repository/memory"
	"github.com/cmlabs-hris/hr-portal-backend/internal/repository/postgresql"
	activityService "github.com/cmlabs-hris/hr-portal-backend/internal/service/activity"
	serviceAuth "github.com/cmlabs-hris/hr-portal-backend/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/hr-portal-backend/internal/service/dashboard"
	holidayService "github.com/cmlabs-hris/hr-portal-backend/internal/service/holiday"
	learningService "github.com/cmlabs-hris/hr-portal-backend/internal/service/learning"
	notificationService "github.com/cmlabs-hris/hr-portal-backend/internal/service/notification"
	organizationService "github.com/cmlabs-hris/hr-portal-backend/internal/service/organization"
	policyService "github.com/cmlabs-hris/hr-portal-backend/internal/service/policy"
	userService "github.com/cmlabs-hris/hr-portal-backend/internal/service/user"
	"github.com/go-chi/chi/v5"
)

// Stores is one complete set of repositories sharing a transactor.
type Stores struct {
	Transactor    database.Transactor
	Users         user.UserRepository
	Departments   organization.DepartmentRepository
	Holidays      holiday.Repository
	Policies      policy.Repository
	Courses       learning.CourseRepository
	Modules       learning.ModuleRepository
	Progress      learning.ProgressRepository
	Activities    activity.Repository
	Notifications notification.Repository
}

func MemoryStores(s *memory.Store) Stores {
	return Stores{
		Transactor:    s,
		Users:         memory.NewUserRepository(s),
		Departments:   memory.NewDepartmentRepository(s),
		Holidays:      memory.NewHolidayRepository(s),
		Policies:      memory.NewPolicyRepository(s),
		Courses:       memory.NewCourseRepository(s),
		Modules:       memory.NewModuleRepository(s),
		Progress:      memory.NewProgressRepository(s),
		Activities:    memory.NewActivityRepository(s),
		Notifications: memory.NewNotificationRepository(s),
	}
}

func PostgresStores(db *database.DB) Stores {
	return Stores{
		Transactor:    postgresql.NewTransactor(db),
		Users:         postgresql.NewUserRepository(db),
		Departments:   postgresql.NewDepartmentRepository(db),
		Holidays:      postgresql.NewHolidayRepository(db),
		Policies:      postgresql.NewPolicyRepository(db),
		Courses:       postgresql.NewCourseRepository(db),
		Modules:       postgresql.NewModuleRepository(db),
		Progress:      postgresql.NewProgressRepository(db),
		Activities:    postgresql.NewActivityRepository(db),
		Notifications: postgresql.NewNotificationRepository(db),
	}
}

// Fixtures exposes the stores the seed writes through.
func (s Stores) Fixtures() fixtures.Repositories {
	return fixtures.Repositories{
		Transactor:  s.Transactor,
		Users:       s.Users,
		Departments: s.Departments,
		Holidays:    s.Holidays,
		Policies:    s.Policies,
		Courses:     s.Courses,
		Modules:     s.Modules,
		Progress:    s.Progress,
		Activities:  s.Activities,
	}
}

// NewRouter builds every service on top of stores and returns the HTTP router.
func NewRouter(cfg *config.Config, stores Stores, logger *slog.Logger) *chi.Mux {
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.App.Env == "production")

	var GoogleService oauth.GoogleService
	if cfg.OAuth2Google.Enabled() {
		GoogleService = oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	}

	appMetrics := metrics.New()
	hub := sse.NewHub()

	activitySvc := activityService.NewActivityService(stores.Activities)
	notificationSvc := notificationService.NewNotificationService(stores.Notifications, hub)
	authSvc := serviceAuth.NewAuthService(stores.Users, JWTService, GoogleService)
	userSvc := userService.NewUserService(stores.Transactor, stores.Users, stores.Departments)
	holidaySvc := holidayService.NewHolidayService(
		stores.Transactor,
		stores.Holidays,
		stores.Users,
		activitySvc,
		notificationSvc,
		appMetrics,
		cfg.Holiday.Allowance,
	)
	policySvc := policyService.NewPolicyService(stores.Transactor, stores.Policies, activitySvc)
	learningSvc := learningService.NewLearningService(
		stores.Transactor,
		stores.Courses,
		stores.Modules,
		stores.Progress,
		activitySvc,
	)
	organizationSvc := organizationService.NewOrganizationService(stores.Departments, stores.Users)
	dashboardSvc := dashboardService.NewDashboardService(holidaySvc, learningSvc, stores.Holidays, stores.Users)

	return appHTTP.NewRouter(appHTTP.RouterDeps{
		Logger:         logger,
		AllowedOrigins: cfg.App.AllowedOrigins,
		JWTService:     JWTService,
		AuthService:    authSvc,
		Metrics:        appMetrics,
		LoginLimiter:   middleware.NewRateLimiter(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.LoginBurst),

		Auth:         appHTTP.NewAuthHandler(JWTService, authSvc, GoogleService, cfg.App.FrontendURL),
		User:         appHTTP.NewUserHandler(userSvc),
		Holiday:      appHTTP.NewHolidayHandler(holidaySvc),
		Policy:       appHTTP.NewPolicyHandler(policySvc),
		Learning:     appHTTP.NewLearningHandler(learningSvc),
		Organization: appHTTP.NewOrganizationHandler(organizationSvc),
		Dashboard:    appHTTP.NewDashboardHandler(dashboardSvc, activitySvc),
		Notification: appHTTP.NewNotificationHandler(notificationSvc),
	})
}
