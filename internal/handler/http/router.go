package http

import (
	"log/slog"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/auth"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/jwt"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterDeps collects everything the HTTP surface is built from.
type RouterDeps struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	JWTService     jwt.Service
	AuthService    auth.AuthService
	Metrics        *metrics.Metrics
	LoginLimiter   *middleware.RateLimiter

	Auth         AuthHandler
	User         UserHandler
	Holiday      HolidayHandler
	Policy       PolicyHandler
	Learning     LearningHandler
	Organization OrganizationHandler
	Dashboard    DashboardHandler
	Notification NotificationHandler
}

func NewRouter(d RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RealIP)

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	if d.Metrics != nil {
		r.Use(d.Metrics.Instrument)
	}

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Group(func(r chi.Router) {
			if d.LoginLimiter != nil {
				r.Use(d.LoginLimiter.Handler)
			}
			r.Post("/login", d.Auth.Login)
			r.Post("/register", d.Auth.Register)
		})
		r.Get("/login/google", d.Auth.LoginWithGoogle)
		r.Get("/oauth/callback/google", d.Auth.OAuthCallbackGoogle)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(d.JWTService.JWTAuth()))
			r.Use(middleware.Authenticate(d.AuthService))

			r.Post("/logout", d.Auth.Logout)
			r.Get("/user", d.Auth.CurrentUser)

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionUserView))
				r.Get("/", d.User.List)
				r.Get("/{id}", d.User.Get)
				r.Put("/{id}", d.User.UpdateProfile)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Route("/users", func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionUserManage))
					r.Get("/", d.User.List)
					r.Post("/", d.User.Create)
					r.Get("/{id}", d.User.Get)
					r.Put("/{id}", d.User.Update)
					r.Delete("/{id}", d.User.Delete)
				})
				r.Route("/courses", func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLearningManage))
					r.Post("/", d.Learning.CreateCourse)
					r.Post("/{id}/modules", d.Learning.CreateModule)
				})
				r.With(middleware.RequirePermission(user.PermissionOrganizationManage)).
					Post("/departments", d.Organization.CreateDepartment)
			})

			r.Get("/dashboard/stats", d.Dashboard.Stats)
			r.Get("/activities", d.Dashboard.Activities)

			r.Route("/holiday-requests", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionHolidayCreate))
				r.Get("/", d.Holiday.List)
				r.Post("/", d.Holiday.Create)
				r.Get("/upcoming", d.Holiday.Upcoming)
				r.Get("/balance", d.Holiday.Balance)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionHolidayApprove))
					r.Get("/pending", d.Holiday.Pending)
					r.Patch("/{id}/status", d.Holiday.UpdateStatus)
				})
			})

			r.Route("/policies", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionPolicyView))
				r.Get("/", d.Policy.List)
				r.Get("/categories", d.Policy.Categories)
				r.Get("/{id}", d.Policy.Get)
				r.With(middleware.RequirePermission(user.PermissionPolicyCreate)).Post("/", d.Policy.Create)
			})

			r.Route("/courses", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionLearningView))
				r.Get("/", d.Learning.ListCourses)
				r.Get("/categories", d.Learning.Categories)
				r.Get("/progress", d.Learning.ListProgress)
				r.Get("/current", d.Learning.CurrentCourses)
				r.Get("/{id}", d.Learning.GetCourse)
				r.Get("/{id}/modules", d.Learning.ListModules)
				r.Put("/{id}/progress", d.Learning.UpdateProgress)
			})
			r.With(middleware.RequirePermission(user.PermissionLearningView)).Get("/learning/stats", d.Learning.Stats)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionOrganizationView))
				r.Get("/departments", d.Organization.ListDepartments)
				r.Get("/organization", d.Organization.Members)
				r.Get("/organization/chart", d.Organization.Chart)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", d.Notification.List)
				r.Get("/unread", d.Notification.Unread)
				r.Get("/unread-count", d.Notification.UnreadCount)
				r.Get("/stream", d.Notification.Stream)
				r.Patch("/{id}/read", d.Notification.MarkAsRead)
				r.Post("/read-all", d.Notification.MarkAllAsRead)
			})
		})
	})
	return r
}
