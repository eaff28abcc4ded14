package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/auth"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/holiday"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/learning"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/notification"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/organization"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/policy"
	"github.com/cmlabs-hris/hr-portal-backend/internal/domain/user"
	"github.com/cmlabs-hris/hr-portal-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenRevoked),
		errors.Is(err, auth.ErrUnauthenticated),
		errors.Is(err, auth.ErrInvalidOAuthState),
		errors.Is(err, auth.ErrGoogleAccountNotLinked):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrOAuthDisabled):
		NotFound(w, err.Error())
	case errors.Is(err, auth.ErrTooManyAttempts):
		TooManyRequests(w, err.Error())

	// User domain errors
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUsernameExists),
		errors.Is(err, user.ErrUserEmailExists),
		errors.Is(err, user.ErrDirectReportsExist),
		errors.Is(err, user.ErrCannotDeleteSelf):
		Conflict(w, err.Error())

	// Holiday domain errors
	case errors.Is(err, holiday.ErrHolidayRequestNotFound):
		NotFound(w, "Holiday request not found")
	case errors.Is(err, holiday.ErrHolidayRequestAlreadyProcessed):
		Conflict(w, "Holiday request already processed")

	// Policy, learning and organization errors
	case errors.Is(err, policy.ErrPolicyNotFound):
		NotFound(w, "Policy not found")
	case errors.Is(err, learning.ErrCourseNotFound):
		NotFound(w, "Course not found")
	case errors.Is(err, learning.ErrProgressNotFound):
		NotFound(w, "Course progress not found")
	case errors.Is(err, organization.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, organization.ErrDepartmentNameExists):
		Conflict(w, "Department name already exists")

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")
	case errors.Is(err, notification.ErrNotOwner):
		Forbidden(w, "Notification belongs to another user")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
