package response

import (
	"errors"
	"net/http"

	"github.com/udev-hq/intern-portal-backend/internal/domain/attendance"
	"github.com/udev-hq/intern-portal-backend/internal/domain/auth"
	"github.com/udev-hq/intern-portal-backend/internal/domain/leave"
	"github.com/udev-hq/intern-portal-backend/internal/domain/notification"
	"github.com/udev-hq/intern-portal-backend/internal/domain/task"
	"github.com/udev-hq/intern-portal-backend/internal/domain/user"
	"github.com/udev-hq/intern-portal-backend/internal/pkg/validator"
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
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInactiveAccount):
		Forbidden(w, err.Error())

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, user.ErrEmailExists),
		errors.Is(err, user.ErrPhoneExists),
		errors.Is(err, user.ErrIDCardNumberExists),
		errors.Is(err, user.ErrUserHasRecords):
		Conflict(w, err.Error())
	case errors.Is(err, user.ErrInvalidTeamLead):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, user.ErrAccessDenied),
		errors.Is(err, user.ErrAdminPrivilegeReq):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrWelcomeDispatchFailed):
		InternalServerError(w, err.Error())

	// Task domain errors
	case errors.Is(err, task.ErrTaskNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, task.ErrForbidden),
		errors.Is(err, task.ErrNotAssignee):
		Forbidden(w, err.Error())
	case errors.Is(err, task.ErrNotSubmittable),
		errors.Is(err, task.ErrNotSubmitted):
		Conflict(w, err.Error())
	case errors.Is(err, task.ErrInvalidStatus),
		errors.Is(err, task.ErrAssigneeGone):
		BadRequest(w, err.Error(), nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, err.Error())
	case errors.Is(err, leave.ErrOverlapping),
		errors.Is(err, leave.ErrAlreadyProcessed),
		errors.Is(err, leave.ErrNotPending):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrNotOwner),
		errors.Is(err, leave.ErrForbidden):
		Forbidden(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNoRecordToday):
		NotFound(w, err.Error())
	case errors.Is(err, attendance.ErrForbidden):
		Forbidden(w, err.Error())

	// Notification domain errors
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
