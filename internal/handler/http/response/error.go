package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/admin"
	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/serverroom"
	"github.com/cmlabs-hris/empatt-backend-go/internal/pkg/lock"
	"github.com/cmlabs-hris/empatt-backend-go/internal/pkg/validator"
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
		Unauthorized(w, "Invalid username or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token has been revoked")
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, admin.ErrUsernameExists):
		Conflict(w, "Username already exists")
	case errors.Is(err, admin.ErrAdminNotFound):
		NotFound(w, "Admin not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrInvalidPunchCardID):
		BadRequest(w, "Invalid punchCardId", nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		BadRequest(w, "Already checked in", nil)
	case errors.Is(err, attendance.ErrNoActiveCheckIn):
		BadRequest(w, "No active check-in found", nil)
	case errors.Is(err, attendance.ErrCheckInRestricted):
		Forbidden(w, "Check-in restricted due to violations. Please contact an administrator.")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance not found")
	case errors.Is(err, attendance.ErrSessionAlreadyClosed):
		Conflict(w, "Session already closed")
	case errors.Is(err, lock.ErrLockTimeout):
		Conflict(w, "Another punch for this card is in progress, please retry")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound), errors.Is(err, serverroom.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrPunchCardIDExists):
		Conflict(w, "Punch card ID already exists")
	case errors.Is(err, employee.ErrEmployeeHasRecords):
		Conflict(w, "Employee has attendance or server room records")
	case errors.Is(err, employee.ErrPunchCardIDImmutable):
		UnprocessableEntity(w, "punchCardId cannot be changed")

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
