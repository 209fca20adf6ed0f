package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create inserts a new session. A second open session for the same employee
	// is rejected by the store with ErrAlreadyCheckedIn.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetOpenSession returns the employee's open session, or nil when there is none.
	GetOpenSession(ctx context.Context, employeeID string) (*Attendance, error)

	// GetLatestByEmployee returns the most recent session in any state, or nil.
	GetLatestByEmployee(ctx context.Context, employeeID string) (*Attendance, error)

	// CountViolatedSessions counts the employee's sessions with a nonzero violation count.
	CountViolatedSessions(ctx context.Context, employeeID string) (int, error)

	// CloseSession sets check-out fields on a still-open session.
	// Returns ErrSessionAlreadyClosed when the session was closed concurrently.
	CloseSession(ctx context.Context, params CloseSessionParams) (Attendance, error)

	// ResetViolations zeroes every nonzero violation count of the employee.
	ResetViolations(ctx context.Context, employeeID string) (int64, error)

	// List returns joined rows ordered by check-in, newest first.
	List(ctx context.Context, filter ListFilter) ([]Attendance, error)

	// ListByCheckInRange returns joined rows with from <= check_in < to, oldest first.
	ListByCheckInRange(ctx context.Context, from, to time.Time) ([]Attendance, error)
}
