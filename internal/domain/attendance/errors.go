package attendance

import "errors"

// Attendance domain errors
var (
	// Recording errors
	ErrInvalidPunchCardID = errors.New("invalid punchCardId")
	ErrAlreadyCheckedIn   = errors.New("employee already checked in")
	ErrCheckInRestricted  = errors.New("check-in restricted due to violations")
	ErrNoActiveCheckIn    = errors.New("no active check-in found")

	// General errors
	ErrAttendanceNotFound   = errors.New("attendance record not found")
	ErrSessionAlreadyClosed = errors.New("attendance session already closed")
)
