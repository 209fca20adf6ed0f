package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// RecordAttendance handles a kiosk punch: check-in, check-out or emergency check-in.
	RecordAttendance(ctx context.Context, req RecordAttendanceRequest) (RecordAttendanceResponse, error)

	// AutoCheckout closes an emergency session if it is still open. Reports whether it closed anything.
	AutoCheckout(ctx context.Context, attendanceID string, location string) (bool, error)

	// GetLastAttendance returns the employee's latest session or nil.
	GetLastAttendance(ctx context.Context, punchCardID string) (*AttendanceResponse, error)

	ListAttendance(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, error)

	GetEmployeeAttendance(ctx context.Context, filter EmployeeAttendanceFilter) ([]AttendanceResponse, error)

	ResetViolations(ctx context.Context, req ResetViolationsRequest) (ResetViolationsResponse, error)
}
