package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/job"
	"github.com/cmlabs-hris/empatt-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/empatt-backend-go/internal/pkg/lock"
	"github.com/cmlabs-hris/empatt-backend-go/internal/pkg/validator"
)

const (
	MessageCheckIn         = "Check-in recorded"
	MessageEmergencyEntry  = "Temporary entry recorded"
	MessageCheckOut        = "Check-out recorded"
	MessageViolationsReset = "Violations reset successfully"
)

// Rules are the attendance policy knobs.
type Rules struct {
	ViolationLimit             int
	EmergencyAutoCheckoutAfter time.Duration
	DefaultLocation            string
	Location                   *time.Location
}

var _ attendance.AttendanceService = (*AttendanceServiceImpl)(nil)

type AttendanceServiceImpl struct {
	tx database.Transactor
	attendance.AttendanceRepository
	employee.EmployeeRepository
	job.ScheduledJobRepository
	locker lock.Locker
	rules  Rules
	now    func() time.Time
}

func punchLockKey(employeeID string) string {
	return "punch:" + employeeID
}

// RecordAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecordAttendance(ctx context.Context, req attendance.RecordAttendanceRequest) (attendance.RecordAttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordAttendanceResponse{}, err
	}

	location := strings.TrimSpace(req.Location)
	if location == "" {
		location = s.rules.DefaultLocation
	}

	emp, err := s.resolvePunchCard(ctx, req.PunchCardID)
	if err != nil {
		return attendance.RecordAttendanceResponse{}, err
	}

	release, err := s.locker.Acquire(ctx, punchLockKey(emp.ID))
	if err != nil {
		return attendance.RecordAttendanceResponse{}, fmt.Errorf("failed to acquire punch lock: %w", err)
	}
	defer release()

	var result attendance.RecordAttendanceResponse
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		now := s.clock()

		open, err := s.AttendanceRepository.GetOpenSession(ctx, emp.ID)
		if err != nil {
			return err
		}

		switch req.Action {
		case attendance.ActionCheckIn, attendance.ActionEmergencyCheckIn:
			created, err := s.checkIn(ctx, emp.ID, req, location, open, now)
			if err != nil {
				return err
			}
			result.Attendance = attendance.ToResponse(created)
			result.Message = MessageCheckIn
			if req.Action == attendance.ActionEmergencyCheckIn {
				result.Message = MessageEmergencyEntry
			}

		case attendance.ActionCheckOut:
			if open == nil {
				return attendance.ErrNoActiveCheckIn
			}
			increment := 0
			if req.IsForced {
				increment = 1
			}
			closed, err := s.AttendanceRepository.CloseSession(ctx, attendance.CloseSessionParams{
				ID:                 open.ID,
				CheckOut:           now,
				CheckOutLocation:   location,
				Duration:           attendance.DurationMinutes(open.CheckIn, now),
				ViolationIncrement: increment,
			})
			if err != nil {
				if errors.Is(err, attendance.ErrSessionAlreadyClosed) {
					return attendance.ErrNoActiveCheckIn
				}
				return err
			}
			if err := s.ScheduledJobRepository.CancelForAttendance(ctx, closed.ID); err != nil {
				return err
			}
			result.Attendance = attendance.ToResponse(closed)
			result.Message = MessageCheckOut
		}
		return nil
	})
	if err != nil {
		return attendance.RecordAttendanceResponse{}, err
	}

	slog.Info("attendance recorded",
		"action", req.Action,
		"employee_id", emp.ID,
		"attendance_id", result.Attendance.ID,
		"forced", req.IsForced,
	)

	return result, nil
}

func (s *AttendanceServiceImpl) checkIn(ctx context.Context, employeeID string, req attendance.RecordAttendanceRequest, location string, open *attendance.Attendance, now time.Time) (attendance.Attendance, error) {
	if open != nil {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
	}

	violated, err := s.AttendanceRepository.CountViolatedSessions(ctx, employeeID)
	if err != nil {
		return attendance.Attendance{}, err
	}

	emergency := req.Action == attendance.ActionEmergencyCheckIn
	if !emergency && violated >= s.rules.ViolationLimit {
		return attendance.Attendance{}, attendance.ErrCheckInRestricted
	}

	violationCount := violated
	if req.IsForced {
		violationCount++
	}

	created, err := s.AttendanceRepository.Create(ctx, attendance.Attendance{
		EmployeeID:      employeeID,
		CheckIn:         now,
		CheckInLocation: location,
		IsEmergency:     emergency,
		ViolationCount:  violationCount,
	})
	if err != nil {
		return attendance.Attendance{}, err
	}

	if emergency {
		err = s.ScheduledJobRepository.Enqueue(ctx, job.ScheduledJob{
			Kind:             job.KindEmergencyAutoCheckout,
			AttendanceID:     created.ID,
			CheckOutLocation: location,
			RunAt:            now.Add(s.rules.EmergencyAutoCheckoutAfter),
		})
		if err != nil {
			return attendance.Attendance{}, err
		}
	}

	return created, nil
}

// AutoCheckout implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) AutoCheckout(ctx context.Context, attendanceID string, location string) (bool, error) {
	att, err := s.AttendanceRepository.GetByID(ctx, attendanceID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return false, nil
		}
		return false, err
	}
	if !att.IsOpen() {
		return false, nil
	}

	release, err := s.locker.Acquire(ctx, punchLockKey(att.EmployeeID))
	if err != nil {
		return false, fmt.Errorf("failed to acquire punch lock: %w", err)
	}
	defer release()

	if location == "" {
		location = att.CheckInLocation
	}
	now := s.clock()

	closed, err := s.AttendanceRepository.CloseSession(ctx, attendance.CloseSessionParams{
		ID:               att.ID,
		CheckOut:         now,
		CheckOutLocation: location,
		Duration:         attendance.DurationMinutes(att.CheckIn, now),
	})
	if err != nil {
		if errors.Is(err, attendance.ErrSessionAlreadyClosed) {
			return false, nil
		}
		return false, err
	}

	slog.Info("emergency session auto-closed",
		"attendance_id", closed.ID,
		"employee_id", closed.EmployeeID,
		"duration", *closed.Duration,
	)
	return true, nil
}

// GetLastAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetLastAttendance(ctx context.Context, punchCardID string) (*attendance.AttendanceResponse, error) {
	if validator.IsEmpty(punchCardID) {
		return nil, validator.ValidationErrors{{Field: "punchCardId", Message: "punchCardId is required"}}
	}

	emp, err := s.resolvePunchCard(ctx, punchCardID)
	if err != nil {
		return nil, err
	}

	latest, err := s.AttendanceRepository.GetLatestByEmployee(ctx, emp.ID)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, nil
	}

	resp := attendance.ToResponse(*latest)
	return &resp, nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	listFilter := s.dateRange(filter.StartDate, filter.EndDate)
	listFilter.EmployeeID = filter.EmployeeID
	if filter.Location != nil {
		if loc := strings.TrimSpace(*filter.Location); loc != "" {
			listFilter.Location = &loc
		}
	}

	rows, err := s.AttendanceRepository.List(ctx, listFilter)
	if err != nil {
		return nil, err
	}
	return attendance.ToResponses(rows), nil
}

// GetEmployeeAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetEmployeeAttendance(ctx context.Context, filter attendance.EmployeeAttendanceFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	emp, err := s.resolvePunchCard(ctx, filter.PunchCardID)
	if err != nil {
		return nil, err
	}

	listFilter := s.dateRange(filter.StartDate, filter.EndDate)
	listFilter.EmployeeID = &emp.ID

	rows, err := s.AttendanceRepository.List(ctx, listFilter)
	if err != nil {
		return nil, err
	}
	return attendance.ToResponses(rows), nil
}

// ResetViolations implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ResetViolations(ctx context.Context, req attendance.ResetViolationsRequest) (attendance.ResetViolationsResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ResetViolationsResponse{}, err
	}

	emp, err := s.resolvePunchCard(ctx, req.PunchCardID)
	if err != nil {
		return attendance.ResetViolationsResponse{}, err
	}

	n, err := s.AttendanceRepository.ResetViolations(ctx, emp.ID)
	if err != nil {
		return attendance.ResetViolationsResponse{}, err
	}

	slog.Info("violations reset", "employee_id", emp.ID, "sessions", n)

	return attendance.ResetViolationsResponse{
		Message:       MessageViolationsReset,
		SessionsReset: n,
	}, nil
}

func (s *AttendanceServiceImpl) resolvePunchCard(ctx context.Context, punchCardID string) (employee.Employee, error) {
	emp, err := s.EmployeeRepository.GetByPunchCardID(ctx, strings.TrimSpace(punchCardID))
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, attendance.ErrInvalidPunchCardID
		}
		return employee.Employee{}, fmt.Errorf("failed to resolve punch card: %w", err)
	}
	return emp, nil
}

// dateRange turns validated YYYY-MM-DD bounds into [start 00:00, end+1 00:00) in the app time zone.
func (s *AttendanceServiceImpl) dateRange(startDate, endDate *string) attendance.ListFilter {
	var f attendance.ListFilter
	if startDate != nil {
		if from, ok := validator.ParseDateIn(*startDate, s.rules.Location); ok {
			f.From = &from
		}
	}
	if endDate != nil {
		if end, ok := validator.ParseDateIn(*endDate, s.rules.Location); ok {
			to := end.AddDate(0, 0, 1)
			f.To = &to
		}
	}
	return f
}

// clock is UTC truncated to the store's microsecond precision.
func (s *AttendanceServiceImpl) clock() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepository attendance.AttendanceRepository,
	employeeRepository employee.EmployeeRepository,
	jobRepository job.ScheduledJobRepository,
	locker lock.Locker,
	rules Rules,
) *AttendanceServiceImpl {
	if rules.Location == nil {
		rules.Location = time.UTC
	}
	if rules.DefaultLocation == "" {
		rules.DefaultLocation = "Unknown"
	}
	return &AttendanceServiceImpl{
		tx:                     tx,
		AttendanceRepository:   attendanceRepository,
		EmployeeRepository:     employeeRepository,
		ScheduledJobRepository: jobRepository,
		locker:                 locker,
		rules:                  rules,
		now:                    time.Now,
	}
}

// WithClock overrides the time source.
func (s *AttendanceServiceImpl) WithClock(now func() time.Time) *AttendanceServiceImpl {
	s.now = now
	return s
}
