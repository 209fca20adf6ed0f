package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/empatt-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

const attendanceColumns = `
	a.id, a.employee_id, a.check_in, a.check_in_location,
	a.check_out, a.check_out_location, a.duration,
	a.is_emergency, a.violation_count, a.created_at, a.updated_at`

const attendanceReturning = `
	id, employee_id, check_in, check_in_location,
	check_out, check_out_location, duration,
	is_emergency, violation_count, created_at, updated_at`

const attendanceJoinedColumns = attendanceColumns + `,
	e.id, e.punch_card_id, e.name, e.department`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.CheckIn, &att.CheckInLocation,
		&att.CheckOut, &att.CheckOutLocation, &att.Duration,
		&att.IsEmergency, &att.ViolationCount, &att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

func scanAttendanceWithEmployee(row pgx.Row) (attendance.Attendance, error) {
	var (
		att attendance.Attendance
		emp attendance.EmployeeInfo
	)
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.CheckIn, &att.CheckInLocation,
		&att.CheckOut, &att.CheckOutLocation, &att.Duration,
		&att.IsEmergency, &att.ViolationCount, &att.CreatedAt, &att.UpdatedAt,
		&emp.ID, &emp.PunchCardID, &emp.Name, &emp.Department,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	att.Employee = &emp
	return att, nil
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to generate attendance id: %w", err)
	}

	query := `
		INSERT INTO attendances (
			id, employee_id, check_in, check_in_location, is_emergency, violation_count
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + attendanceReturning

	created, err := scanAttendance(q.QueryRow(ctx, query,
		id.String(),
		newAttendance.EmployeeID,
		newAttendance.CheckIn,
		newAttendance.CheckInLocation,
		newAttendance.IsEmergency,
		newAttendance.ViolationCount,
	))
	if err != nil {
		if constraintViolation(err, pgUniqueViolation, "attendances_one_open_session_idx") {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return created, nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendances a WHERE a.id = $1`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by id %s: %w", id, err)
	}

	return att, nil
}

// GetOpenSession implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetOpenSession(ctx context.Context, employeeID string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.employee_id = $1
		  AND a.check_out IS NULL
		ORDER BY a.check_in DESC
		LIMIT 1
		FOR UPDATE
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open session: %w", err)
	}

	return &att, nil
}

// GetLatestByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetLatestByEmployee(ctx context.Context, employeeID string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceJoinedColumns + `
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.employee_id = $1
		ORDER BY a.check_in DESC
		LIMIT 1
	`

	att, err := scanAttendanceWithEmployee(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest attendance: %w", err)
	}

	return &att, nil
}

// CountViolatedSessions implements attendance.AttendanceRepository.
func (r *attendanceRepository) CountViolatedSessions(ctx context.Context, employeeID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM attendances WHERE employee_id = $1 AND violation_count > 0`,
		employeeID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count violated sessions: %w", err)
	}

	return count, nil
}

// CloseSession implements attendance.AttendanceRepository.
func (r *attendanceRepository) CloseSession(ctx context.Context, params attendance.CloseSessionParams) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_out = $1,
		    check_out_location = $2,
		    duration = $3,
		    violation_count = violation_count + $4,
		    updated_at = NOW()
		WHERE id = $5
		  AND check_out IS NULL
		RETURNING ` + attendanceReturning

	att, err := scanAttendance(q.QueryRow(ctx, query,
		params.CheckOut,
		params.CheckOutLocation,
		params.Duration,
		params.ViolationIncrement,
		params.ID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrSessionAlreadyClosed
		}
		return attendance.Attendance{}, fmt.Errorf("failed to close attendance %s: %w", params.ID, err)
	}

	return att, nil
}

// ResetViolations implements attendance.AttendanceRepository.
func (r *attendanceRepository) ResetViolations(ctx context.Context, employeeID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE attendances
		SET violation_count = 0, updated_at = NOW()
		WHERE employee_id = $1
		  AND violation_count > 0
	`, employeeID)
	if err != nil {
		return 0, fmt.Errorf("failed to reset violations: %w", err)
	}

	return tag.RowsAffected(), nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	var (
		where  []string
		args   []interface{}
		argIdx = 1
	)

	if filter.EmployeeID != nil {
		where = append(where, fmt.Sprintf("a.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.From != nil {
		where = append(where, fmt.Sprintf("a.check_in >= $%d", argIdx))
		args = append(args, *filter.From)
		argIdx++
	}
	if filter.To != nil {
		where = append(where, fmt.Sprintf("a.check_in < $%d", argIdx))
		args = append(args, *filter.To)
		argIdx++
	}
	if filter.Location != nil {
		where = append(where, fmt.Sprintf("a.check_in_location ILIKE $%d", argIdx))
		args = append(args, "%"+escapeLike(*filter.Location)+"%")
		argIdx++
	}

	query := `
		SELECT ` + attendanceJoinedColumns + `
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id`
	if len(where) > 0 {
		query += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	query += "\n\t\tORDER BY a.check_in DESC, a.id DESC"

	return r.queryJoined(ctx, q, query, args...)
}

// ListByCheckInRange implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByCheckInRange(ctx context.Context, from, to time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceJoinedColumns + `
		FROM attendances a
		JOIN employees e ON e.id = a.employee_id
		WHERE a.check_in >= $1
		  AND a.check_in < $2
		ORDER BY a.check_in ASC, a.id ASC
	`

	return r.queryJoined(ctx, q, query, from, to)
}

func (r *attendanceRepository) queryJoined(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]attendance.Attendance, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	result := make([]attendance.Attendance, 0)
	for rows.Next() {
		att, err := scanAttendanceWithEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		result = append(result, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return result, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
