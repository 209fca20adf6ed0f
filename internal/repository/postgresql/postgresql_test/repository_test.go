package postgresql_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/admin"
	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/job"
	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/serverroom"
	"github.com/cmlabs-hris/empatt-backend-go/internal/repository/postgresql"
)

func createTestEmployee(t *testing.T, repo employee.EmployeeRepository, card string) employee.Employee {
	t.Helper()
	emp, err := repo.Create(context.Background(), employee.Employee{PunchCardID: card, Name: "Employee " + card})
	require.NoError(t, err)
	return emp
}

func TestEmployeeRepository_Constraints(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	employees := postgresql.NewEmployeeRepository(setup.DB)
	attendances := postgresql.NewAttendanceRepository(setup.DB)

	emp := createTestEmployee(t, employees, "CARD-1")

	_, err := employees.Create(ctx, employee.Employee{PunchCardID: "CARD-1", Name: "Duplicate"})
	assert.ErrorIs(t, err, employee.ErrPunchCardIDExists)

	got, err := employees.GetByPunchCardID(ctx, "CARD-1")
	require.NoError(t, err)
	assert.Equal(t, emp.ID, got.ID)

	_, err = attendances.Create(ctx, attendance.Attendance{EmployeeID: emp.ID, CheckIn: time.Now().UTC(), CheckInLocation: "Gate"})
	require.NoError(t, err)
	assert.ErrorIs(t, employees.Delete(ctx, emp.ID), employee.ErrEmployeeHasRecords)

	other := createTestEmployee(t, employees, "CARD-2")
	require.NoError(t, employees.Delete(ctx, other.ID))
	_, err = employees.GetByID(ctx, other.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestAttendanceRepository_OneOpenSession(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	employees := postgresql.NewEmployeeRepository(setup.DB)
	attendances := postgresql.NewAttendanceRepository(setup.DB)
	emp := createTestEmployee(t, employees, "CARD-1")

	var wg sync.WaitGroup
	errs := make([]error, 10)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = attendances.Create(ctx, attendance.Attendance{EmployeeID: emp.ID, CheckIn: time.Now().UTC(), CheckInLocation: "Gate"})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
	}
	assert.Equal(t, 1, succeeded)

	open, err := attendances.GetOpenSession(ctx, emp.ID)
	require.NoError(t, err)
	require.NotNil(t, open)

	checkOut := open.CheckIn.Add(6 * time.Minute)
	closed, err := attendances.CloseSession(ctx, attendance.CloseSessionParams{
		ID:                 open.ID,
		CheckOut:           checkOut,
		CheckOutLocation:   "Gate",
		Duration:           6,
		ViolationIncrement: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 6, *closed.Duration)
	assert.Equal(t, 1, closed.ViolationCount)

	_, err = attendances.CloseSession(ctx, attendance.CloseSessionParams{ID: open.ID, CheckOut: checkOut, CheckOutLocation: "Gate"})
	assert.ErrorIs(t, err, attendance.ErrSessionAlreadyClosed)

	count, err := attendances.CountViolatedSessions(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	reset, err := attendances.ResetViolations(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), reset)
}

func TestAttendanceRepository_ListFilters(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	employees := postgresql.NewEmployeeRepository(setup.DB)
	attendances := postgresql.NewAttendanceRepository(setup.DB)
	emp := createTestEmployee(t, employees, "CARD-1")

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, loc := range []string{"Main Gate", "Server Room", "main_gate"} {
		att, err := attendances.Create(ctx, attendance.Attendance{EmployeeID: emp.ID, CheckIn: base.AddDate(0, 0, i), CheckInLocation: loc})
		require.NoError(t, err)
		_, err = attendances.CloseSession(ctx, attendance.CloseSessionParams{ID: att.ID, CheckOut: att.CheckIn.Add(time.Hour), CheckOutLocation: loc, Duration: 60})
		require.NoError(t, err)
	}

	gate := "gate"
	rows, err := attendances.List(ctx, attendance.ListFilter{Location: &gate})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	underscore := "n_g"
	rows, err = attendances.List(ctx, attendance.ListFilter{Location: &underscore})
	require.NoError(t, err)
	assert.Len(t, rows, 1, "underscore is matched literally")

	from, to := base, base.AddDate(0, 0, 2)
	rows, err = attendances.ListByCheckInRange(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].Employee)
	assert.Equal(t, "CARD-1", rows[0].Employee.PunchCardID)
}

func TestScheduledJobRepository_Lifecycle(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	employees := postgresql.NewEmployeeRepository(setup.DB)
	attendances := postgresql.NewAttendanceRepository(setup.DB)
	jobs := postgresql.NewScheduledJobRepository(setup.DB)
	emp := createTestEmployee(t, employees, "CARD-1")

	now := time.Now().UTC().Truncate(time.Microsecond)
	att, err := attendances.Create(ctx, attendance.Attendance{EmployeeID: emp.ID, CheckIn: now, CheckInLocation: "Gate", IsEmergency: true})
	require.NoError(t, err)

	sj := job.ScheduledJob{Kind: job.KindEmergencyAutoCheckout, AttendanceID: att.ID, CheckOutLocation: "Gate", RunAt: now.Add(5 * time.Minute)}
	require.NoError(t, jobs.Enqueue(ctx, sj))
	require.NoError(t, jobs.Enqueue(ctx, sj))

	claimed, err := jobs.ClaimDue(ctx, now, now.Add(-5*time.Minute), 10)
	require.NoError(t, err)
	assert.Empty(t, claimed)

	claimed, err = jobs.ClaimDue(ctx, now.Add(5*time.Minute), now, 10)
	require.NoError(t, err)
	require.Len(t, claimed, 1, "enqueueing twice creates one job")
	assert.Equal(t, job.StatusRunning, claimed[0].Status)
	assert.Equal(t, 1, claimed[0].Attempts)

	again, err := jobs.ClaimDue(ctx, now.Add(5*time.Minute), now, 10)
	require.NoError(t, err)
	assert.Empty(t, again)

	require.NoError(t, jobs.MarkDone(ctx, claimed[0].ID))
}

func TestServerRoomActionRepository_ListWithSessions(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	employees := postgresql.NewEmployeeRepository(setup.DB)
	attendances := postgresql.NewAttendanceRepository(setup.DB)
	actions := postgresql.NewServerRoomActionRepository(setup.DB)
	emp := createTestEmployee(t, employees, "SR-1")

	checkIn := time.Now().UTC().Add(-time.Hour).Truncate(time.Microsecond)
	_, err := attendances.Create(ctx, attendance.Attendance{EmployeeID: emp.ID, CheckIn: checkIn, CheckInLocation: "Server Room"})
	require.NoError(t, err)

	_, err = actions.Create(ctx, serverroom.Action{EmployeeID: emp.ID, Component: "PSU", Action: "replaced"})
	require.NoError(t, err)

	rows, err := actions.ListWithSessions(ctx, "Server Room")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "SR-1", rows[0].PunchCardID)
	require.NotNil(t, rows[0].CheckIn)
	assert.True(t, checkIn.Equal(*rows[0].CheckIn))
	assert.Nil(t, rows[0].CheckOut)
}

func TestAdminRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	admins := postgresql.NewAdminRepository(setup.DB)

	created, err := admins.Create(ctx, admin.Admin{Username: "frontdesk", PasswordHash: "hash"})
	require.NoError(t, err)

	_, err = admins.Create(ctx, admin.Admin{Username: "frontdesk", PasswordHash: "hash"})
	assert.ErrorIs(t, err, admin.ErrUsernameExists)

	got, err := admins.GetByUsername(ctx, "frontdesk")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = admins.GetByID(ctx, "0190a4f2-0000-7000-8000-000000000000")
	assert.ErrorIs(t, err, admin.ErrAdminNotFound)
}
