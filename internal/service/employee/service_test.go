package employee

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/empatt-backend-go/internal/repository/memory"
)

func strPtr(s string) *string { return &s }

func TestCreateEmployee(t *testing.T) {
	store := memory.NewStore()
	svc := NewEmployeeService(store.Employees())
	ctx := context.Background()

	created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		Name:        "  Alice ",
		PunchCardID: "CARD-1",
		Department:  strPtr(" "),
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", created.Name)
	assert.Nil(t, created.Department, "blank department is stored as absent")
	assert.NotEmpty(t, created.ID)

	_, err = svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: "Imposter", PunchCardID: "CARD-1"})
	assert.ErrorIs(t, err, employee.ErrPunchCardIDExists)

	_, err = svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: "", PunchCardID: ""})
	assert.ErrorContains(t, err, "name is required")
}

func TestListEmployees_NewestFirst(t *testing.T) {
	store := memory.NewStore()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { now = now.Add(time.Second); return now })
	svc := NewEmployeeService(store.Employees())
	ctx := context.Background()

	for _, card := range []string{"A", "B", "C"} {
		_, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: "Emp " + card, PunchCardID: card})
		require.NoError(t, err)
	}

	list, err := svc.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "C", list[0].PunchCardID)
	assert.Equal(t, "A", list[2].PunchCardID)
}

func TestUpdateEmployee(t *testing.T) {
	store := memory.NewStore()
	svc := NewEmployeeService(store.Employees())
	ctx := context.Background()

	created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: "Alice", PunchCardID: "CARD-1"})
	require.NoError(t, err)

	updated, err := svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{
		ID:          created.ID,
		Name:        "Alice Smith",
		PunchCardID: strPtr("CARD-1"),
		Department:  strPtr("Ops"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", updated.Name)
	assert.Equal(t, "Ops", *updated.Department)
	assert.Equal(t, "CARD-1", updated.PunchCardID)

	_, err = svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{
		ID:          created.ID,
		Name:        "Alice",
		PunchCardID: strPtr("CARD-2"),
	})
	assert.ErrorIs(t, err, employee.ErrPunchCardIDImmutable)

	_, err = svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: "not-a-uuid", Name: "X"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestDeleteEmployee(t *testing.T) {
	store := memory.NewStore()
	svc := NewEmployeeService(store.Employees())
	ctx := context.Background()

	free, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: "Free", PunchCardID: "F"})
	require.NoError(t, err)
	busy, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: "Busy", PunchCardID: "B"})
	require.NoError(t, err)

	_, err = store.Attendances().Create(ctx, attendance.Attendance{EmployeeID: busy.ID, CheckIn: time.Now(), CheckInLocation: "Gate"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteEmployee(ctx, busy.ID), employee.ErrEmployeeHasRecords)
	assert.NoError(t, svc.DeleteEmployee(ctx, free.ID))
	assert.ErrorIs(t, svc.DeleteEmployee(ctx, free.ID), employee.ErrEmployeeNotFound)

	_, err = svc.GetEmployee(ctx, free.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
