package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/empatt-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/empatt-backend-go/internal/repository/memory"
)

func intPtr(i int) *int { return &i }

// seed stores a session directly, closed after minutes when minutes is non-nil.
func seed(t *testing.T, store *memory.Store, employeeID string, checkIn time.Time, minutes *int) {
	t.Helper()
	ctx := context.Background()
	att, err := store.Attendances().Create(ctx, attendance.Attendance{EmployeeID: employeeID, CheckIn: checkIn, CheckInLocation: "Gate"})
	require.NoError(t, err)
	if minutes != nil {
		_, err = store.Attendances().CloseSession(ctx, attendance.CloseSessionParams{
			ID:               att.ID,
			CheckOut:         checkIn.Add(time.Duration(*minutes) * time.Minute),
			CheckOutLocation: "Gate",
			Duration:         *minutes,
		})
		require.NoError(t, err)
	}
}

func setup(t *testing.T) (*memory.Store, employee.Employee, employee.Employee) {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	ops := "Ops"
	alice, err := store.Employees().Create(ctx, employee.Employee{PunchCardID: "A", Name: "Alice", Department: &ops})
	require.NoError(t, err)
	bob, err := store.Employees().Create(ctx, employee.Employee{PunchCardID: "B", Name: "Bob"})
	require.NoError(t, err)
	return store, alice, bob
}

func TestMonthRange(t *testing.T) {
	from, to := MonthRange(2024, 12, time.UTC)
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), to)

	jakarta := time.FixedZone("WIB", 7*60*60)
	from, _ = MonthRange(2024, 3, jakarta)
	assert.Equal(t, time.Date(2024, 2, 29, 17, 0, 0, 0, time.UTC), from.UTC())
}

func TestGetMonthlySummary(t *testing.T) {
	store, alice, bob := setup(t)

	// previous month
	seed(t, store, bob.ID, time.Date(2024, 2, 29, 23, 59, 0, 0, time.UTC), intPtr(100))
	// first instant of the month counts
	seed(t, store, bob.ID, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), intPtr(30))
	seed(t, store, alice.ID, time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC), intPtr(60))
	// last second of the month counts
	seed(t, store, alice.ID, time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC), intPtr(15))
	// open session: an entry without minutes
	seed(t, store, bob.ID, time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC), nil)
	// next month
	seed(t, store, alice.ID, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), intPtr(999))

	svc := NewReportService(store.Attendances(), time.UTC)
	got, err := svc.GetMonthlySummary(context.Background(), report.MonthlySummaryRequest{Month: 3, Year: 2024})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Bob", got[0].Employee.Name, "first seen employee comes first")
	assert.Equal(t, 30, got[0].TotalDuration)
	assert.Equal(t, 2, got[0].Entries)

	assert.Equal(t, "Alice", got[1].Employee.Name)
	assert.Equal(t, 75, got[1].TotalDuration)
	assert.Equal(t, 2, got[1].Entries)
}

func TestGetMonthlySummary_Empty(t *testing.T) {
	store, _, _ := setup(t)
	svc := NewReportService(store.Attendances(), time.UTC)

	got, err := svc.GetMonthlySummary(context.Background(), report.MonthlySummaryRequest{Month: 1, Year: 2020})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	_, err = svc.GetMonthlySummary(context.Background(), report.MonthlySummaryRequest{Month: 0, Year: 2020})
	assert.Error(t, err)
}

func TestExportMonthlySummary_CSV(t *testing.T) {
	store, alice, bob := setup(t)
	seed(t, store, alice.ID, time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC), intPtr(60))
	seed(t, store, bob.ID, time.Date(2024, 3, 3, 9, 0, 0, 0, time.UTC), intPtr(45))

	svc := NewReportService(store.Attendances(), time.UTC)
	file, err := svc.ExportMonthlySummary(context.Background(), report.ExportMonthlySummaryRequest{
		MonthlySummaryRequest: report.MonthlySummaryRequest{Month: 3, Year: 2024},
	})
	require.NoError(t, err)
	assert.Equal(t, "monthly_summary_2024_3.csv", file.Filename)
	assert.Equal(t, export.ContentTypeCSV, file.ContentType)
	assert.Equal(t,
		"Employee Name,Department,Total Duration (min),Entries\n"+
			"Alice,Ops,60,1\n"+
			"Bob,N/A,45,1\n",
		string(file.Content))
}

func TestExportMonthlySummary_XLSX(t *testing.T) {
	store, alice, _ := setup(t)
	seed(t, store, alice.ID, time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC), intPtr(60))

	svc := NewReportService(store.Attendances(), time.UTC)
	file, err := svc.ExportMonthlySummary(context.Background(), report.ExportMonthlySummaryRequest{
		MonthlySummaryRequest: report.MonthlySummaryRequest{Month: 3, Year: 2024},
		Format:                "XLSX",
	})
	require.NoError(t, err)
	assert.Equal(t, "monthly_summary_2024_3.xlsx", file.Filename)

	f, err := excelize.OpenReader(bytes.NewReader(file.Content))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Monthly Summary")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Employee Name", "Department", "Total Duration (min)", "Entries"}, rows[0])
	assert.Equal(t, []string{"Alice", "Ops", "60", "1"}, rows[1])
}

func TestExportMonthlySummary_UnknownFormat(t *testing.T) {
	store, _, _ := setup(t)
	svc := NewReportService(store.Attendances(), time.UTC)

	_, err := svc.ExportMonthlySummary(context.Background(), report.ExportMonthlySummaryRequest{
		MonthlySummaryRequest: report.MonthlySummaryRequest{Month: 3, Year: 2024},
		Format:                "pdf",
	})
	assert.ErrorContains(t, err, "format must be csv or xlsx")
}
