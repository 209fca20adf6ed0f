package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/empatt-backend-go/internal/pkg/export"
)

var summaryHeader = []string{"Employee Name", "Department", "Total Duration (min)", "Entries"}

type ReportServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	loc            *time.Location
}

func NewReportService(attendanceRepo attendance.AttendanceRepository, loc *time.Location) report.ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportServiceImpl{
		attendanceRepo: attendanceRepo,
		loc:            loc,
	}
}

// MonthRange returns [first day of month, first day of next month) in loc.
func MonthRange(year, month int, loc *time.Location) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	return from, from.AddDate(0, 1, 0)
}

// GetMonthlySummary implements report.ReportService.
func (s *ReportServiceImpl) GetMonthlySummary(ctx context.Context, req report.MonthlySummaryRequest) ([]report.EmployeeSummary, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	from, to := MonthRange(req.Year, req.Month, s.loc)
	rows, err := s.attendanceRepo.ListByCheckInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return summarize(rows), nil
}

// summarize groups rows by employee, keeping the order in which employees first appear.
func summarize(rows []attendance.Attendance) []report.EmployeeSummary {
	index := make(map[string]int)
	summaries := make([]report.EmployeeSummary, 0)

	for _, row := range rows {
		i, ok := index[row.EmployeeID]
		if !ok {
			var info attendance.EmployeeInfoResponse
			if row.Employee != nil {
				info = attendance.EmployeeInfoResponse{
					ID:          row.Employee.ID,
					PunchCardID: row.Employee.PunchCardID,
					Name:        row.Employee.Name,
					Department:  row.Employee.Department,
				}
			} else {
				info.ID = row.EmployeeID
			}
			summaries = append(summaries, report.EmployeeSummary{Employee: info})
			i = len(summaries) - 1
			index[row.EmployeeID] = i
		}

		if row.Duration != nil {
			summaries[i].TotalDuration += *row.Duration
		}
		summaries[i].Entries++
	}

	return summaries
}

// ExportMonthlySummary implements report.ReportService.
func (s *ReportServiceImpl) ExportMonthlySummary(ctx context.Context, req report.ExportMonthlySummaryRequest) (export.File, error) {
	if req.Format == "" {
		req.Format = report.FormatCSV
	}
	req.Format = report.ExportFormat(strings.ToLower(string(req.Format)))
	if err := req.Validate(); err != nil {
		return export.File{}, err
	}

	summaries, err := s.GetMonthlySummary(ctx, req.MonthlySummaryRequest)
	if err != nil {
		return export.File{}, err
	}

	table := export.Table{
		Sheet:  "Monthly Summary",
		Header: summaryHeader,
		Rows:   make([][]any, 0, len(summaries)),
	}
	for _, sum := range summaries {
		department := "N/A"
		if sum.Employee.Department != nil {
			department = *sum.Employee.Department
		}
		table.Rows = append(table.Rows, []any{sum.Employee.Name, department, sum.TotalDuration, sum.Entries})
	}

	filename := fmt.Sprintf("monthly_summary_%d_%d.%s", req.Year, req.Month, req.Format)
	if req.Format == report.FormatXLSX {
		return export.XLSX(filename, table)
	}
	return export.CSV(filename, table)
}
