package report

import (
	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/empatt-backend-go/internal/pkg/validator"
)

type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)

type MonthlySummaryRequest struct {
	Month int
	Year  int
}

func (r *MonthlySummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 1970 and 9999",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ExportMonthlySummaryRequest struct {
	MonthlySummaryRequest
	Format ExportFormat
}

func (r *ExportMonthlySummaryRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := r.MonthlySummaryRequest.Validate(); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}
	if r.Format != FormatCSV && r.Format != FormatXLSX {
		errs = append(errs, validator.ValidationError{
			Field:   "format",
			Message: "format must be csv or xlsx",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EmployeeSummary aggregates one employee's sessions within a month.
// Open sessions count as an entry but add nothing to TotalDuration.
type EmployeeSummary struct {
	Employee      attendance.EmployeeInfoResponse `json:"employee"`
	TotalDuration int                             `json:"totalDuration"`
	Entries       int                             `json:"entries"`
}
