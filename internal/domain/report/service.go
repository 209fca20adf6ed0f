package report

import (
	"context"

	"github.com/cmlabs-hris/empatt-backend-go/internal/pkg/export"
)

type ReportService interface {
	// GetMonthlySummary groups the month's sessions by employee in order of first appearance.
	GetMonthlySummary(ctx context.Context, req MonthlySummaryRequest) ([]EmployeeSummary, error)

	ExportMonthlySummary(ctx context.Context, req ExportMonthlySummaryRequest) (export.File, error)
}
