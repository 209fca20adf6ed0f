package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/empatt-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	MonthlySummary(w http.ResponseWriter, r *http.Request)
	ExportMonthlySummary(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// parseMonthYear reads the month and year query parameters. Missing values
// are left zero for validation to report.
func parseMonthYear(r *http.Request) (report.MonthlySummaryRequest, map[string]string) {
	var req report.MonthlySummaryRequest
	bad := make(map[string]string)

	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil {
			bad["month"] = "month must be a number"
		}
		req.Month = month
	}
	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			bad["year"] = "year must be a number"
		}
		req.Year = year
	}

	if len(bad) > 0 {
		return req, bad
	}
	return req, nil
}

// MonthlySummary implements ReportHandler.
func (h *reportHandlerImpl) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	req, bad := parseMonthYear(r)
	if bad != nil {
		response.BadRequest(w, "Invalid query parameters", bad)
		return
	}

	result, err := h.reportService.GetMonthlySummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportMonthlySummary implements ReportHandler.
func (h *reportHandlerImpl) ExportMonthlySummary(w http.ResponseWriter, r *http.Request) {
	req, bad := parseMonthYear(r)
	if bad != nil {
		response.BadRequest(w, "Invalid query parameters", bad)
		return
	}

	file, err := h.reportService.ExportMonthlySummary(r.Context(), report.ExportMonthlySummaryRequest{
		MonthlySummaryRequest: req,
		Format:                report.ExportFormat(r.URL.Query().Get("format")),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, file)
}
