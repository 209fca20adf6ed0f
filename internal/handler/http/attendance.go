package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/empatt-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Record(w http.ResponseWriter, r *http.Request)
	Last(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	EmployeeHistory(w http.ResponseWriter, r *http.Request)
	ResetViolations(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// queryPtr returns the trimmed query value, or nil when it is absent or blank.
func queryPtr(r *http.Request, key string) *string {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return nil
	}
	return &v
}

// Record implements AttendanceHandler.
func (h *attendanceHandlerImpl) Record(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecordAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode record attendance request", "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.RecordAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, struct {
		Success bool `json:"success"`
		attendance.RecordAttendanceResponse
	}{true, result})
}

// Last implements AttendanceHandler. Data is null when the employee has no sessions.
func (h *attendanceHandlerImpl) Last(w http.ResponseWriter, r *http.Request) {
	last, err := h.attendanceService.GetLastAttendance(r.Context(), r.URL.Query().Get("punchCardId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Response{Success: true, Data: last})
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := attendance.AttendanceFilter{
		EmployeeID: queryPtr(r, "employeeId"),
		StartDate:  queryPtr(r, "startDate"),
		EndDate:    queryPtr(r, "endDate"),
		Location:   queryPtr(r, "location"),
	}

	result, err := h.attendanceService.ListAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// EmployeeHistory implements AttendanceHandler.
func (h *attendanceHandlerImpl) EmployeeHistory(w http.ResponseWriter, r *http.Request) {
	filter := attendance.EmployeeAttendanceFilter{
		PunchCardID: strings.TrimSpace(r.URL.Query().Get("punchCardId")),
		StartDate:   queryPtr(r, "startDate"),
		EndDate:     queryPtr(r, "endDate"),
	}

	result, err := h.attendanceService.GetEmployeeAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ResetViolations implements AttendanceHandler.
func (h *attendanceHandlerImpl) ResetViolations(w http.ResponseWriter, r *http.Request) {
	var req attendance.ResetViolationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Failed to decode reset violations request", "error", err)
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.ResetViolations(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, result.Message, result)
}
