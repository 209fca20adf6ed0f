package attendance

import (
	"time"

	"github.com/cmlabs-hris/empatt-backend-go/internal/pkg/validator"
)

// ========================================
// RECORD DTOs
// ========================================

type RecordAttendanceRequest struct {
	PunchCardID string `json:"punchCardId"`
	Action      Action `json:"action"`
	Location    string `json:"location"`
	IsForced    bool   `json:"isForced"`
}

func (r *RecordAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PunchCardID) {
		errs = append(errs, validator.ValidationError{
			Field:   "punchCardId",
			Message: "punchCardId is required",
		})
	}

	if validator.IsEmpty(string(r.Action)) {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action is required",
		})
	} else if !r.Action.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "invalid action: must be one of check-in, check-out, emergency-check-in",
		})
	}

	if len(r.Location) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "location",
			Message: "location must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordAttendanceResponse struct {
	Message    string             `json:"message"`
	Attendance AttendanceResponse `json:"attendance"`
}

// ========================================
// QUERY DTOs
// ========================================

// AttendanceFilter carries the raw query parameters of the admin listing.
// Dates are YYYY-MM-DD; EndDate is inclusive.
type AttendanceFilter struct {
	EmployeeID *string
	StartDate  *string
	EndDate    *string
	Location   *string
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId must be a valid UUID",
		})
	}
	errs = append(errs, validateDateRange(f.StartDate, f.EndDate)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeAttendanceFilter struct {
	PunchCardID string
	StartDate   *string
	EndDate     *string
}

func (f *EmployeeAttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.PunchCardID) {
		errs = append(errs, validator.ValidationError{
			Field:   "punchCardId",
			Message: "punchCardId is required",
		})
	}
	errs = append(errs, validateDateRange(f.StartDate, f.EndDate)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateDateRange(start, end *string) validator.ValidationErrors {
	var errs validator.ValidationErrors
	var startDate, endDate time.Time
	startOK, endOK := false, false

	if start != nil {
		if startDate, startOK = validator.IsValidDate(*start); !startOK {
			errs = append(errs, validator.ValidationError{
				Field:   "startDate",
				Message: "startDate must be in YYYY-MM-DD format",
			})
		}
	}
	if end != nil {
		if endDate, endOK = validator.IsValidDate(*end); !endOK {
			errs = append(errs, validator.ValidationError{
				Field:   "endDate",
				Message: "endDate must be in YYYY-MM-DD format",
			})
		}
	}
	if startOK && endOK && endDate.Before(startDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "endDate",
			Message: "endDate must not be before startDate",
		})
	}
	return errs
}

type ResetViolationsRequest struct {
	PunchCardID string `json:"punchCardId"`
}

func (r *ResetViolationsRequest) Validate() error {
	if validator.IsEmpty(r.PunchCardID) {
		return validator.ValidationErrors{{
			Field:   "punchCardId",
			Message: "punchCardId is required",
		}}
	}
	return nil
}

type ResetViolationsResponse struct {
	Message       string `json:"message"`
	SessionsReset int64  `json:"sessionsReset"`
}

// ========================================
// RESPONSE DTOs
// ========================================

type EmployeeInfoResponse struct {
	ID          string  `json:"id"`
	PunchCardID string  `json:"punchCardId"`
	Name        string  `json:"name"`
	Department  *string `json:"department"`
}

type AttendanceResponse struct {
	ID               string                `json:"id"`
	EmployeeID       string                `json:"employeeId"`
	CheckIn          time.Time             `json:"checkIn"`
	CheckInLocation  string                `json:"checkInLocation"`
	CheckOut         *time.Time            `json:"checkOut"`
	CheckOutLocation *string               `json:"checkOutLocation"`
	Duration         *int                  `json:"duration"`
	IsEmergency      bool                  `json:"isEmergency"`
	ViolationCount   int                   `json:"violationCount"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt"`
	Employee         *EmployeeInfoResponse `json:"employee,omitempty"`
}

func ToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:               a.ID,
		EmployeeID:       a.EmployeeID,
		CheckIn:          a.CheckIn,
		CheckInLocation:  a.CheckInLocation,
		CheckOut:         a.CheckOut,
		CheckOutLocation: a.CheckOutLocation,
		Duration:         a.Duration,
		IsEmergency:      a.IsEmergency,
		ViolationCount:   a.ViolationCount,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
	if a.Employee != nil {
		resp.Employee = &EmployeeInfoResponse{
			ID:          a.Employee.ID,
			PunchCardID: a.Employee.PunchCardID,
			Name:        a.Employee.Name,
			Department:  a.Employee.Department,
		}
	}
	return resp
}

func ToResponses(rows []Attendance) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(rows))
	for _, a := range rows {
		out = append(out, ToResponse(a))
	}
	return out
}
