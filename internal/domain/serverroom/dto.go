package serverroom

import (
	"time"

	"github.com/cmlabs-hris/empatt-backend-go/internal/pkg/validator"
)

type RecordActionRequest struct {
	PunchCardID string `json:"punchCardId"`
	Component   string `json:"component"`
	Action      string `json:"action"`
}

func (r *RecordActionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PunchCardID) {
		errs = append(errs, validator.ValidationError{
			Field:   "punchCardId",
			Message: "punchCardId is required",
		})
	}

	if validator.IsEmpty(r.Component) {
		errs = append(errs, validator.ValidationError{
			Field:   "component",
			Message: "component is required",
		})
	} else if len(r.Component) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "component",
			Message: "component must not exceed 255 characters",
		})
	}

	if validator.IsEmpty(r.Action) {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action is required",
		})
	} else if len(r.Action) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ActionResponse struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	Component  string    `json:"component"`
	Action     string    `json:"action"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ActionWithSessionResponse struct {
	ActionResponse
	EmployeeName string     `json:"employeeName"`
	PunchCardID  string     `json:"punchCardId"`
	CheckIn      *time.Time `json:"checkIn"`
	CheckOut     *time.Time `json:"checkOut"`
}

func ToResponse(a Action) ActionResponse {
	return ActionResponse{
		ID:         a.ID,
		EmployeeID: a.EmployeeID,
		Component:  a.Component,
		Action:     a.Action,
		CreatedAt:  a.CreatedAt,
	}
}
