package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/empatt-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	Name        string  `json:"name"`
	PunchCardID string  `json:"punchCardId"`
	Department  *string `json:"department"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if validator.IsEmpty(r.PunchCardID) {
		errs = append(errs, validator.ValidationError{
			Field:   "punchCardId",
			Message: "punchCardId is required",
		})
	} else if !validator.IsValidPunchCardID(r.PunchCardID) {
		errs = append(errs, validator.ValidationError{
			Field:   "punchCardId",
			Message: "punchCardId must be 1-100 characters of letters, digits, '.', '_', ':' or '-'",
		})
	}

	if r.Department != nil && len(*r.Department) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID          string  `json:"-"`
	Name        string  `json:"name"`
	PunchCardID *string `json:"punchCardId,omitempty"`
	Department  *string `json:"department"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if r.Department != nil && len(*r.Department) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// NormalizeDepartment turns a blank department into nil.
func NormalizeDepartment(department *string) *string {
	if department == nil {
		return nil
	}
	d := strings.TrimSpace(*department)
	if d == "" {
		return nil
	}
	return &d
}

type EmployeeResponse struct {
	ID          string    `json:"id"`
	PunchCardID string    `json:"punchCardId"`
	Name        string    `json:"name"`
	Department  *string   `json:"department"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:          e.ID,
		PunchCardID: e.PunchCardID,
		Name:        e.Name,
		Department:  e.Department,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
