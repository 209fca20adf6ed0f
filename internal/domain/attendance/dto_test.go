package attendance

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/empatt-backend-go/internal/pkg/validator"
)

func strPtr(s string) *string { return &s }

func TestRecordAttendanceRequest_Validate(t *testing.T) {
	tests := []struct {
		name       string
		req        RecordAttendanceRequest
		wantFields []string
	}{
		{"valid check-in", RecordAttendanceRequest{PunchCardID: "C1", Action: ActionCheckIn}, nil},
		{"valid forced checkout", RecordAttendanceRequest{PunchCardID: "C1", Action: ActionCheckOut, IsForced: true}, nil},
		{"missing punch card", RecordAttendanceRequest{Action: ActionCheckIn}, []string{"punchCardId"}},
		{"missing action", RecordAttendanceRequest{PunchCardID: "C1"}, []string{"action"}},
		{"unknown action", RecordAttendanceRequest{PunchCardID: "C1", Action: "lunch"}, []string{"action"}},
		{"location too long", RecordAttendanceRequest{PunchCardID: "C1", Action: ActionCheckIn, Location: strings.Repeat("x", 256)}, []string{"location"}},
		{"empty", RecordAttendanceRequest{}, []string{"punchCardId", "action"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantFields == nil {
				assert.NoError(t, err)
				return
			}
			var verrs validator.ValidationErrors
			require.True(t, errors.As(err, &verrs))
			m := verrs.ToMap()
			assert.Len(t, m, len(tt.wantFields))
			for _, f := range tt.wantFields {
				assert.Contains(t, m, f)
			}
		})
	}
}

func TestAttendanceFilter_Validate(t *testing.T) {
	assert.NoError(t, (&AttendanceFilter{}).Validate())
	assert.NoError(t, (&AttendanceFilter{
		EmployeeID: strPtr("0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b"),
		StartDate:  strPtr("2024-01-01"),
		EndDate:    strPtr("2024-01-01"),
	}).Validate())

	err := (&AttendanceFilter{EmployeeID: strPtr("42")}).Validate()
	assert.ErrorContains(t, err, "employeeId")

	err = (&AttendanceFilter{StartDate: strPtr("01/02/2024")}).Validate()
	assert.ErrorContains(t, err, "startDate")

	err = (&AttendanceFilter{StartDate: strPtr("2024-02-01"), EndDate: strPtr("2024-01-01")}).Validate()
	assert.ErrorContains(t, err, "endDate must not be before startDate")
}

func TestEmployeeAttendanceFilter_Validate(t *testing.T) {
	assert.NoError(t, (&EmployeeAttendanceFilter{PunchCardID: "C1"}).Validate())
	assert.ErrorContains(t, (&EmployeeAttendanceFilter{}).Validate(), "punchCardId is required")
}

func TestResetViolationsRequest_Validate(t *testing.T) {
	assert.NoError(t, (&ResetViolationsRequest{PunchCardID: "C1"}).Validate())
	assert.Error(t, (&ResetViolationsRequest{PunchCardID: "  "}).Validate())
}
