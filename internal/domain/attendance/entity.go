package attendance

import "time"

type Action string

const (
	ActionCheckIn          Action = "check-in"
	ActionCheckOut         Action = "check-out"
	ActionEmergencyCheckIn Action = "emergency-check-in"
)

func (a Action) IsValid() bool {
	switch a {
	case ActionCheckIn, ActionCheckOut, ActionEmergencyCheckIn:
		return true
	}
	return false
}

// Attendance is one presence session. CheckOut == nil means the session is still open;
// an employee has at most one open session at a time.
type Attendance struct {
	ID               string
	EmployeeID       string
	CheckIn          time.Time
	CheckInLocation  string
	CheckOut         *time.Time
	CheckOutLocation *string
	Duration         *int
	IsEmergency      bool
	ViolationCount   int
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Employee is filled on joined reads only.
	Employee *EmployeeInfo
}

// EmployeeInfo is the employee identity projected onto attendance reads.
type EmployeeInfo struct {
	ID          string
	PunchCardID string
	Name        string
	Department  *string
}

func (a Attendance) IsOpen() bool {
	return a.CheckOut == nil
}

// DurationMinutes is the session length in whole minutes, half a minute rounding up.
func DurationMinutes(checkIn, checkOut time.Time) int {
	ms := checkOut.Sub(checkIn).Milliseconds()
	if ms <= 0 {
		return 0
	}
	return int((ms + 30_000) / 60_000)
}

// CloseSessionParams closes an open session. ViolationIncrement is 1 for a forced checkout.
type CloseSessionParams struct {
	ID                 string
	CheckOut           time.Time
	CheckOutLocation   string
	Duration           int
	ViolationIncrement int
}

// ListFilter bounds are on check_in: From inclusive, To exclusive.
type ListFilter struct {
	EmployeeID *string
	From       *time.Time
	To         *time.Time
	Location   *string
}
