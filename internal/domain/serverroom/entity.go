package serverroom

import "time"

// Action is one logged manipulation of server room equipment. Append-only.
type Action struct {
	ID         string
	EmployeeID string
	Component  string
	Action     string
	CreatedAt  time.Time
}

// ActionWithSession is an Action joined with its employee and the best-effort
// matching server room session: the employee's latest server room check-in
// at or before the action.
type ActionWithSession struct {
	Action
	EmployeeName string
	PunchCardID  string
	CheckIn      *time.Time
	CheckOut     *time.Time
}
