package employee

import "time"

// Employee is a badge holder. PunchCardID is the key the kiosk sends and never changes once issued.
type Employee struct {
	ID          string
	PunchCardID string
	Name        string
	Department  *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
