package job

import "time"

type Kind string

const (
	KindEmergencyAutoCheckout Kind = "emergency_auto_checkout"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusDone      Status = "done"
	StatusCancelled Status = "cancelled"
	StatusFailed    Status = "failed"
)

// ScheduledJob is a durable deferred action. There is at most one job per
// (Kind, AttendanceID), so enqueueing twice is a no-op.
type ScheduledJob struct {
	ID               string
	Kind             Kind
	AttendanceID     string
	CheckOutLocation string
	RunAt            time.Time
	Status           Status
	Attempts         int
	LastError        *string
	LockedAt         *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// RetryDelay is the backoff after the given number of failed attempts: 30s, 1m, 2m, ... capped at 10m.
func RetryDelay(attempts int) time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	d := 30 * time.Second
	for i := 1; i < attempts && d < 10*time.Minute; i++ {
		d *= 2
	}
	if d > 10*time.Minute {
		d = 10 * time.Minute
	}
	return d
}
