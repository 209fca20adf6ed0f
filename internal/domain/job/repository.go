package job

import (
	"context"
	"time"
)

type ScheduledJobRepository interface {
	Enqueue(ctx context.Context, job ScheduledJob) error

	// ClaimDue marks up to limit due jobs as running and returns them. Pending
	// jobs with run_at <= now are due, as are running jobs locked before staleBefore.
	// Jobs claimed by another worker are skipped.
	ClaimDue(ctx context.Context, now time.Time, staleBefore time.Time, limit int) ([]ScheduledJob, error)

	MarkDone(ctx context.Context, id string) error

	// MarkFailed records the error. The job is rescheduled at retryAt, or
	// marked failed for good when retryAt is nil.
	MarkFailed(ctx context.Context, id string, errMsg string, retryAt *time.Time) error

	// CancelForAttendance cancels pending jobs of the session.
	CancelForAttendance(ctx context.Context, attendanceID string) error
}
