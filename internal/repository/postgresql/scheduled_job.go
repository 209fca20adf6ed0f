package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/job"
	"github.com/cmlabs-hris/empatt-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type scheduledJobRepository struct {
	db *database.DB
}

// Enqueue implements job.ScheduledJobRepository.
func (r *scheduledJobRepository) Enqueue(ctx context.Context, j job.ScheduledJob) error {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate job id: %w", err)
	}

	_, err = q.Exec(ctx, `
		INSERT INTO scheduled_jobs (id, kind, attendance_id, check_out_location, run_at, status)
		VALUES ($1, $2, $3, $4, $5, 'pending')
		ON CONFLICT (kind, attendance_id) DO NOTHING
	`, id.String(), string(j.Kind), j.AttendanceID, j.CheckOutLocation, j.RunAt)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s job: %w", j.Kind, err)
	}

	return nil
}

// ClaimDue implements job.ScheduledJobRepository.
func (r *scheduledJobRepository) ClaimDue(ctx context.Context, now time.Time, staleBefore time.Time, limit int) ([]job.ScheduledJob, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE scheduled_jobs j
		SET status = 'running',
		    attempts = j.attempts + 1,
		    locked_at = $1,
		    updated_at = NOW()
		WHERE j.id IN (
			SELECT id
			FROM scheduled_jobs
			WHERE (status = 'pending' AND run_at <= $1)
			   OR (status = 'running' AND locked_at < $2)
			ORDER BY run_at
			LIMIT $3
			FOR UPDATE SKIP LOCKED
		)
		RETURNING j.id, j.kind, j.attendance_id, j.check_out_location, j.run_at,
		          j.status, j.attempts, j.last_error, j.locked_at, j.created_at, j.updated_at
	`

	rows, err := q.Query(ctx, query, now, staleBefore, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to claim due jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]job.ScheduledJob, 0)
	for rows.Next() {
		var (
			j      job.ScheduledJob
			kind   string
			status string
		)
		if err := rows.Scan(
			&j.ID, &kind, &j.AttendanceID, &j.CheckOutLocation, &j.RunAt,
			&status, &j.Attempts, &j.LastError, &j.LockedAt, &j.CreatedAt, &j.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		j.Kind = job.Kind(kind)
		j.Status = job.Status(status)
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jobs: %w", err)
	}

	return jobs, nil
}

// MarkDone implements job.ScheduledJobRepository.
func (r *scheduledJobRepository) MarkDone(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE scheduled_jobs
		SET status = 'done', locked_at = NULL, last_error = NULL, updated_at = NOW()
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("failed to mark job %s done: %w", id, err)
	}
	return nil
}

// MarkFailed implements job.ScheduledJobRepository.
func (r *scheduledJobRepository) MarkFailed(ctx context.Context, id string, errMsg string, retryAt *time.Time) error {
	q := GetQuerier(ctx, r.db)

	var err error
	if retryAt != nil {
		_, err = q.Exec(ctx, `
			UPDATE scheduled_jobs
			SET status = 'pending', run_at = $2, last_error = $3, locked_at = NULL, updated_at = NOW()
			WHERE id = $1
		`, id, *retryAt, errMsg)
	} else {
		_, err = q.Exec(ctx, `
			UPDATE scheduled_jobs
			SET status = 'failed', last_error = $2, locked_at = NULL, updated_at = NOW()
			WHERE id = $1
		`, id, errMsg)
	}
	if err != nil {
		return fmt.Errorf("failed to mark job %s failed: %w", id, err)
	}
	return nil
}

// CancelForAttendance implements job.ScheduledJobRepository.
func (r *scheduledJobRepository) CancelForAttendance(ctx context.Context, attendanceID string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		UPDATE scheduled_jobs
		SET status = 'cancelled', locked_at = NULL, updated_at = NOW()
		WHERE attendance_id = $1
		  AND status = 'pending'
	`, attendanceID)
	if err != nil {
		return fmt.Errorf("failed to cancel jobs for attendance %s: %w", attendanceID, err)
	}
	return nil
}

func NewScheduledJobRepository(db *database.DB) job.ScheduledJobRepository {
	return &scheduledJobRepository{db: db}
}
