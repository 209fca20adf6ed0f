package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/empatt-backend-go/internal/config"
	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/empatt-backend-go/internal/domain/job"
)

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	jobRepo           job.ScheduledJobRepository
	cfg               config.JobsConfig
	now               func() time.Time
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, jobRepo job.ScheduledJobRepository, cfg config.JobsConfig) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		jobRepo:           jobRepo,
		cfg:               cfg,
		now:               func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock used to decide which jobs are due.
func (j *AttendanceJobs) WithClock(now func() time.Time) *AttendanceJobs {
	j.now = now
	return j
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("emergency_auto_checkout", j.cfg.PollInterval, j.RunDueAutoCheckouts)
}

// RunDueAutoCheckouts claims due emergency auto-checkout jobs and closes their
// sessions. Failed jobs are retried with backoff until MaxAttempts.
func (j *AttendanceJobs) RunDueAutoCheckouts(ctx context.Context) error {
	now := j.now()
	jobs, err := j.jobRepo.ClaimDue(ctx, now, now.Add(-j.cfg.StaleAfter), j.cfg.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to claim due jobs: %w", err)
	}
	if len(jobs) == 0 {
		return nil
	}

	closed := 0
	for _, sj := range jobs {
		if sj.Kind != job.KindEmergencyAutoCheckout {
			slog.Warn("unknown scheduled job kind", "job_id", sj.ID, "kind", sj.Kind)
			if err := j.jobRepo.MarkFailed(ctx, sj.ID, "unknown job kind", nil); err != nil {
				return err
			}
			continue
		}

		ok, err := j.attendanceService.AutoCheckout(ctx, sj.AttendanceID, sj.CheckOutLocation)
		if err != nil {
			var retryAt *time.Time
			if sj.Attempts < j.cfg.MaxAttempts {
				t := now.Add(job.RetryDelay(sj.Attempts))
				retryAt = &t
			}
			slog.Error("emergency auto-checkout failed",
				"job_id", sj.ID,
				"attendance_id", sj.AttendanceID,
				"attempts", sj.Attempts,
				"will_retry", retryAt != nil,
				"error", err)
			if markErr := j.jobRepo.MarkFailed(ctx, sj.ID, err.Error(), retryAt); markErr != nil {
				return fmt.Errorf("failed to record job failure: %w", markErr)
			}
			continue
		}

		if err := j.jobRepo.MarkDone(ctx, sj.ID); err != nil {
			return fmt.Errorf("failed to mark job done: %w", err)
		}
		if ok {
			closed++
		}
	}

	slog.Info("emergency auto-checkout jobs processed", "claimed", len(jobs), "closed", closed)
	return nil
}
