// internal/services/reset_service.go
package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"focusboard/internal/models"
	"focusboard/internal/recurrence"
	"focusboard/internal/repositories"
)

// ResetResult summarizes one day-rollover pass.
type ResetResult struct {
	DailyUpdated       int
	ScheduledUpdated   int
	Timezone           string
	SearchedTimestamps []int64
}

// ResetService clears stale "done today" markers at day rollover. It is
// invoked by an external trigger at least once per calendar day per timezone
// in active use, and is safe to invoke any number of times: every row
// mutation is idempotent, so a re-run converges with zero further changes.
type ResetService interface {
	Run(ctx context.Context, now time.Time, timezone string) (*ResetResult, error)
}

type resetService struct {
	repo repositories.TaskRepository

	// Optional ops alerting; both may be empty/nil.
	alerts        EmailService
	operatorEmail string
}

func NewResetService(repo repositories.TaskRepository) ResetService {
	return &resetService{repo: repo}
}

// NewResetServiceWithAlerts wires an operator email for per-row failure
// summaries. The pass itself never fails because of alerting.
func NewResetServiceWithAlerts(repo repositories.TaskRepository, alerts EmailService, operatorEmail string) ResetService {
	return &resetService{repo: repo, alerts: alerts, operatorEmail: operatorEmail}
}

func (s *resetService) Run(ctx context.Context, now time.Time, timezone string) (*ResetResult, error) {
	// Timezone resolution happens before any fetch: an unknown zone must
	// abort with no partial mutation.
	candidates, err := recurrence.CandidateDayStarts(now, timezone)
	if err != nil {
		return nil, err
	}
	if timezone == "" {
		timezone = "UTC"
	}

	result := &ResetResult{Timezone: timezone, SearchedTimestamps: candidates}
	var failedIDs []int64

	// Daily tasks: drop every candidate day-start from the done set. The
	// stored rows mix three historical midnight conventions, hence matching
	// against the whole candidate set rather than one value.
	daily, err := s.repo.FindActiveByType(ctx, models.TypeDaily)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch daily tasks: %v", ErrDatastoreUnavailable, err)
	}
	for _, task := range daily {
		kept, changed := recurrence.RemoveDoneDates(task.DailyDoneDates, candidates)
		if !changed {
			continue
		}
		if err := s.repo.UpdateCompletion(ctx, task.ID, kept, task.Completed); err != nil {
			// One bad row must not block the rest of the batch.
			log.Printf("[reset][daily][err] task id=%d skipped: %v", task.ID, err)
			failedIDs = append(failedIDs, task.ID)
			continue
		}
		result.DailyUpdated++
	}

	// Scheduled tasks additionally get their completed flag forced off; the
	// flag and the done set are cleared independently.
	scheduled, err := s.repo.FindActiveByType(ctx, models.TypeScheduled)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch scheduled tasks: %v", ErrDatastoreUnavailable, err)
	}
	for _, task := range scheduled {
		kept, changed := recurrence.RemoveDoneDates(task.DailyDoneDates, candidates)
		if !changed && !task.Completed {
			continue
		}
		if err := s.repo.UpdateCompletion(ctx, task.ID, kept, false); err != nil {
			log.Printf("[reset][scheduled][err] task id=%d skipped: %v", task.ID, err)
			failedIDs = append(failedIDs, task.ID)
			continue
		}
		result.ScheduledUpdated++
	}

	log.Printf("[reset][done] tz=%s candidates=%d daily=%d scheduled=%d failed=%d",
		timezone, len(candidates), result.DailyUpdated, result.ScheduledUpdated, len(failedIDs))

	if len(failedIDs) > 0 && s.alerts != nil && s.operatorEmail != "" {
		if err := s.alerts.SendResetAlert(s.operatorEmail, timezone, failedIDs); err != nil {
			log.Printf("[reset][alert][err] failed to send failure summary: %v", err)
		}
	}
	return result, nil
}
