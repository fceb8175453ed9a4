// internal/services/reminder_service.go
package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"focusboard/internal/models"
	"focusboard/internal/recurrence"
	"focusboard/internal/repositories"
)

// Notifier delivers a short text digest to the dashboard owner.
type Notifier interface {
	Send(text string) error
}

// ReminderService sends an overdue-task digest when its external trigger
// fires. Like the reset job it owns no schedule of its own.
type ReminderService struct {
	repo     repositories.TaskRepository
	notifier Notifier // nil when no channel is configured
}

func NewReminderService(repo repositories.TaskRepository, notifier Notifier) *ReminderService {
	return &ReminderService{repo: repo, notifier: notifier}
}

// Run collects the tasks whose window elapsed before now's UTC day and sends
// one digest. Returns the number of overdue tasks found.
func (s *ReminderService) Run(ctx context.Context, now time.Time) (int, error) {
	tasks, err := s.repo.FindAll(ctx, models.TaskFilter{})
	if err != nil {
		return 0, fmt.Errorf("%w: fetch tasks: %v", ErrDatastoreUnavailable, err)
	}

	today := recurrence.DayStartUTC(now)
	overdue := recurrence.FilterOverdue(tasks, today)
	if len(overdue) == 0 {
		log.Printf("[remind][ok] nothing overdue")
		return 0, nil
	}

	if s.notifier == nil {
		log.Printf("[remind][skip] %d overdue tasks, no notifier configured", len(overdue))
		return len(overdue), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "⏰ <b>%d overdue task(s)</b>\n", len(overdue))
	for _, t := range overdue {
		fmt.Fprintf(&b, "• %s\n", t.Title)
	}
	if err := s.notifier.Send(b.String()); err != nil {
		return len(overdue), fmt.Errorf("send reminder digest: %w", err)
	}
	log.Printf("[remind][sent] %d overdue tasks", len(overdue))
	return len(overdue), nil
}
