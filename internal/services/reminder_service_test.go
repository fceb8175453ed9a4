package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"focusboard/internal/models"
)

type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakeNotifier) Send(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, text)
	return nil
}

func TestReminderRun_SendsDigest(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	now := time.Date(2024, 6, 15, 8, 0, 0, 0, time.UTC)
	repo.put(models.Task{Title: "renew passport", Type: models.TypeBacklog,
		PlannedDates: []int64{day(2024, time.June, 3)}})
	repo.put(models.Task{Title: "water plants", Type: models.TypeDaily, CreatedAt: day(2024, time.June, 1)})

	notifier := &fakeNotifier{}
	svc := NewReminderService(repo, notifier)

	count, err := svc.Run(context.Background(), now)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if count != 1 {
		t.Fatalf("overdue count = %d, want 1 (daily tasks never become overdue)", count)
	}
	if len(notifier.sent) != 1 || !strings.Contains(notifier.sent[0], "renew passport") {
		t.Fatalf("digest missing or wrong: %v", notifier.sent)
	}
}

func TestReminderRun_NothingOverdue(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	repo.put(models.Task{Title: "water plants", Type: models.TypeDaily, CreatedAt: day(2024, time.June, 1)})

	notifier := &fakeNotifier{}
	svc := NewReminderService(repo, notifier)

	count, err := svc.Run(context.Background(), time.Date(2024, 6, 15, 8, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if count != 0 || len(notifier.sent) != 0 {
		t.Fatalf("no digest expected: count=%d sent=%v", count, notifier.sent)
	}
}

func TestReminderRun_NoNotifierConfigured(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	repo.put(models.Task{Title: "stale", Type: models.TypeBacklog, PlannedDates: []int64{day(2024, time.June, 3)}})

	svc := NewReminderService(repo, nil)
	count, err := svc.Run(context.Background(), time.Date(2024, 6, 15, 8, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("nil notifier must not error: %v", err)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
}

func TestReminderRun_SendFailureSurfaced(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	repo.put(models.Task{Title: "stale", Type: models.TypeBacklog, PlannedDates: []int64{day(2024, time.June, 3)}})

	sendErr := errors.New("chat unreachable")
	svc := NewReminderService(repo, &fakeNotifier{err: sendErr})

	_, err := svc.Run(context.Background(), time.Date(2024, 6, 15, 8, 0, 0, 0, time.UTC))
	if !errors.Is(err, sendErr) {
		t.Fatalf("expected wrapped send error, got %v", err)
	}
}
