// internal/services/report_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"focusboard/internal/models"
	"focusboard/internal/pdf"
	"focusboard/internal/recurrence"
	"focusboard/internal/repositories"
)

type ReportService struct {
	taskRepo repositories.TaskRepository
	pdfGen   pdf.Generator
}

func NewReportService(taskRepo repositories.TaskRepository, pdfGen pdf.Generator) *ReportService {
	return &ReportService{taskRepo: taskRepo, pdfGen: pdfGen}
}

// Consistency aggregates completion history over a trailing window. Archived
// tasks are included: they still count for the days before their archive
// boundary.
func (s *ReportService) Consistency(ctx context.Context, windowDays int, now time.Time) (recurrence.ConsistencyReport, error) {
	tasks, err := s.taskRepo.FindAll(ctx, models.TaskFilter{IncludeArchived: true})
	if err != nil {
		return recurrence.ConsistencyReport{}, fmt.Errorf("%w: fetch tasks: %v", ErrDatastoreUnavailable, err)
	}
	return recurrence.BuildConsistency(tasks, windowDays, now), nil
}

// ConsistencyPDF renders the same window as a printable report.
func (s *ReportService) ConsistencyPDF(ctx context.Context, windowDays int, now time.Time) ([]byte, error) {
	report, err := s.Consistency(ctx, windowDays, now)
	if err != nil {
		return nil, err
	}
	return s.pdfGen.ConsistencyReport(report, now)
}
