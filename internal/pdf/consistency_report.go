package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"focusboard/internal/recurrence"
)

// Generator renders reports for download (interface keeps it fakeable in tests).
type Generator interface {
	ConsistencyReport(report recurrence.ConsistencyReport, now time.Time) ([]byte, error)
}

type ReportGenerator struct{}

func NewReportGenerator() *ReportGenerator {
	return &ReportGenerator{}
}

// ConsistencyReport lays the window out as a one-row-per-day table with the
// completion ratio and its heatmap level.
func (g *ReportGenerator) ConsistencyReport(report recurrence.ConsistencyReport, now time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Consistency report", false)
	pdf.SetAuthor("Focusboard", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Consistency report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	sub := fmt.Sprintf("%d days ending %s, overall %.0f%%",
		len(report.Days),
		now.UTC().Format("2006-01-02"),
		report.OverallRatio*100,
	)
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// header row
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(40, 8, "Day", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Expected", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 8, "Completed", "1", 0, "R", true, 0, "")
	pdf.CellFormat(25, 8, "Ratio", "1", 0, "R", true, 0, "")
	pdf.CellFormat(25, 8, "Level", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, day := range report.Days {
		date := time.UnixMilli(day.Day).UTC().Format("2006-01-02 Mon")
		pdf.CellFormat(40, 7, date, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%d", day.Expected), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%d", day.Completed), "1", 0, "R", false, 0, "")
		if day.Expected > 0 {
			pdf.CellFormat(25, 7, fmt.Sprintf("%.0f%%", day.Ratio*100), "1", 0, "R", false, 0, "")
		} else {
			pdf.CellFormat(25, 7, "-", "1", 0, "R", false, 0, "")
		}
		pdf.CellFormat(25, 7, fmt.Sprintf("%d", day.Level), "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render consistency pdf: %w", err)
	}
	return buf.Bytes(), nil
}
