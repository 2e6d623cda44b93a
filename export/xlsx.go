// Package export renders a seating report as an Excel workbook.
package export

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/xuri/excelize/v2"

	"exam-seating-go/models"
)

const (
	ArrangementSheet  = "Arrangement"
	DistributionSheet = "Distribution"
)

var arrangementHeader = []interface{}{"Room", "Side", "Class", "Roll Range", "Count", "Absentees"}

// Workbook builds the report workbook. The caller closes it.
func Workbook(report *models.Report, schoolName string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), ArrangementSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(DistributionSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to add sheet %s: %w", DistributionSheet, err)
	}

	title := reportTitle(report, schoolName)
	if err := writeArrangement(f, report, title); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := writeDistribution(f, report, title); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

// Write streams the report workbook to w.
func Write(w io.Writer, report *models.Report, schoolName string) error {
	f, err := Workbook(report, schoolName)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Error closing workbook: %v", err)
		}
	}()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func reportTitle(report *models.Report, schoolName string) string {
	var parts []string
	for _, p := range []string{schoolName, report.ExamName, report.AcademicYear} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " - ")
}

func writeArrangement(f *excelize.File, report *models.Report, title string) error {
	w := &rowWriter{f: f, sheet: ArrangementSheet}
	if title != "" {
		w.row(title)
	}
	w.row(fmt.Sprintf("Benches per room: %d", report.MaxBenches))
	w.row(arrangementHeader...)

	for _, room := range report.Arrangement {
		w.side(room.RoomNumber, "Left", room.LeftSide)
		w.side(room.RoomNumber, "Right", room.RightSide)
		w.row(room.RoomNumber, "Total", "", fmt.Sprintf("L %d / R %d", room.LeftTotal, room.RightTotal), room.Total, "")
	}
	return w.err
}

func writeDistribution(f *excelize.File, report *models.Report, title string) error {
	w := &rowWriter{f: f, sheet: DistributionSheet}
	if title != "" {
		w.row(title)
	}

	header := []interface{}{"Room"}
	for _, std := range report.Standards {
		header = append(header, std)
	}
	w.row(append(header, "Total")...)

	for _, room := range report.Summary {
		line := []interface{}{room.RoomNumber}
		for _, std := range report.Standards {
			line = append(line, room.Counts[std])
		}
		w.row(append(line, room.Total)...)
	}

	totals := []interface{}{"TOTAL"}
	for _, std := range report.Standards {
		totals = append(totals, report.Totals[std])
	}
	w.row(append(totals, report.GrandTotal)...)
	return w.err
}

// rowWriter appends rows to a sheet and keeps the first error.
type rowWriter struct {
	f     *excelize.File
	sheet string
	next  int
	err   error
}

func (w *rowWriter) row(values ...interface{}) {
	if w.err != nil {
		return
	}
	w.next++
	addr, err := excelize.CoordinatesToCellName(1, w.next)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetSheetRow(w.sheet, addr, &values); err != nil {
		w.err = fmt.Errorf("failed to write %s row %d: %w", w.sheet, w.next, err)
	}
}

func (w *rowWriter) side(roomNumber int, label string, batches []models.BatchSummary) {
	for _, b := range batches {
		w.row(roomNumber, label, b.ClassName, strings.Join(b.DisplayRanges, ", "), b.Count, b.Absentees)
	}
}
