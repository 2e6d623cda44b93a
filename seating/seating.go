// Package seating assigns students of several class batches to exam rooms,
// two seats per bench, and assembles the room-wise report.
package seating

import (
	"errors"

	"exam-seating-go/models"
)

var (
	ErrNoActiveBatch     = errors.New("no active batch selected")
	ErrInvalidBenchCount = errors.New("benches per room must be positive")
	ErrRosterTooLarge    = errors.New("roll ranges exceed the maximum number of students")
)

// DefaultMaxStudents bounds the expanded roster when no limit is configured.
const DefaultMaxStudents = 100000

// Options configure one seating run.
type Options struct {
	BenchesPerRoom int
	ExamName       string
	AcademicYear   string
}

// Validate performs the checks that must pass before Generate is called.
// maxStudents <= 0 selects DefaultMaxStudents.
func Validate(batches []models.Batch, benchesPerRoom, maxStudents int) error {
	if benchesPerRoom <= 0 {
		return ErrInvalidBenchCount
	}
	hasActive := false
	for _, b := range batches {
		if b.Active() {
			hasActive = true
			break
		}
	}
	if !hasActive {
		return ErrNoActiveBatch
	}
	return CheckRosterSize(batches, maxStudents)
}

// CheckRosterSize rejects active batches whose roll ranges together span more
// than maxStudents rolls. Absentees are not subtracted.
func CheckRosterSize(batches []models.Batch, maxStudents int) error {
	if maxStudents <= 0 {
		maxStudents = DefaultMaxStudents
	}
	var total int64
	for _, b := range batches {
		if !b.Active() {
			continue
		}
		total += RangeSize(b.RollRange)
		if total > int64(maxStudents) {
			return ErrRosterTooLarge
		}
	}
	return nil
}

// RangeSize returns the number of rolls in "start-end", or 0 when the range
// is unparsable or empty.
func RangeSize(rollRange string) int64 {
	start, end, ok := ParseRollRange(rollRange)
	if !ok || start > end {
		return 0
	}
	return int64(end) - int64(start) + 1
}

// TopStandardActive reports whether any active batch belongs to the highest
// priority standard.
func TopStandardActive(batches []models.Batch) bool {
	for _, b := range batches {
		if b.Active() && StandardOf(b.ClassName) == Standards[0] {
			return true
		}
	}
	return false
}

// Generate builds the full seating report. It never fails; callers run
// Validate first. Each call works on its own freshly built roster.
func Generate(batches []models.Batch, opts Options) *models.Report {
	roster := BuildRoster(batches)
	rooms := Allocate(roster, opts.BenchesPerRoom, DefaultPolicy(TopStandardActive(batches)))
	arrangement, summary := Assemble(rooms, batches)

	report := &models.Report{
		ExamName:       opts.ExamName,
		AcademicYear:   opts.AcademicYear,
		MaxBenches:     opts.BenchesPerRoom,
		Standards:      append([]string(nil), Standards...),
		Arrangement:    arrangement,
		Summary:        summary,
		Totals:         make(map[string]int, len(Standards)),
		SkippedBatches: roster.Skipped,
	}
	for _, room := range summary {
		for std, n := range room.Counts {
			report.Totals[std] += n
		}
		report.GrandTotal += room.Total
	}
	return report
}
