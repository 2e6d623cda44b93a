package seating

import (
	"sort"
	"strconv"
	"strings"

	"exam-seating-go/models"
)

// SummarizeSide groups the students of one room side by class name, keeping
// first-seen order. Absentees are limited to the seated roll span of the group.
func SummarizeSide(students []models.Student, batches []models.Batch) []models.BatchSummary {
	var order []string
	grouped := make(map[string][]int)
	for _, s := range students {
		if _, seen := grouped[s.ClassName]; !seen {
			order = append(order, s.ClassName)
		}
		grouped[s.ClassName] = append(grouped[s.ClassName], s.Roll)
	}

	summaries := make([]models.BatchSummary, 0, len(order))
	for _, className := range order {
		rolls := grouped[className]
		lo, hi := bounds(rolls)

		summary := models.BatchSummary{
			ClassName:     className,
			RollNumbers:   rolls,
			DisplayRanges: []string{displayRange(lo, hi)},
			Count:         len(rolls),
		}
		if batch, ok := findBatch(batches, className); ok {
			summary.Absentees = absenteesWithin(batch.Absentees, lo, hi)
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// SummarizeRoom counts the students of a room per standard.
func SummarizeRoom(room models.RoomArrangement) models.RoomSummary {
	counts := make(map[string]int)
	for _, side := range [][]models.BatchSummary{room.LeftSide, room.RightSide} {
		for _, b := range side {
			counts[StandardOf(b.ClassName)] += b.Count
		}
	}
	return models.RoomSummary{RoomNumber: room.RoomNumber, Counts: counts, Total: room.Total}
}

// Assemble turns allocated rooms into the report arrangement and summaries.
// Rooms are numbered from 1.
func Assemble(rooms []Room, batches []models.Batch) ([]models.RoomArrangement, []models.RoomSummary) {
	arrangement := make([]models.RoomArrangement, 0, len(rooms))
	summary := make([]models.RoomSummary, 0, len(rooms))
	for i, room := range rooms {
		ra := models.RoomArrangement{
			RoomNumber: i + 1,
			LeftSide:   SummarizeSide(room.Left, batches),
			RightSide:  SummarizeSide(room.Right, batches),
			LeftTotal:  len(room.Left),
			RightTotal: len(room.Right),
			Total:      room.Seated(),
		}
		arrangement = append(arrangement, ra)
		summary = append(summary, SummarizeRoom(ra))
	}
	return arrangement, summary
}

func findBatch(batches []models.Batch, className string) (models.Batch, bool) {
	for _, b := range batches {
		if b.ClassName == className {
			return b, true
		}
	}
	return models.Batch{}, false
}

func absenteesWithin(csv string, lo, hi int) string {
	var within []int
	for _, roll := range ParseAbsentees(csv) {
		if roll >= lo && roll <= hi {
			within = append(within, roll)
		}
	}
	sort.Ints(within)

	parts := make([]string, len(within))
	for i, roll := range within {
		parts[i] = strconv.Itoa(roll)
	}
	return strings.Join(parts, ", ")
}

func bounds(rolls []int) (lo, hi int) {
	lo, hi = rolls[0], rolls[0]
	for _, r := range rolls[1:] {
		if r < lo {
			lo = r
		}
		if r > hi {
			hi = r
		}
	}
	return lo, hi
}

func displayRange(lo, hi int) string {
	if lo == hi {
		return strconv.Itoa(lo)
	}
	return strconv.Itoa(lo) + "-" + strconv.Itoa(hi)
}
