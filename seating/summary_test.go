package seating_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exam-seating-go/models"
	"exam-seating-go/seating"
)

func students(className string, rolls ...int) []models.Student {
	out := make([]models.Student, 0, len(rolls))
	for _, r := range rolls {
		out = append(out, models.Student{Roll: r, ClassName: className, Standard: seating.StandardOf(className)})
	}
	return out
}

func TestSummarizeSide(t *testing.T) {
	batches := []models.Batch{
		{ClassName: "10th A", RollRange: "1-20", Absentees: "9, 3, 15, x, 30"},
		{ClassName: "10th B", RollRange: "1-5"},
	}
	side := append(students("10th A", 1, 2, 4, 5, 6, 7, 8, 10), students("10th B", 5)...)

	got := seating.SummarizeSide(side, batches)

	require.Len(t, got, 2)
	assert.Equal(t, "10th A", got[0].ClassName)
	assert.Equal(t, []string{"1-10"}, got[0].DisplayRanges)
	assert.Equal(t, 8, got[0].Count)
	assert.Equal(t, "3, 9", got[0].Absentees)

	assert.Equal(t, "10th B", got[1].ClassName)
	assert.Equal(t, []string{"5"}, got[1].DisplayRanges)
	assert.Equal(t, 1, got[1].Count)
	assert.Equal(t, "", got[1].Absentees)
}

func TestSummarizeSide_Empty(t *testing.T) {
	assert.Empty(t, seating.SummarizeSide(nil, nil))
}

func TestAssemble_SplitBatchAcrossRooms(t *testing.T) {
	batches := []models.Batch{{ClassName: "8th A", RollRange: "1-8", Absentees: "2, 6"}}
	rooms := allocate(batches, 3)
	arrangement, summary := seating.Assemble(rooms, batches)

	require.Len(t, arrangement, 2)
	assert.Equal(t, 1, arrangement[0].RoomNumber)
	assert.Equal(t, []string{"1-4"}, arrangement[0].LeftSide[0].DisplayRanges)
	assert.Equal(t, "2", arrangement[0].LeftSide[0].Absentees)
	assert.Equal(t, 2, arrangement[1].RoomNumber)
	assert.Equal(t, []string{"5-8"}, arrangement[1].LeftSide[0].DisplayRanges)
	assert.Equal(t, "6", arrangement[1].LeftSide[0].Absentees)

	assert.Equal(t, map[string]int{"8th": 3}, summary[0].Counts)
	assert.Equal(t, 3, summary[0].Total)
	assert.Equal(t, map[string]int{"8th": 3}, summary[1].Counts)
}

func TestSummarizeRoom(t *testing.T) {
	room := models.RoomArrangement{
		RoomNumber: 4,
		LeftSide:   []models.BatchSummary{{ClassName: "10th A", Count: 20}, {ClassName: "10th B", Count: 5}},
		RightSide:  []models.BatchSummary{{ClassName: "9th C", Count: 25}},
		Total:      50,
	}
	got := seating.SummarizeRoom(room)
	assert.Equal(t, 4, got.RoomNumber)
	assert.Equal(t, 50, got.Total)
	assert.Equal(t, map[string]int{"10th": 25, "9th": 25}, got.Counts)
}

func TestAssemble_Idempotent(t *testing.T) {
	batches := []models.Batch{
		{ClassName: "10th A", RollRange: "1-40", Absentees: "7, 33"},
		{ClassName: "9th A", RollRange: "1-35"},
		{ClassName: "7th A", RollRange: "1-30", Absentees: "1"},
	}
	rooms := allocate(batches, 25)

	a1, s1 := seating.Assemble(rooms, batches)
	a2, s2 := seating.Assemble(rooms, batches)
	assert.Equal(t, a1, a2)
	assert.Equal(t, s1, s2)
}
