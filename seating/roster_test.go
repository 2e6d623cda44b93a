package seating_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exam-seating-go/models"
	"exam-seating-go/seating"
)

func inactive() *bool {
	f := false
	return &f
}

func drain(q *seating.Queue) []int {
	var rolls []int
	for {
		s, ok := q.Pop()
		if !ok {
			return rolls
		}
		rolls = append(rolls, s.Roll)
	}
}

func TestParseRollRange(t *testing.T) {
	cases := []struct {
		in         string
		start, end int
		ok         bool
	}{
		{"1-5", 1, 5, true},
		{" 101 - 140 ", 101, 140, true},
		{"12a-14", 12, 14, true},
		{"1-5-9", 1, 5, true},
		{"abc-5", 0, 0, false},
		{"7", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			start, end, ok := seating.ParseRollRange(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.start, start)
			assert.Equal(t, tc.end, end)
		})
	}
}

func TestParseAbsentees(t *testing.T) {
	assert.Equal(t, []int{4, 2, 9}, seating.ParseAbsentees("4, 2,x, 9 ,"))
	assert.Nil(t, seating.ParseAbsentees(""))
}

func TestBuildRoster_OrderAndAbsentees(t *testing.T) {
	batches := []models.Batch{
		{ClassName: "9th B", RollRange: "10-12"},
		{ClassName: "9th A", RollRange: "1-4", Absentees: "2, 40"},
		{ClassName: "10th A", RollRange: "1-2"},
	}
	r := seating.BuildRoster(batches)

	assert.Equal(t, []int{10, 11, 12, 1, 3, 4}, drain(r.Queue("9th")))
	assert.Equal(t, []int{1, 2}, drain(r.Queue("10th")))
	assert.Equal(t, 0, r.Queue("5th").Len())
	assert.Empty(t, r.Skipped)
}

func TestBuildRoster_SilentOmissions(t *testing.T) {
	batches := []models.Batch{
		{ClassName: "8th A", RollRange: "1-3", IsActive: inactive()},
		{ClassName: "8th B", RollRange: "one-three"},
		{ClassName: "Nursery", RollRange: "1-3"},
		{ClassName: "12th Sci", RollRange: "1-3"},
		{ClassName: "7th A", RollRange: "5-3"},
	}
	r := seating.BuildRoster(batches)

	require.Len(t, r.Queues, len(seating.Standards))
	assert.Equal(t, 0, r.Remaining())
	assert.Equal(t, []string{"Nursery", "12th Sci"}, r.Skipped)
}

func TestQueue_PopEmpty(t *testing.T) {
	var q seating.Queue
	_, ok := q.Pop()
	assert.False(t, ok)

	q.Push(models.Student{Roll: 3})
	s, ok := q.Pop()
	assert.True(t, ok)
	assert.Equal(t, 3, s.Roll)
	assert.Equal(t, 0, q.Len())
}
