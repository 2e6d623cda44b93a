package seating

import (
	"strings"

	"exam-seating-go/models"
)

// Queue is a FIFO of students of one standard, drained from the front.
type Queue struct {
	items []models.Student
	head  int
}

// Len returns the number of students still queued.
func (q *Queue) Len() int {
	return len(q.items) - q.head
}

// Push appends a student to the back of the queue.
func (q *Queue) Push(s models.Student) {
	q.items = append(q.items, s)
}

// Pop removes and returns the front student. ok is false on an empty queue.
func (q *Queue) Pop() (s models.Student, ok bool) {
	if q.Len() == 0 {
		return models.Student{}, false
	}
	s = q.items[q.head]
	q.head++
	return s, true
}

// Roster holds one queue per recognized standard.
type Roster struct {
	Queues map[string]*Queue
	// Skipped lists active batches whose class name has no recognized standard.
	Skipped []string
}

// Queue returns the queue for std, or nil if std is not recognized.
func (r *Roster) Queue(std string) *Queue {
	return r.Queues[std]
}

// Remaining returns the number of unseated students across all queues.
func (r *Roster) Remaining() int {
	total := 0
	for _, q := range r.Queues {
		total += q.Len()
	}
	return total
}

// BuildRoster expands active batches into per-standard queues. Batches are
// processed in input order and rolls ascend within a batch. Unparsable ranges
// and absentee tokens contribute nothing.
func BuildRoster(batches []models.Batch) *Roster {
	r := &Roster{Queues: make(map[string]*Queue, len(Standards))}
	for _, std := range Standards {
		r.Queues[std] = &Queue{}
	}

	for _, batch := range batches {
		if !batch.Active() {
			continue
		}
		start, end, ok := ParseRollRange(batch.RollRange)
		if !ok {
			continue
		}
		std := StandardOf(batch.ClassName)
		q := r.Queue(std)
		if q == nil {
			r.Skipped = append(r.Skipped, batch.ClassName)
			continue
		}

		absent := make(map[int]struct{})
		for _, roll := range ParseAbsentees(batch.Absentees) {
			absent[roll] = struct{}{}
		}
		for roll := start; roll <= end; roll++ {
			if _, gone := absent[roll]; gone {
				continue
			}
			q.Push(models.Student{Roll: roll, ClassName: batch.ClassName, Standard: std})
		}
	}
	return r
}

// ParseRollRange reads "start-end". Only the first two dash separated parts
// are considered.
func ParseRollRange(rollRange string) (start, end int, ok bool) {
	parts := strings.Split(rollRange, "-")
	if len(parts) < 2 {
		return 0, 0, false
	}
	start, okStart := parseLeadingInt(parts[0])
	end, okEnd := parseLeadingInt(parts[1])
	if !okStart || !okEnd {
		return 0, 0, false
	}
	return start, end, true
}

// ParseAbsentees reads a comma separated roll list, dropping malformed tokens.
// Order and duplicates are kept.
func ParseAbsentees(csv string) []int {
	var rolls []int
	for _, token := range strings.Split(csv, ",") {
		if n, ok := parseLeadingInt(token); ok {
			rolls = append(rolls, n)
		}
	}
	return rolls
}

// parseLeadingInt accepts an optional sign followed by digits, ignoring any
// trailing text: " 12b" reads as 12.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n, digits := 0, 0
	for _, c := range s {
		if c < '0' || c > '9' {
			break
		}
		if n > (1<<31)/10 {
			return 0, false
		}
		n = n*10 + int(c-'0')
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
