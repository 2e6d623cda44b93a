package models

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Batch is one class batch entered by the exam office
type Batch struct {
	ID        string `json:"id"`                                               // Unique batch ID
	ClassName string `json:"className" binding:"required" validate:"required"` // Display name, e.g. "10th A"
	RollRange string `json:"rollRange" binding:"required" validate:"required"` // "start-end"
	Absentees string `json:"absentees"`                                        // Comma separated roll numbers
	IsActive  *bool  `json:"isActive,omitempty"`                               // nil counts as active
}

// Active reports whether the batch takes part in seating.
func (b Batch) Active() bool {
	return b.IsActive == nil || *b.IsActive
}

// Validate checks the required fields of a batch
func (b Batch) Validate() error {
	return validate.Struct(b)
}

// Student is one roll number expanded from a batch
type Student struct {
	Roll      int    `json:"roll"`
	ClassName string `json:"className"`
	Standard  string `json:"standard"`
}

// BatchSummary is the rollup of one batch on one side of a room
type BatchSummary struct {
	ClassName     string   `json:"className"`
	RollNumbers   []int    `json:"rollNumbers"`
	DisplayRanges []string `json:"displayRanges"`
	Count         int      `json:"count"`
	Absentees     string   `json:"absentees"` // Absentees within the seated range, "1, 4"
}

// RoomArrangement is one exam room with its two seat columns
type RoomArrangement struct {
	RoomNumber int            `json:"roomNumber"`
	LeftSide   []BatchSummary `json:"leftSide"`
	RightSide  []BatchSummary `json:"rightSide"`
	LeftTotal  int            `json:"leftTotal"`
	RightTotal int            `json:"rightTotal"`
	Total      int            `json:"total"`
}

// RoomSummary holds per-standard counts for one room
type RoomSummary struct {
	RoomNumber int            `json:"roomNumber"`
	Counts     map[string]int `json:"counts"`
	Total      int            `json:"total"`
}

// Report is the full seating plan handed to the export layer
type Report struct {
	ID             string            `json:"id,omitempty"`
	ExamName       string            `json:"examName"`
	AcademicYear   string            `json:"academicYear"`
	MaxBenches     int               `json:"maxBenches"`
	Standards      []string          `json:"standards"`
	Arrangement    []RoomArrangement `json:"arrangement"`
	Summary        []RoomSummary     `json:"summary"`
	Totals         map[string]int    `json:"totals"`
	GrandTotal     int               `json:"grandTotal"`
	SkippedBatches []string          `json:"skippedBatches,omitempty"` // Class names with no recognized standard
}
