package seating

import (
	"regexp"
	"strconv"
)

// UnknownStandard is reported for class names without a usable number.
const UnknownStandard = "Unknown"

// Standards lists the recognized standards from highest to lowest priority.
var Standards = []string{"10th", "9th", "8th", "7th", "6th", "5th"}

// Partners pairs each standard with its preferred bench neighbour.
var Partners = map[string]string{
	"10th": "9th",
	"9th":  "10th",
	"8th":  "7th",
	"7th":  "8th",
	"6th":  "5th",
	"5th":  "6th",
}

var standardPattern = regexp.MustCompile(`\d+`)

// StandardOf derives the standard from the first integer in a class name,
// so "10th A" and "Std 10 - B" both give "10th".
func StandardOf(className string) string {
	digits := standardPattern.FindString(className)
	if digits == "" {
		return UnknownStandard
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return UnknownStandard
	}
	return strconv.Itoa(n) + "th"
}

// IsRecognized reports whether std takes part in seating.
func IsRecognized(std string) bool {
	_, ok := Partners[std]
	return ok
}

// Policy is the seating policy as data: a priority order and a partner table.
type Policy struct {
	Priority []string
	Partners map[string]string
	// PreferPartner enables partner pairing for the right seat. When false the
	// right seat takes the first other standard in priority order.
	PreferPartner bool
}

// DefaultPolicy returns the school policy. Partner pairing only applies
// when the highest standard sits the exam.
func DefaultPolicy(topStandardActive bool) Policy {
	return Policy{
		Priority:      Standards,
		Partners:      Partners,
		PreferPartner: topStandardActive,
	}
}
