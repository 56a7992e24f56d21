// Package dates centralizes calendar-date parsing and arithmetic for
// cadence evaluation.
//
// Contract: ParseDate accepts "YYYY-MM-DD" or "YYYY-MM-DDTHH:mm:ss"
// (an optional trailing zone designator is tolerated and ignored) and
// always interprets the value as a local calendar date. Values are
// never shifted by a timezone offset; only the year, month and day
// components matter to callers.
package dates

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the canonical wire format for calendar dates.
const DateLayout = "2006-01-02"

// Layouts accepted by ParseDate, tried in order.
var layouts = []string{
	DateLayout,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
}

// ParseDate parses s into a local calendar date (midnight, time.Local).
// Returns ErrUnparseable wrapped with the input on failure.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty input", ErrUnparseable)
	}
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		// Keep only the calendar components.
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseable, s)
}

// DaysBetween returns the number of whole calendar days from `from` to
// `to`. Positive when `to` is later. Both inputs are reduced to their
// calendar components first, so the result never depends on time of
// day. The subtraction is anchored in UTC: a DST transition shortens
// or stretches a local day, and dividing local durations by 24h would
// lose a day around the spring-forward boundary.
func DaysBetween(from, to time.Time) int {
	f := utcMidnight(from)
	t := utcMidnight(to)
	return int(t.Sub(f).Hours() / 24)
}

// utcMidnight maps t onto midnight UTC of its calendar day.
func utcMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// QuarterEnd returns the last calendar day of the given quarter (1-4)
// in the given year. An out-of-range quarter clamps to Q4.
func QuarterEnd(quarter, year int) time.Time {
	if quarter < 1 || quarter > 4 {
		quarter = 4
	}
	// First day of the following quarter, minus one day.
	month := time.Month(quarter*3 + 1)
	y := year
	if quarter == 4 {
		month = time.January
		y = year + 1
	}
	return time.Date(y, month, 1, 0, 0, 0, 0, time.Local).AddDate(0, 0, -1)
}

// QuarterOf returns the quarter (1-4) containing t.
func QuarterOf(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// AnniversaryInYear returns the month/day of anchor transposed into
// year. Feb 29 anchors land on Mar 1 in non-leap years, matching
// time.Date normalization.
func AnniversaryInYear(anchor time.Time, year int) time.Time {
	return time.Date(year, anchor.Month(), anchor.Day(), 0, 0, 0, 0, time.Local)
}

// ParseQuarter converts a "Q1".."Q4" label (case-insensitive, bare
// digit tolerated) to its number. Returns 0 when the label is
// unrecognized.
func ParseQuarter(label string) int {
	s := strings.ToUpper(strings.TrimSpace(label))
	s = strings.TrimPrefix(s, "Q")
	switch s {
	case "1":
		return 1
	case "2":
		return 2
	case "3":
		return 3
	case "4":
		return 4
	}
	return 0
}
