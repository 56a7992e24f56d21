// Package cadence classifies a member's recurring meeting obligations.
//
// The evaluator is a pure function of (now, records): it holds only
// immutable thresholds, never caches derived state, and never returns
// an error for missing or malformed inputs. Absent records degrade to
// the no-prior-record branch of each track.
package cadence

import (
	"time"

	"github.com/teampulse/teampulse/internal/domain/dates"
	"github.com/teampulse/teampulse/internal/domain/types"
)

// Default cadence thresholds, in calendar days.
const (
	defaultOneOnOneInterval = 21 // 1:1s recur roughly every three weeks
	defaultGraceDays        = 2  // due-soon window around the next expected 1:1
	defaultQuarterWindow    = 14 // due-soon window before quarter end
	defaultAnnualWindow     = 30 // due-soon window before the hire anniversary
)

// QuarterlyReview carries the quarter/year pair of the most recent
// quarterly review alongside its date.
type QuarterlyReview struct {
	Date    time.Time
	Quarter int // 1-4
	Year    int
}

// Records is the per-member snapshot the evaluator reads. Nil pointers
// mean no such record exists.
type Records struct {
	StartDate     *time.Time
	LastOneOnOne  *time.Time
	LastQuarterly *QuarterlyReview
	LastAnnual    *time.Time
}

// Evaluator classifies each cadence track as overdue, due-soon or
// current. Construct with New; zero value uses zeroed thresholds.
type Evaluator struct {
	oneOnOneInterval int
	graceDays        int
	quarterWindow    int
	annualWindow     int
}

// New constructs an Evaluator with the default thresholds, then applies
// options.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{
		oneOnOneInterval: defaultOneOnOneInterval,
		graceDays:        defaultGraceDays,
		quarterWindow:    defaultQuarterWindow,
		annualWindow:     defaultAnnualWindow,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate classifies all three tracks for one member.
func (e *Evaluator) Evaluate(now time.Time, memberID string, rec Records) types.CadenceReport {
	return types.CadenceReport{
		MemberID:  memberID,
		OneOnOne:  e.OneOnOne(now, rec.LastOneOnOne),
		Quarterly: e.Quarterly(now, rec.LastQuarterly),
		Annual:    e.Annual(now, rec.StartDate, rec.LastAnnual),
	}
}

// OneOnOne classifies the 1:1 track. The next expected meeting is the
// last one plus the recurrence interval; the grace window marks it
// due-soon on either side of today.
func (e *Evaluator) OneOnOne(now time.Time, lastMeeting *time.Time) types.TrackStatus {
	if !hasDate(lastMeeting) {
		return types.StatusOverdue
	}
	daysUntilMeeting := dates.DaysBetween(now, *lastMeeting)
	if daysUntilMeeting >= 0 {
		// Scheduled in the future (or today).
		if daysUntilMeeting <= e.graceDays {
			return types.StatusDueSoon
		}
		return types.StatusCurrent
	}
	nextExpected := lastMeeting.AddDate(0, 0, e.oneOnOneInterval)
	daysUntilNext := dates.DaysBetween(now, nextExpected)
	switch {
	case daysUntilNext < 0:
		return types.StatusOverdue
	case daysUntilNext <= e.graceDays:
		return types.StatusDueSoon
	default:
		return types.StatusCurrent
	}
}

// Quarterly classifies the quarterly check-in track against the quarter
// containing now.
//
// A review completed for the current quarter is still flagged due-soon
// inside the quarter-end window; that look-ahead prompts scheduling of
// the next one early and is intentional. With no prior review the track
// is overdue anywhere outside that window, even early in the quarter.
func (e *Evaluator) Quarterly(now time.Time, last *QuarterlyReview) types.TrackStatus {
	currentQuarter := dates.QuarterOf(now)
	currentYear := now.Year()
	daysUntilQuarterEnd := dates.DaysBetween(now, dates.QuarterEnd(currentQuarter, currentYear))

	if last == nil || last.Quarter < 1 || last.Quarter > 4 || last.Year == 0 {
		if daysUntilQuarterEnd <= e.quarterWindow {
			return types.StatusDueSoon
		}
		return types.StatusOverdue
	}

	// Whole quarters between the last review and now; spans year
	// boundaries, so Q4 2023 -> Q1 2024 counts as one behind.
	behind := (currentYear-last.Year)*4 + (currentQuarter - last.Quarter)
	switch {
	case behind > 1:
		return types.StatusOverdue
	case behind == 1:
		if daysUntilQuarterEnd <= e.quarterWindow {
			return types.StatusDueSoon
		}
		return types.StatusOverdue
	case behind == 0:
		if daysUntilQuarterEnd <= e.quarterWindow {
			return types.StatusDueSoon
		}
		return types.StatusCurrent
	default:
		// Recorded ahead of the current quarter; nothing to chase.
		return types.StatusCurrent
	}
}

// Annual classifies the annual check-in track against the hire-date
// anniversary in the current year. A review on or after this year's
// anniversary satisfies the cycle regardless of how far away the next
// one is.
func (e *Evaluator) Annual(now time.Time, startDate, lastAnnual *time.Time) types.TrackStatus {
	if !hasDate(startDate) {
		// Without an anchor there is no expected date to be early for.
		return types.StatusOverdue
	}
	expected := dates.AnniversaryInYear(*startDate, now.Year())
	if hasDate(lastAnnual) && !lastAnnual.Before(expected) {
		return types.StatusCurrent
	}
	daysUntilExpected := dates.DaysBetween(now, expected)
	switch {
	case daysUntilExpected < 0:
		return types.StatusOverdue
	case daysUntilExpected <= e.annualWindow:
		return types.StatusDueSoon
	default:
		return types.StatusCurrent
	}
}

func hasDate(t *time.Time) bool {
	return t != nil && !t.IsZero()
}
