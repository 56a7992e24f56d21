// Package model contains domain models passed between layers.
package model

import "time"

// ReviewType distinguishes the two performance review cadences.
type ReviewType string

// Review types.
const (
	ReviewQuarterly ReviewType = "quarterly"
	ReviewAnnual    ReviewType = "annual"
)

// TeamMember is a direct report tracked by the service.
type TeamMember struct {
	ID           string    // unique id
	Name         string    // display name
	Role         string    // free-form role title
	StartDate    time.Time // hire date; anchors the annual cadence
	CurrentLevel string    // declared maturity level name, e.g. "Level 2"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OneOnOne records a single 1:1 meeting with a member.
type OneOnOne struct {
	ID          string
	MemberID    string
	MeetingDate time.Time
	Notes       string
	CreatedAt   time.Time
}

// PerformanceReview records a quarterly or annual check-in.
// Quarter/Year are set for quarterly reviews only.
type PerformanceReview struct {
	ID         string
	MemberID   string
	Type       ReviewType
	ReviewDate time.Time
	Quarter    int // 1-4; 0 for annual reviews
	Year       int // 0 for annual reviews
	Summary    string
	CreatedAt  time.Time
}

// SkillAssessment pairs a leader and a self maturity rating for one
// skill. Ratings reference Level ids; empty means not yet rated.
type SkillAssessment struct {
	MemberID     string
	SkillID      string
	LeaderRating string // Level id or ""
	SelfRating   string // Level id or ""
	UpdatedAt    time.Time
}

// Skill is static reference data; a skill may belong to any number of
// categories.
type Skill struct {
	ID          string
	Name        string
	CategoryIDs []string
}

// Category groups skills for per-category maturity averages.
type Category struct {
	ID   string
	Name string
}

// Level is one rung of the maturity ladder, ordered by Rank.
type Level struct {
	ID   string
	Name string
	Rank int // 0-4, Associate through Lead
}

// GrowthAreaStatus tracks the lifecycle of a growth area.
type GrowthAreaStatus string

// Growth area statuses.
const (
	GrowthActive   GrowthAreaStatus = "active"
	GrowthResolved GrowthAreaStatus = "resolved"
)

// GrowthArea is a coaching focus item for a member. At most three may
// be active per member at a time.
type GrowthArea struct {
	ID        string
	MemberID  string
	Title     string
	Status    GrowthAreaStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecheckJob asks the reminder pipeline to re-evaluate a member's
// cadence tracks. As is the calendar date the evaluation is anchored
// to, normally "today".
type RecheckJob struct {
	JobID    string
	MemberID string
	As       time.Time
}
