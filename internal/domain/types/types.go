// Package types contains common types used across the application.
package types

// TrackStatus classifies one cadence track for one member.
type TrackStatus string

// Cadence track statuses.
const (
	StatusOverdue TrackStatus = "overdue"
	StatusDueSoon TrackStatus = "due-soon"
	StatusCurrent TrackStatus = "current"
)

// Valid reports whether s is one of the known statuses.
func (s TrackStatus) Valid() bool {
	switch s {
	case StatusOverdue, StatusDueSoon, StatusCurrent:
		return true
	}
	return false
}

// CadenceReport bundles the three track statuses for one member.
type CadenceReport struct {
	MemberID  string      `json:"member_id"`
	OneOnOne  TrackStatus `json:"one_on_one"`
	Quarterly TrackStatus `json:"quarterly"`
	Annual    TrackStatus `json:"annual"`
}

// ComplianceSummary aggregates track statuses across the team.
type ComplianceSummary struct {
	Members []CadenceReport `json:"members"`
	Overdue int             `json:"overdue"`
	DueSoon int             `json:"due_soon"`
	Current int             `json:"current"`
}

// CategoryScore is the per-category maturity result. AvgScore is nil
// when no skill in the category carries a leader rating.
type CategoryScore struct {
	CategoryID  string   `json:"category_id"`
	Category    string   `json:"category"`
	AvgScore    *float64 `json:"avg_score"`
	LevelName   string   `json:"level_name,omitempty"`
	SkillsRated int      `json:"skills_rated"`
}

// OverallScore carries the equal-weight category means for leader and
// self ratings. Nil when no category has a rated skill.
type OverallScore struct {
	Leader *float64 `json:"leader"`
	Self   *float64 `json:"self"`
}

// SkillGap flags one skill whose leader and self ratings disagree by
// two or more score points.
type SkillGap struct {
	SkillID     string `json:"skill_id"`
	Skill       string `json:"skill"`
	LeaderScore int    `json:"leader_score"`
	SelfScore   int    `json:"self_score"`
}

// GrowthIndicator classifies a member's average against the range of
// their declared level.
type GrowthIndicator struct {
	Status      string `json:"status"` // needs-coaching | on-track | promotion-ready
	Label       string `json:"label"`
	Description string `json:"description"`
}

// MaturityReport is the full scoring output for one member.
type MaturityReport struct {
	MemberID   string           `json:"member_id"`
	Categories []CategoryScore  `json:"categories"`
	Overall    OverallScore     `json:"overall"`
	Gaps       []SkillGap       `json:"gaps"`
	Growth     *GrowthIndicator `json:"growth,omitempty"`
}
