package seedroster

import (
	"fmt"
	"time"
)

// Coverage profiles the generator cycles through.
const (
	profileCovered = "covered" // fresh 1:1, current-quarter review, annual done
	profileLapsed  = "lapsed"  // stale records on every track
	profileFresh   = "fresh"   // brand new hire, no records yet
)

// Reference data planted before any member is created.
var (
	seedCategories = []categorySeed{
		{ID: "cat-craft", Name: "Craft"},
		{ID: "cat-collab", Name: "Collaboration"},
	}
	seedSkills = []skillSeed{
		{ID: "sk-go", Name: "Go", CategoryIDs: []string{"cat-craft"}},
		{ID: "sk-review", Name: "Code Review", CategoryIDs: []string{"cat-craft", "cat-collab"}},
		{ID: "sk-mentoring", Name: "Mentoring", CategoryIDs: []string{"cat-collab"}},
	}

	memberNames = []string{
		"Ada Reyes", "Boris Lindt", "Chiara Okafor", "Dmitri Hale",
		"Elif Aksoy", "Farid Mensah", "Greta Olsen", "Hiro Tanaka",
		"Imani Clarke", "Jonas Petrov",
	}
	memberLevels = []string{"Associate", "Level 1", "Level 2", "Senior Level", "Lead"}
)

type categorySeed struct {
	ID   string
	Name string
}

type skillSeed struct {
	ID          string
	Name        string
	CategoryIDs []string
}

// memberPlan is everything the runner seeds for one member plus the
// invariants it verifies afterwards.
type memberPlan struct {
	Name         string
	Role         string
	Level        string
	StartDate    time.Time
	Profile      string
	OneOnOnes    []time.Time
	Quarterlies  []time.Time
	Annuals      []time.Time
	Assessments  map[string][2]string // skill id -> {leader level id, self level id}
	GrowthAreas  []string
	WantOneOnOne string // expected 1:1 status; empty skips the check
	WantGap      bool   // expect at least one flagged rating gap
}

// buildPlans produces n member plans anchored to now, cycling the
// coverage profiles so every cadence status shows up in the summary.
func buildPlans(n int, now time.Time) []memberPlan {
	plans := make([]memberPlan, 0, n)
	profiles := []string{profileCovered, profileLapsed, profileFresh}

	for i := 0; i < n; i++ {
		profile := profiles[i%len(profiles)]
		name := fmt.Sprintf("%s %02d", memberNames[i%len(memberNames)], i+1)
		level := memberLevels[i%len(memberLevels)]

		plan := memberPlan{
			Name:    name,
			Role:    "Engineer",
			Level:   level,
			Profile: profile,
		}

		switch profile {
		case profileCovered:
			// Hired years ago, everything on schedule. The 1:1 three
			// days back keeps the track current for any run date.
			plan.StartDate = now.AddDate(-3, -1, 0)
			plan.OneOnOnes = []time.Time{
				now.AddDate(0, 0, -24),
				now.AddDate(0, 0, -3),
			}
			plan.Quarterlies = []time.Time{now.AddDate(0, 0, -10)}
			plan.Annuals = []time.Time{plan.StartDate.AddDate(3, 0, 2)}
			plan.Assessments = map[string][2]string{
				"sk-go":     {"lvl-2", "lvl-2"},
				"sk-review": {"lvl-2", "lvl-1"},
			}
			plan.WantOneOnOne = "current"

		case profileLapsed:
			// Everything stale: last 1:1 two months ago, last quarterly
			// three quarters back, annual missed.
			plan.StartDate = now.AddDate(-2, -6, 0)
			plan.OneOnOnes = []time.Time{now.AddDate(0, 0, -60)}
			plan.Quarterlies = []time.Time{now.AddDate(0, -9, 0)}
			plan.Assessments = map[string][2]string{
				"sk-go":        {"lvl-1", "lvl-senior"},
				"sk-review":    {"lvl-senior", "lvl-1"},
				"sk-mentoring": {"lvl-1", "lvl-1"},
			}
			plan.GrowthAreas = []string{"close the loop on feedback", "estimation accuracy"}
			plan.WantOneOnOne = "overdue"
			plan.WantGap = true

		case profileFresh:
			// Hired last week, nothing recorded yet.
			plan.StartDate = now.AddDate(0, 0, -7)
			plan.WantOneOnOne = "overdue"
		}

		plans = append(plans, plan)
	}
	return plans
}
