// Package seedroster seeds a running service with a synthetic roster
// over HTTP and verifies the cadence and maturity endpoints against
// the shapes it planted.
package seedroster

import "time"

// Config controls a seeding run.
type Config struct {
	// BaseURL of the running service, e.g. http://localhost:9080.
	BaseURL string

	// Members to create. Spread across coverage profiles.
	Members int

	// Timeout for individual HTTP requests.
	Timeout time.Duration

	// Now anchors cadence verification (YYYY-MM-DD); empty means today.
	Now string

	// Verbose enables per-member logging.
	Verbose bool
}

// Stats accumulates run results.
type Stats struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	MembersCreated    int
	OneOnOnesLogged   int
	ReviewsRecorded   int
	AssessmentsPut    int
	GrowthAreasOpened int

	CadenceChecked  int
	MaturityChecked int
	Mismatches      int
}
