package seedroster

import (
	"fmt"

	"github.com/teampulse/teampulse/pkg/logger"
)

// SetupLogging initializes the harness logger.
func SetupLogging(verbose bool) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		return logger.SetLevelString("debug")
	}
	return nil
}

// ShowHelp prints usage information.
func ShowHelp() {
	fmt.Println(`seed-roster - seed a running TeamPulse service with a synthetic roster

Usage:
  seed-roster [flags]

Flags:
  -url string        Base URL of the service (default "http://localhost:9080")
  -members int       Number of members to create (default 9)
  -now string        Anchor date for cadence checks, YYYY-MM-DD (default today)
  -timeout duration  HTTP request timeout (default 10s)
  -verbose           Per-member logging
  -help              Show this help

The harness cycles members through three coverage profiles (covered,
lapsed, fresh), seeds 1:1s, reviews, assessments and growth areas over
HTTP, then verifies the cadence, compliance and maturity endpoints
against the shapes it planted. A non-zero exit means a mismatch.`)
}
