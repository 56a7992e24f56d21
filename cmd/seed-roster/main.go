package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/teampulse/teampulse/internal/seedroster"
)

// Default configuration constants.
const (
	defaultMembers    = 9
	defaultTimeout    = 10 * time.Second
	defaultRunTimeout = 5 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:9080", "Base URL of the service")
		members = flag.Int("members", defaultMembers, "Number of members to create")
		now     = flag.String("now", "", "Anchor date for cadence checks, YYYY-MM-DD (default today)")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose = flag.Bool("verbose", false, "Per-member logging")
		help    = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seedroster.ShowHelp()
		return
	}

	if err := seedroster.SetupLogging(*verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &seedroster.Config{
		BaseURL: *baseURL,
		Members: *members,
		Timeout: *timeout,
		Now:     *now,
		Verbose: *verbose,
	}

	if err := seedroster.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Seed run failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
