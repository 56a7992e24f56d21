// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...Option) initializer to build a Config with defaults.
// - Layer file and environment overrides on top via Load.
// - External errors must be wrapped via this package's error helpers.
package config

import "runtime"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr" validate:"required"`

	// RecheckQueueSize bounds the in-memory recheck queue.
	RecheckQueueSize int `koanf:"queue_size" validate:"gte=1"`

	// WorkerCount sets the number of reminder workers.
	WorkerCount int `koanf:"worker_count" validate:"gte=1"`

	// DedupeSize caps the reminder deduplication cache.
	DedupeSize int `koanf:"dedupe_size" validate:"gte=1"`

	// SweepIntervalMinutes sets how often every member is re-enqueued
	// for a cadence recheck.
	SweepIntervalMinutes int `koanf:"sweep_interval_minutes" validate:"gte=1"`

	// OneOnOneIntervalDays is the expected gap between 1:1s.
	OneOnOneIntervalDays int `koanf:"one_on_one_interval_days" validate:"gte=1"`

	// GraceDays extends the 1:1 interval before a member counts as overdue.
	GraceDays int `koanf:"grace_days" validate:"gte=0"`

	// QuarterWindowDays is the due-soon window before a quarter end.
	QuarterWindowDays int `koanf:"quarter_window_days" validate:"gte=1"`

	// AnnualWindowDays is the due-soon window before a hire anniversary.
	AnnualWindowDays int `koanf:"annual_window_days" validate:"gte=1"`

	// MaxActiveGrowthAreas caps concurrently active growth areas per member.
	MaxActiveGrowthAreas int `koanf:"max_active_growth_areas" validate:"gte=1"`
}

// New creates a Config with defaults applied.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		Addr:                 ":9080",
		RecheckQueueSize:     10_000,
		WorkerCount:          runtime.NumCPU() * 2,
		DedupeSize:           50_000,
		SweepIntervalMinutes: 60,
		OneOnOneIntervalDays: 21,
		GraceDays:            2,
		QuarterWindowDays:    14,
		AnnualWindowDays:     30,
		MaxActiveGrowthAreas: 3,
	}
}
