// Package cadence classifies a member's recurring meeting obligations.
package cadence

// Option applies a configuration option to the Evaluator.
type Option func(*Evaluator)

// WithOneOnOneInterval sets the expected number of days between 1:1s.
func WithOneOnOneInterval(days int) Option {
	return func(e *Evaluator) {
		if days > 0 {
			e.oneOnOneInterval = days
		}
	}
}

// WithGraceDays sets the due-soon window around the next expected 1:1.
func WithGraceDays(days int) Option {
	return func(e *Evaluator) {
		if days >= 0 {
			e.graceDays = days
		}
	}
}

// WithQuarterWindow sets the due-soon window before quarter end.
func WithQuarterWindow(days int) Option {
	return func(e *Evaluator) {
		if days > 0 {
			e.quarterWindow = days
		}
	}
}

// WithAnnualWindow sets the due-soon window before the hire anniversary.
func WithAnnualWindow(days int) Option {
	return func(e *Evaluator) {
		if days > 0 {
			e.annualWindow = days
		}
	}
}
