package maturity

import "github.com/teampulse/teampulse/pkg/logger"

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithGapThreshold sets the leader/self score distance that flags a
// significant gap.
func WithGapThreshold(threshold int) Option {
	return func(s *Scorer) {
		if threshold > 0 {
			s.gapThreshold = threshold
		}
	}
}

// WithPromotionMargin sets how far under a band's max an average reads
// promotion-ready.
func WithPromotionMargin(margin float64) Option {
	return func(s *Scorer) {
		if margin > 0 {
			s.promotionMargin = margin
		}
	}
}

// WithLogger sets the logger used for unrecognized-level warnings.
// Without one, the scorer stays silent.
func WithLogger(log logger.Logger) Option {
	return func(s *Scorer) {
		if log != nil {
			s.log = log
		}
	}
}
