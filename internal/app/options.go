package service

import (
	"time"

	repository "github.com/teampulse/teampulse/internal/adapters/repository"
	"github.com/teampulse/teampulse/internal/domain/cadence"
	"github.com/teampulse/teampulse/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the roster store. Defaults to the in-memory store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithWorkerCount sets the number of reminder workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the recheck queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the reminder deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithSweepInterval sets how often every member is re-enqueued for a
// cadence recheck.
func WithSweepInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.sweepInterval = interval
		}
	}
}

// WithCadenceOptions forwards threshold options to the cadence
// evaluator built at Start.
func WithCadenceOptions(opts ...cadence.Option) Option {
	return func(s *Service) {
		s.cadenceOpts = append(s.cadenceOpts, opts...)
	}
}

// WithMaxActiveGrowthAreas caps concurrently active growth areas per
// member.
func WithMaxActiveGrowthAreas(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxActiveGrowthAreas = limit
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
