// Package worker defines the reminder workers that drain the recheck
// queue.
//
// A worker evaluates a member's cadence tracks through the pure
// evaluator exposed by the service layer, then dispatches reminders
// for tracks needing attention. Dispatch is deduplicated per member,
// track and calendar day so nobody gets nagged twice in one sweep.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/teampulse/teampulse/internal/adapters/mq/queue"
	"github.com/teampulse/teampulse/internal/domain/dedupe"
	"github.com/teampulse/teampulse/internal/domain/types"
	"github.com/teampulse/teampulse/pkg/logger"
	"github.com/teampulse/teampulse/pkg/metrics"
)

// Default worker configuration.
const (
	defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()
	workerShutdownTimeout   = 5 * time.Second
)

// Track labels used in reminders and metrics.
const (
	TrackOneOnOne  = "one_on_one"
	TrackQuarterly = "quarterly"
	TrackAnnual    = "annual"
)

// Job abstracts what workers read off the queue.
type Job = queue.Job

// Evaluator produces a member's cadence report for a given date.
type Evaluator interface {
	EvaluateMember(ctx context.Context, memberID string, as time.Time) (types.CadenceReport, error)
}

// Notifier dispatches a single reminder. A returned error means the
// reminder did not reach the member and may fire again.
type Notifier interface {
	Notify(ctx context.Context, memberID, track string, status types.TrackStatus, as time.Time) error
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Job
}

// Worker processes recheck jobs until stopped.
type Worker struct {
	queue     Queue
	evaluator Evaluator
	notifier  Notifier
	deduper   dedupe.Deduper
	name      string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewWorker creates a new worker with configuration options.
func NewWorker(q Queue, evaluator Evaluator, notifier Notifier, deduper dedupe.Deduper, opts ...Option) *Worker {
	w := &Worker{
		queue:     q,
		evaluator: evaluator,
		notifier:  notifier,
		deduper:   deduper,
		name:      "worker",
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}
	return w
}

// Run starts the worker loop.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			if err := w.processJob(ctx, job); err != nil {
				w.logger.Error(ctx, "recheck job failed",
					logger.String("jobID", job.JobID),
					logger.String("memberID", job.MemberID),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *Worker) Shutdown(ctx context.Context) error {
	close(w.shutdown)
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processJob evaluates one member and dispatches reminders for tracks
// needing attention.
func (w *Worker) processJob(ctx context.Context, job Job) error {
	as := job.As
	if as.IsZero() {
		as = time.Now()
	}

	report, err := w.evaluator.EvaluateMember(ctx, job.MemberID, as)
	if err != nil {
		metrics.RecordEvaluationError()
		return fmt.Errorf("evaluate member %s: %w", job.MemberID, err)
	}

	tracks := []struct {
		name   string
		status types.TrackStatus
	}{
		{TrackOneOnOne, report.OneOnOne},
		{TrackQuarterly, report.Quarterly},
		{TrackAnnual, report.Annual},
	}
	for _, t := range tracks {
		if t.status == types.StatusCurrent {
			continue
		}
		key := dedupe.ReminderKey(job.MemberID, t.name, as)
		if w.deduper.SeenAndRecord(ctx, key) {
			metrics.RecordReminderDeduped()
			continue
		}
		if err := w.notifier.Notify(ctx, job.MemberID, t.name, t.status, as); err != nil {
			// Back the key out so the next recheck retries this track.
			w.deduper.Unrecord(ctx, key)
			w.logger.Warn(ctx, "reminder dispatch failed",
				logger.String("memberID", job.MemberID),
				logger.String("track", t.name),
				logger.Error(err),
			)
			continue
		}
		metrics.RecordReminderDispatched(t.name)
	}
	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers []*Worker

	logger logger.Logger
}

// NewPool creates a worker pool of workerCount workers.
func NewPool(workerCount int, q Queue, evaluator Evaluator, notifier Notifier, deduper dedupe.Deduper) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	p := &Pool{
		workers: make([]*Worker, workerCount),
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := range p.workers {
		p.workers[i] = NewWorker(q, evaluator, notifier, deduper,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerCount(workerCount)
	return p
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), workerShutdownTimeout)
	defer cancel()
	for _, w := range p.workers {
		if err := w.Shutdown(ctx); err != nil {
			p.logger.Warn(ctx, "worker did not stop cleanly",
				logger.String("worker", w.name),
				logger.Error(err),
			)
		}
	}
}

// Size returns the number of workers in the pool.
func (p *Pool) Size() int {
	return len(p.workers)
}
