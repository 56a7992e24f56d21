package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/teampulse/teampulse/internal/adapters/mq/queue"
	"github.com/teampulse/teampulse/internal/domain/dedupe"
	"github.com/teampulse/teampulse/internal/domain/types"
	"github.com/teampulse/teampulse/pkg/logger"
)

func init() {
	_ = logger.Init()
}

type stubEvaluator struct {
	mu      sync.Mutex
	reports map[string]types.CadenceReport
	err     error
	calls   int
}

func (s *stubEvaluator) EvaluateMember(_ context.Context, memberID string, _ time.Time) (types.CadenceReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return types.CadenceReport{}, s.err
	}
	return s.reports[memberID], nil
}

type dispatched struct {
	memberID string
	track    string
	status   types.TrackStatus
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []dispatched
	err  error
}

func (n *recordingNotifier) Notify(_ context.Context, memberID, track string, status types.TrackStatus, _ time.Time) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, dispatched{memberID: memberID, track: track, status: status})
	return nil
}

func (n *recordingNotifier) setErr(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.err = err
}

func (n *recordingNotifier) snapshot() []dispatched {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]dispatched, len(n.sent))
	copy(out, n.sent)
	return out
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

func TestWorkerProcessJob(t *testing.T) {
	Convey("Given a worker over a recheck queue", t, func() {
		ctx := context.Background()
		now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

		Convey("When a member has overdue and due-soon tracks", func() {
			eval := &stubEvaluator{reports: map[string]types.CadenceReport{
				"m1": {
					MemberID:  "m1",
					OneOnOne:  types.StatusOverdue,
					Quarterly: types.StatusDueSoon,
					Annual:    types.StatusCurrent,
				},
			}}
			notifier := &recordingNotifier{}
			w := NewWorker(nil, eval, notifier, dedupe.NewInMemoryDeduper())

			err := w.processJob(ctx, Job{JobID: "j1", MemberID: "m1", As: now})

			Convey("Then reminders go out for the non-current tracks only", func() {
				So(err, ShouldBeNil)
				sent := notifier.snapshot()
				So(sent, ShouldHaveLength, 2)
				So(sent[0].track, ShouldEqual, TrackOneOnOne)
				So(sent[0].status, ShouldEqual, types.StatusOverdue)
				So(sent[1].track, ShouldEqual, TrackQuarterly)
				So(sent[1].status, ShouldEqual, types.StatusDueSoon)
			})
		})

		Convey("When the same member is rechecked twice on the same day", func() {
			eval := &stubEvaluator{reports: map[string]types.CadenceReport{
				"m1": {MemberID: "m1", OneOnOne: types.StatusOverdue, Quarterly: types.StatusCurrent, Annual: types.StatusCurrent},
			}}
			notifier := &recordingNotifier{}
			w := NewWorker(nil, eval, notifier, dedupe.NewInMemoryDeduper())

			So(w.processJob(ctx, Job{JobID: "j1", MemberID: "m1", As: now}), ShouldBeNil)
			So(w.processJob(ctx, Job{JobID: "j2", MemberID: "m1", As: now.Add(3 * time.Hour)}), ShouldBeNil)

			Convey("Then the second reminder is deduplicated", func() {
				So(notifier.snapshot(), ShouldHaveLength, 1)
			})
		})

		Convey("When the same member is rechecked on a later day", func() {
			eval := &stubEvaluator{reports: map[string]types.CadenceReport{
				"m1": {MemberID: "m1", OneOnOne: types.StatusOverdue, Quarterly: types.StatusCurrent, Annual: types.StatusCurrent},
			}}
			notifier := &recordingNotifier{}
			w := NewWorker(nil, eval, notifier, dedupe.NewInMemoryDeduper())

			So(w.processJob(ctx, Job{JobID: "j1", MemberID: "m1", As: now}), ShouldBeNil)
			So(w.processJob(ctx, Job{JobID: "j2", MemberID: "m1", As: now.AddDate(0, 0, 1)}), ShouldBeNil)

			Convey("Then a fresh reminder goes out", func() {
				So(notifier.snapshot(), ShouldHaveLength, 2)
			})
		})

		Convey("When dispatch fails", func() {
			eval := &stubEvaluator{reports: map[string]types.CadenceReport{
				"m1": {MemberID: "m1", OneOnOne: types.StatusOverdue, Quarterly: types.StatusCurrent, Annual: types.StatusCurrent},
			}}
			notifier := &recordingNotifier{}
			notifier.setErr(errors.New("mail relay down"))
			w := NewWorker(nil, eval, notifier, dedupe.NewInMemoryDeduper())

			So(w.processJob(ctx, Job{JobID: "j1", MemberID: "m1", As: now}), ShouldBeNil)
			So(notifier.snapshot(), ShouldBeEmpty)

			Convey("Then the dedupe key is backed out and a same-day recheck retries", func() {
				notifier.setErr(nil)
				So(w.processJob(ctx, Job{JobID: "j2", MemberID: "m1", As: now.Add(time.Hour)}), ShouldBeNil)
				So(notifier.snapshot(), ShouldHaveLength, 1)
			})
		})

		Convey("When evaluation fails", func() {
			eval := &stubEvaluator{err: errors.New("member not found")}
			notifier := &recordingNotifier{}
			w := NewWorker(nil, eval, notifier, dedupe.NewInMemoryDeduper())

			err := w.processJob(ctx, Job{JobID: "j1", MemberID: "ghost", As: now})

			Convey("Then the error is returned and nothing is dispatched", func() {
				So(err, ShouldNotBeNil)
				So(notifier.snapshot(), ShouldBeEmpty)
			})
		})

		Convey("When a job carries no evaluation date", func() {
			eval := &stubEvaluator{reports: map[string]types.CadenceReport{
				"m1": {MemberID: "m1", OneOnOne: types.StatusCurrent, Quarterly: types.StatusCurrent, Annual: types.StatusCurrent},
			}}
			notifier := &recordingNotifier{}
			w := NewWorker(nil, eval, notifier, dedupe.NewInMemoryDeduper())

			Convey("Then it is evaluated as of now without error", func() {
				So(w.processJob(ctx, Job{JobID: "j1", MemberID: "m1"}), ShouldBeNil)
				So(notifier.snapshot(), ShouldBeEmpty)
			})
		})
	})
}

func TestWorkerRun(t *testing.T) {
	Convey("Given a running worker", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewInMemoryQueue(queue.WithCapacity(16))
		eval := &stubEvaluator{reports: map[string]types.CadenceReport{
			"m1": {MemberID: "m1", OneOnOne: types.StatusOverdue, Quarterly: types.StatusCurrent, Annual: types.StatusCurrent},
		}}
		notifier := &recordingNotifier{}
		w := NewWorker(q, eval, notifier, dedupe.NewInMemoryDeduper())
		go w.Run(ctx)

		Convey("When a job is enqueued", func() {
			now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
			So(q.Enqueue(ctx, Job{JobID: "j1", MemberID: "m1", As: now}), ShouldBeTrue)

			Convey("Then the job is processed and a reminder dispatched", func() {
				So(waitFor(func() bool { return len(notifier.snapshot()) == 1 }), ShouldBeTrue)
			})
		})

		Convey("When the worker is shut down", func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second)
			defer shutdownCancel()

			Convey("Then it stops cleanly", func() {
				So(w.Shutdown(shutdownCtx), ShouldBeNil)
			})
		})
	})
}

func TestPool(t *testing.T) {
	Convey("Given a worker pool", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		q := queue.NewInMemoryQueue(queue.WithCapacity(64))
		eval := &stubEvaluator{reports: map[string]types.CadenceReport{
			"m1": {MemberID: "m1", OneOnOne: types.StatusOverdue, Quarterly: types.StatusCurrent, Annual: types.StatusCurrent},
			"m2": {MemberID: "m2", OneOnOne: types.StatusCurrent, Quarterly: types.StatusOverdue, Annual: types.StatusCurrent},
		}}
		notifier := &recordingNotifier{}
		pool := NewPool(3, q, eval, notifier, dedupe.NewInMemoryDeduper())

		Convey("Then it holds the requested number of workers", func() {
			So(pool.Size(), ShouldEqual, 3)
		})

		Convey("When started and fed jobs for several members", func() {
			pool.Start(ctx)
			now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
			So(q.Enqueue(ctx, Job{JobID: "j1", MemberID: "m1", As: now}), ShouldBeTrue)
			So(q.Enqueue(ctx, Job{JobID: "j2", MemberID: "m2", As: now}), ShouldBeTrue)

			Convey("Then each member gets exactly one reminder", func() {
				So(waitFor(func() bool { return len(notifier.snapshot()) == 2 }), ShouldBeTrue)
				pool.Stop()
			})
		})

		Convey("When created with a non-positive count", func() {
			defaulted := NewPool(0, q, eval, notifier, dedupe.NewInMemoryDeduper())

			Convey("Then it falls back to a CPU-based default", func() {
				So(defaulted.Size(), ShouldBeGreaterThan, 0)
			})
		})
	})
}
