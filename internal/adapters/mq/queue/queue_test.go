package queue_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/teampulse/teampulse/internal/adapters/mq/queue"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInMemoryQueue(t *testing.T) {
	Convey("Given an in-memory recheck queue", t, func() {
		ctx := context.Background()

		Convey("When enqueuing within capacity", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(4))
			ok := q.Enqueue(ctx, queue.Job{JobID: "j-1", MemberID: "m-1"})

			Convey("Then the job is accepted and counted", func() {
				So(ok, ShouldBeTrue)
				So(q.Len(ctx), ShouldEqual, 1)
			})
		})

		Convey("When the queue is full", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(2))
			So(q.Enqueue(ctx, queue.Job{JobID: "j-1"}), ShouldBeTrue)
			So(q.Enqueue(ctx, queue.Job{JobID: "j-2"}), ShouldBeTrue)

			Convey("Then further jobs are dropped, not blocked on", func() {
				So(q.Enqueue(ctx, queue.Job{JobID: "j-3"}), ShouldBeFalse)
				So(q.Len(ctx), ShouldEqual, 2)
			})
		})

		Convey("When dequeuing", func() {
			q := queue.NewInMemoryQueue(queue.WithCapacity(8))
			for i := 0; i < 3; i++ {
				So(q.Enqueue(ctx, queue.Job{JobID: fmt.Sprintf("j-%d", i), MemberID: fmt.Sprintf("m-%d", i)}), ShouldBeTrue)
			}

			Convey("Then jobs arrive in order on the channel", func() {
				ch := q.Dequeue(ctx)
				for i := 0; i < 3; i++ {
					select {
					case job := <-ch:
						So(job.JobID, ShouldEqual, fmt.Sprintf("j-%d", i))
					case <-time.After(time.Second):
						t.Fatal("timed out waiting for job")
					}
				}
			})
		})

		Convey("When the queue is closed", func() {
			q := queue.NewInMemoryQueue()
			So(q.Close(), ShouldBeNil)

			Convey("Then enqueues are refused", func() {
				So(q.IsClosed(), ShouldBeTrue)
				So(q.Enqueue(ctx, queue.Job{JobID: "late"}), ShouldBeFalse)
			})

			Convey("And the dequeue channel drains and closes", func() {
				ch := q.Dequeue(ctx)
				select {
				case _, open := <-ch:
					So(open, ShouldBeFalse)
				case <-time.After(time.Second):
					t.Fatal("dequeue channel did not close")
				}
			})

			Convey("And closing twice is harmless", func() {
				So(q.Close(), ShouldBeNil)
			})
		})

		Convey("When the consumer context is cancelled", func() {
			q := queue.NewInMemoryQueue()
			consumerCtx, cancel := context.WithCancel(ctx)
			ch := q.Dequeue(consumerCtx)
			cancel()
			So(q.Enqueue(ctx, queue.Job{JobID: "j-1"}), ShouldBeTrue)

			Convey("Then the forwarding goroutine stops", func() {
				select {
				case _, open := <-ch:
					So(open, ShouldBeFalse)
				case <-time.After(time.Second):
					t.Fatal("dequeue channel did not close after cancel")
				}
			})
		})
	})
}
