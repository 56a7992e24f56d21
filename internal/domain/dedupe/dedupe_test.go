package dedupe_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/teampulse/teampulse/internal/domain/dedupe"
	. "github.com/smartystreets/goconvey/convey"
)

func TestReminderKey(t *testing.T) {
	Convey("Given the reminder key builder", t, func() {
		day := time.Date(2024, 3, 15, 14, 30, 0, 0, time.Local)

		Convey("Then keys should be stable member/track/date triples", func() {
			So(dedupe.ReminderKey("m-1", "one_on_one", day), ShouldEqual, "m-1/one_on_one/2024-03-15")
		})

		Convey("And the same member on different days should differ", func() {
			next := day.AddDate(0, 0, 1)
			So(dedupe.ReminderKey("m-1", "annual", day), ShouldNotEqual, dedupe.ReminderKey("m-1", "annual", next))
		})
	})
}

func TestInMemoryDeduper(t *testing.T) {
	Convey("Given an in-memory deduper", t, func() {
		ctx := context.Background()
		d := dedupe.NewInMemoryDeduper()

		Convey("When recording a new key", func() {
			seen := d.SeenAndRecord(ctx, "m-1/annual/2024-03-15")

			Convey("Then it should not have been seen before", func() {
				So(seen, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 1)
			})

			Convey("And recording it again should report seen", func() {
				So(d.SeenAndRecord(ctx, "m-1/annual/2024-03-15"), ShouldBeTrue)
				So(d.Size(), ShouldEqual, 1)
			})
		})

		Convey("When unrecording a key", func() {
			d.SeenAndRecord(ctx, "m-2/quarterly/2024-03-15")
			d.Unrecord(ctx, "m-2/quarterly/2024-03-15")

			Convey("Then it should fire again", func() {
				So(d.SeenAndRecord(ctx, "m-2/quarterly/2024-03-15"), ShouldBeFalse)
			})
		})

		Convey("When the bound is exceeded", func() {
			small := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(3))
			for i := 0; i < 5; i++ {
				small.SeenAndRecord(ctx, fmt.Sprintf("key-%d", i))
			}

			Convey("Then the oldest keys are evicted first", func() {
				So(small.Size(), ShouldEqual, 3)
				So(small.SeenAndRecord(ctx, "key-0"), ShouldBeFalse) // evicted, re-recorded
				So(small.SeenAndRecord(ctx, "key-4"), ShouldBeTrue)  // still present
			})
		})

		Convey("When hammered concurrently", func() {
			done := make(chan bool, 20)
			for i := 0; i < 20; i++ {
				go func(n int) {
					done <- d.SeenAndRecord(ctx, fmt.Sprintf("m-%d/one_on_one/2024-03-15", n%5))
				}(i)
			}
			dupes := 0
			for i := 0; i < 20; i++ {
				if <-done {
					dupes++
				}
			}

			Convey("Then exactly one recording per key wins", func() {
				So(dupes, ShouldEqual, 15)
			})
		})
	})
}
