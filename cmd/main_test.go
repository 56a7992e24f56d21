package main

import (
	"context"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	app "github.com/teampulse/teampulse/internal/app"
	"github.com/teampulse/teampulse/pkg/logger"
)

func init() {
	_ = logger.Init()
}

func TestUpdateSystemMetrics(t *testing.T) {
	Convey("Given the process gauges", t, func() {
		Convey("Then refreshing them does not panic", func() {
			So(updateSystemMetrics, ShouldNotPanic)
		})
	})
}

func TestMetricsUpdatersStopOnCancel(t *testing.T) {
	Convey("Given running metrics updaters", t, func() {
		ctx, cancel := context.WithCancel(context.Background())

		svc := app.New(app.WithWorkerCount(1), app.WithQueueSize(8))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		sysDone := make(chan struct{})
		svcDone := make(chan struct{})
		go func() {
			startSystemMetricsUpdater(ctx)
			close(sysDone)
		}()
		go func() {
			startServiceMetricsUpdater(ctx, svc)
			close(svcDone)
		}()

		Convey("When the context is cancelled", func() {
			cancel()

			Convey("Then both loops exit", func() {
				select {
				case <-sysDone:
				case <-time.After(2 * time.Second):
					t.Fatal("system metrics updater did not stop")
				}
				select {
				case <-svcDone:
				case <-time.After(2 * time.Second):
					t.Fatal("service metrics updater did not stop")
				}
			})
		})

		Reset(cancel)
	})
}
