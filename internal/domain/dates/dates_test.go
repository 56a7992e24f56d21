package dates_test

import (
	"testing"
	"time"

	"github.com/teampulse/teampulse/internal/domain/dates"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseDate(t *testing.T) {
	Convey("Given the calendar date parser", t, func() {
		Convey("When parsing a plain date", func() {
			d, err := dates.ParseDate("2024-03-15")

			Convey("Then it should yield local midnight of that day", func() {
				So(err, ShouldBeNil)
				So(d.Year(), ShouldEqual, 2024)
				So(d.Month(), ShouldEqual, time.March)
				So(d.Day(), ShouldEqual, 15)
				So(d.Hour(), ShouldEqual, 0)
				So(d.Location(), ShouldEqual, time.Local)
			})
		})

		Convey("When parsing a timestamped date", func() {
			d, err := dates.ParseDate("2024-03-15T18:30:00")

			Convey("Then the time-of-day should be discarded", func() {
				So(err, ShouldBeNil)
				So(d.Day(), ShouldEqual, 15)
				So(d.Hour(), ShouldEqual, 0)
			})
		})

		Convey("When parsing a UTC timestamp near midnight", func() {
			d, err := dates.ParseDate("2024-03-15T23:59:59Z")

			Convey("Then the calendar day must not shift by timezone", func() {
				So(err, ShouldBeNil)
				So(d.Day(), ShouldEqual, 15)
			})
		})

		Convey("When parsing garbage", func() {
			_, err := dates.ParseDate("15/03/2024")

			Convey("Then it should report an unparseable date", func() {
				So(err, ShouldWrap, dates.ErrUnparseable)
			})
		})

		Convey("When parsing an empty string", func() {
			_, err := dates.ParseDate("")
			So(err, ShouldWrap, dates.ErrUnparseable)
		})
	})
}

func TestDaysBetween(t *testing.T) {
	Convey("Given calendar day arithmetic", t, func() {
		day := func(y int, m time.Month, d int) time.Time {
			return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
		}

		Convey("Then whole-day differences should be exact", func() {
			So(dates.DaysBetween(day(2024, 3, 1), day(2024, 3, 15)), ShouldEqual, 14)
			So(dates.DaysBetween(day(2024, 3, 15), day(2024, 3, 1)), ShouldEqual, -14)
			So(dates.DaysBetween(day(2024, 3, 15), day(2024, 3, 15)), ShouldEqual, 0)
		})

		Convey("And time of day should never matter", func() {
			late := time.Date(2024, 3, 1, 23, 45, 0, 0, time.Local)
			early := time.Date(2024, 3, 2, 0, 10, 0, 0, time.Local)
			So(dates.DaysBetween(late, early), ShouldEqual, 1)
		})

		Convey("And leap days should count", func() {
			So(dates.DaysBetween(day(2024, 2, 28), day(2024, 3, 1)), ShouldEqual, 2)
			So(dates.DaysBetween(day(2023, 2, 28), day(2023, 3, 1)), ShouldEqual, 1)
		})

		Convey("And DST transitions should not shift the count", func() {
			ny, err := time.LoadLocation("America/New_York")
			So(err, ShouldBeNil)
			orig := time.Local
			time.Local = ny
			Reset(func() { time.Local = orig })
			nyDay := func(y int, m time.Month, d int) time.Time {
				return time.Date(y, m, d, 0, 0, 0, 0, ny)
			}

			// Spring forward: 2024-03-10 is a 23-hour day in New York.
			So(dates.DaysBetween(nyDay(2024, 3, 8), nyDay(2024, 3, 11)), ShouldEqual, 3)
			So(dates.DaysBetween(nyDay(2024, 3, 9), nyDay(2024, 3, 10)), ShouldEqual, 1)

			// Fall back: 2024-11-03 is a 25-hour day.
			So(dates.DaysBetween(nyDay(2024, 11, 1), nyDay(2024, 11, 4)), ShouldEqual, 3)
		})
	})
}

func TestQuarterHelpers(t *testing.T) {
	Convey("Given quarter helpers", t, func() {
		Convey("Then quarter ends should be the last calendar day", func() {
			So(dates.QuarterEnd(1, 2024).Format("2006-01-02"), ShouldEqual, "2024-03-31")
			So(dates.QuarterEnd(2, 2024).Format("2006-01-02"), ShouldEqual, "2024-06-30")
			So(dates.QuarterEnd(3, 2024).Format("2006-01-02"), ShouldEqual, "2024-09-30")
			So(dates.QuarterEnd(4, 2024).Format("2006-01-02"), ShouldEqual, "2024-12-31")
		})

		Convey("Then QuarterOf should bucket months correctly", func() {
			So(dates.QuarterOf(time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)), ShouldEqual, 1)
			So(dates.QuarterOf(time.Date(2024, 6, 30, 0, 0, 0, 0, time.Local)), ShouldEqual, 2)
			So(dates.QuarterOf(time.Date(2024, 12, 31, 0, 0, 0, 0, time.Local)), ShouldEqual, 4)
		})

		Convey("Then quarter labels should parse case-insensitively", func() {
			So(dates.ParseQuarter("Q1"), ShouldEqual, 1)
			So(dates.ParseQuarter("q3"), ShouldEqual, 3)
			So(dates.ParseQuarter("4"), ShouldEqual, 4)
			So(dates.ParseQuarter("Q5"), ShouldEqual, 0)
			So(dates.ParseQuarter(""), ShouldEqual, 0)
		})
	})
}

func TestAnniversaryInYear(t *testing.T) {
	Convey("Given an anniversary helper", t, func() {
		start := time.Date(2020, 3, 15, 0, 0, 0, 0, time.Local)

		Convey("Then the hire date should transpose into any year", func() {
			So(dates.AnniversaryInYear(start, 2024).Format("2006-01-02"), ShouldEqual, "2024-03-15")
		})

		Convey("And Feb 29 anchors should normalize in non-leap years", func() {
			leap := time.Date(2020, 2, 29, 0, 0, 0, 0, time.Local)
			So(dates.AnniversaryInYear(leap, 2023).Format("2006-01-02"), ShouldEqual, "2023-03-01")
		})
	})
}
