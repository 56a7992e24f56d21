package maturity_test

import (
	"testing"

	"github.com/teampulse/teampulse/internal/domain/maturity"
	"github.com/teampulse/teampulse/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLevelScore(t *testing.T) {
	Convey("Given the level score mapping", t, func() {
		s := maturity.New()

		Convey("Then canonical names should map to their scores", func() {
			So(s.LevelScore("Associate"), ShouldEqual, 0)
			So(s.LevelScore("Level 1"), ShouldEqual, 1)
			So(s.LevelScore("Level 2"), ShouldEqual, 2)
			So(s.LevelScore("Senior Level"), ShouldEqual, 3)
			So(s.LevelScore("Lead"), ShouldEqual, 4)
		})

		Convey("Then matching should be case-insensitive", func() {
			So(s.LevelScore("senior level"), ShouldEqual, 3)
			So(s.LevelScore("LEAD"), ShouldEqual, 4)
		})

		Convey("Then substring variants should resolve", func() {
			So(s.LevelScore("Senior Engineer"), ShouldEqual, 3)
			So(s.LevelScore("Team Lead"), ShouldEqual, 4)
			So(s.LevelScore("Associate Designer"), ShouldEqual, 0)
		})

		Convey("Then unknown names should score 0", func() {
			So(s.LevelScore("unknown"), ShouldEqual, 0)
			So(s.LevelScore(""), ShouldEqual, 0)
		})
	})
}

func TestBandForScore(t *testing.T) {
	Convey("Given the fixed band cut points", t, func() {
		cases := []struct {
			score float64
			band  string
		}{
			{0.0, maturity.LevelAssociate},
			{0.7, maturity.LevelAssociate},
			{0.8, maturity.LevelOne},
			{1.7, maturity.LevelOne},
			{1.8, maturity.LevelTwo},
			{2.7, maturity.LevelTwo},
			{2.8, maturity.LevelSenior},
			{3.7, maturity.LevelSenior},
			{3.8, maturity.LevelLead},
			{4.0, maturity.LevelLead},
		}

		Convey("Then every boundary should land in the right band", func() {
			for _, c := range cases {
				So(maturity.BandForScore(c.score).Name, ShouldEqual, c.band)
			}
		})
	})
}

func TestSignificantGap(t *testing.T) {
	Convey("Given the gap detector", t, func() {
		s := maturity.New()

		Convey("When leader and self disagree by 3 points", func() {
			So(s.SignificantGap("Lead", "Level 1"), ShouldBeTrue)
		})

		Convey("When they disagree by exactly 2 points", func() {
			So(s.SignificantGap("Senior Level", "Level 1"), ShouldBeTrue)
		})

		Convey("When they disagree by 1 point", func() {
			So(s.SignificantGap("Senior Level", "Level 2"), ShouldBeFalse)
		})

		Convey("When either rating is missing", func() {
			So(s.SignificantGap("Lead", ""), ShouldBeFalse)
			So(s.SignificantGap("", "Level 1"), ShouldBeFalse)
		})

		Convey("When a custom threshold is configured", func() {
			strict := maturity.New(maturity.WithGapThreshold(1))
			So(strict.SignificantGap("Senior Level", "Level 2"), ShouldBeTrue)
		})
	})
}

func TestGrowthIndicator(t *testing.T) {
	Convey("Given a member declared at Level 2 (range 1.8-2.7)", t, func() {
		s := maturity.New()

		Convey("When the average sits inside the range", func() {
			g := s.GrowthIndicator("Level 2", 2.5)
			So(g, ShouldNotBeNil)
			So(g.Status, ShouldEqual, maturity.GrowthOnTrack)
		})

		Convey("When the average falls below the range", func() {
			g := s.GrowthIndicator("Level 2", 1.5)
			So(g, ShouldNotBeNil)
			So(g.Status, ShouldEqual, maturity.GrowthNeedsCoaching)
		})

		Convey("When the average reaches the promotion threshold", func() {
			// 2.6 >= 2.7 - 0.3 = 2.4
			g := s.GrowthIndicator("Level 2", 2.6)
			So(g, ShouldNotBeNil)
			So(g.Status, ShouldEqual, maturity.GrowthPromotionReady)
		})

		Convey("When the average sits exactly on the threshold", func() {
			g := s.GrowthIndicator("Level 2", 2.4)
			So(g, ShouldNotBeNil)
			So(g.Status, ShouldEqual, maturity.GrowthPromotionReady)
		})

		Convey("When averages are jittered within rounding distance", func() {
			// One-decimal rounding keeps boundary values stable.
			g := s.GrowthIndicator("Level 2", 2.3999999)
			So(g.Status, ShouldEqual, maturity.GrowthPromotionReady)
			g = s.GrowthIndicator("Level 2", 2.3449)
			So(g.Status, ShouldEqual, maturity.GrowthOnTrack)
		})

		Convey("When the declared level is unrecognized", func() {
			So(s.GrowthIndicator("Wizard", 2.5), ShouldBeNil)
			So(s.GrowthIndicator("", 2.5), ShouldBeNil)
		})
	})
}

func TestReport(t *testing.T) {
	Convey("Given reference data with two categories", t, func() {
		s := maturity.New()
		categories := []model.Category{
			{ID: "cat-eng", Name: "Engineering"},
			{ID: "cat-comm", Name: "Communication"},
		}
		skills := []model.Skill{
			{ID: "sk-go", Name: "Go", CategoryIDs: []string{"cat-eng"}},
			{ID: "sk-arch", Name: "Architecture", CategoryIDs: []string{"cat-eng"}},
			{ID: "sk-writing", Name: "Writing", CategoryIDs: []string{"cat-comm"}},
			{ID: "sk-both", Name: "Mentoring", CategoryIDs: []string{"cat-eng", "cat-comm"}},
		}

		Convey("When one skill is rated Level 2 and another is unrated", func() {
			in := maturity.Input{
				CurrentLevel: "Level 2",
				Categories:   categories[:1],
				Skills:       skills[:2],
				Assessments: []maturity.Assessment{
					{SkillID: "sk-go", LeaderLevel: "Level 2"},
					{SkillID: "sk-arch"},
				},
			}
			report := s.Report("member-1", in)

			Convey("Then the unrated skill stays out of the denominator", func() {
				So(report.Categories, ShouldHaveLength, 1)
				So(report.Categories[0].AvgScore, ShouldNotBeNil)
				So(*report.Categories[0].AvgScore, ShouldEqual, 2.0)
				So(report.Categories[0].SkillsRated, ShouldEqual, 1)
				So(report.Categories[0].LevelName, ShouldEqual, maturity.LevelTwo)
			})
		})

		Convey("When a category has no rated skills", func() {
			in := maturity.Input{
				Categories:  categories,
				Skills:      skills,
				Assessments: nil,
			}
			report := s.Report("member-1", in)

			Convey("Then its average is nil and overall is nil", func() {
				for _, cs := range report.Categories {
					So(cs.AvgScore, ShouldBeNil)
					So(cs.SkillsRated, ShouldEqual, 0)
				}
				So(report.Overall.Leader, ShouldBeNil)
				So(report.Overall.Self, ShouldBeNil)
				So(report.Growth, ShouldBeNil)
			})
		})

		Convey("When categories hold different skill counts", func() {
			in := maturity.Input{
				CurrentLevel: "Level 2",
				Categories:   categories,
				Skills:       skills,
				Assessments: []maturity.Assessment{
					{SkillID: "sk-go", LeaderLevel: "Lead", SelfLevel: "Senior Level"},
					{SkillID: "sk-arch", LeaderLevel: "Lead", SelfLevel: "Senior Level"},
					{SkillID: "sk-both", LeaderLevel: "Lead", SelfLevel: "Senior Level"},
					{SkillID: "sk-writing", LeaderLevel: "Level 2", SelfLevel: "Level 1"},
				},
			}
			report := s.Report("member-1", in)

			Convey("Then the overall weights categories equally", func() {
				// Engineering avg 4.0 over three skills; Communication
				// avg (2+4)/2=3.0 over two. Equal-weight mean = 3.5,
				// not the flat per-skill mean.
				So(report.Overall.Leader, ShouldNotBeNil)
				So(*report.Overall.Leader, ShouldEqual, 3.5)
			})

			Convey("And the self overall is computed independently", func() {
				// Self: Engineering 3.0, Communication (1+3)/2=2.0.
				So(report.Overall.Self, ShouldNotBeNil)
				So(*report.Overall.Self, ShouldEqual, 2.5)
			})

			Convey("And the growth indicator uses the leader overall", func() {
				// 3.5 above the Level 2 range (1.8-2.7).
				So(report.Growth, ShouldNotBeNil)
				So(report.Growth.Status, ShouldEqual, maturity.GrowthPromotionReady)
			})
		})

		Convey("When a skill carries a wide leader/self gap", func() {
			in := maturity.Input{
				CurrentLevel: "Level 2",
				Categories:   categories,
				Skills:       skills,
				Assessments: []maturity.Assessment{
					{SkillID: "sk-go", LeaderLevel: "Lead", SelfLevel: "Level 1"},
					{SkillID: "sk-writing", LeaderLevel: "Senior Level", SelfLevel: "Level 2"},
				},
			}
			report := s.Report("member-1", in)

			Convey("Then only the 2+ point gap is flagged", func() {
				So(report.Gaps, ShouldHaveLength, 1)
				So(report.Gaps[0].SkillID, ShouldEqual, "sk-go")
				So(report.Gaps[0].LeaderScore, ShouldEqual, 4)
				So(report.Gaps[0].SelfScore, ShouldEqual, 1)
			})
		})

		Convey("When the same report is derived twice", func() {
			in := maturity.Input{
				CurrentLevel: "Level 1",
				Categories:   categories,
				Skills:       skills,
				Assessments: []maturity.Assessment{
					{SkillID: "sk-go", LeaderLevel: "Level 1", SelfLevel: "Level 2"},
				},
			}

			Convey("Then the output is identical (no hidden state)", func() {
				So(s.Report("member-1", in), ShouldResemble, s.Report("member-1", in))
			})
		})
	})
}
