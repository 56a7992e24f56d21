package seedroster

import (
	"context"
	"fmt"
	"time"

	"github.com/teampulse/teampulse/pkg/logger"
)

type cadenceReport struct {
	MemberID  string `json:"member_id"`
	OneOnOne  string `json:"one_on_one"`
	Quarterly string `json:"quarterly"`
	Annual    string `json:"annual"`
}

type complianceSummary struct {
	Members []cadenceReport `json:"members"`
	Overdue int             `json:"overdue"`
	DueSoon int             `json:"due_soon"`
	Current int             `json:"current"`
}

type maturityReport struct {
	MemberID string `json:"member_id"`
	Overall  struct {
		Leader *float64 `json:"leader"`
		Self   *float64 `json:"self"`
	} `json:"overall"`
	Gaps []struct {
		SkillID string `json:"skill_id"`
	} `json:"gaps"`
}

// verifyCadence checks each member's 1:1 status against its plan and
// the team summary against the roster size.
func verifyCadence(ctx context.Context, client *HTTPClient, config *Config, plans []memberPlan, ids []string, now time.Time, stats *Stats) error {
	nowParam := "?now=" + now.Format(dateLayout)

	for i, plan := range plans {
		var report cadenceReport
		resp, err := client.Get(ctx, config.BaseURL+"/members/"+ids[i]+"/cadence"+nowParam)
		if err != nil {
			return err
		}
		if err := decodeResponse(resp, &report); err != nil {
			return fmt.Errorf("cadence for %s: %w", plan.Name, err)
		}
		stats.CadenceChecked++

		if plan.WantOneOnOne != "" && report.OneOnOne != plan.WantOneOnOne {
			stats.Mismatches++
			logger.Get().Warn(ctx, "1:1 status mismatch",
				logger.String("member", plan.Name),
				logger.String("profile", plan.Profile),
				logger.String("want", plan.WantOneOnOne),
				logger.String("got", report.OneOnOne),
			)
		}
	}

	var summary complianceSummary
	resp, err := client.Get(ctx, config.BaseURL+"/compliance"+nowParam)
	if err != nil {
		return err
	}
	if err := decodeResponse(resp, &summary); err != nil {
		return fmt.Errorf("compliance summary: %w", err)
	}

	if len(summary.Members) < len(plans) {
		stats.Mismatches++
		logger.Get().Warn(ctx, "compliance summary smaller than seeded roster",
			logger.Int("seeded", len(plans)),
			logger.Int("reported", len(summary.Members)),
		)
	}
	if got := summary.Overdue + summary.DueSoon + summary.Current; got != len(summary.Members) {
		stats.Mismatches++
		logger.Get().Warn(ctx, "compliance counts do not add up",
			logger.Int("members", len(summary.Members)),
			logger.Int("counted", got),
		)
	}

	logger.Get().Info(ctx, "team compliance",
		logger.Int("members", len(summary.Members)),
		logger.Int("overdue", summary.Overdue),
		logger.Int("dueSoon", summary.DueSoon),
		logger.Int("current", summary.Current),
	)
	return nil
}

// verifyMaturity checks rated members score and planted gaps surface.
func verifyMaturity(ctx context.Context, client *HTTPClient, config *Config, plans []memberPlan, ids []string, stats *Stats) error {
	for i, plan := range plans {
		var report maturityReport
		resp, err := client.Get(ctx, config.BaseURL+"/members/"+ids[i]+"/maturity")
		if err != nil {
			return err
		}
		if err := decodeResponse(resp, &report); err != nil {
			return fmt.Errorf("maturity for %s: %w", plan.Name, err)
		}
		stats.MaturityChecked++

		if len(plan.Assessments) > 0 && report.Overall.Leader == nil {
			stats.Mismatches++
			logger.Get().Warn(ctx, "rated member has no overall leader score",
				logger.String("member", plan.Name),
			)
		}
		if len(plan.Assessments) == 0 && report.Overall.Leader != nil {
			stats.Mismatches++
			logger.Get().Warn(ctx, "unrated member has an overall leader score",
				logger.String("member", plan.Name),
			)
		}
		if plan.WantGap && len(report.Gaps) == 0 {
			stats.Mismatches++
			logger.Get().Warn(ctx, "planted rating gap did not surface",
				logger.String("member", plan.Name),
			)
		}
	}
	return nil
}

// displayFinalStats logs the run totals.
func displayFinalStats(stats *Stats) {
	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("membersCreated", stats.MembersCreated),
		logger.Int("oneOnOnesLogged", stats.OneOnOnesLogged),
		logger.Int("reviewsRecorded", stats.ReviewsRecorded),
		logger.Int("assessmentsPut", stats.AssessmentsPut),
		logger.Int("growthAreasOpened", stats.GrowthAreasOpened),
		logger.Int("cadenceChecked", stats.CadenceChecked),
		logger.Int("maturityChecked", stats.MaturityChecked),
		logger.Int("mismatches", stats.Mismatches),
		logger.String("duration", stats.Duration.String()),
	)
}
