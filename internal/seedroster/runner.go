package seedroster

import (
	"context"
	"fmt"
	"time"

	"github.com/teampulse/teampulse/pkg/logger"
)

const dateLayout = "2006-01-02"

// Run seeds the roster and verifies the read endpoints.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}

	now := time.Now()
	if config.Now != "" {
		parsed, err := time.Parse(dateLayout, config.Now)
		if err != nil {
			return fmt.Errorf("invalid -now value %q: %w", config.Now, err)
		}
		now = parsed
	}

	logger.Get().Info(ctx, "starting roster seed",
		logger.String("baseURL", config.BaseURL),
		logger.Int("members", config.Members),
		logger.Date("anchor", now),
	)

	client := newHTTPClient(config.Timeout)

	if err := checkServiceHealth(ctx, client, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}
	if err := seedReferenceData(ctx, client, config); err != nil {
		return fmt.Errorf("reference data seeding failed: %w", err)
	}

	plans := buildPlans(config.Members, now)
	memberIDs, err := seedMembers(ctx, client, config, plans, stats)
	if err != nil {
		return fmt.Errorf("member seeding failed: %w", err)
	}

	if err := verifyCadence(ctx, client, config, plans, memberIDs, now, stats); err != nil {
		return fmt.Errorf("cadence verification failed: %w", err)
	}
	if err := verifyMaturity(ctx, client, config, plans, memberIDs, stats); err != nil {
		return fmt.Errorf("maturity verification failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	if stats.Mismatches > 0 {
		return fmt.Errorf("verification finished with %d mismatches", stats.Mismatches)
	}
	logger.Get().Info(ctx, "roster seed completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient, config *Config) error {
	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if err := decodeResponse(resp, nil); err != nil {
		return err
	}
	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// seedReferenceData puts the categories and skills every plan rates.
func seedReferenceData(ctx context.Context, client *HTTPClient, config *Config) error {
	for _, c := range seedCategories {
		resp, err := client.Put(ctx, config.BaseURL+"/categories/"+c.ID, map[string]any{"name": c.Name})
		if err != nil {
			return err
		}
		if err := decodeResponse(resp, nil); err != nil {
			return fmt.Errorf("put category %s: %w", c.ID, err)
		}
	}
	for _, s := range seedSkills {
		resp, err := client.Put(ctx, config.BaseURL+"/skills/"+s.ID, map[string]any{
			"name":         s.Name,
			"category_ids": s.CategoryIDs,
		})
		if err != nil {
			return err
		}
		if err := decodeResponse(resp, nil); err != nil {
			return fmt.Errorf("put skill %s: %w", s.ID, err)
		}
	}
	return nil
}

// seedMembers creates every planned member with its records. Returns
// the created ids, index-aligned with plans.
func seedMembers(ctx context.Context, client *HTTPClient, config *Config, plans []memberPlan, stats *Stats) ([]string, error) {
	ids := make([]string, len(plans))
	for i, plan := range plans {
		var created struct {
			ID string `json:"id"`
		}
		resp, err := client.Post(ctx, config.BaseURL+"/members", map[string]any{
			"name":          plan.Name,
			"role":          plan.Role,
			"start_date":    plan.StartDate.Format(dateLayout),
			"current_level": plan.Level,
		})
		if err != nil {
			return nil, err
		}
		if err := decodeResponse(resp, &created); err != nil {
			return nil, fmt.Errorf("create member %s: %w", plan.Name, err)
		}
		ids[i] = created.ID
		stats.MembersCreated++

		if config.Verbose {
			logger.Get().Info(ctx, "member created",
				logger.String("name", plan.Name),
				logger.String("profile", plan.Profile),
				logger.String("id", created.ID),
			)
		}

		if err := seedRecords(ctx, client, config, created.ID, plan, stats); err != nil {
			return nil, fmt.Errorf("seed records for %s: %w", plan.Name, err)
		}
	}
	return ids, nil
}

func seedRecords(ctx context.Context, client *HTTPClient, config *Config, memberID string, plan memberPlan, stats *Stats) error {
	base := config.BaseURL + "/members/" + memberID

	for _, d := range plan.OneOnOnes {
		resp, err := client.Post(ctx, base+"/one-on-ones", map[string]any{
			"meeting_date": d.Format(dateLayout),
			"notes":        "seeded 1:1",
		})
		if err != nil {
			return err
		}
		if err := decodeResponse(resp, nil); err != nil {
			return err
		}
		stats.OneOnOnesLogged++
	}

	for _, d := range plan.Quarterlies {
		resp, err := client.Post(ctx, base+"/reviews", map[string]any{
			"type":        "quarterly",
			"review_date": d.Format(dateLayout),
			"summary":     "seeded quarterly review",
		})
		if err != nil {
			return err
		}
		if err := decodeResponse(resp, nil); err != nil {
			return err
		}
		stats.ReviewsRecorded++
	}

	for _, d := range plan.Annuals {
		resp, err := client.Post(ctx, base+"/reviews", map[string]any{
			"type":        "annual",
			"review_date": d.Format(dateLayout),
			"summary":     "seeded annual review",
		})
		if err != nil {
			return err
		}
		if err := decodeResponse(resp, nil); err != nil {
			return err
		}
		stats.ReviewsRecorded++
	}

	for skillID, pair := range plan.Assessments {
		resp, err := client.Put(ctx, base+"/assessments/"+skillID, map[string]any{
			"leader_rating": pair[0],
			"self_rating":   pair[1],
		})
		if err != nil {
			return err
		}
		if err := decodeResponse(resp, nil); err != nil {
			return err
		}
		stats.AssessmentsPut++
	}

	for _, title := range plan.GrowthAreas {
		resp, err := client.Post(ctx, base+"/growth-areas", map[string]any{"title": title})
		if err != nil {
			return err
		}
		if err := decodeResponse(resp, nil); err != nil {
			return err
		}
		stats.GrowthAreasOpened++
	}

	return nil
}
