// Package maturity converts per-skill leader/self ratings into
// category and overall maturity scores, gap flags and a growth
// classification.
//
// The scorer is pure: every call receives a full snapshot of reference
// data and assessments and derives the report from scratch. Missing
// ratings and unknown level names degrade to neutral results rather
// than errors. All band comparisons use scores rounded to one decimal
// place to avoid floating-point flicker at the boundaries.
package maturity

import (
	"context"
	"math"

	"github.com/teampulse/teampulse/internal/domain/model"
	"github.com/teampulse/teampulse/internal/domain/types"
	"github.com/teampulse/teampulse/pkg/logger"
)

// Default scoring configuration.
const (
	defaultGapThreshold    = 2   // leader/self score distance that flags a gap
	defaultPromotionMargin = 0.3 // distance under a band's max that reads promotion-ready
)

// Growth indicator statuses.
const (
	GrowthNeedsCoaching  = "needs-coaching"
	GrowthOnTrack        = "on-track"
	GrowthPromotionReady = "promotion-ready"
)

// Assessment is one skill's pair of ratings with level names already
// resolved. An empty name means not yet rated.
type Assessment struct {
	SkillID     string
	LeaderLevel string
	SelfLevel   string
}

// Input is the snapshot the scorer reads for one member.
type Input struct {
	CurrentLevel string
	Categories   []model.Category
	Skills       []model.Skill
	Assessments  []Assessment
}

// Scorer computes maturity reports. Construct with New.
type Scorer struct {
	gapThreshold    int
	promotionMargin float64
	log             logger.Logger
}

// New constructs a Scorer with default thresholds, then applies
// options.
func New(opts ...Option) *Scorer {
	s := &Scorer{
		gapThreshold:    defaultGapThreshold,
		promotionMargin: defaultPromotionMargin,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LevelScore converts a level name to its 0-4 score. Unrecognized
// names score 0 and are logged as a warning instead of silently
// passing as Associate.
func (s *Scorer) LevelScore(name string) int {
	score, ok := ParseLevel(name)
	if !ok && name != "" && s.log != nil {
		s.log.Warn(context.Background(), "unrecognized level name scored as 0",
			logger.String("level", name),
		)
	}
	return score
}

// SignificantGap reports whether the leader and self ratings of one
// skill disagree by the gap threshold or more. Both ratings must
// exist; a missing rating never flags a gap.
func (s *Scorer) SignificantGap(leaderLevel, selfLevel string) bool {
	if leaderLevel == "" || selfLevel == "" {
		return false
	}
	l := s.LevelScore(leaderLevel)
	sf := s.LevelScore(selfLevel)
	return abs(l-sf) >= s.gapThreshold
}

// GrowthIndicator classifies avgScore against the declared level's
// band. Returns nil when the level name resolves to no band.
func (s *Scorer) GrowthIndicator(currentLevel string, avgScore float64) *types.GrowthIndicator {
	band, ok := BandFor(currentLevel)
	if !ok {
		if currentLevel != "" && s.log != nil {
			s.log.Warn(context.Background(), "unrecognized current level; no growth indicator",
				logger.String("level", currentLevel),
			)
		}
		return nil
	}
	avg := round1(avgScore)
	promotionAt := round1(band.Max - s.promotionMargin)
	switch {
	case avg < band.Min:
		return &types.GrowthIndicator{
			Status:      GrowthNeedsCoaching,
			Label:       "Needs Coaching",
			Description: "Average maturity sits below the " + band.Name + " range.",
		}
	case avg >= promotionAt:
		return &types.GrowthIndicator{
			Status:      GrowthPromotionReady,
			Label:       "Promotion Ready",
			Description: "Average maturity is at the top of the " + band.Name + " range.",
		}
	default:
		return &types.GrowthIndicator{
			Status:      GrowthOnTrack,
			Label:       "On Track",
			Description: "Average maturity is within the " + band.Name + " range.",
		}
	}
}

// Report derives the full maturity report for one member.
func (s *Scorer) Report(memberID string, in Input) types.MaturityReport {
	bySkill := make(map[string]Assessment, len(in.Assessments))
	for _, a := range in.Assessments {
		bySkill[a.SkillID] = a
	}

	report := types.MaturityReport{
		MemberID:   memberID,
		Categories: make([]types.CategoryScore, 0, len(in.Categories)),
	}

	var leaderAvgs, selfAvgs []float64
	for _, cat := range in.Categories {
		leaderSum, selfSum := 0, 0
		leaderRated, selfRated := 0, 0
		for _, skill := range in.Skills {
			if !inCategory(skill, cat.ID) {
				continue
			}
			a, ok := bySkill[skill.ID]
			if !ok {
				continue
			}
			// Score 0 means "not yet rated", not "rated lowest"; such
			// skills stay out of the denominator.
			if l := s.LevelScore(a.LeaderLevel); a.LeaderLevel != "" && l > 0 {
				leaderSum += l
				leaderRated++
			}
			if sf := s.LevelScore(a.SelfLevel); a.SelfLevel != "" && sf > 0 {
				selfSum += sf
				selfRated++
			}
		}

		cs := types.CategoryScore{
			CategoryID:  cat.ID,
			Category:    cat.Name,
			SkillsRated: leaderRated,
		}
		if leaderRated > 0 {
			avg := round1(float64(leaderSum) / float64(leaderRated))
			cs.AvgScore = &avg
			cs.LevelName = BandForScore(avg).Name
			leaderAvgs = append(leaderAvgs, avg)
		}
		if selfRated > 0 {
			selfAvgs = append(selfAvgs, round1(float64(selfSum)/float64(selfRated)))
		}
		report.Categories = append(report.Categories, cs)
	}

	// Overall scores weight categories equally regardless of how many
	// skills each holds.
	if avg, ok := mean(leaderAvgs); ok {
		v := round1(avg)
		report.Overall.Leader = &v
	}
	if avg, ok := mean(selfAvgs); ok {
		v := round1(avg)
		report.Overall.Self = &v
	}

	for _, skill := range in.Skills {
		a, ok := bySkill[skill.ID]
		if !ok || !s.SignificantGap(a.LeaderLevel, a.SelfLevel) {
			continue
		}
		report.Gaps = append(report.Gaps, types.SkillGap{
			SkillID:     skill.ID,
			Skill:       skill.Name,
			LeaderScore: s.LevelScore(a.LeaderLevel),
			SelfScore:   s.LevelScore(a.SelfLevel),
		})
	}

	if report.Overall.Leader != nil {
		report.Growth = s.GrowthIndicator(in.CurrentLevel, *report.Overall.Leader)
	}

	return report
}

func inCategory(skill model.Skill, categoryID string) bool {
	for _, id := range skill.CategoryIDs {
		if id == categoryID {
			return true
		}
	}
	return false
}

func mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
