package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/teampulse/teampulse/internal/domain/model"
)

// defaultLevels is the five-rung maturity ladder every store starts
// with. Rank matches the 0-4 score scale.
var defaultLevels = []model.Level{
	{ID: "lvl-associate", Name: "Associate", Rank: 0},
	{ID: "lvl-1", Name: "Level 1", Rank: 1},
	{ID: "lvl-2", Name: "Level 2", Rank: 2},
	{ID: "lvl-senior", Name: "Senior Level", Rank: 3},
	{ID: "lvl-lead", Name: "Lead", Rank: 4},
}

// MemStore implements Store with RWMutex-guarded maps.
type MemStore struct {
	mu sync.RWMutex

	members     map[string]model.TeamMember
	oneOnOnes   map[string][]model.OneOnOne         // keyed by member id
	reviews     map[string][]model.PerformanceReview // keyed by member id
	assessments map[string]map[string]model.SkillAssessment // member id -> skill id
	growthAreas map[string][]model.GrowthArea // keyed by member id

	levels     []model.Level
	skills     map[string]model.Skill
	categories map[string]model.Category
}

// NewMemStore creates an in-memory roster store seeded with the
// default level ladder, then applies options.
func NewMemStore(_ context.Context, opts ...Option) *MemStore {
	s := &MemStore{
		members:     make(map[string]model.TeamMember),
		oneOnOnes:   make(map[string][]model.OneOnOne),
		reviews:     make(map[string][]model.PerformanceReview),
		assessments: make(map[string]map[string]model.SkillAssessment),
		growthAreas: make(map[string][]model.GrowthArea),
		levels:      append([]model.Level(nil), defaultLevels...),
		skills:      make(map[string]model.Skill),
		categories:  make(map[string]model.Category),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateMember adds a new member; the id must be unused.
func (s *MemStore) CreateMember(_ context.Context, m model.TeamMember) error {
	if m.ID == "" {
		return ErrMissingID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[m.ID]; ok {
		return fmt.Errorf("member %s: %w", m.ID, ErrAlreadyExists)
	}
	s.members[m.ID] = m
	return nil
}

// GetMember looks up one member by id.
func (s *MemStore) GetMember(_ context.Context, id string) (model.TeamMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.members[id]
	if !ok {
		return model.TeamMember{}, fmt.Errorf("member %s: %w", id, ErrNotFound)
	}
	return m, nil
}

// ListMembers returns all members sorted by name, ties broken by id.
func (s *MemStore) ListMembers(_ context.Context) ([]model.TeamMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.TeamMember, 0, len(s.members))
	for _, m := range s.members {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// UpdateMember replaces an existing member record.
func (s *MemStore) UpdateMember(_ context.Context, m model.TeamMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[m.ID]; !ok {
		return fmt.Errorf("member %s: %w", m.ID, ErrNotFound)
	}
	s.members[m.ID] = m
	return nil
}

// DeleteMember removes the member and all attached records.
func (s *MemStore) DeleteMember(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[id]; !ok {
		return fmt.Errorf("member %s: %w", id, ErrNotFound)
	}
	delete(s.members, id)
	delete(s.oneOnOnes, id)
	delete(s.reviews, id)
	delete(s.assessments, id)
	delete(s.growthAreas, id)
	return nil
}

// Count returns the number of members tracked.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.members)
}

// AddOneOnOne appends a 1:1 record for its member.
func (s *MemStore) AddOneOnOne(_ context.Context, rec model.OneOnOne) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[rec.MemberID]; !ok {
		return fmt.Errorf("member %s: %w", rec.MemberID, ErrNotFound)
	}
	s.oneOnOnes[rec.MemberID] = append(s.oneOnOnes[rec.MemberID], rec)
	return nil
}

// ListOneOnOnes returns a member's 1:1s, most recent first.
func (s *MemStore) ListOneOnOnes(_ context.Context, memberID string) ([]model.OneOnOne, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.members[memberID]; !ok {
		return nil, fmt.Errorf("member %s: %w", memberID, ErrNotFound)
	}
	out := append([]model.OneOnOne(nil), s.oneOnOnes[memberID]...)
	sort.Slice(out, func(i, j int) bool {
		return out[i].MeetingDate.After(out[j].MeetingDate)
	})
	return out, nil
}

// LatestOneOnOne returns the most recent 1:1 for a member.
func (s *MemStore) LatestOneOnOne(ctx context.Context, memberID string) (model.OneOnOne, error) {
	recs, err := s.ListOneOnOnes(ctx, memberID)
	if err != nil {
		return model.OneOnOne{}, err
	}
	if len(recs) == 0 {
		return model.OneOnOne{}, fmt.Errorf("one-on-one for member %s: %w", memberID, ErrNotFound)
	}
	return recs[0], nil
}

// AddReview appends a performance review for its member.
func (s *MemStore) AddReview(_ context.Context, r model.PerformanceReview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[r.MemberID]; !ok {
		return fmt.Errorf("member %s: %w", r.MemberID, ErrNotFound)
	}
	s.reviews[r.MemberID] = append(s.reviews[r.MemberID], r)
	return nil
}

// ListReviews returns a member's reviews of both types, most recent
// first.
func (s *MemStore) ListReviews(_ context.Context, memberID string) ([]model.PerformanceReview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.members[memberID]; !ok {
		return nil, fmt.Errorf("member %s: %w", memberID, ErrNotFound)
	}
	out := append([]model.PerformanceReview(nil), s.reviews[memberID]...)
	sort.Slice(out, func(i, j int) bool {
		return out[i].ReviewDate.After(out[j].ReviewDate)
	})
	return out, nil
}

// LatestReview returns the most recent review of the given type.
func (s *MemStore) LatestReview(ctx context.Context, memberID string, t model.ReviewType) (model.PerformanceReview, error) {
	recs, err := s.ListReviews(ctx, memberID)
	if err != nil {
		return model.PerformanceReview{}, err
	}
	for _, r := range recs {
		if r.Type == t {
			return r, nil
		}
	}
	return model.PerformanceReview{}, fmt.Errorf("%s review for member %s: %w", t, memberID, ErrNotFound)
}

// PutAssessment upserts the (member, skill) assessment.
func (s *MemStore) PutAssessment(_ context.Context, a model.SkillAssessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[a.MemberID]; !ok {
		return fmt.Errorf("member %s: %w", a.MemberID, ErrNotFound)
	}
	if _, ok := s.skills[a.SkillID]; !ok {
		return fmt.Errorf("skill %s: %w", a.SkillID, ErrNotFound)
	}
	if s.assessments[a.MemberID] == nil {
		s.assessments[a.MemberID] = make(map[string]model.SkillAssessment)
	}
	s.assessments[a.MemberID][a.SkillID] = a
	return nil
}

// ListAssessments returns a member's assessments sorted by skill id.
func (s *MemStore) ListAssessments(_ context.Context, memberID string) ([]model.SkillAssessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.members[memberID]; !ok {
		return nil, fmt.Errorf("member %s: %w", memberID, ErrNotFound)
	}
	out := make([]model.SkillAssessment, 0, len(s.assessments[memberID]))
	for _, a := range s.assessments[memberID] {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SkillID < out[j].SkillID })
	return out, nil
}

// AddGrowthArea appends a growth area for its member.
func (s *MemStore) AddGrowthArea(_ context.Context, g model.GrowthArea) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[g.MemberID]; !ok {
		return fmt.Errorf("member %s: %w", g.MemberID, ErrNotFound)
	}
	s.growthAreas[g.MemberID] = append(s.growthAreas[g.MemberID], g)
	return nil
}

// ListGrowthAreas returns a member's growth areas, oldest first.
func (s *MemStore) ListGrowthAreas(_ context.Context, memberID string) ([]model.GrowthArea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.members[memberID]; !ok {
		return nil, fmt.Errorf("member %s: %w", memberID, ErrNotFound)
	}
	out := append([]model.GrowthArea(nil), s.growthAreas[memberID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// UpdateGrowthArea replaces an existing growth area by id.
func (s *MemStore) UpdateGrowthArea(_ context.Context, g model.GrowthArea) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	areas := s.growthAreas[g.MemberID]
	for i := range areas {
		if areas[i].ID == g.ID {
			areas[i] = g
			return nil
		}
	}
	return fmt.Errorf("growth area %s: %w", g.ID, ErrNotFound)
}

// Levels returns the maturity ladder ordered by rank.
func (s *MemStore) Levels(_ context.Context) []model.Level {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := append([]model.Level(nil), s.levels...)
	sort.Slice(out, func(i, j int) bool { return out[i].Rank < out[j].Rank })
	return out
}

// LevelByID looks up one level.
func (s *MemStore) LevelByID(_ context.Context, id string) (model.Level, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.levels {
		if l.ID == id {
			return l, nil
		}
	}
	return model.Level{}, fmt.Errorf("level %s: %w", id, ErrNotFound)
}

// PutSkill upserts a reference skill.
func (s *MemStore) PutSkill(_ context.Context, skill model.Skill) error {
	if skill.ID == "" {
		return ErrMissingID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skills[skill.ID] = skill
	return nil
}

// Skills returns all reference skills sorted by name.
func (s *MemStore) Skills(_ context.Context) []model.Skill {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Skill, 0, len(s.skills))
	for _, sk := range s.skills {
		out = append(out, sk)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// PutCategory upserts a reference category.
func (s *MemStore) PutCategory(_ context.Context, c model.Category) error {
	if c.ID == "" {
		return ErrMissingID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = c
	return nil
}

// Categories returns all reference categories sorted by name.
func (s *MemStore) Categories(_ context.Context) []model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
