// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	recheckqueue "github.com/teampulse/teampulse/internal/adapters/mq/queue"
	workerpool "github.com/teampulse/teampulse/internal/adapters/mq/worker"
	repository "github.com/teampulse/teampulse/internal/adapters/repository"
	"github.com/teampulse/teampulse/internal/domain/cadence"
	"github.com/teampulse/teampulse/internal/domain/dedupe"
	"github.com/teampulse/teampulse/internal/domain/maturity"
	"github.com/teampulse/teampulse/internal/domain/model"
	"github.com/teampulse/teampulse/internal/domain/types"
	"github.com/teampulse/teampulse/pkg/logger"
	"github.com/teampulse/teampulse/pkg/metrics"
)

// Default service configuration.
const (
	defaultQueueSize            = 10_000
	defaultDedupeSize           = 50_000
	defaultSweepInterval        = time.Hour
	defaultMaxActiveGrowthAreas = 3
)

// Service wires the roster store, the cadence evaluator, the maturity
// scorer and the reminder pipeline behind one façade.
type Service struct {
	mu sync.RWMutex

	// Core components
	store        repository.Store
	deduper      dedupe.Deduper
	recheckQueue recheckqueue.Queue
	evaluator    *cadence.Evaluator
	scorer       *maturity.Scorer
	workerPool   *workerpool.Pool

	// Configuration
	workerCount          int
	queueSize            int
	dedupeSize           int
	sweepInterval        time.Duration
	maxActiveGrowthAreas int
	cadenceOpts          []cadence.Option

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:          runtime.NumCPU() * 2,
		queueSize:            defaultQueueSize,
		dedupeSize:           defaultDedupeSize,
		sweepInterval:        defaultSweepInterval,
		maxActiveGrowthAreas: defaultMaxActiveGrowthAreas,
		stopCh:               make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting team cadence service...")

	if s.store == nil {
		s.store = repository.NewMemStore(ctx)
		s.logger.Info(ctx, "using in-memory roster store")
	}
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.recheckQueue = recheckqueue.NewInMemoryQueue(
		recheckqueue.WithCapacity(s.queueSize),
	)
	s.evaluator = cadence.New(s.cadenceOpts...)
	s.scorer = maturity.New(
		maturity.WithLogger(s.logger.Named("maturity")),
	)

	s.workerPool = workerpool.NewPool(s.workerCount, s.recheckQueue, s, s, s.deduper)
	s.workerPool.Start(ctx)

	go s.sweepLoop(ctx)

	s.started = true
	s.logger.Info(ctx, "team cadence service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping team cadence service...")

	if s.workerPool != nil {
		s.workerPool.Stop()
	}
	if q, ok := s.recheckQueue.(*recheckqueue.InMemoryQueue); ok {
		_ = q.Close()
	}

	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}

	s.started = false
	s.logger.Info(context.Background(), "team cadence service stopped")
}

// CreateMember stores a new member, assigning an id, and schedules an
// initial cadence recheck.
func (s *Service) CreateMember(ctx context.Context, m model.TeamMember) (model.TeamMember, error) {
	if strings.TrimSpace(m.Name) == "" {
		return model.TeamMember{}, fmt.Errorf("%w: name", ErrMissingField)
	}

	now := time.Now()
	m.ID = uuid.NewString()
	m.CreatedAt = now
	m.UpdatedAt = now
	if err := s.store.CreateMember(ctx, m); err != nil {
		return model.TeamMember{}, fmt.Errorf("create member: %w", err)
	}

	s.scheduleRecheck(ctx, m.ID)
	metrics.UpdateTeamSize(s.store.Count(ctx))
	return m, nil
}

// GetMember returns one member by id.
func (s *Service) GetMember(ctx context.Context, id string) (model.TeamMember, error) {
	return s.store.GetMember(ctx, id)
}

// ListMembers returns the roster sorted by name.
func (s *Service) ListMembers(ctx context.Context) ([]model.TeamMember, error) {
	return s.store.ListMembers(ctx)
}

// UpdateMember replaces a member's mutable fields, preserving its
// creation time.
func (s *Service) UpdateMember(ctx context.Context, m model.TeamMember) (model.TeamMember, error) {
	existing, err := s.store.GetMember(ctx, m.ID)
	if err != nil {
		return model.TeamMember{}, err
	}
	if strings.TrimSpace(m.Name) == "" {
		return model.TeamMember{}, fmt.Errorf("%w: name", ErrMissingField)
	}

	m.CreatedAt = existing.CreatedAt
	m.UpdatedAt = time.Now()
	if err := s.store.UpdateMember(ctx, m); err != nil {
		return model.TeamMember{}, fmt.Errorf("update member: %w", err)
	}

	s.scheduleRecheck(ctx, m.ID)
	return m, nil
}

// DeleteMember removes a member and all attached records.
func (s *Service) DeleteMember(ctx context.Context, id string) error {
	if err := s.store.DeleteMember(ctx, id); err != nil {
		return err
	}
	metrics.UpdateTeamSize(s.store.Count(ctx))
	return nil
}

// RecordOneOnOne logs a 1:1 meeting for a member and schedules a
// cadence recheck.
func (s *Service) RecordOneOnOne(ctx context.Context, memberID string, meetingDate time.Time, notes string) (model.OneOnOne, error) {
	if _, err := s.store.GetMember(ctx, memberID); err != nil {
		return model.OneOnOne{}, err
	}
	if meetingDate.IsZero() {
		return model.OneOnOne{}, fmt.Errorf("%w: meeting date", ErrMissingField)
	}

	rec := model.OneOnOne{
		ID:          uuid.NewString(),
		MemberID:    memberID,
		MeetingDate: meetingDate,
		Notes:       notes,
		CreatedAt:   time.Now(),
	}
	if err := s.store.AddOneOnOne(ctx, rec); err != nil {
		return model.OneOnOne{}, fmt.Errorf("record one on one: %w", err)
	}

	s.scheduleRecheck(ctx, memberID)
	return rec, nil
}

// ListOneOnOnes returns a member's 1:1 history, most recent first.
func (s *Service) ListOneOnOnes(ctx context.Context, memberID string) ([]model.OneOnOne, error) {
	if _, err := s.store.GetMember(ctx, memberID); err != nil {
		return nil, err
	}
	return s.store.ListOneOnOnes(ctx, memberID)
}

// RecordReview saves a quarterly or annual review and schedules a
// cadence recheck. Quarterly reviews missing their quarter/year pair
// get it derived from the review date.
func (s *Service) RecordReview(ctx context.Context, r model.PerformanceReview) (model.PerformanceReview, error) {
	if _, err := s.store.GetMember(ctx, r.MemberID); err != nil {
		return model.PerformanceReview{}, err
	}
	if r.ReviewDate.IsZero() {
		return model.PerformanceReview{}, fmt.Errorf("%w: review date", ErrMissingField)
	}

	switch r.Type {
	case model.ReviewQuarterly:
		if r.Quarter == 0 {
			r.Quarter = int(r.ReviewDate.Month()-1)/3 + 1
		}
		if r.Year == 0 {
			r.Year = r.ReviewDate.Year()
		}
		if r.Quarter < 1 || r.Quarter > 4 {
			return model.PerformanceReview{}, fmt.Errorf("%w: quarter %d", ErrInvalidReview, r.Quarter)
		}
	case model.ReviewAnnual:
		r.Quarter = 0
		r.Year = 0
	default:
		return model.PerformanceReview{}, fmt.Errorf("%w: type %q", ErrInvalidReview, r.Type)
	}

	r.ID = uuid.NewString()
	r.CreatedAt = time.Now()
	if err := s.store.AddReview(ctx, r); err != nil {
		return model.PerformanceReview{}, fmt.Errorf("record review: %w", err)
	}

	s.scheduleRecheck(ctx, r.MemberID)
	return r, nil
}

// ListReviews returns a member's review history, most recent first.
func (s *Service) ListReviews(ctx context.Context, memberID string) ([]model.PerformanceReview, error) {
	if _, err := s.store.GetMember(ctx, memberID); err != nil {
		return nil, err
	}
	return s.store.ListReviews(ctx, memberID)
}

// SubmitAssessment upserts the leader/self rating pair for one skill.
// Non-empty ratings must reference a known level.
func (s *Service) SubmitAssessment(ctx context.Context, a model.SkillAssessment) (model.SkillAssessment, error) {
	if _, err := s.store.GetMember(ctx, a.MemberID); err != nil {
		return model.SkillAssessment{}, err
	}
	if !s.knownSkill(ctx, a.SkillID) {
		return model.SkillAssessment{}, fmt.Errorf("%w: skill %q", ErrUnknownSkill, a.SkillID)
	}
	for _, levelID := range []string{a.LeaderRating, a.SelfRating} {
		if levelID == "" {
			continue
		}
		if _, err := s.store.LevelByID(ctx, levelID); err != nil {
			return model.SkillAssessment{}, fmt.Errorf("%w: level %q", ErrUnknownLevel, levelID)
		}
	}

	a.UpdatedAt = time.Now()
	if err := s.store.PutAssessment(ctx, a); err != nil {
		return model.SkillAssessment{}, fmt.Errorf("submit assessment: %w", err)
	}
	return a, nil
}

// ListAssessments returns a member's skill assessments.
func (s *Service) ListAssessments(ctx context.Context, memberID string) ([]model.SkillAssessment, error) {
	if _, err := s.store.GetMember(ctx, memberID); err != nil {
		return nil, err
	}
	return s.store.ListAssessments(ctx, memberID)
}

// AddGrowthArea opens a new active growth area for a member. A member
// may carry at most maxActiveGrowthAreas active ones.
func (s *Service) AddGrowthArea(ctx context.Context, memberID, title string) (model.GrowthArea, error) {
	if _, err := s.store.GetMember(ctx, memberID); err != nil {
		return model.GrowthArea{}, err
	}
	if strings.TrimSpace(title) == "" {
		return model.GrowthArea{}, fmt.Errorf("%w: title", ErrMissingField)
	}

	areas, err := s.store.ListGrowthAreas(ctx, memberID)
	if err != nil {
		return model.GrowthArea{}, err
	}
	active := 0
	for _, g := range areas {
		if g.Status == model.GrowthActive {
			active++
		}
	}
	if active >= s.maxActiveGrowthAreas {
		return model.GrowthArea{}, fmt.Errorf("%w: %d active", ErrGrowthAreaLimit, active)
	}

	now := time.Now()
	g := model.GrowthArea{
		ID:        uuid.NewString(),
		MemberID:  memberID,
		Title:     title,
		Status:    model.GrowthActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.AddGrowthArea(ctx, g); err != nil {
		return model.GrowthArea{}, fmt.Errorf("add growth area: %w", err)
	}
	return g, nil
}

// ResolveGrowthArea marks one growth area resolved.
func (s *Service) ResolveGrowthArea(ctx context.Context, memberID, areaID string) (model.GrowthArea, error) {
	areas, err := s.store.ListGrowthAreas(ctx, memberID)
	if err != nil {
		return model.GrowthArea{}, err
	}
	for _, g := range areas {
		if g.ID != areaID {
			continue
		}
		g.Status = model.GrowthResolved
		g.UpdatedAt = time.Now()
		if err := s.store.UpdateGrowthArea(ctx, g); err != nil {
			return model.GrowthArea{}, fmt.Errorf("resolve growth area: %w", err)
		}
		return g, nil
	}
	return model.GrowthArea{}, fmt.Errorf("growth area %q: %w", areaID, repository.ErrNotFound)
}

// ListGrowthAreas returns a member's growth areas, oldest first.
func (s *Service) ListGrowthAreas(ctx context.Context, memberID string) ([]model.GrowthArea, error) {
	if _, err := s.store.GetMember(ctx, memberID); err != nil {
		return nil, err
	}
	return s.store.ListGrowthAreas(ctx, memberID)
}

// Skills returns the skill reference data.
func (s *Service) Skills(ctx context.Context) []model.Skill {
	return s.store.Skills(ctx)
}

// Categories returns the category reference data.
func (s *Service) Categories(ctx context.Context) []model.Category {
	return s.store.Categories(ctx)
}

// Levels returns the maturity ladder.
func (s *Service) Levels(ctx context.Context) []model.Level {
	return s.store.Levels(ctx)
}

// PutSkill upserts one skill into the reference data.
func (s *Service) PutSkill(ctx context.Context, sk model.Skill) error {
	if strings.TrimSpace(sk.ID) == "" || strings.TrimSpace(sk.Name) == "" {
		return fmt.Errorf("%w: skill id and name", ErrMissingField)
	}
	return s.store.PutSkill(ctx, sk)
}

// PutCategory upserts one category into the reference data.
func (s *Service) PutCategory(ctx context.Context, c model.Category) error {
	if strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: category id and name", ErrMissingField)
	}
	return s.store.PutCategory(ctx, c)
}

// EvaluateMember classifies a member's three cadence tracks as of the
// given date. It satisfies the reminder workers' evaluator dependency
// and backs the cadence endpoint.
func (s *Service) EvaluateMember(ctx context.Context, memberID string, as time.Time) (types.CadenceReport, error) {
	member, err := s.store.GetMember(ctx, memberID)
	if err != nil {
		return types.CadenceReport{}, err
	}

	rec, err := s.recordsFor(ctx, member)
	if err != nil {
		return types.CadenceReport{}, err
	}

	report := s.evaluator.Evaluate(as, memberID, rec)
	metrics.RecordCadenceEvaluation()
	return report, nil
}

// TeamCompliance evaluates every member as of the given date. Members
// are counted once under their worst track: overdue beats due-soon
// beats current.
func (s *Service) TeamCompliance(ctx context.Context, as time.Time) (types.ComplianceSummary, error) {
	members, err := s.store.ListMembers(ctx)
	if err != nil {
		return types.ComplianceSummary{}, err
	}

	summary := types.ComplianceSummary{Members: make([]types.CadenceReport, 0, len(members))}
	statusCounts := map[string]map[string]int{
		workerpool.TrackOneOnOne:  {},
		workerpool.TrackQuarterly: {},
		workerpool.TrackAnnual:    {},
	}
	for _, m := range members {
		rec, err := s.recordsFor(ctx, m)
		if err != nil {
			return types.ComplianceSummary{}, err
		}
		report := s.evaluator.Evaluate(as, m.ID, rec)
		metrics.RecordCadenceEvaluation()
		summary.Members = append(summary.Members, report)

		switch worstStatus(report) {
		case types.StatusOverdue:
			summary.Overdue++
		case types.StatusDueSoon:
			summary.DueSoon++
		default:
			summary.Current++
		}

		statusCounts[workerpool.TrackOneOnOne][string(report.OneOnOne)]++
		statusCounts[workerpool.TrackQuarterly][string(report.Quarterly)]++
		statusCounts[workerpool.TrackAnnual][string(report.Annual)]++
	}

	for track, counts := range statusCounts {
		for _, status := range []types.TrackStatus{types.StatusOverdue, types.StatusDueSoon, types.StatusCurrent} {
			metrics.UpdateTrackStatus(track, string(status), counts[string(status)])
		}
	}
	return summary, nil
}

// MaturityReport scores one member's skill assessments against the
// maturity ladder.
func (s *Service) MaturityReport(ctx context.Context, memberID string) (types.MaturityReport, error) {
	member, err := s.store.GetMember(ctx, memberID)
	if err != nil {
		return types.MaturityReport{}, err
	}

	assessments, err := s.store.ListAssessments(ctx, memberID)
	if err != nil {
		return types.MaturityReport{}, err
	}

	levelNames := make(map[string]string)
	for _, l := range s.store.Levels(ctx) {
		levelNames[l.ID] = l.Name
	}

	in := maturity.Input{
		CurrentLevel: member.CurrentLevel,
		Categories:   s.store.Categories(ctx),
		Skills:       s.store.Skills(ctx),
		Assessments:  make([]maturity.Assessment, 0, len(assessments)),
	}
	for _, a := range assessments {
		in.Assessments = append(in.Assessments, maturity.Assessment{
			SkillID:     a.SkillID,
			LeaderLevel: levelNames[a.LeaderRating],
			SelfLevel:   levelNames[a.SelfRating],
		})
	}

	report := s.scorer.Report(memberID, in)
	metrics.RecordMaturityReport()
	return report, nil
}

// Notify dispatches one cadence reminder. The in-memory transport is a
// structured log line; a mail or chat adapter would hang off here. A
// member deleted after the job was enqueued fails the dispatch.
func (s *Service) Notify(ctx context.Context, memberID, track string, status types.TrackStatus, as time.Time) error {
	member, err := s.store.GetMember(ctx, memberID)
	if err != nil {
		return fmt.Errorf("reminder for %s track: %w", track, err)
	}
	s.logger.Info(ctx, "cadence reminder",
		logger.String("member", member.Name),
		logger.String("memberID", memberID),
		logger.String("track", track),
		logger.String("status", string(status)),
		logger.Date("asOf", as),
	)
	return nil
}

// SweepNow enqueues a recheck for every member. Returns the number of
// jobs accepted by the queue.
func (s *Service) SweepNow(ctx context.Context) int {
	members, err := s.store.ListMembers(ctx)
	if err != nil {
		s.logger.Error(ctx, "sweep failed to list members", logger.Error(err))
		return 0
	}

	accepted := 0
	now := time.Now()
	for _, m := range members {
		if s.recheckQueue.Enqueue(ctx, model.RecheckJob{JobID: uuid.NewString(), MemberID: m.ID, As: now}) {
			accepted++
		}
	}
	metrics.UpdateQueueSize(s.recheckQueue.Len(ctx))
	s.logger.Debug(ctx, "cadence sweep enqueued",
		logger.Int("members", len(members)),
		logger.Int("accepted", accepted),
	)
	return accepted
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		queueLen := s.recheckQueue.Len(ctx)
		teamSize := s.store.Count(ctx)

		stats["queueLength"] = queueLen
		stats["teamSize"] = teamSize
		stats["dedupeEntries"] = s.deduper.Size()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateTeamSize(teamSize)
	}

	return stats
}

// scheduleRecheck enqueues a recheck job for one member after a write
// that can change a cadence status.
func (s *Service) scheduleRecheck(ctx context.Context, memberID string) {
	if s.recheckQueue == nil {
		return
	}
	job := model.RecheckJob{JobID: uuid.NewString(), MemberID: memberID, As: time.Now()}
	if !s.recheckQueue.Enqueue(ctx, job) {
		s.logger.Warn(ctx, "recheck queue rejected job", logger.String("memberID", memberID))
		return
	}
	metrics.UpdateQueueSize(s.recheckQueue.Len(ctx))
}

// sweepLoop periodically re-enqueues every member for a recheck so
// overdue tracks keep producing reminders without new writes.
func (s *Service) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.SweepNow(ctx)
		}
	}
}

// recordsFor assembles the cadence snapshot the evaluator reads.
func (s *Service) recordsFor(ctx context.Context, m model.TeamMember) (cadence.Records, error) {
	rec := cadence.Records{}
	if !m.StartDate.IsZero() {
		start := m.StartDate
		rec.StartDate = &start
	}

	if last, err := s.store.LatestOneOnOne(ctx, m.ID); err == nil {
		d := last.MeetingDate
		rec.LastOneOnOne = &d
	} else if !isNotFound(err) {
		return cadence.Records{}, err
	}

	if last, err := s.store.LatestReview(ctx, m.ID, model.ReviewQuarterly); err == nil {
		rec.LastQuarterly = &cadence.QuarterlyReview{
			Date:    last.ReviewDate,
			Quarter: last.Quarter,
			Year:    last.Year,
		}
	} else if !isNotFound(err) {
		return cadence.Records{}, err
	}

	if last, err := s.store.LatestReview(ctx, m.ID, model.ReviewAnnual); err == nil {
		d := last.ReviewDate
		rec.LastAnnual = &d
	} else if !isNotFound(err) {
		return cadence.Records{}, err
	}

	return rec, nil
}

func (s *Service) knownSkill(ctx context.Context, skillID string) bool {
	for _, sk := range s.store.Skills(ctx) {
		if sk.ID == skillID {
			return true
		}
	}
	return false
}

// worstStatus picks the member's most urgent track status.
func worstStatus(r types.CadenceReport) types.TrackStatus {
	worst := types.StatusCurrent
	for _, st := range []types.TrackStatus{r.OneOnOne, r.Quarterly, r.Annual} {
		switch st {
		case types.StatusOverdue:
			return types.StatusOverdue
		case types.StatusDueSoon:
			worst = types.StatusDueSoon
		}
	}
	return worst
}
