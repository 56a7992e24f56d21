// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	service "github.com/teampulse/teampulse/internal/app"
	repository "github.com/teampulse/teampulse/internal/adapters/repository"
	"github.com/teampulse/teampulse/internal/domain/model"
	"github.com/teampulse/teampulse/internal/domain/types"
)

// Dependencies bundles the service operations the handlers call. An
// interface keeps the handler layer loosely coupled to the service
// implementation.
type Dependencies interface {
	CreateMember(ctx context.Context, m model.TeamMember) (model.TeamMember, error)
	GetMember(ctx context.Context, id string) (model.TeamMember, error)
	ListMembers(ctx context.Context) ([]model.TeamMember, error)
	UpdateMember(ctx context.Context, m model.TeamMember) (model.TeamMember, error)
	DeleteMember(ctx context.Context, id string) error

	RecordOneOnOne(ctx context.Context, memberID string, meetingDate time.Time, notes string) (model.OneOnOne, error)
	ListOneOnOnes(ctx context.Context, memberID string) ([]model.OneOnOne, error)

	RecordReview(ctx context.Context, r model.PerformanceReview) (model.PerformanceReview, error)
	ListReviews(ctx context.Context, memberID string) ([]model.PerformanceReview, error)

	SubmitAssessment(ctx context.Context, a model.SkillAssessment) (model.SkillAssessment, error)
	ListAssessments(ctx context.Context, memberID string) ([]model.SkillAssessment, error)

	AddGrowthArea(ctx context.Context, memberID, title string) (model.GrowthArea, error)
	ResolveGrowthArea(ctx context.Context, memberID, areaID string) (model.GrowthArea, error)
	ListGrowthAreas(ctx context.Context, memberID string) ([]model.GrowthArea, error)

	Skills(ctx context.Context) []model.Skill
	Categories(ctx context.Context) []model.Category
	Levels(ctx context.Context) []model.Level
	PutSkill(ctx context.Context, s model.Skill) error
	PutCategory(ctx context.Context, c model.Category) error

	EvaluateMember(ctx context.Context, memberID string, as time.Time) (types.CadenceReport, error)
	TeamCompliance(ctx context.Context, as time.Time) (types.ComplianceSummary, error)
	MaturityReport(ctx context.Context, memberID string) (types.MaturityReport, error)
}

// validate checks request payloads against their struct tags.
var validate = validator.New()

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	memberHandler     *MemberHandler
	recordsHandler    *RecordsHandler
	assessmentHandler *AssessmentHandler
	growthHandler     *GrowthAreaHandler
	cadenceHandler    *CadenceHandler
	maturityHandler   *MaturityHandler
	referenceHandler  *ReferenceHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		memberHandler:     NewMemberHandler(deps),
		recordsHandler:    NewRecordsHandler(deps),
		assessmentHandler: NewAssessmentHandler(deps),
		growthHandler:     NewGrowthAreaHandler(deps),
		cadenceHandler:    NewCadenceHandler(deps),
		maturityHandler:   NewMaturityHandler(deps),
		referenceHandler:  NewReferenceHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("POST /members", MetricsMiddleware(s.memberHandler.HandleCreate, "members"))
	mux.HandleFunc("GET /members", MetricsMiddleware(s.memberHandler.HandleList, "members"))
	mux.HandleFunc("GET /members/{id}", MetricsMiddleware(s.memberHandler.HandleGet, "member"))
	mux.HandleFunc("PUT /members/{id}", MetricsMiddleware(s.memberHandler.HandleUpdate, "member"))
	mux.HandleFunc("DELETE /members/{id}", MetricsMiddleware(s.memberHandler.HandleDelete, "member"))

	mux.HandleFunc("POST /members/{id}/one-on-ones", MetricsMiddleware(s.recordsHandler.HandleAddOneOnOne, "one_on_ones"))
	mux.HandleFunc("GET /members/{id}/one-on-ones", MetricsMiddleware(s.recordsHandler.HandleListOneOnOnes, "one_on_ones"))
	mux.HandleFunc("POST /members/{id}/reviews", MetricsMiddleware(s.recordsHandler.HandleAddReview, "reviews"))
	mux.HandleFunc("GET /members/{id}/reviews", MetricsMiddleware(s.recordsHandler.HandleListReviews, "reviews"))

	mux.HandleFunc("PUT /members/{id}/assessments/{skillID}", MetricsMiddleware(s.assessmentHandler.HandlePut, "assessments"))
	mux.HandleFunc("GET /members/{id}/assessments", MetricsMiddleware(s.assessmentHandler.HandleList, "assessments"))

	mux.HandleFunc("POST /members/{id}/growth-areas", MetricsMiddleware(s.growthHandler.HandleAdd, "growth_areas"))
	mux.HandleFunc("GET /members/{id}/growth-areas", MetricsMiddleware(s.growthHandler.HandleList, "growth_areas"))
	mux.HandleFunc("PUT /members/{id}/growth-areas/{areaID}/resolve", MetricsMiddleware(s.growthHandler.HandleResolve, "growth_areas"))

	mux.HandleFunc("GET /members/{id}/cadence", MetricsMiddleware(s.cadenceHandler.HandleMemberCadence, "cadence"))
	mux.HandleFunc("GET /compliance", MetricsMiddleware(s.cadenceHandler.HandleTeamCompliance, "compliance"))
	mux.HandleFunc("GET /members/{id}/maturity", MetricsMiddleware(s.maturityHandler.HandleMemberMaturity, "maturity"))

	mux.HandleFunc("GET /skills", MetricsMiddleware(s.referenceHandler.HandleListSkills, "skills"))
	mux.HandleFunc("PUT /skills/{id}", MetricsMiddleware(s.referenceHandler.HandlePutSkill, "skills"))
	mux.HandleFunc("GET /categories", MetricsMiddleware(s.referenceHandler.HandleListCategories, "categories"))
	mux.HandleFunc("PUT /categories/{id}", MetricsMiddleware(s.referenceHandler.HandlePutCategory, "categories"))
	mux.HandleFunc("GET /levels", MetricsMiddleware(s.referenceHandler.HandleListLevels, "levels"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates service and store sentinels to HTTP
// statuses; anything unclassified becomes a 500.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
	case errors.Is(err, service.ErrGrowthAreaLimit),
		errors.Is(err, repository.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "conflict", Wrap(op, err))
	case errors.Is(err, service.ErrMissingField),
		errors.Is(err, service.ErrInvalidReview),
		errors.Is(err, service.ErrUnknownSkill),
		errors.Is(err, service.ErrUnknownLevel):
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
