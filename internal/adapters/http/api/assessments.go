// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/teampulse/teampulse/internal/domain/model"
)

// assessmentRequest mirrors the OpenAPI schema for PUT assessments.
// Ratings are level ids; an empty rating means not yet rated.
type assessmentRequest struct {
	LeaderRating string `json:"leader_rating"`
	SelfRating   string `json:"self_rating"`
}

type assessmentResponse struct {
	MemberID     string `json:"member_id"`
	SkillID      string `json:"skill_id"`
	LeaderRating string `json:"leader_rating,omitempty"`
	SelfRating   string `json:"self_rating,omitempty"`
	UpdatedAt    string `json:"updated_at"`
}

func toAssessmentResponse(a model.SkillAssessment) assessmentResponse {
	return assessmentResponse{
		MemberID:     a.MemberID,
		SkillID:      a.SkillID,
		LeaderRating: a.LeaderRating,
		SelfRating:   a.SelfRating,
		UpdatedAt:    a.UpdatedAt.Format(time.RFC3339),
	}
}

// AssessmentHandler handles skill assessment requests.
type AssessmentHandler struct {
	deps Dependencies
}

// NewAssessmentHandler creates a new assessment handler.
func NewAssessmentHandler(deps Dependencies) *AssessmentHandler {
	return &AssessmentHandler{deps: deps}
}

// HandlePut handles PUT /members/{id}/assessments/{skillID}.
func (h *AssessmentHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_assessment"

	var req assessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	a, err := h.deps.SubmitAssessment(r.Context(), model.SkillAssessment{
		MemberID:     r.PathValue("id"),
		SkillID:      r.PathValue("skillID"),
		LeaderRating: req.LeaderRating,
		SelfRating:   req.SelfRating,
	})
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, toAssessmentResponse(a))
}

// HandleList handles GET /members/{id}/assessments.
func (h *AssessmentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_assessments"

	list, err := h.deps.ListAssessments(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	out := make([]assessmentResponse, len(list))
	for i, a := range list {
		out[i] = toAssessmentResponse(a)
	}
	writeJSON(w, http.StatusOK, out)
}
