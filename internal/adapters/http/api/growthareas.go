// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/teampulse/teampulse/internal/domain/model"
)

type growthAreaRequest struct {
	Title string `json:"title" validate:"required"`
}

type growthAreaResponse struct {
	ID        string `json:"id"`
	MemberID  string `json:"member_id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toGrowthAreaResponse(g model.GrowthArea) growthAreaResponse {
	return growthAreaResponse{
		ID:        g.ID,
		MemberID:  g.MemberID,
		Title:     g.Title,
		Status:    string(g.Status),
		CreatedAt: g.CreatedAt.Format(time.RFC3339),
		UpdatedAt: g.UpdatedAt.Format(time.RFC3339),
	}
}

// GrowthAreaHandler handles growth area requests.
type GrowthAreaHandler struct {
	deps Dependencies
}

// NewGrowthAreaHandler creates a new growth area handler.
func NewGrowthAreaHandler(deps Dependencies) *GrowthAreaHandler {
	return &GrowthAreaHandler{deps: deps}
}

// HandleAdd handles POST /members/{id}/growth-areas.
func (h *GrowthAreaHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	const op = "api.add_growth_area"

	var req growthAreaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	g, err := h.deps.AddGrowthArea(r.Context(), r.PathValue("id"), req.Title)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGrowthAreaResponse(g))
}

// HandleList handles GET /members/{id}/growth-areas.
func (h *GrowthAreaHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_growth_areas"

	list, err := h.deps.ListGrowthAreas(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	out := make([]growthAreaResponse, len(list))
	for i, g := range list {
		out[i] = toGrowthAreaResponse(g)
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleResolve handles PUT /members/{id}/growth-areas/{areaID}/resolve.
func (h *GrowthAreaHandler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	const op = "api.resolve_growth_area"

	g, err := h.deps.ResolveGrowthArea(r.Context(), r.PathValue("id"), r.PathValue("areaID"))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, toGrowthAreaResponse(g))
}
