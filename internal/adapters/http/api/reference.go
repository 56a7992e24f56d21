// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/teampulse/teampulse/internal/domain/model"
)

type skillRequest struct {
	Name        string   `json:"name" validate:"required"`
	CategoryIDs []string `json:"category_ids"`
}

type skillResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	CategoryIDs []string `json:"category_ids,omitempty"`
}

type categoryRequest struct {
	Name string `json:"name" validate:"required"`
}

type categoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type levelResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Rank int    `json:"rank"`
}

// ReferenceHandler serves the skill, category and level reference data.
type ReferenceHandler struct {
	deps Dependencies
}

// NewReferenceHandler creates a new reference data handler.
func NewReferenceHandler(deps Dependencies) *ReferenceHandler {
	return &ReferenceHandler{deps: deps}
}

// HandleListSkills handles GET /skills.
func (h *ReferenceHandler) HandleListSkills(w http.ResponseWriter, r *http.Request) {
	skills := h.deps.Skills(r.Context())
	out := make([]skillResponse, len(skills))
	for i, s := range skills {
		out[i] = skillResponse{ID: s.ID, Name: s.Name, CategoryIDs: s.CategoryIDs}
	}
	writeJSON(w, http.StatusOK, out)
}

// HandlePutSkill handles PUT /skills/{id}.
func (h *ReferenceHandler) HandlePutSkill(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_skill"

	var req skillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	s := model.Skill{ID: r.PathValue("id"), Name: req.Name, CategoryIDs: req.CategoryIDs}
	if err := h.deps.PutSkill(r.Context(), s); err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, skillResponse{ID: s.ID, Name: s.Name, CategoryIDs: s.CategoryIDs})
}

// HandleListCategories handles GET /categories.
func (h *ReferenceHandler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	categories := h.deps.Categories(r.Context())
	out := make([]categoryResponse, len(categories))
	for i, c := range categories {
		out[i] = categoryResponse{ID: c.ID, Name: c.Name}
	}
	writeJSON(w, http.StatusOK, out)
}

// HandlePutCategory handles PUT /categories/{id}.
func (h *ReferenceHandler) HandlePutCategory(w http.ResponseWriter, r *http.Request) {
	const op = "api.put_category"

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	c := model.Category{ID: r.PathValue("id"), Name: req.Name}
	if err := h.deps.PutCategory(r.Context(), c); err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, categoryResponse{ID: c.ID, Name: c.Name})
}

// HandleListLevels handles GET /levels.
func (h *ReferenceHandler) HandleListLevels(w http.ResponseWriter, r *http.Request) {
	levels := h.deps.Levels(r.Context())
	out := make([]levelResponse, len(levels))
	for i, l := range levels {
		out[i] = levelResponse{ID: l.ID, Name: l.Name, Rank: l.Rank}
	}
	writeJSON(w, http.StatusOK, out)
}
