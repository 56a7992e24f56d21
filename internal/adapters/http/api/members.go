// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/teampulse/teampulse/internal/domain/dates"
	"github.com/teampulse/teampulse/internal/domain/model"
)

// memberRequest mirrors the OpenAPI schema for member writes.
type memberRequest struct {
	Name         string `json:"name" validate:"required"`
	Role         string `json:"role"`
	StartDate    string `json:"start_date" validate:"required"`
	CurrentLevel string `json:"current_level" validate:"required"`
}

// memberResponse is the wire shape of one member.
type memberResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role,omitempty"`
	StartDate    string `json:"start_date"`
	CurrentLevel string `json:"current_level"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func toMemberResponse(m model.TeamMember) memberResponse {
	return memberResponse{
		ID:           m.ID,
		Name:         m.Name,
		Role:         m.Role,
		StartDate:    m.StartDate.Format(dates.DateLayout),
		CurrentLevel: m.CurrentLevel,
		CreatedAt:    m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    m.UpdatedAt.Format(time.RFC3339),
	}
}

// MemberHandler handles member CRUD requests.
type MemberHandler struct {
	deps Dependencies
}

// NewMemberHandler creates a new member handler.
func NewMemberHandler(deps Dependencies) *MemberHandler {
	return &MemberHandler{deps: deps}
}

// HandleCreate handles POST /members.
func (h *MemberHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_member"

	req, start, ok := decodeMemberRequest(w, r, op)
	if !ok {
		return
	}

	member, err := h.deps.CreateMember(r.Context(), model.TeamMember{
		Name:         req.Name,
		Role:         req.Role,
		StartDate:    start,
		CurrentLevel: req.CurrentLevel,
	})
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, toMemberResponse(member))
}

// HandleList handles GET /members.
func (h *MemberHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_members"

	members, err := h.deps.ListMembers(r.Context())
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	out := make([]memberResponse, len(members))
	for i, m := range members {
		out[i] = toMemberResponse(m)
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleGet handles GET /members/{id}.
func (h *MemberHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_member"

	member, err := h.deps.GetMember(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, toMemberResponse(member))
}

// HandleUpdate handles PUT /members/{id}.
func (h *MemberHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	const op = "api.update_member"

	req, start, ok := decodeMemberRequest(w, r, op)
	if !ok {
		return
	}

	member, err := h.deps.UpdateMember(r.Context(), model.TeamMember{
		ID:           r.PathValue("id"),
		Name:         req.Name,
		Role:         req.Role,
		StartDate:    start,
		CurrentLevel: req.CurrentLevel,
	})
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, toMemberResponse(member))
}

// HandleDelete handles DELETE /members/{id}.
func (h *MemberHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_member"

	if err := h.deps.DeleteMember(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeMemberRequest decodes, validates and parses the shared member
// payload. On failure it writes the error response itself.
func decodeMemberRequest(w http.ResponseWriter, r *http.Request, op string) (memberRequest, time.Time, bool) {
	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return req, time.Time{}, false
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return req, time.Time{}, false
	}
	start, err := dates.ParseDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return req, time.Time{}, false
	}
	return req, start, true
}
