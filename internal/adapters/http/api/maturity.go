// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// MaturityHandler handles maturity report requests.
type MaturityHandler struct {
	deps Dependencies
}

// NewMaturityHandler creates a new maturity handler.
func NewMaturityHandler(deps Dependencies) *MaturityHandler {
	return &MaturityHandler{deps: deps}
}

// HandleMemberMaturity handles GET /members/{id}/maturity.
func (h *MaturityHandler) HandleMemberMaturity(w http.ResponseWriter, r *http.Request) {
	const op = "api.member_maturity"

	report, err := h.deps.MaturityReport(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
