// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"time"

	"github.com/teampulse/teampulse/internal/domain/dates"
)

// CadenceHandler handles cadence and compliance requests.
type CadenceHandler struct {
	deps Dependencies
}

// NewCadenceHandler creates a new cadence handler.
func NewCadenceHandler(deps Dependencies) *CadenceHandler {
	return &CadenceHandler{deps: deps}
}

// HandleMemberCadence handles GET /members/{id}/cadence?now=YYYY-MM-DD.
// The now parameter defaults to today; it exists so clients can ask
// "what will be overdue next Monday".
func (h *CadenceHandler) HandleMemberCadence(w http.ResponseWriter, r *http.Request) {
	const op = "api.member_cadence"

	as, ok := parseNowParam(w, r, op)
	if !ok {
		return
	}

	report, err := h.deps.EvaluateMember(r.Context(), r.PathValue("id"), as)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// HandleTeamCompliance handles GET /compliance?now=YYYY-MM-DD.
func (h *CadenceHandler) HandleTeamCompliance(w http.ResponseWriter, r *http.Request) {
	const op = "api.team_compliance"

	as, ok := parseNowParam(w, r, op)
	if !ok {
		return
	}

	summary, err := h.deps.TeamCompliance(r.Context(), as)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// parseNowParam reads the optional now query parameter. On failure it
// writes the error response itself.
func parseNowParam(w http.ResponseWriter, r *http.Request, op string) (time.Time, bool) {
	raw := r.URL.Query().Get("now")
	if raw == "" {
		return time.Now(), true
	}
	as, err := dates.ParseDate(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return time.Time{}, false
	}
	return as, true
}
