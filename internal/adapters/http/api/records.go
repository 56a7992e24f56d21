// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/teampulse/teampulse/internal/domain/dates"
	"github.com/teampulse/teampulse/internal/domain/model"
)

// oneOnOneRequest mirrors the OpenAPI schema for POST one-on-ones.
type oneOnOneRequest struct {
	MeetingDate string `json:"meeting_date" validate:"required"`
	Notes       string `json:"notes"`
}

type oneOnOneResponse struct {
	ID          string `json:"id"`
	MemberID    string `json:"member_id"`
	MeetingDate string `json:"meeting_date"`
	Notes       string `json:"notes,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func toOneOnOneResponse(rec model.OneOnOne) oneOnOneResponse {
	return oneOnOneResponse{
		ID:          rec.ID,
		MemberID:    rec.MemberID,
		MeetingDate: rec.MeetingDate.Format(dates.DateLayout),
		Notes:       rec.Notes,
		CreatedAt:   rec.CreatedAt.Format(time.RFC3339),
	}
}

// reviewRequest mirrors the OpenAPI schema for POST reviews. Quarter
// and year are optional for quarterly reviews; when omitted they are
// derived from the review date.
type reviewRequest struct {
	Type       string `json:"type" validate:"required,oneof=quarterly annual"`
	ReviewDate string `json:"review_date" validate:"required"`
	Quarter    int    `json:"quarter" validate:"gte=0,lte=4"`
	Year       int    `json:"year"`
	Summary    string `json:"summary"`
}

type reviewResponse struct {
	ID         string `json:"id"`
	MemberID   string `json:"member_id"`
	Type       string `json:"type"`
	ReviewDate string `json:"review_date"`
	Quarter    int    `json:"quarter,omitempty"`
	Year       int    `json:"year,omitempty"`
	Summary    string `json:"summary,omitempty"`
	CreatedAt  string `json:"created_at"`
}

func toReviewResponse(r model.PerformanceReview) reviewResponse {
	return reviewResponse{
		ID:         r.ID,
		MemberID:   r.MemberID,
		Type:       string(r.Type),
		ReviewDate: r.ReviewDate.Format(dates.DateLayout),
		Quarter:    r.Quarter,
		Year:       r.Year,
		Summary:    r.Summary,
		CreatedAt:  r.CreatedAt.Format(time.RFC3339),
	}
}

// RecordsHandler handles 1:1 meeting and performance review requests.
type RecordsHandler struct {
	deps Dependencies
}

// NewRecordsHandler creates a new records handler.
func NewRecordsHandler(deps Dependencies) *RecordsHandler {
	return &RecordsHandler{deps: deps}
}

// HandleAddOneOnOne handles POST /members/{id}/one-on-ones.
func (h *RecordsHandler) HandleAddOneOnOne(w http.ResponseWriter, r *http.Request) {
	const op = "api.add_one_on_one"

	var req oneOnOneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	meetingDate, err := dates.ParseDate(req.MeetingDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	rec, err := h.deps.RecordOneOnOne(r.Context(), r.PathValue("id"), meetingDate, req.Notes)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOneOnOneResponse(rec))
}

// HandleListOneOnOnes handles GET /members/{id}/one-on-ones.
func (h *RecordsHandler) HandleListOneOnOnes(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_one_on_ones"

	list, err := h.deps.ListOneOnOnes(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	out := make([]oneOnOneResponse, len(list))
	for i, rec := range list {
		out[i] = toOneOnOneResponse(rec)
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleAddReview handles POST /members/{id}/reviews.
func (h *RecordsHandler) HandleAddReview(w http.ResponseWriter, r *http.Request) {
	const op = "api.add_review"

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	reviewDate, err := dates.ParseDate(req.ReviewDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	review, err := h.deps.RecordReview(r.Context(), model.PerformanceReview{
		MemberID:   r.PathValue("id"),
		Type:       model.ReviewType(req.Type),
		ReviewDate: reviewDate,
		Quarter:    req.Quarter,
		Year:       req.Year,
		Summary:    req.Summary,
	})
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReviewResponse(review))
}

// HandleListReviews handles GET /members/{id}/reviews.
func (h *RecordsHandler) HandleListReviews(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_reviews"

	list, err := h.deps.ListReviews(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	out := make([]reviewResponse, len(list))
	for i, review := range list {
		out[i] = toReviewResponse(review)
	}
	writeJSON(w, http.StatusOK, out)
}
