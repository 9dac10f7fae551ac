package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/ice-solution/bniwedding-application/internal/classifier"
	"github.com/ice-solution/bniwedding-application/internal/dashboard"
	"github.com/ice-solution/bniwedding-application/internal/domain"
	"github.com/ice-solution/bniwedding-application/internal/logger"
	"github.com/ice-solution/bniwedding-application/internal/service"
	"github.com/ice-solution/bniwedding-application/internal/validation"
)

// MemberService is the slice of the service layer the handlers need.
type MemberService interface {
	Submit(ctx context.Context, sub validation.Submission) (*domain.Member, error)
	List(ctx context.Context) ([]domain.Member, error)
	GetByID(ctx context.Context, id int32) (*service.MemberDetail, error)
	UpdateStatus(ctx context.Context, id int32, status domain.MemberStatus) error
}

// MemberHandler serves the public intake endpoints and the admin review
// endpoints. Classifier may be nil when no LLM endpoint is configured.
type MemberHandler struct {
	svc        MemberService
	classifier classifier.Classifier
}

func NewMemberHandler(svc MemberService, c classifier.Classifier) *MemberHandler {
	return &MemberHandler{svc: svc, classifier: c}
}

type submitResponse struct {
	Success  bool  `json:"success"`
	MemberID int32 `json:"memberId"`
}

// Submit handles POST /api/members.
func (h *MemberHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var sub validation.Submission
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	member, err := h.svc.Submit(r.Context(), sub)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, submitResponse{Success: true, MemberID: member.ID})
}

type analyzeRequest struct {
	Description string `json:"description"`
}

// AnalyzeCategory handles POST /api/members/analyze-category.
func (h *MemberHandler) AnalyzeCategory(w http.ResponseWriter, r *http.Request) {
	if h.classifier == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "category analysis is not configured"})
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if len([]rune(req.Description)) < 10 {
		writeError(w, &domain.ValidationError{Fields: map[string]string{
			"description": "the length must be no less than 10",
		}})
		return
	}

	suggestion, err := h.classifier.Analyze(r.Context(), req.Description)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestion)
}

// List handles GET /api/admin/members. Supports ?q= and ?status= filters.
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	filtered := dashboard.Filter(
		members,
		r.URL.Query().Get("q"),
		dashboard.ParseStatusFilter(r.URL.Query().Get("status")),
	)
	writeJSON(w, http.StatusOK, filtered)
}

// GetByID handles GET /api/admin/members/{id}.
func (h *MemberHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := memberID(w, r)
	if !ok {
		return
	}

	detail, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PUT /api/admin/members/{id}/status.
func (h *MemberHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := memberID(w, r)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.svc.UpdateStatus(r.Context(), id, domain.MemberStatus(req.Status)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ExportCSV handles GET /api/admin/members/export with the same filters
// as List.
func (h *MemberHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	filtered := dashboard.Filter(
		members,
		r.URL.Query().Get("q"),
		dashboard.ParseStatusFilter(r.URL.Query().Get("status")),
	)

	filename := fmt.Sprintf("bni-members-%s.csv", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := dashboard.WriteCSV(w, filtered); err != nil {
		// Headers are already out; all we can do is log.
		logger.Error("csv export failed", "error", err)
	}
}

func memberID(w http.ResponseWriter, r *http.Request) (int32, bool) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid member id"})
		return 0, false
	}
	return int32(id), true
}
