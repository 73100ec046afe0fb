package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cyberguard-lab/internal/api/middleware"
	"cyberguard-lab/internal/domain/models"
	"cyberguard-lab/internal/domain/services"
	"cyberguard-lab/internal/infrastructure/database/repository"
	"cyberguard-lab/pkg/logger"
)

// AdminHandler handles analyst and admin endpoints
type AdminHandler struct {
	incidents *services.IncidentService
	audit     *services.AuditService
	logger    *logger.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(incidents *services.IncidentService, audit *services.AuditService, log *logger.Logger) *AdminHandler {
	return &AdminHandler{
		incidents: incidents,
		audit:     audit,
		logger:    log.WithComponent("admin-handler"),
	}
}

// List handles GET /api/v1/admin/incidents with optional filters
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.IncidentFilter{
		ReportedBy: q.Get("reported_by"),
		Status:     models.IncidentStatus(q.Get("status")),
		RiskLevel:  models.RiskLevel(q.Get("risk_level")),
		Limit:      parseLimit(q.Get("limit")),
	}
	if flagged := q.Get("flagged"); flagged != "" {
		v := flagged == "true"
		filter.Flagged = &v
	}

	incidents, err := h.incidents.List(r.Context(), filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list incidents")
		http.Error(w, `{"error":"failed to list incidents"}`, http.StatusInternalServerError)
		return
	}
	if incidents == nil {
		incidents = []models.Incident{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"incidents": incidents,
		"count":     len(incidents),
	})
}

// ReviewRequest is the request body for an analyst review
type ReviewRequest struct {
	ThreatType      models.ThreatType `json:"threat_type"`
	AnalystNotes    string            `json:"analyst_notes"`
	FinalVerdict    string            `json:"final_verdict"`
	ResponseActions []string          `json:"response_actions"`
}

// Review handles POST /api/v1/admin/incidents/{id}/review
func (h *AdminHandler) Review(w http.ResponseWriter, r *http.Request) {
	var req ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	review := repository.Review{
		AnalystName:     middleware.ActorEmail(r.Context()),
		ThreatType:      req.ThreatType,
		AnalystNotes:    req.AnalystNotes,
		FinalVerdict:    req.FinalVerdict,
		ResponseActions: req.ResponseActions,
	}

	err := h.incidents.Review(r.Context(), chi.URLParam(r, "id"), review)
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, `{"error":"incident not found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Debug().Err(err).Msg("review rejected")
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "reviewed"})
}

// StatusRequest is the request body for a status change
type StatusRequest struct {
	Status models.IncidentStatus `json:"status"`
}

// UpdateStatus handles PATCH /api/v1/admin/incidents/{id}/status
func (h *AdminHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
		return
	}

	err := h.incidents.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status, middleware.ActorEmail(r.Context()))
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, `{"error":"incident not found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": string(req.Status)})
}

// Delete handles DELETE /api/v1/admin/incidents/{id}
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.incidents.Delete(r.Context(), chi.URLParam(r, "id"), middleware.ActorEmail(r.Context()))
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, `{"error":"incident not found"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to delete incident")
		http.Error(w, `{"error":"failed to delete incident"}`, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Stats handles GET /api/v1/admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.incidents.Stats(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to compute stats")
		http.Error(w, `{"error":"failed to compute stats"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"by_risk_level": counts})
}

// AuditTrail handles GET /api/v1/admin/audit/{actor}
func (h *AdminHandler) AuditTrail(w http.ResponseWriter, r *http.Request) {
	events, err := h.audit.History(r.Context(), chi.URLParam(r, "actor"), parseLimit(r.URL.Query().Get("limit")))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list audit events")
		http.Error(w, `{"error":"failed to list audit events"}`, http.StatusInternalServerError)
		return
	}
	if events == nil {
		events = []models.AuditEvent{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"events": events,
		"count":  len(events),
	})
}
