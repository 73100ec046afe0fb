package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"cyberguard-lab/internal/api/middleware"
	"cyberguard-lab/internal/domain/models"
	"cyberguard-lab/internal/domain/services"
	"cyberguard-lab/internal/infrastructure/database/repository"
	"cyberguard-lab/pkg/logger"
)

// maxUploadBytes caps evidence image uploads per request
const maxUploadBytes = 16 << 20

// IncidentsHandler handles incident reporting and retrieval
type IncidentsHandler struct {
	incidents *services.IncidentService
	extractor services.TextExtractor
	logger    *logger.Logger
}

// NewIncidentsHandler creates a new incidents handler
func NewIncidentsHandler(incidents *services.IncidentService, extractor services.TextExtractor, log *logger.Logger) *IncidentsHandler {
	return &IncidentsHandler{
		incidents: incidents,
		extractor: extractor,
		logger:    log.WithComponent("incidents-handler"),
	}
}

// Report handles POST /api/v1/incidents. It accepts either a JSON body
// or a multipart form with evidence images attached under "evidence".
func (h *IncidentsHandler) Report(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorEmail(r.Context())

	var sub services.IncidentSubmission
	var ocrText string
	var ocrResults []services.ExtractionResult

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			http.Error(w, `{"error":"invalid multipart form"}`, http.StatusBadRequest)
			return
		}

		sub = services.IncidentSubmission{
			Platform:      r.FormValue("platform"),
			IncidentDate:  r.FormValue("incident_date"),
			Relationship:  r.FormValue("relationship"),
			Narrative:     r.FormValue("narrative"),
			IOCIndicators: r.FormValue("ioc_indicators"),
		}

		var images []services.UploadedImage
		if r.MultipartForm != nil {
			for _, fh := range r.MultipartForm.File["evidence"] {
				f, err := fh.Open()
				if err != nil {
					h.logger.Warn().Err(err).Str("filename", fh.Filename).Msg("failed to open upload")
					continue
				}
				defer f.Close()
				images = append(images, services.UploadedImage{Filename: fh.Filename, Content: f})
			}
		}
		ocrText, ocrResults = services.ExtractFromImages(r.Context(), h.extractor, images, h.logger)
	} else {
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
	}

	incident, err := h.incidents.Report(r.Context(), actor, sub, ocrText)
	if err != nil {
		h.logger.Debug().Err(err).Msg("incident submission rejected")
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	response := map[string]any{"incident": incident}
	if len(ocrResults) > 0 {
		response["ocr_results"] = ocrResults
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(response)
}

// List handles GET /api/v1/incidents - the caller's own incidents
func (h *IncidentsHandler) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.ActorEmail(r.Context())

	filter := repository.IncidentFilter{
		ReportedBy: actor,
		Status:     models.IncidentStatus(r.URL.Query().Get("status")),
		RiskLevel:  models.RiskLevel(r.URL.Query().Get("risk_level")),
		Limit:      parseLimit(r.URL.Query().Get("limit")),
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

// Get handles GET /api/v1/incidents/{id}
func (h *IncidentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	incident, ok := h.fetchAuthorized(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(incident)
}

// Analysis handles GET /api/v1/incidents/{id}/analysis. It returns the
// engine's verdict for the incident together with the playbook guidance.
func (h *IncidentsHandler) Analysis(w http.ResponseWriter, r *http.Request) {
	incident, ok := h.fetchAuthorized(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"risk_score":        incident.RiskScore,
		"risk_level":        incident.RiskLevel,
		"risk_reasons":      incident.RiskReasons,
		"flagged":           incident.Flagged,
		"threat_type":       incident.ThreatTypeSuggested,
		"threat_confidence": incident.ThreatConfidence,
		"immediate_actions": incident.ImmediateActions,
		"preventive_advice": incident.PreventiveAdvice,
	})
}

// VerifyIntegrity handles GET /api/v1/incidents/{id}/integrity
func (h *IncidentsHandler) VerifyIntegrity(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.fetchAuthorized(w, r); !ok {
		return
	}

	report, err := h.incidents.VerifyIntegrity(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error().Err(err).Msg("integrity verification failed")
		http.Error(w, `{"error":"integrity verification failed"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

// fetchAuthorized loads the incident and enforces that non-staff
// callers only see their own reports. It writes the error response
// itself when returning ok=false.
func (h *IncidentsHandler) fetchAuthorized(w http.ResponseWriter, r *http.Request) (*models.Incident, bool) {
	incident, err := h.incidents.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, `{"error":"incident not found"}`, http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to fetch incident")
		http.Error(w, `{"error":"failed to fetch incident"}`, http.StatusInternalServerError)
		return nil, false
	}

	claims := middleware.GetClaims(r.Context())
	if claims == nil || (!claims.Role.IsStaff() && incident.ReportedBy != claims.Email) {
		http.Error(w, `{"error":"incident not found"}`, http.StatusNotFound)
		return nil, false
	}

	return incident, true
}

func parseLimit(raw string) int64 {
	if raw == "" {
		return 0
	}
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}
