package api

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/soclabs/dgahound/internal/score"
	"github.com/soclabs/dgahound/internal/slack"
)

// Handler manages API endpoints
type Handler struct {
	engine      *score.Engine
	notifier    *slack.Client
	maxBodySize int64
	checkDNS    bool
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	ModelID   string `json:"model_id"`
	Timestamp string `json:"timestamp"`
}

// handleHealth returns service health and the loaded model identity
func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   "dgahound",
		ModelID:   h.engine.ModelID(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// AnalyzeRequest represents a domain scoring request
type AnalyzeRequest struct {
	// Domain to score
	Domain string `json:"domain"`
}

// AnalyzeResponse wraps the analysis result
type AnalyzeResponse struct {
	Success bool            `json:"success"`
	Data    *score.Analysis `json:"data,omitempty"`
}

// handleAnalyze scores a single domain
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	var req AnalyzeRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, errCodeInvalidRequest, ErrInvalidRequestBody.Error())
		return
	}

	if req.Domain == "" {
		writeError(w, http.StatusBadRequest, errCodeValidation, ErrDomainRequired.Error())
		return
	}

	analysis, err := h.engine.Analyze(r.Context(), req.Domain, h.checkDNS)
	if err != nil {
		log.Error().Err(err).Str("domain", req.Domain).Msg("analysis failed")
		writeError(w, http.StatusInternalServerError, errCodeInternal, "analysis failed")
		return
	}

	if analysis.Label.IsDGA() {
		h.notify(r, analysis)
	}

	writeJSON(w, http.StatusOK, AnalyzeResponse{Success: true, Data: analysis})
}

// notify posts a Slack alert for a positive verdict; failures are logged,
// never surfaced to the API caller
func (h *Handler) notify(r *http.Request, analysis *score.Analysis) {
	if h.notifier == nil {
		return
	}

	msg := slack.NewDGAAlert(analysis.Domain, analysis.Probability, h.engine.ModelID())

	if err := h.notifier.Send(r.Context(), msg); err != nil {
		log.Warn().Err(err).Str("domain", analysis.Domain).Msg("slack notification failed")
	}
}
