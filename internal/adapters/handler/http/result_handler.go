package http

import (
	"encoding/json"
	"net/http"

	"github.com/eballot/api/internal/core/ports"
)

type ResultHandler struct {
	resultService   ports.ResultService
	settingsService ports.SettingsService
}

func NewResultHandler(resultService ports.ResultService, settingsService ports.SettingsService) *ResultHandler {
	return &ResultHandler{
		resultService:   resultService,
		settingsService: settingsService,
	}
}

func (h *ResultHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	result, err := h.resultService.Tally(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

type publishRequest struct {
	Publish        bool  `json:"publish"`
	AnnounceWinner *bool `json:"announceWinner,omitempty"`
}

func (h *ResultHandler) PublishResults(w http.ResponseWriter, r *http.Request) {
	var req publishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := h.settingsService.SetResultsPublished(r.Context(), req.Publish); err != nil {
		respondError(w, err)
		return
	}

	if req.AnnounceWinner != nil {
		if err := h.settingsService.SetWinnerAnnounced(r.Context(), *req.AnnounceWinner); err != nil {
			respondError(w, err)
			return
		}
	}

	respondJSON(w, http.StatusOK, map[string]bool{"published": req.Publish})
}

func (h *ResultHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.Get(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"settings": settings})
}
