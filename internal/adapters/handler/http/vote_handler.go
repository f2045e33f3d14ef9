package http

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/eballot/api/internal/core/domain"
	"github.com/eballot/api/internal/core/ports"
	"github.com/go-chi/chi/v5"
)

type VoteHandler struct {
	service ports.VoteService
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

type castVoteRequest struct {
	VoterName   string `json:"voterName"`
	CandidateID string `json:"candidateId"`
}

func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req castVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	vote, err := h.service.Cast(r.Context(), ports.CastVoteInput{
		VoterName:   req.VoterName,
		CandidateID: req.CandidateID,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"id": vote.ID})
}

func (h *VoteHandler) ResetVotes(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.Reset(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]int64{"deletedCount": deleted})
}

func (h *VoteHandler) ListVoters(w http.ResponseWriter, r *http.Request) {
	voters, err := h.service.ListVoters(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if voters == nil {
		voters = []domain.VoterRecord{}
	}

	respondJSON(w, http.StatusOK, map[string]any{"voters": voters})
}

func (h *VoteHandler) CheckVoter(w http.ResponseWriter, r *http.Request) {
	// chi hands back the percent-encoded path segment; names like
	// "John Smith" arrive as "John%20Smith".
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid voter name"})
		return
	}

	hasVoted, err := h.service.HasVoted(r.Context(), name)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"hasVoted": hasVoted})
}
