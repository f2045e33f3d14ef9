package domain

import "github.com/google/uuid"

type CandidateResult struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Position   int       `json:"position"`
	VoteCount  int64     `json:"vote_count"`
	Percentage float64   `json:"percentage"`
}

// ElectionResult is always recomputed on demand, never persisted. Winner is
// nil unless exactly one candidate holds the maximum and the maximum is
// positive; Tie is true when two or more candidates share a positive maximum.
type ElectionResult struct {
	Results    []CandidateResult `json:"results"`
	TotalVotes int64             `json:"totalVotes"`
	Winner     *CandidateResult  `json:"winner"`
	Tie        bool              `json:"tie"`
}
