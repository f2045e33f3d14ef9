package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vote is immutable once cast; votes only disappear through a full reset.
type Vote struct {
	ID          uuid.UUID `json:"id"`
	VoterName   string    `json:"voter_name"`
	CandidateID uuid.UUID `json:"candidate_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// VoterRecord is a vote joined with its candidate, for the admin voter list.
type VoterRecord struct {
	VoterName     string    `json:"voter_name"`
	CandidateName string    `json:"candidate_name"`
	CreatedAt     time.Time `json:"timestamp"`
}
