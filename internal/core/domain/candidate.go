package domain

import "github.com/google/uuid"

// Candidate is a single election entry. Position is a dense 1-based display
// order, unique across candidates and re-packed whenever one is deleted.
type Candidate struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Position int       `json:"position"`
}
