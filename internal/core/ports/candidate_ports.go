package ports

import (
	"context"

	"github.com/eballot/api/internal/core/domain"
	"github.com/google/uuid"
)

type CandidateRepository interface {
	// List returns every candidate ordered by position ascending.
	List(ctx context.Context) ([]domain.Candidate, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Candidate, error)
	// Create assigns the next free position (max + 1) and fills it in.
	Create(ctx context.Context, candidate *domain.Candidate) error
	Rename(ctx context.Context, id uuid.UUID, name string) error
	// Delete removes the candidate and closes the position gap it leaves,
	// in a single transaction. Fails with ErrCandidateHasVotes if any vote
	// references it.
	Delete(ctx context.Context, id uuid.UUID) error
}

type CandidateService interface {
	List(ctx context.Context) ([]domain.Candidate, error)
	Create(ctx context.Context, name string) (*domain.Candidate, error)
	Rename(ctx context.Context, id string, name string) error
	Delete(ctx context.Context, id string) error
}
