package ports

import (
	"context"

	"github.com/eballot/api/internal/core/domain"
)

type ResultRepository interface {
	// CountsByCandidate returns one row per candidate ordered by position,
	// including candidates with zero votes. Percentages are left for the
	// service to derive.
	CountsByCandidate(ctx context.Context) ([]domain.CandidateResult, error)
}

type ResultService interface {
	Tally(ctx context.Context) (*domain.ElectionResult, error)
}
