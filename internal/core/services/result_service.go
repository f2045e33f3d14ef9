package services

import (
	"context"
	"fmt"
	"math"

	"github.com/eballot/api/internal/core/domain"
	"github.com/eballot/api/internal/core/ports"
)

type resultService struct {
	resultRepo ports.ResultRepository
}

func NewResultService(resultRepo ports.ResultRepository) ports.ResultService {
	return &resultService{
		resultRepo: resultRepo,
	}
}

// Tally recomputes counts, percentages and the winner from scratch on every
// call. Every candidate appears, including ones with zero votes.
func (s *resultService) Tally(ctx context.Context) (*domain.ElectionResult, error) {
	results, err := s.resultRepo.CountsByCandidate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vote counts: %w", err)
	}

	var total int64
	for _, r := range results {
		total += r.VoteCount
	}

	for i := range results {
		if total > 0 {
			pct := float64(results[i].VoteCount) / float64(total) * 100
			results[i].Percentage = math.Round(pct*10) / 10
		} else {
			results[i].Percentage = 0
		}
	}

	var maxCount int64
	atMax := 0
	var leader *domain.CandidateResult
	for i := range results {
		switch {
		case results[i].VoteCount > maxCount:
			maxCount = results[i].VoteCount
			atMax = 1
			leader = &results[i]
		case results[i].VoteCount == maxCount && maxCount > 0:
			atMax++
		}
	}

	result := &domain.ElectionResult{
		Results:    results,
		TotalVotes: total,
		Tie:        maxCount > 0 && atMax > 1,
	}
	if maxCount > 0 && atMax == 1 {
		result.Winner = leader
	}

	return result, nil
}
