package ports

import (
	"context"

	"github.com/eballot/api/internal/core/domain"
)

type VoteRepository interface {
	// Save inserts the vote. The storage layer holds a uniqueness
	// constraint on the normalized voter name and reports a duplicate as
	// domain.ErrAlreadyVoted, which makes it the authoritative check when
	// two requests for the same voter race.
	Save(ctx context.Context, vote *domain.Vote) error
	HasVoted(ctx context.Context, voterName string) (bool, error)
	ListVoters(ctx context.Context) ([]domain.VoterRecord, error)
	// DeleteAll removes every vote and clears the results_published flag
	// in the same transaction, returning the number of votes removed.
	DeleteAll(ctx context.Context) (int64, error)
}

type CastVoteInput struct {
	VoterName   string
	CandidateID string
}

type VoteService interface {
	Cast(ctx context.Context, input CastVoteInput) (*domain.Vote, error)
	HasVoted(ctx context.Context, voterName string) (bool, error)
	ListVoters(ctx context.Context) ([]domain.VoterRecord, error)
	Reset(ctx context.Context) (int64, error)
}
