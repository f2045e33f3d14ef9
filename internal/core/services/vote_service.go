package services

import (
	"context"
	"strings"
	"time"

	"github.com/eballot/api/internal/core/domain"
	"github.com/eballot/api/internal/core/ports"
	"github.com/google/uuid"
)

type voteService struct {
	candidateRepo ports.CandidateRepository
	voteRepo      ports.VoteRepository
}

func NewVoteService(candidateRepo ports.CandidateRepository, voteRepo ports.VoteRepository) ports.VoteService {
	return &voteService{
		candidateRepo: candidateRepo,
		voteRepo:      voteRepo,
	}
}

func (s *voteService) Cast(ctx context.Context, input ports.CastVoteInput) (*domain.Vote, error) {
	voterName := strings.TrimSpace(input.VoterName)
	if voterName == "" {
		return nil, domain.ErrVoterNameRequired
	}
	if strings.TrimSpace(input.CandidateID) == "" {
		return nil, domain.ErrInvalidCandidateID
	}

	candidateID, err := uuid.Parse(input.CandidateID)
	if err != nil {
		return nil, domain.ErrInvalidCandidateID
	}

	if _, err := s.candidateRepo.GetByID(ctx, candidateID); err != nil {
		return nil, err
	}

	hasVoted, err := s.voteRepo.HasVoted(ctx, voterName)
	if err != nil {
		return nil, err
	}
	if hasVoted {
		return nil, domain.ErrAlreadyVoted
	}

	vote := &domain.Vote{
		ID:          uuid.New(),
		VoterName:   voterName,
		CandidateID: candidateID,
		CreatedAt:   time.Now(),
	}

	// The pre-check above can race with a concurrent cast for the same
	// voter; the unique index on the normalized name decides the loser,
	// and the repository reports it as ErrAlreadyVoted.
	if err := s.voteRepo.Save(ctx, vote); err != nil {
		return nil, err
	}

	return vote, nil
}

func (s *voteService) HasVoted(ctx context.Context, voterName string) (bool, error) {
	voterName = strings.TrimSpace(voterName)
	if voterName == "" {
		return false, domain.ErrVoterNameRequired
	}

	return s.voteRepo.HasVoted(ctx, voterName)
}

func (s *voteService) ListVoters(ctx context.Context) ([]domain.VoterRecord, error) {
	return s.voteRepo.ListVoters(ctx)
}

func (s *voteService) Reset(ctx context.Context) (int64, error) {
	return s.voteRepo.DeleteAll(ctx)
}
