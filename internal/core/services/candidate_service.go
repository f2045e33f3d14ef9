package services

import (
	"context"
	"strings"

	"github.com/eballot/api/internal/core/domain"
	"github.com/eballot/api/internal/core/ports"
	"github.com/google/uuid"
)

type candidateService struct {
	repo ports.CandidateRepository
}

func NewCandidateService(repo ports.CandidateRepository) ports.CandidateService {
	return &candidateService{
		repo: repo,
	}
}

func (s *candidateService) List(ctx context.Context) ([]domain.Candidate, error) {
	return s.repo.List(ctx)
}

func (s *candidateService) Create(ctx context.Context, name string) (*domain.Candidate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrCandidateNameRequired
	}

	candidate := &domain.Candidate{
		ID:   uuid.New(),
		Name: name,
	}

	if err := s.repo.Create(ctx, candidate); err != nil {
		return nil, err
	}

	return candidate, nil
}

func (s *candidateService) Rename(ctx context.Context, id string, name string) error {
	candidateID, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrInvalidCandidateID
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrCandidateNameRequired
	}

	return s.repo.Rename(ctx, candidateID, name)
}

func (s *candidateService) Delete(ctx context.Context, id string) error {
	candidateID, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrInvalidCandidateID
	}

	return s.repo.Delete(ctx, candidateID)
}
