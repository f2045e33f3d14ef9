package services

import (
	"context"

	"github.com/eballot/api/internal/core/domain"
	"github.com/eballot/api/internal/core/ports"
)

type settingsService struct {
	repo ports.SettingsRepository
}

func NewSettingsService(repo ports.SettingsRepository) ports.SettingsService {
	return &settingsService{
		repo: repo,
	}
}

func (s *settingsService) Get(ctx context.Context) (*domain.Settings, error) {
	return s.repo.Get(ctx)
}

func (s *settingsService) SetResultsPublished(ctx context.Context, published bool) error {
	return s.repo.Set(ctx, domain.SettingResultsPublished, published)
}

func (s *settingsService) SetWinnerAnnounced(ctx context.Context, announced bool) error {
	return s.repo.Set(ctx, domain.SettingWinnerAnnounced, announced)
}
