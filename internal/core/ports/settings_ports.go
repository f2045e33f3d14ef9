package ports

import (
	"context"

	"github.com/eballot/api/internal/core/domain"
)

type SettingsRepository interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Set(ctx context.Context, key string, value bool) error
}

type SettingsService interface {
	Get(ctx context.Context) (*domain.Settings, error)
	SetResultsPublished(ctx context.Context, published bool) error
	SetWinnerAnnounced(ctx context.Context, announced bool) error
}
