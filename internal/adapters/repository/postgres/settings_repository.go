package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/eballot/api/internal/core/domain"
	"github.com/eballot/api/internal/core/ports"
)

type settingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) ports.SettingsRepository {
	return &settingsRepository{
		db: db,
	}
}

func (r *settingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	query := `SELECT key, value FROM settings WHERE key IN ($1, $2)`
	rows, err := r.db.QueryContext(ctx, query,
		domain.SettingResultsPublished, domain.SettingWinnerAnnounced)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	defer rows.Close()

	settings := &domain.Settings{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}

		// Values are stored stringly; anything unparsable reads as false.
		parsed, _ := strconv.ParseBool(value)
		switch key {
		case domain.SettingResultsPublished:
			settings.ResultsPublished = parsed
		case domain.SettingWinnerAnnounced:
			settings.WinnerAnnounced = parsed
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating settings: %w", err)
	}
	return settings, nil
}

func (r *settingsRepository) Set(ctx context.Context, key string, value bool) error {
	query := `
		INSERT INTO settings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
		    updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, key, strconv.FormatBool(value))
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}
