package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eballot/api/internal/core/domain"
	"github.com/eballot/api/internal/core/ports"
)

type resultRepository struct {
	db *sql.DB
}

func NewResultRepository(db *sql.DB) ports.ResultRepository {
	return &resultRepository{
		db: db,
	}
}

func (r *resultRepository) CountsByCandidate(ctx context.Context) ([]domain.CandidateResult, error) {
	// LEFT JOIN keeps zero-vote candidates in the tally.
	query := `
		SELECT c.id, c.name, c.position, COUNT(v.id)
		FROM candidates c
		LEFT JOIN votes v ON v.candidate_id = c.id
		GROUP BY c.id, c.name, c.position
		ORDER BY c.position ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vote counts: %w", err)
	}
	defer rows.Close()

	var results []domain.CandidateResult
	for rows.Next() {
		var res domain.CandidateResult
		if err := rows.Scan(&res.ID, &res.Name, &res.Position, &res.VoteCount); err != nil {
			return nil, fmt.Errorf("failed to scan vote count: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vote counts: %w", err)
	}
	return results, nil
}
