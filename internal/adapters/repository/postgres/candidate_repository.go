package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eballot/api/internal/core/domain"
	"github.com/eballot/api/internal/core/ports"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type candidateRepository struct {
	db *sql.DB
}

func NewCandidateRepository(db *sql.DB) ports.CandidateRepository {
	return &candidateRepository{
		db: db,
	}
}

func (r *candidateRepository) List(ctx context.Context) ([]domain.Candidate, error) {
	query := `
		SELECT id, name, position
		FROM candidates
		ORDER BY position ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var candidates []domain.Candidate
	for rows.Next() {
		var c domain.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Position); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidates: %w", err)
	}
	return candidates, nil
}

func (r *candidateRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	query := `
		SELECT id, name, position
		FROM candidates
		WHERE id = $1
	`
	var c domain.Candidate
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Position)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCandidateNotFound
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return &c, nil
}

func (r *candidateRepository) Create(ctx context.Context, candidate *domain.Candidate) error {
	query := `
		INSERT INTO candidates (id, name, position)
		VALUES ($1, $2, (SELECT COALESCE(MAX(position), 0) + 1 FROM candidates))
		RETURNING position
	`

	// Two concurrent creates can compute the same max+1; the position
	// constraint rejects one at commit, so retry with a fresh max.
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		err = r.db.QueryRowContext(ctx, query, candidate.ID, candidate.Name).Scan(&candidate.Position)
		if err == nil {
			return nil
		}

		var pqErr *pq.Error
		if !errors.As(err, &pqErr) || pqErr.Code != pqUniqueViolation {
			break
		}
	}
	return fmt.Errorf("failed to insert candidate: %w", err)
}

func (r *candidateRepository) Rename(ctx context.Context, id uuid.UUID, name string) error {
	query := `UPDATE candidates SET name = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, name)
	if err != nil {
		return fmt.Errorf("failed to rename candidate: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrCandidateNotFound
	}
	return nil
}

// Delete removes a candidate and re-packs the positions above it so they
// stay a dense 1..N sequence, all in one transaction.
func (r *candidateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var position int
	err = tx.QueryRowContext(ctx, `SELECT position FROM candidates WHERE id = $1`, id).Scan(&position)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrCandidateNotFound
		}
		return fmt.Errorf("failed to get candidate position: %w", err)
	}

	var voteCount int64
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM votes WHERE candidate_id = $1`, id).Scan(&voteCount)
	if err != nil {
		return fmt.Errorf("failed to count candidate votes: %w", err)
	}
	if voteCount > 0 {
		return domain.ErrCandidateHasVotes
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM candidates WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}

	_, err = tx.ExecContext(ctx, `UPDATE candidates SET position = position - 1 WHERE position > $1`, position)
	if err != nil {
		return fmt.Errorf("failed to re-pack positions: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
