package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eballot/api/internal/core/domain"
	"github.com/eballot/api/internal/core/ports"
	"github.com/lib/pq"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{
		db: db,
	}
}

func (r *voteRepository) Save(ctx context.Context, vote *domain.Vote) error {
	query := `
		INSERT INTO votes (id, voter_name, candidate_id)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, vote.ID, vote.VoterName, vote.CandidateID).Scan(&vote.CreatedAt)
	if err != nil {
		// The unique index on lower(btrim(voter_name)) is the last line
		// of defense against two concurrent casts by the same voter.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case pqUniqueViolation:
				return domain.ErrAlreadyVoted
			case pqForeignKeyViolation:
				return domain.ErrCandidateNotFound
			}
		}
		return fmt.Errorf("failed to save vote: %w", err)
	}
	return nil
}

func (r *voteRepository) HasVoted(ctx context.Context, voterName string) (bool, error) {
	query := `SELECT 1 FROM votes WHERE lower(btrim(voter_name)) = lower(btrim($1)) LIMIT 1`
	var exists int
	err := r.db.QueryRowContext(ctx, query, voterName).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check existing vote: %w", err)
	}
	return true, nil
}

func (r *voteRepository) ListVoters(ctx context.Context) ([]domain.VoterRecord, error) {
	query := `
		SELECT v.voter_name, c.name, v.created_at
		FROM votes v
		JOIN candidates c ON c.id = v.candidate_id
		ORDER BY v.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list voters: %w", err)
	}
	defer rows.Close()

	var voters []domain.VoterRecord
	for rows.Next() {
		var rec domain.VoterRecord
		if err := rows.Scan(&rec.VoterName, &rec.CandidateName, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan voter: %w", err)
		}
		voters = append(voters, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating voters: %w", err)
	}
	return voters, nil
}

// DeleteAll clears every vote and flips results_published back to false in
// the same transaction, so there is no window where votes are gone but the
// publication flag still reads true.
func (r *voteRepository) DeleteAll(ctx context.Context) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM votes`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete votes: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE settings SET value = 'false', updated_at = NOW() WHERE key = $1`,
		domain.SettingResultsPublished)
	if err != nil {
		return 0, fmt.Errorf("failed to clear publish flag: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return deleted, nil
}
