package services

import (
	"context"
	"testing"

	"github.com/eballot/api/internal/core/domain"
	"github.com/eballot/api/internal/core/ports"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCandidateRepo struct {
	candidates map[uuid.UUID]domain.Candidate
}

func newFakeCandidateRepo(candidates ...domain.Candidate) *fakeCandidateRepo {
	repo := &fakeCandidateRepo{candidates: make(map[uuid.UUID]domain.Candidate)}
	for _, c := range candidates {
		repo.candidates[c.ID] = c
	}
	return repo
}

func (r *fakeCandidateRepo) List(ctx context.Context) ([]domain.Candidate, error) {
	var out []domain.Candidate
	for _, c := range r.candidates {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCandidateRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Candidate, error) {
	c, ok := r.candidates[id]
	if !ok {
		return nil, domain.ErrCandidateNotFound
	}
	return &c, nil
}

func (r *fakeCandidateRepo) Create(ctx context.Context, candidate *domain.Candidate) error {
	candidate.Position = len(r.candidates) + 1
	r.candidates[candidate.ID] = *candidate
	return nil
}

func (r *fakeCandidateRepo) Rename(ctx context.Context, id uuid.UUID, name string) error {
	c, ok := r.candidates[id]
	if !ok {
		return domain.ErrCandidateNotFound
	}
	c.Name = name
	r.candidates[id] = c
	return nil
}

func (r *fakeCandidateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.candidates[id]; !ok {
		return domain.ErrCandidateNotFound
	}
	delete(r.candidates, id)
	return nil
}

type fakeVoteRepo struct {
	voted   bool
	saveErr error
	saved   []domain.Vote
}

func (r *fakeVoteRepo) Save(ctx context.Context, vote *domain.Vote) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, *vote)
	return nil
}

func (r *fakeVoteRepo) HasVoted(ctx context.Context, voterName string) (bool, error) {
	return r.voted, nil
}

func (r *fakeVoteRepo) ListVoters(ctx context.Context) ([]domain.VoterRecord, error) {
	return nil, nil
}

func (r *fakeVoteRepo) DeleteAll(ctx context.Context) (int64, error) {
	deleted := int64(len(r.saved))
	r.saved = nil
	return deleted, nil
}

func TestCastVoteValidation(t *testing.T) {
	candidate := domain.Candidate{ID: uuid.New(), Name: "A", Position: 1}
	svc := NewVoteService(newFakeCandidateRepo(candidate), &fakeVoteRepo{})

	_, err := svc.Cast(context.Background(), ports.CastVoteInput{
		VoterName: "   ", CandidateID: candidate.ID.String(),
	})
	assert.ErrorIs(t, err, domain.ErrVoterNameRequired)

	_, err = svc.Cast(context.Background(), ports.CastVoteInput{
		VoterName: "Alice", CandidateID: "",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCandidateID)

	_, err = svc.Cast(context.Background(), ports.CastVoteInput{
		VoterName: "Alice", CandidateID: "not-a-uuid",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCandidateID)
}

func TestCastVoteUnknownCandidate(t *testing.T) {
	svc := NewVoteService(newFakeCandidateRepo(), &fakeVoteRepo{})

	_, err := svc.Cast(context.Background(), ports.CastVoteInput{
		VoterName: "Alice", CandidateID: uuid.NewString(),
	})
	assert.ErrorIs(t, err, domain.ErrCandidateNotFound)
}

func TestCastVoteAlreadyVotedPreCheck(t *testing.T) {
	candidate := domain.Candidate{ID: uuid.New(), Name: "A", Position: 1}
	svc := NewVoteService(newFakeCandidateRepo(candidate), &fakeVoteRepo{voted: true})

	_, err := svc.Cast(context.Background(), ports.CastVoteInput{
		VoterName: "Alice", CandidateID: candidate.ID.String(),
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyVoted)
}

// A duplicate that slips past the pre-check is surfaced by the store as the
// same conflict, not as an internal error.
func TestCastVoteStorageConflict(t *testing.T) {
	candidate := domain.Candidate{ID: uuid.New(), Name: "A", Position: 1}
	voteRepo := &fakeVoteRepo{saveErr: domain.ErrAlreadyVoted}
	svc := NewVoteService(newFakeCandidateRepo(candidate), voteRepo)

	_, err := svc.Cast(context.Background(), ports.CastVoteInput{
		VoterName: "Alice", CandidateID: candidate.ID.String(),
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyVoted)
}

func TestCastVoteTrimsVoterName(t *testing.T) {
	candidate := domain.Candidate{ID: uuid.New(), Name: "A", Position: 1}
	voteRepo := &fakeVoteRepo{}
	svc := NewVoteService(newFakeCandidateRepo(candidate), voteRepo)

	vote, err := svc.Cast(context.Background(), ports.CastVoteInput{
		VoterName: "  Alice  ", CandidateID: candidate.ID.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", vote.VoterName)
	require.Len(t, voteRepo.saved, 1)
	assert.Equal(t, candidate.ID, voteRepo.saved[0].CandidateID)
}

func TestHasVotedRequiresName(t *testing.T) {
	svc := NewVoteService(newFakeCandidateRepo(), &fakeVoteRepo{})

	_, err := svc.HasVoted(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrVoterNameRequired)
}
