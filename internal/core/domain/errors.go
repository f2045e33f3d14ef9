package domain

import "errors"

var (
	ErrCandidateNotFound     = errors.New("candidate not found")
	ErrInvalidCandidateID    = errors.New("invalid candidate id")
	ErrCandidateNameRequired = errors.New("candidate name is required")
	ErrCandidateHasVotes     = errors.New("candidate has recorded votes, reset votes first")
	ErrVoterNameRequired     = errors.New("voter name is required")
	ErrAlreadyVoted          = errors.New("voter has already voted")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrInternal              = errors.New("internal server error")
)
