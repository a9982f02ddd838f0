package application

import "errors"

var (
	ErrInvalidID            = errors.New("application: invalid id")
	ErrInvalidCandidateID   = errors.New("application: invalid candidate id")
	ErrInvalidJobID         = errors.New("application: invalid job id")
	ErrInvalidStatus        = errors.New("application: invalid status")
	ErrInvalidPageSize      = errors.New("application: invalid page size")
	ErrInvalidPageToken     = errors.New("application: invalid page token")
	ErrApplicationNotFound  = errors.New("application: not found")
	ErrDuplicateApplication = errors.New("application: already exists for candidate and job")
	ErrInvalidTransition    = errors.New("application: invalid status transition")
	ErrAlreadyFinalized     = errors.New("application: already in a terminal state")
)
