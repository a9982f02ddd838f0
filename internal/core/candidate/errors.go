package candidate

import "errors"

var (
	ErrInvalidID             = errors.New("candidate: invalid id")
	ErrInvalidName           = errors.New("candidate: invalid name")
	ErrInvalidDocumentType   = errors.New("candidate: invalid document type")
	ErrInvalidDocumentStatus = errors.New("candidate: invalid document status")
	ErrInvalidCompletionPct  = errors.New("candidate: completion percentage out of range")
	ErrInvalidPageSize       = errors.New("candidate: invalid page size")
	ErrInvalidPageToken      = errors.New("candidate: invalid page token")
	ErrCandidateNotFound     = errors.New("candidate: not found")
)
