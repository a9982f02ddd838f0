package matching

import "errors"

var (
	ErrInvalidCandidateID = errors.New("matching: invalid candidate id")
	ErrInvalidJobID       = errors.New("matching: invalid job id")
)
