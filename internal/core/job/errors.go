package job

import "errors"

var (
	ErrInvalidID        = errors.New("job: invalid id")
	ErrInvalidPageSize  = errors.New("job: invalid page size")
	ErrInvalidPageToken = errors.New("job: invalid page token")
	ErrJobNotFound      = errors.New("job: not found")
)
