package timecard

import "errors"

var (
	ErrInvalidID            = errors.New("timecard: invalid id")
	ErrInvalidApplicationID = errors.New("timecard: invalid application id")
	ErrInvalidHours         = errors.New("timecard: hours must not be negative")
	ErrInvalidBillRate      = errors.New("timecard: bill rate must be positive")
	ErrTimecardNotFound     = errors.New("timecard: not found")
	ErrAlreadyFinalized     = errors.New("timecard: already approved or rejected")
)
