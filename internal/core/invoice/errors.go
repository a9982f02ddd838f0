package invoice

import "errors"

var (
	ErrInvalidID        = errors.New("invoice: invalid id")
	ErrInvalidAmount    = errors.New("invoice: amount must be positive")
	ErrInvalidPageSize  = errors.New("invoice: invalid page size")
	ErrInvalidPageToken = errors.New("invoice: invalid page token")
	ErrInvoiceNotFound  = errors.New("invoice: not found")
	ErrAlreadyPaid      = errors.New("invoice: already paid")
)
