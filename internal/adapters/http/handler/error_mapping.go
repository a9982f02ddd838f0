package handler

import (
	"errors"

	"github.com/ogurasousui/staffing-readiness-engine/internal/core/application"
	"github.com/ogurasousui/staffing-readiness-engine/internal/core/candidate"
	"github.com/ogurasousui/staffing-readiness-engine/internal/core/compliance"
	"github.com/ogurasousui/staffing-readiness-engine/internal/core/invoice"
	"github.com/ogurasousui/staffing-readiness-engine/internal/core/job"
	"github.com/ogurasousui/staffing-readiness-engine/internal/core/matching"
	"github.com/ogurasousui/staffing-readiness-engine/internal/core/timecard"
	"github.com/valyala/fasthttp"
)

// statusForError はドメインのセンチネルエラーを HTTP ステータスコードに
// 変換します。未知のエラーはすべて 500 として扱います。
func statusForError(err error) int {
	switch {
	case err == nil:
		return fasthttp.StatusOK
	case errors.Is(err, candidate.ErrInvalidID),
		errors.Is(err, candidate.ErrInvalidName),
		errors.Is(err, candidate.ErrInvalidDocumentType),
		errors.Is(err, candidate.ErrInvalidDocumentStatus),
		errors.Is(err, candidate.ErrInvalidCompletionPct),
		errors.Is(err, candidate.ErrInvalidPageSize),
		errors.Is(err, candidate.ErrInvalidPageToken),
		errors.Is(err, compliance.ErrInvalidTemplateID),
		errors.Is(err, job.ErrInvalidID),
		errors.Is(err, job.ErrInvalidPageSize),
		errors.Is(err, job.ErrInvalidPageToken),
		errors.Is(err, matching.ErrInvalidCandidateID),
		errors.Is(err, matching.ErrInvalidJobID),
		errors.Is(err, application.ErrInvalidID),
		errors.Is(err, application.ErrInvalidCandidateID),
		errors.Is(err, application.ErrInvalidJobID),
		errors.Is(err, application.ErrInvalidStatus),
		errors.Is(err, application.ErrInvalidPageSize),
		errors.Is(err, application.ErrInvalidPageToken),
		errors.Is(err, timecard.ErrInvalidID),
		errors.Is(err, timecard.ErrInvalidApplicationID),
		errors.Is(err, invoice.ErrInvalidID),
		errors.Is(err, invoice.ErrInvalidPageSize),
		errors.Is(err, invoice.ErrInvalidPageToken):
		return fasthttp.StatusBadRequest
	case errors.Is(err, candidate.ErrCandidateNotFound),
		errors.Is(err, compliance.ErrTemplateNotFound),
		errors.Is(err, compliance.ErrListItemNotFound),
		errors.Is(err, job.ErrJobNotFound),
		errors.Is(err, application.ErrApplicationNotFound),
		errors.Is(err, timecard.ErrTimecardNotFound),
		errors.Is(err, invoice.ErrInvoiceNotFound):
		return fasthttp.StatusNotFound
	case errors.Is(err, application.ErrDuplicateApplication):
		return fasthttp.StatusConflict
	case errors.Is(err, application.ErrInvalidTransition),
		errors.Is(err, application.ErrAlreadyFinalized),
		errors.Is(err, timecard.ErrInvalidHours),
		errors.Is(err, timecard.ErrInvalidBillRate),
		errors.Is(err, timecard.ErrAlreadyFinalized),
		errors.Is(err, invoice.ErrInvalidAmount),
		errors.Is(err, invoice.ErrAlreadyPaid):
		return fasthttp.StatusUnprocessableEntity
	default:
		return fasthttp.StatusInternalServerError
	}
}
