package postgres

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/staffing-readiness-engine/internal/core/candidate"
)

type stubCandidateRow struct {
	scanFn func(dest ...interface{}) error
}

func (s stubCandidateRow) Scan(dest ...interface{}) error {
	return s.scanFn(dest...)
}

func TestScanCandidate_Success(t *testing.T) {
	t.Parallel()

	createdAt := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	updatedAt := createdAt.Add(time.Hour)

	row := stubCandidateRow{scanFn: func(dest ...interface{}) error {
		if len(dest) != 11 {
			return errors.New("unexpected dest length")
		}
		*(dest[0].(*string)) = "cand-1"
		*(dest[1].(*string)) = "Yamada Hanako"

		phoneDest := dest[2].(*sql.NullString)
		phoneDest.String = "090-0000-0000"
		phoneDest.Valid = true

		*(dest[3].(*bool)) = true
		*(dest[4].(*bool)) = true

		occDest := dest[5].(*sql.NullString)
		occDest.String = "RN"
		occDest.Valid = true

		*(dest[6].(*[]string)) = []string{"ICU", "Critical Care"}
		*(dest[7].(*[]string)) = []string{"ICU"}
		*(dest[8].(*int)) = 85
		*(dest[9].(*time.Time)) = createdAt
		*(dest[10].(*time.Time)) = updatedAt
		return nil
	}}

	c, err := scanCandidate(row)
	if err != nil {
		t.Fatalf("scanCandidate returned error: %v", err)
	}

	if c.OccupationCode == nil || *c.OccupationCode != "RN" {
		t.Fatalf("expected occupation code RN, got %+v", c.OccupationCode)
	}
	if c.Phone != "090-0000-0000" {
		t.Fatalf("unexpected phone: %s", c.Phone)
	}
	if len(c.Skills) != 2 {
		t.Fatalf("expected 2 skills, got %d", len(c.Skills))
	}
	if c.ProfileCompletionPct != 85 {
		t.Fatalf("expected completion 85, got %d", c.ProfileCompletionPct)
	}
}

func TestScanCandidate_NullOptionalFields(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	row := stubCandidateRow{scanFn: func(dest ...interface{}) error {
		*(dest[0].(*string)) = "cand-2"
		*(dest[1].(*string)) = "Sato Taro"
		*(dest[3].(*bool)) = false
		*(dest[4].(*bool)) = false
		*(dest[8].(*int)) = 0
		*(dest[9].(*time.Time)) = now
		*(dest[10].(*time.Time)) = now
		return nil
	}}

	c, err := scanCandidate(row)
	if err != nil {
		t.Fatalf("scanCandidate returned error: %v", err)
	}

	if c.OccupationCode != nil {
		t.Fatalf("expected nil occupation code, got %+v", c.OccupationCode)
	}
	if c.Phone != "" {
		t.Fatalf("expected empty phone, got %s", c.Phone)
	}
}

func TestScanCandidate_NoRows(t *testing.T) {
	t.Parallel()

	row := stubCandidateRow{scanFn: func(dest ...interface{}) error {
		return pgx.ErrNoRows
	}}

	_, err := scanCandidate(row)
	if !errors.Is(err, candidate.ErrCandidateNotFound) {
		t.Fatalf("expected ErrCandidateNotFound, got %v", err)
	}
}

func TestTranslateCandidatePgError(t *testing.T) {
	t.Parallel()

	uniqueErr := &pgconn.PgError{Code: candidateUniqueViolationCode}
	if !errors.Is(translateCandidatePgError(uniqueErr), candidate.ErrInvalidID) {
		t.Fatalf("expected unique violation to map to ErrInvalidID")
	}

	checkErr := &pgconn.PgError{Code: candidateCheckViolationCode}
	if !errors.Is(translateCandidatePgError(checkErr), candidate.ErrInvalidCompletionPct) {
		t.Fatalf("expected check violation to map to ErrInvalidCompletionPct")
	}

	other := errors.New("other")
	if translateCandidatePgError(other) != other {
		t.Fatalf("unexpected translation for generic error")
	}
}
