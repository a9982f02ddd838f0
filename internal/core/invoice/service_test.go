package invoice

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/ogurasousui/staffing-readiness-engine/internal/core/timecard"
)

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time {
	return s.now
}

type stubTimecardSource struct {
	timecards map[string]*timecard.Timecard
}

func (s *stubTimecardSource) FindByID(_ context.Context, id string) (*timecard.Timecard, error) {
	tc, ok := s.timecards[id]
	if !ok {
		return nil, timecard.ErrTimecardNotFound
	}
	return tc, nil
}

type fakeInvoiceRepo struct {
	invoices map[string]*Invoice
	order    []string
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[string]*Invoice)}
}

func (r *fakeInvoiceRepo) Create(_ context.Context, inv *Invoice) (*Invoice, error) {
	clone := cloneInvoice(inv)
	r.invoices[clone.ID] = clone
	r.order = append(r.order, clone.ID)
	return cloneInvoice(clone), nil
}

func (r *fakeInvoiceRepo) Update(_ context.Context, inv *Invoice) (*Invoice, error) {
	if _, ok := r.invoices[inv.ID]; !ok {
		return nil, ErrInvoiceNotFound
	}
	r.invoices[inv.ID] = cloneInvoice(inv)
	return cloneInvoice(inv), nil
}

func (r *fakeInvoiceRepo) FindByID(_ context.Context, id string) (*Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, ErrInvoiceNotFound
	}
	return cloneInvoice(inv), nil
}

func (r *fakeInvoiceRepo) List(_ context.Context, filter ListFilter) ([]*Invoice, string, error) {
	var filtered []*Invoice
	for _, id := range r.order {
		inv := r.invoices[id]
		if filter.Status != nil && inv.Status != *filter.Status {
			continue
		}
		filtered = append(filtered, cloneInvoice(inv))
	}

	if filter.Offset > len(filtered) {
		return []*Invoice{}, "", nil
	}

	end := filter.Offset + filter.Limit
	if end > len(filtered) {
		end = len(filtered)
	}

	nextToken := ""
	if end < len(filtered) {
		nextToken = strconv.Itoa(end)
	}

	return filtered[filter.Offset:end], nextToken, nil
}

func cloneInvoice(inv *Invoice) *Invoice {
	if inv == nil {
		return nil
	}
	copy := *inv
	if inv.TimecardID != nil {
		id := *inv.TimecardID
		copy.TimecardID = &id
	}
	if inv.PaidAt != nil {
		paid := *inv.PaidAt
		copy.PaidAt = &paid
	}
	return &copy
}

func strPtr(s string) *string {
	return &s
}

func newTestService(repo *fakeInvoiceRepo) *Service {
	timecards := &stubTimecardSource{timecards: map[string]*timecard.Timecard{
		"tc-1": {ID: "tc-1", ApplicationID: "app-1", Status: timecard.StatusApproved},
	}}
	return NewService(repo, timecards, &stubClock{now: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)}, nil)
}

func TestService_CreateInvoice_Success(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeInvoiceRepo())

	inv, err := svc.CreateInvoice(context.Background(), CreateInvoiceInput{
		Amount:     3600,
		TimecardID: strPtr("tc-1"),
	})
	if err != nil {
		t.Fatalf("CreateInvoice returned error: %v", err)
	}

	if inv.Status != StatusPending {
		t.Errorf("expected pending status, got %s", inv.Status)
	}
	if inv.Amount != 3600 {
		t.Errorf("expected amount 3600, got %v", inv.Amount)
	}
	if inv.TimecardID == nil || *inv.TimecardID != "tc-1" {
		t.Errorf("expected timecard link, got %+v", inv.TimecardID)
	}
}

func TestService_CreateInvoice_WithoutTimecard(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeInvoiceRepo())

	inv, err := svc.CreateInvoice(context.Background(), CreateInvoiceInput{Amount: 100})
	if err != nil {
		t.Fatalf("CreateInvoice returned error: %v", err)
	}
	if inv.TimecardID != nil {
		t.Fatalf("expected no timecard link, got %v", *inv.TimecardID)
	}
}

func TestService_CreateInvoice_UnresolvedTimecard(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeInvoiceRepo())

	_, err := svc.CreateInvoice(context.Background(), CreateInvoiceInput{
		Amount:     100,
		TimecardID: strPtr("tc-missing"),
	})
	if !errors.Is(err, timecard.ErrTimecardNotFound) {
		t.Fatalf("expected ErrTimecardNotFound, got %v", err)
	}
}

func TestService_CreateInvoice_InvalidAmount(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeInvoiceRepo())

	if _, err := svc.CreateInvoice(context.Background(), CreateInvoiceInput{Amount: 0}); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestService_MarkPaid_Terminal(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeInvoiceRepo())

	inv, err := svc.CreateInvoice(context.Background(), CreateInvoiceInput{Amount: 250})
	if err != nil {
		t.Fatalf("CreateInvoice returned error: %v", err)
	}

	paid, err := svc.MarkPaid(context.Background(), MarkPaidInput{ID: inv.ID})
	if err != nil {
		t.Fatalf("MarkPaid returned error: %v", err)
	}
	if paid.Status != StatusPaid {
		t.Fatalf("expected paid, got %s", paid.Status)
	}
	if paid.PaidAt == nil {
		t.Fatalf("expected PaidAt to be set")
	}

	if _, err := svc.MarkPaid(context.Background(), MarkPaidInput{ID: inv.ID}); !errors.Is(err, ErrAlreadyPaid) {
		t.Fatalf("expected ErrAlreadyPaid, got %v", err)
	}
}

func TestService_ListInvoices_FilterByStatus(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeInvoiceRepo())

	first, err := svc.CreateInvoice(context.Background(), CreateInvoiceInput{Amount: 100})
	if err != nil {
		t.Fatalf("CreateInvoice returned error: %v", err)
	}
	if _, err := svc.CreateInvoice(context.Background(), CreateInvoiceInput{Amount: 200}); err != nil {
		t.Fatalf("CreateInvoice returned error: %v", err)
	}
	if _, err := svc.MarkPaid(context.Background(), MarkPaidInput{ID: first.ID}); err != nil {
		t.Fatalf("MarkPaid returned error: %v", err)
	}

	pending := StatusPending
	result, err := svc.ListInvoices(context.Background(), ListInvoicesInput{Status: &pending})
	if err != nil {
		t.Fatalf("ListInvoices returned error: %v", err)
	}
	if len(result.Invoices) != 1 {
		t.Fatalf("expected 1 pending invoice, got %d", len(result.Invoices))
	}
}
