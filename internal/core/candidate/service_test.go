package candidate

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"
)

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time {
	return s.now
}

type stubResolver struct {
	required map[string][]string
	err      error
}

func (s *stubResolver) ResolveRequiredDocuments(_ context.Context, code string) ([]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.required[code], nil
}

type fakeCandidateRepo struct {
	candidates map[string]*Candidate
	order      []string
}

func newFakeCandidateRepo() *fakeCandidateRepo {
	return &fakeCandidateRepo{candidates: make(map[string]*Candidate)}
}

func (r *fakeCandidateRepo) Create(_ context.Context, c *Candidate) (*Candidate, error) {
	clone := cloneCandidate(c)
	r.candidates[clone.ID] = clone
	r.order = append(r.order, clone.ID)
	return cloneCandidate(clone), nil
}

func (r *fakeCandidateRepo) Update(_ context.Context, c *Candidate) (*Candidate, error) {
	if _, ok := r.candidates[c.ID]; !ok {
		return nil, ErrCandidateNotFound
	}
	r.candidates[c.ID] = cloneCandidate(c)
	return cloneCandidate(c), nil
}

func (r *fakeCandidateRepo) FindByID(_ context.Context, id string) (*Candidate, error) {
	c, ok := r.candidates[id]
	if !ok {
		return nil, ErrCandidateNotFound
	}
	return cloneCandidate(c), nil
}

func (r *fakeCandidateRepo) List(_ context.Context, filter ListFilter) ([]*Candidate, string, error) {
	var filtered []*Candidate
	for _, id := range r.order {
		c := r.candidates[id]
		if filter.OccupationCode != nil {
			if c.OccupationCode == nil || *c.OccupationCode != *filter.OccupationCode {
				continue
			}
		}
		filtered = append(filtered, cloneCandidate(c))
	}

	if filter.Offset > len(filtered) {
		return []*Candidate{}, "", nil
	}

	end := filter.Offset + filter.Limit
	if end > len(filtered) {
		end = len(filtered)
	}

	nextToken := ""
	if end < len(filtered) {
		nextToken = fmt.Sprintf("%d", end)
	}

	return filtered[filter.Offset:end], nextToken, nil
}

func cloneCandidate(c *Candidate) *Candidate {
	if c == nil {
		return nil
	}
	copy := *c
	if c.OccupationCode != nil {
		code := *c.OccupationCode
		copy.OccupationCode = &code
	}
	copy.Skills = append([]string(nil), c.Skills...)
	copy.Specialties = append([]string(nil), c.Specialties...)
	copy.Documents = append([]Document(nil), c.Documents...)
	return &copy
}

func strPtr(s string) *string {
	return &s
}

func seedCandidate(repo *fakeCandidateRepo, id string, docs []Document) {
	_, _ = repo.Create(context.Background(), &Candidate{
		ID:                       id,
		Name:                     "Test Candidate",
		BasicInfoProvided:        true,
		ProfessionalInfoProvided: true,
		OccupationCode:           strPtr("rn"),
		Documents:                docs,
		ProfileCompletionPct:     80,
	})
}

func TestService_EvaluateReadiness_Complete(t *testing.T) {
	t.Parallel()

	repo := newFakeCandidateRepo()
	seedCandidate(repo, "cand-1", []Document{
		{Type: "RN License", Status: DocumentCompleted},
		{Type: "BLS", Status: DocumentPendingVerification},
	})

	resolver := &stubResolver{required: map[string][]string{"rn": {"BLS", "RN License"}}}
	svc := NewService(repo, resolver, nil, nil)

	readiness, err := svc.EvaluateReadiness(context.Background(), EvaluateReadinessInput{CandidateID: "cand-1"})
	if err != nil {
		t.Fatalf("EvaluateReadiness returned error: %v", err)
	}

	if !readiness.Complete {
		t.Fatalf("expected complete readiness, got %+v", readiness)
	}
	if len(readiness.MissingDocuments) != 0 {
		t.Fatalf("expected no missing documents, got %v", readiness.MissingDocuments)
	}
}

func TestService_EvaluateReadiness_PendingUploadDoesNotSatisfy(t *testing.T) {
	t.Parallel()

	repo := newFakeCandidateRepo()
	seedCandidate(repo, "cand-1", []Document{
		{Type: "RN License", Status: DocumentCompleted},
		{Type: "BLS", Status: DocumentPendingUpload},
	})

	resolver := &stubResolver{required: map[string][]string{"rn": {"BLS", "RN License"}}}
	svc := NewService(repo, resolver, nil, nil)

	readiness, err := svc.EvaluateReadiness(context.Background(), EvaluateReadinessInput{CandidateID: "cand-1"})
	if err != nil {
		t.Fatalf("EvaluateReadiness returned error: %v", err)
	}

	if readiness.Complete {
		t.Fatalf("expected incomplete readiness, got %+v", readiness)
	}
	if !reflect.DeepEqual(readiness.MissingDocuments, []string{"BLS"}) {
		t.Fatalf("expected BLS missing, got %v", readiness.MissingDocuments)
	}
}

func TestService_EvaluateReadiness_UploadedTypesCount(t *testing.T) {
	t.Parallel()

	repo := newFakeCandidateRepo()
	seedCandidate(repo, "cand-1", []Document{
		{Type: "RN License", Status: DocumentCompleted},
	})

	resolver := &stubResolver{required: map[string][]string{"rn": {"BLS", "RN License"}}}
	svc := NewService(repo, resolver, nil, nil)

	readiness, err := svc.EvaluateReadiness(context.Background(), EvaluateReadinessInput{
		CandidateID:   "cand-1",
		UploadedTypes: []string{"BLS"},
	})
	if err != nil {
		t.Fatalf("EvaluateReadiness returned error: %v", err)
	}

	if !readiness.Complete {
		t.Fatalf("expected uploaded type to satisfy requirement, got %+v", readiness)
	}
}

func TestService_EvaluateReadiness_ZeroRequirementsIsVacuouslyComplete(t *testing.T) {
	t.Parallel()

	repo := newFakeCandidateRepo()
	seedCandidate(repo, "cand-1", []Document{
		{Type: "Old Cert", Status: DocumentExpired},
	})

	resolver := &stubResolver{required: map[string][]string{}}
	svc := NewService(repo, resolver, nil, nil)

	readiness, err := svc.EvaluateReadiness(context.Background(), EvaluateReadinessInput{CandidateID: "cand-1"})
	if err != nil {
		t.Fatalf("EvaluateReadiness returned error: %v", err)
	}

	if !readiness.Complete {
		t.Fatalf("expected vacuous completeness with zero requirements, got %+v", readiness)
	}
}

func TestService_EvaluateReadiness_MissingBasicsBlocks(t *testing.T) {
	t.Parallel()

	repo := newFakeCandidateRepo()
	_, _ = repo.Create(context.Background(), &Candidate{
		ID:                       "cand-1",
		Name:                     "No Basics",
		BasicInfoProvided:        false,
		ProfessionalInfoProvided: true,
		OccupationCode:           strPtr("rn"),
	})

	resolver := &stubResolver{required: map[string][]string{}}
	svc := NewService(repo, resolver, nil, nil)

	readiness, err := svc.EvaluateReadiness(context.Background(), EvaluateReadinessInput{CandidateID: "cand-1"})
	if err != nil {
		t.Fatalf("EvaluateReadiness returned error: %v", err)
	}

	if readiness.Complete {
		t.Fatalf("expected missing basics to block readiness, got %+v", readiness)
	}
}

func TestService_UpsertDocument_ReplacesExistingType(t *testing.T) {
	t.Parallel()

	repo := newFakeCandidateRepo()
	seedCandidate(repo, "cand-1", []Document{
		{Type: "BLS", Status: DocumentPendingUpload},
	})

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	svc := NewService(repo, &stubResolver{}, &stubClock{now: now}, nil)

	updated, err := svc.UpsertDocument(context.Background(), UpsertDocumentInput{
		CandidateID: "cand-1",
		Type:        "BLS",
		Status:      DocumentCompleted,
	})
	if err != nil {
		t.Fatalf("UpsertDocument returned error: %v", err)
	}

	if len(updated.Documents) != 1 {
		t.Fatalf("expected single document, got %d", len(updated.Documents))
	}
	if updated.Documents[0].Status != DocumentCompleted {
		t.Fatalf("expected completed status, got %s", updated.Documents[0].Status)
	}
	if !updated.UpdatedAt.Equal(now) {
		t.Fatalf("expected UpdatedAt %v, got %v", now, updated.UpdatedAt)
	}
}

func TestService_UpsertDocument_AppendsNewType(t *testing.T) {
	t.Parallel()

	repo := newFakeCandidateRepo()
	seedCandidate(repo, "cand-1", []Document{
		{Type: "BLS", Status: DocumentCompleted},
	})

	svc := NewService(repo, &stubResolver{}, nil, nil)

	updated, err := svc.UpsertDocument(context.Background(), UpsertDocumentInput{
		CandidateID: "cand-1",
		Type:        "TB Test",
		Status:      DocumentPendingVerification,
	})
	if err != nil {
		t.Fatalf("UpsertDocument returned error: %v", err)
	}

	if len(updated.Documents) != 2 {
		t.Fatalf("expected two documents, got %d", len(updated.Documents))
	}
	if updated.Documents[1].Type != "TB Test" {
		t.Fatalf("expected new type appended last, got %+v", updated.Documents)
	}
}

func TestService_UpsertDocument_InvalidStatus(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeCandidateRepo(), &stubResolver{}, nil, nil)

	_, err := svc.UpsertDocument(context.Background(), UpsertDocumentInput{
		CandidateID: "cand-1",
		Type:        "BLS",
		Status:      DocumentStatus("unknown"),
	})
	if !errors.Is(err, ErrInvalidDocumentStatus) {
		t.Fatalf("expected ErrInvalidDocumentStatus, got %v", err)
	}
}

func TestService_GetCandidate_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeCandidateRepo(), &stubResolver{}, nil, nil)

	_, err := svc.GetCandidate(context.Background(), GetCandidateInput{ID: "missing"})
	if !errors.Is(err, ErrCandidateNotFound) {
		t.Fatalf("expected ErrCandidateNotFound, got %v", err)
	}
}
