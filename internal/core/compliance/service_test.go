package compliance

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

type fakeCatalogRepo struct {
	templates map[string]*Template
	items     map[string]*ListItem
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		templates: make(map[string]*Template),
		items:     make(map[string]*ListItem),
	}
}

func (r *fakeCatalogRepo) addTemplate(id string, occupations []string, itemIDs []string) {
	r.templates[id] = &Template{
		ID:              id,
		Name:            id,
		OccupationCodes: occupations,
		ListItemIDs:     itemIDs,
		CreatedAt:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *fakeCatalogRepo) addItem(id, name string, active bool) {
	r.items[id] = &ListItem{ID: id, Name: name, IsActive: active}
}

func (r *fakeCatalogRepo) FindTemplateByID(_ context.Context, id string) (*Template, error) {
	tpl, ok := r.templates[id]
	if !ok {
		return nil, ErrTemplateNotFound
	}
	return tpl, nil
}

func (r *fakeCatalogRepo) FindTemplatesByOccupation(_ context.Context, code string) ([]*Template, error) {
	var matched []*Template
	for _, tpl := range r.templates {
		if tpl.AppliesTo(code) {
			matched = append(matched, tpl)
		}
	}
	return matched, nil
}

func (r *fakeCatalogRepo) FindListItemsByIDs(_ context.Context, ids []string) ([]*ListItem, error) {
	var found []*ListItem
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			found = append(found, item)
		}
	}
	return found, nil
}

func TestResolver_ResolveRequiredDocuments_Success(t *testing.T) {
	t.Parallel()

	repo := newFakeCatalogRepo()
	repo.addItem("item-1", "RN License", true)
	repo.addItem("item-2", "BLS", true)
	repo.addItem("item-3", "TB Test", true)
	repo.addTemplate("tpl-1", []string{"rn", "lpn"}, []string{"item-1", "item-2"})
	repo.addTemplate("tpl-2", []string{"rn"}, []string{"item-2", "item-3"})

	resolver := NewResolver(repo)

	names, err := resolver.ResolveRequiredDocuments(context.Background(), "rn")
	if err != nil {
		t.Fatalf("ResolveRequiredDocuments returned error: %v", err)
	}

	want := []string{"BLS", "RN License", "TB Test"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
}

func TestResolver_ResolveRequiredDocuments_EmptyOccupation(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(newFakeCatalogRepo())

	names, err := resolver.ResolveRequiredDocuments(context.Background(), "  ")
	if err != nil {
		t.Fatalf("ResolveRequiredDocuments returned error: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected empty set, got %v", names)
	}
}

func TestResolver_ResolveRequiredDocuments_NoMatchingTemplates(t *testing.T) {
	t.Parallel()

	repo := newFakeCatalogRepo()
	repo.addItem("item-1", "RN License", true)
	repo.addTemplate("tpl-1", []string{"rn"}, []string{"item-1"})

	resolver := NewResolver(repo)

	names, err := resolver.ResolveRequiredDocuments(context.Background(), "welder")
	if err != nil {
		t.Fatalf("expected degradation to empty set, got error: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected empty set, got %v", names)
	}
}

func TestResolver_ResolveRequiredDocuments_SkipsInactiveAndDangling(t *testing.T) {
	t.Parallel()

	repo := newFakeCatalogRepo()
	repo.addItem("item-1", "RN License", true)
	repo.addItem("item-2", "Old Checklist", false)
	repo.addTemplate("tpl-1", []string{"rn"}, []string{"item-1", "item-2", "item-missing"})

	resolver := NewResolver(repo)

	names, err := resolver.ResolveRequiredDocuments(context.Background(), "rn")
	if err != nil {
		t.Fatalf("ResolveRequiredDocuments returned error: %v", err)
	}

	want := []string{"RN License"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
}

func TestResolver_ResolveTemplateItems_NotFound(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(newFakeCatalogRepo())

	_, err := resolver.ResolveTemplateItems(context.Background(), "tpl-missing")
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestResolver_ResolveTemplateItems_InvalidID(t *testing.T) {
	t.Parallel()

	resolver := NewResolver(newFakeCatalogRepo())

	_, err := resolver.ResolveTemplateItems(context.Background(), "")
	if !errors.Is(err, ErrInvalidTemplateID) {
		t.Fatalf("expected ErrInvalidTemplateID, got %v", err)
	}
}
