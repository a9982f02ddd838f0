package fixture

import "testing"

func TestLoad(t *testing.T) {
	t.Parallel()

	ds, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if len(ds.ListItems) == 0 || len(ds.Templates) == 0 || len(ds.Candidates) == 0 || len(ds.Jobs) == 0 {
		t.Fatalf("dataset is missing sections: %+v", ds)
	}

	items := make(map[string]ListItem, len(ds.ListItems))
	for _, item := range ds.ListItems {
		items[item.ID] = item
	}

	for _, tpl := range ds.Templates {
		for _, id := range tpl.ItemIDs {
			if _, ok := items[id]; !ok {
				t.Errorf("template %s references unknown item %s", tpl.ID, id)
			}
		}
	}
}

func TestLoad_Deterministic(t *testing.T) {
	t.Parallel()

	first, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	second, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if len(first.Candidates) != len(second.Candidates) {
		t.Fatalf("expected identical datasets across loads")
	}
	for i := range first.Candidates {
		if first.Candidates[i].ID != second.Candidates[i].ID {
			t.Fatalf("candidate order changed between loads")
		}
	}
}
