package service

import (
	"context"
	"reflect"
	"testing"

	"facility-survey/internal/survey/models"
	"facility-survey/internal/survey/storage"
)

func newTestResolver(t *testing.T, catalog *fakeCatalog, walkers *fakeWalkers) *Resolver {
	t.Helper()
	store := storage.NewLocalStore(t.TempDir(), "/files")
	return NewResolver(catalog, walkers, store, "/static/placeholder.png")
}

func TestListFloorsOnlyExistingWhenAnyPlan(t *testing.T) {
	catalog := &fakeCatalog{plans: []models.FloorPlan{plan("Main Building", "first")}}
	r := newTestResolver(t, catalog, &fakeWalkers{schools: []string{"Main Building"}})
	ctx := context.Background()

	if got := r.ListBuildings(ctx); !reflect.DeepEqual(got, []string{"Main Building"}) {
		t.Errorf("buildings = %v", got)
	}
	if got := r.ListFloors(ctx, "Main Building"); !reflect.DeepEqual(got, []string{"first"}) {
		t.Errorf("floors = %v, want [first]", got)
	}
	if _, ok := r.ResolveImageURL(ctx, "Main Building", "second"); ok {
		t.Error("second floor should not resolve")
	}
}

func TestListFloorsDefaultsWithoutPlans(t *testing.T) {
	r := newTestResolver(t, &fakeCatalog{}, &fakeWalkers{})

	got := r.ListFloors(context.Background(), "Annex")
	want := []string{"basement", "first", "second", "third", "fourth", "fifth"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("floors = %v, want %v", got, want)
	}
}

func TestListBuildingsMergesSources(t *testing.T) {
	catalog := &fakeCatalog{plans: []models.FloorPlan{
		plan("Washington High", "first"),
		plan("Annex", "basement"),
	}}
	walkers := &fakeWalkers{schools: []string{"Lincoln Elementary", "Annex", ""}}
	r := newTestResolver(t, catalog, walkers)

	got := r.ListBuildings(context.Background())
	want := []string{"Annex", "Lincoln Elementary", "Washington High"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("buildings = %v, want %v", got, want)
	}
}

func TestResolverDegradesOnFailure(t *testing.T) {
	catalog := &fakeCatalog{err: errBackend}
	walkers := &fakeWalkers{schools: []string{"Lincoln Elementary"}, err: nil}
	r := newTestResolver(t, catalog, walkers)
	ctx := context.Background()

	if got := r.ListBuildings(ctx); !reflect.DeepEqual(got, []string{"Lincoln Elementary"}) {
		t.Errorf("buildings = %v", got)
	}
	if got := r.ListFloors(ctx, "Lincoln Elementary"); !reflect.DeepEqual(got, models.DefaultFloors()) {
		t.Errorf("floors = %v", got)
	}
	url, placeholder := r.ImageOrPlaceholder(ctx, "Lincoln Elementary", "first")
	if !placeholder || url != "/static/placeholder.png" {
		t.Errorf("image = %q placeholder=%v", url, placeholder)
	}
}

func TestResolveImageURL(t *testing.T) {
	catalog := &fakeCatalog{plans: []models.FloorPlan{plan("Main Building", "first")}}
	r := newTestResolver(t, catalog, nil)

	url, placeholder := r.ImageOrPlaceholder(context.Background(), "Main Building", "first")
	if placeholder {
		t.Fatal("expected the active plan, got placeholder")
	}
	if url != "/files/floorplans/Main%20Building/first.png" {
		t.Errorf("url = %q", url)
	}
}
