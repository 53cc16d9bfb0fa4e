package service

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"facility-survey/internal/survey/models"
	"facility-survey/internal/survey/storage"
)

type fakeGalleryStore struct {
	photos []models.GalleryPhoto
}

func (f *fakeGalleryStore) ListGalleryPhotos(context.Context) ([]models.GalleryPhoto, error) {
	return f.photos, nil
}

func galleryPhoto(id, submission string, building, floor *string, x, y *float64) models.GalleryPhoto {
	status := models.LocationPending
	if x != nil {
		status = models.LocationLocated
	}
	return models.GalleryPhoto{Photo: models.Photo{
		ID:             id,
		SubmissionID:   submission,
		ObjectKey:      "photos/" + submission + "/" + id + ".jpg",
		Caption:        "photo " + id,
		Building:       building,
		FloorLevel:     floor,
		LocationX:      x,
		LocationY:      y,
		LocationStatus: status,
	}}
}

func TestGroupSameBuildingAndFloor(t *testing.T) {
	var photos []models.GalleryPhoto
	for _, id := range []string{"a", "b", "c", "d"} {
		photos = append(photos, galleryPhoto(id, "s1", strPtr("B"), strPtr("first"), floatPtr(10), floatPtr(20)))
	}

	tree := GroupByBuildingAndFloor(photos)
	if len(tree.Buildings) != 1 || len(tree.Buildings[0].Floors) != 1 {
		t.Fatalf("tree = %+v", tree)
	}
	g := tree.Buildings[0].Floors[0]
	if tree.Buildings[0].Building != "B" || g.Floor != "first" {
		t.Errorf("bucket = %s/%s", tree.Buildings[0].Building, g.Floor)
	}
	if len(g.Photos) != 4 || len(g.Pins) != 4 {
		t.Errorf("photos=%d pins=%d, want 4 and 4", len(g.Photos), len(g.Pins))
	}
	if !reflect.DeepEqual(g.Submissions, []string{"s1"}) {
		t.Errorf("submissions = %v", g.Submissions)
	}
}

func TestGroupUnlocatedPhotoCountsButHasNoPin(t *testing.T) {
	photos := []models.GalleryPhoto{
		galleryPhoto("located", "s1", strPtr("B"), strPtr("first"), floatPtr(10), floatPtr(20)),
		galleryPhoto("pending", "s2", strPtr("B"), strPtr("first"), nil, nil),
	}

	tree := GroupByBuildingAndFloor(photos)
	g, ok := tree.Floor("B", "first")
	if !ok {
		t.Fatal("bucket B/first missing")
	}
	if len(g.Photos) != 2 || tree.TotalPhotos != 2 || tree.TotalSubmissions != 2 {
		t.Errorf("photos=%d total=%d submissions=%d", len(g.Photos), tree.TotalPhotos, tree.TotalSubmissions)
	}
	if len(g.Pins) != 1 || g.Pins[0].PhotoID != "located" {
		t.Errorf("pins = %+v", g.Pins)
	}
}

func TestGroupSkippedPhotoHasNoPin(t *testing.T) {
	p := galleryPhoto("skipped", "s1", strPtr("B"), strPtr("first"), floatPtr(0), floatPtr(0))
	p.LocationStatus = models.LocationSkipped

	tree := GroupByBuildingAndFloor([]models.GalleryPhoto{p})
	g, _ := tree.Floor("B", "first")
	if len(g.Pins) != 0 {
		t.Errorf("skipped photo rendered as pin: %+v", g.Pins)
	}
}

func TestGroupFallbacks(t *testing.T) {
	withSchool := galleryPhoto("school", "s1", nil, strPtr("second"), nil, nil)
	withSchool.WalkerSchool = strPtr("Lincoln Elementary")
	nothing := galleryPhoto("nothing", "s2", nil, nil, nil, nil)

	tree := GroupByBuildingAndFloor([]models.GalleryPhoto{nothing, withSchool})

	var names []string
	for _, b := range tree.Buildings {
		names = append(names, b.Building)
	}
	if !reflect.DeepEqual(names, []string{"Lincoln Elementary", "Unknown Building"}) {
		t.Errorf("buildings = %v", names)
	}
	if _, ok := tree.Floor("Lincoln Elementary", "second"); !ok {
		t.Error("school fallback bucket missing")
	}
	if _, ok := tree.Floor("Unknown Building", "Unknown Floor"); !ok {
		t.Error("unknown bucket missing")
	}
}

func TestGroupOrdersFloors(t *testing.T) {
	photos := []models.GalleryPhoto{
		galleryPhoto("1", "s", strPtr("B"), strPtr("third"), nil, nil),
		galleryPhoto("2", "s", strPtr("B"), strPtr("mezzanine"), nil, nil),
		galleryPhoto("3", "s", strPtr("B"), strPtr("basement"), nil, nil),
		galleryPhoto("4", "s", strPtr("B"), strPtr("first"), nil, nil),
	}

	tree := GroupByBuildingAndFloor(photos)
	var floors []string
	for _, f := range tree.Buildings[0].Floors {
		floors = append(floors, f.Floor)
	}
	if !reflect.DeepEqual(floors, []string{"basement", "first", "third", "mezzanine"}) {
		t.Errorf("floors = %v", floors)
	}
}

func TestGalleryBuildResolvesImagesAndThumbnails(t *testing.T) {
	catalog := &fakeCatalog{plans: []models.FloorPlan{plan("B", "first")}}
	store := storage.NewLocalStore(t.TempDir(), "/files")
	resolver := NewResolver(catalog, nil, store, "/placeholder.png")
	photos := &fakeGalleryStore{photos: []models.GalleryPhoto{
		galleryPhoto("a", "s1", strPtr("B"), strPtr("first"), floatPtr(25), floatPtr(75)),
		galleryPhoto("b", "s1", strPtr("B"), strPtr("second"), floatPtr(50), floatPtr(50)),
	}}

	tree, err := NewGallery(photos, catalog, resolver, store).Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	first, _ := tree.Floor("B", "first")
	if first.Placeholder || first.ImageURL != "/files/floorplans/B/first.png" {
		t.Errorf("first floor image = %q placeholder=%v", first.ImageURL, first.Placeholder)
	}
	if first.Pins[0].ThumbnailURL != "/files/photos/s1/a.jpg" {
		t.Errorf("thumbnail = %q", first.Pins[0].ThumbnailURL)
	}
	if first.Pins[0].Style.Left != "25%" || first.Pins[0].Style.Top != "75%" {
		t.Errorf("style = %+v", first.Pins[0].Style)
	}

	second, _ := tree.Floor("B", "second")
	if !second.Placeholder || second.ImageURL != "/placeholder.png" {
		t.Errorf("second floor image = %q placeholder=%v", second.ImageURL, second.Placeholder)
	}
}

func TestGalleryOverlay(t *testing.T) {
	fp := plan("B", "first")
	w, h := 800, 600
	fp.Width, fp.Height = &w, &h
	catalog := &fakeCatalog{plans: []models.FloorPlan{fp}}
	store := storage.NewLocalStore(t.TempDir(), "/files")
	photos := &fakeGalleryStore{photos: []models.GalleryPhoto{
		galleryPhoto("a", "s1", strPtr("B"), strPtr("first"), floatPtr(50), floatPtr(50)),
	}}

	svg, err := NewGallery(photos, catalog, NewResolver(catalog, nil, store, ""), store).Overlay(context.Background(), "B", "first")
	if err != nil {
		t.Fatalf("overlay: %v", err)
	}
	for _, want := range []string{`viewBox="0 0 800 600"`, `href="/files/floorplans/B/first.png"`, `data-photo-id="a"`} {
		if !strings.Contains(svg, want) {
			t.Errorf("overlay missing %s", want)
		}
	}
}

func TestPinsOnIgnoresFloorCasing(t *testing.T) {
	tree := GroupByBuildingAndFloor([]models.GalleryPhoto{
		galleryPhoto("a", "s1", strPtr("B"), strPtr("Second"), floatPtr(10), floatPtr(10)),
		galleryPhoto("b", "s1", strPtr("B"), strPtr("second"), floatPtr(20), floatPtr(20)),
		galleryPhoto("c", "s1", strPtr("B"), strPtr("first"), floatPtr(30), floatPtr(30)),
		galleryPhoto("d", "s1", strPtr("C"), strPtr("second"), floatPtr(40), floatPtr(40)),
	})

	var ids []string
	for _, pin := range tree.PinsOn("B", "SECOND") {
		ids = append(ids, pin.PhotoID)
	}
	if len(ids) != 2 || !containsString(ids, "a") || !containsString(ids, "b") {
		t.Errorf("pins = %v, want a and b", ids)
	}
}
