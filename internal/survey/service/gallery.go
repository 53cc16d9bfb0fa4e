package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"facility-survey/internal/survey/floorplan"
	"facility-survey/internal/survey/models"
	"facility-survey/internal/survey/storage"

	"golang.org/x/sync/errgroup"
)

// ============================================================
// Gallery Aggregator
// ============================================================

const galleryResolveLimit = 4

type GalleryPin struct {
	PhotoID      string             `json:"photoId"`
	Caption      string             `json:"caption"`
	Category     string             `json:"category"`
	At           floorplan.Percent  `json:"at"`
	Style        floorplan.PinStyle `json:"style"`
	ThumbnailURL string             `json:"thumbnailUrl,omitempty"`
}

type FloorGroup struct {
	Floor       string                `json:"floor"`
	Photos      []models.GalleryPhoto `json:"photos"`
	Submissions []string              `json:"submissions"`
	Pins        []GalleryPin          `json:"pins"`
	ImageURL    string                `json:"imageUrl,omitempty"`
	Placeholder bool                  `json:"placeholder"`
}

type BuildingGroup struct {
	Building   string       `json:"building"`
	Floors     []FloorGroup `json:"floors"`
	PhotoCount int          `json:"photoCount"`
}

type GalleryTree struct {
	Buildings        []BuildingGroup `json:"buildings"`
	TotalPhotos      int             `json:"totalPhotos"`
	TotalSubmissions int             `json:"totalSubmissions"`
}

// Floor finds one group of the tree.
func (t *GalleryTree) Floor(building, floor string) (*FloorGroup, bool) {
	for i := range t.Buildings {
		if t.Buildings[i].Building != building {
			continue
		}
		for j := range t.Buildings[i].Floors {
			if t.Buildings[i].Floors[j].Floor == floor {
				return &t.Buildings[i].Floors[j], true
			}
		}
	}
	return nil, false
}

// PinsOn collects the pins of every floor group of building whose floor
// matches floor ignoring case, since stored floors keep the caller's casing.
func (t *GalleryTree) PinsOn(building, floor string) []GalleryPin {
	floor = models.NormalizeFloor(floor)

	var pins []GalleryPin
	for i := range t.Buildings {
		if t.Buildings[i].Building != building {
			continue
		}
		for _, g := range t.Buildings[i].Floors {
			if g.Floor == floor || models.NormalizeFloor(g.Floor) == floor {
				pins = append(pins, g.Pins...)
			}
		}
	}
	return pins
}

// GroupKey returns the building and floor a photo is filed under.
func GroupKey(p *models.GalleryPhoto) (string, string) {
	building := models.UnknownBuilding
	switch {
	case p.Building != nil && *p.Building != "":
		building = *p.Building
	case p.WalkerSchool != nil && *p.WalkerSchool != "":
		building = *p.WalkerSchool
	}

	floor := models.UnknownFloorGroup
	if p.FloorLevel != nil && *p.FloorLevel != "" {
		floor = *p.FloorLevel
	}
	return building, floor
}

// GroupByBuildingAndFloor files photos into a building -> floor tree. Every
// photo counts toward the totals; only located ones become pins.
func GroupByBuildingAndFloor(photos []models.GalleryPhoto) GalleryTree {
	type floorKey struct{ building, floor string }

	floors := map[floorKey]*FloorGroup{}
	byBuilding := map[string][]string{}
	submissions := map[string]struct{}{}

	for i := range photos {
		p := photos[i]
		building, floor := GroupKey(&p)
		key := floorKey{building, floor}

		g, ok := floors[key]
		if !ok {
			g = &FloorGroup{Floor: floor, Photos: []models.GalleryPhoto{}, Submissions: []string{}, Pins: []GalleryPin{}}
			floors[key] = g
			byBuilding[building] = append(byBuilding[building], floor)
		}
		g.Photos = append(g.Photos, p)
		if !containsString(g.Submissions, p.SubmissionID) {
			g.Submissions = append(g.Submissions, p.SubmissionID)
		}
		submissions[p.SubmissionID] = struct{}{}

		if p.IsPinnable() {
			at := floorplan.Percent{X: *p.LocationX, Y: *p.LocationY}
			g.Pins = append(g.Pins, GalleryPin{
				PhotoID:  p.ID,
				Caption:  p.Caption,
				Category: p.Category,
				At:       at,
				Style:    floorplan.PercentToStyle(at),
			})
		}
	}

	names := make([]string, 0, len(byBuilding))
	for b := range byBuilding {
		names = append(names, b)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := names[i], names[j]
		if (a == models.UnknownBuilding) != (b == models.UnknownBuilding) {
			return b == models.UnknownBuilding
		}
		return a < b
	})

	tree := GalleryTree{
		Buildings:        make([]BuildingGroup, 0, len(names)),
		TotalPhotos:      len(photos),
		TotalSubmissions: len(submissions),
	}
	for _, b := range names {
		floorNames := byBuilding[b]
		models.SortFloors(floorNames)

		group := BuildingGroup{Building: b}
		for _, f := range floorNames {
			g := floors[floorKey{b, f}]
			group.Floors = append(group.Floors, *g)
			group.PhotoCount += len(g.Photos)
		}
		tree.Buildings = append(tree.Buildings, group)
	}
	return tree
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// GalleryStore lists photos joined with their walker's school.
type GalleryStore interface {
	ListGalleryPhotos(ctx context.Context) ([]models.GalleryPhoto, error)
}

// ImageResolver resolves a floor's backdrop image.
type ImageResolver interface {
	ImageOrPlaceholder(ctx context.Context, building, floor string) (string, bool)
}

type Gallery struct {
	photos   GalleryStore
	plans    FloorPlanCatalog
	resolver ImageResolver
	store    storage.Store
	renderer *floorplan.Renderer
}

func NewGallery(photos GalleryStore, plans FloorPlanCatalog, resolver ImageResolver, store storage.Store) *Gallery {
	return &Gallery{
		photos:   photos,
		plans:    plans,
		resolver: resolver,
		store:    store,
		renderer: floorplan.NewRenderer(),
	}
}

// Build loads every photo, groups it and resolves each floor's image once.
func (g *Gallery) Build(ctx context.Context) (*GalleryTree, error) {
	photos, err := g.photos.ListGalleryPhotos(ctx)
	if err != nil {
		return nil, fmt.Errorf("load gallery: %w", err)
	}
	tree := GroupByBuildingAndFloor(photos)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(galleryResolveLimit)

	for i := range tree.Buildings {
		building := &tree.Buildings[i]
		for j := range building.Floors {
			floor := &building.Floors[j]
			name := building.Building
			eg.Go(func() error {
				floor.ImageURL, floor.Placeholder = g.resolver.ImageOrPlaceholder(egCtx, name, floor.Floor)
				g.attachThumbnails(egCtx, floor)
				return nil
			})
		}
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return &tree, nil
}

func (g *Gallery) attachThumbnails(ctx context.Context, floor *FloorGroup) {
	keys := make(map[string]string, len(floor.Photos))
	for _, p := range floor.Photos {
		keys[p.ID] = p.ObjectKey
	}
	for i := range floor.Pins {
		pin := &floor.Pins[i]
		url, err := g.store.URL(ctx, keys[pin.PhotoID])
		if err != nil {
			log.Printf("[GALLERY] thumbnail for %s: %v", pin.PhotoID, err)
			continue
		}
		pin.ThumbnailURL = url
	}
}

// Overlay renders one floor's plan with its pins as SVG.
func (g *Gallery) Overlay(ctx context.Context, building, floor string) (string, error) {
	photos, err := g.photos.ListGalleryPhotos(ctx)
	if err != nil {
		return "", fmt.Errorf("load gallery: %w", err)
	}
	tree := GroupByBuildingAndFloor(photos)

	overlay := &floorplan.Overlay{}
	overlay.ImageURL, _ = g.resolver.ImageOrPlaceholder(ctx, building, floor)

	fp, err := g.plans.ActiveFloorPlan(ctx, building, floor)
	switch {
	case err == nil:
		if fp.Width != nil && fp.Height != nil {
			overlay.Width, overlay.Height = *fp.Width, *fp.Height
		}
	case !errors.Is(err, models.ErrNotFound):
		log.Printf("[GALLERY] floor plan %q/%q: %v", building, floor, err)
	}

	for _, pin := range tree.PinsOn(building, floor) {
		overlay.Pins = append(overlay.Pins, floorplan.OverlayPin{
			ID:      pin.PhotoID,
			Caption: pin.Caption,
			At:      pin.At,
		})
	}
	return g.renderer.Render(overlay)
}
