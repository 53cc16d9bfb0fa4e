package service

import (
	"context"
	"errors"
	"log"
	"sort"

	"facility-survey/internal/survey/models"
	"facility-survey/internal/survey/storage"
)

// ============================================================
// Building / Floor Resolver
// ============================================================

// FloorPlanCatalog is the read side of the floor-plan table.
type FloorPlanCatalog interface {
	ActiveBuildings(ctx context.Context) ([]string, error)
	ActiveFloors(ctx context.Context, building string) ([]string, error)
	ActiveFloorPlan(ctx context.Context, building, floor string) (*models.FloorPlan, error)
}

// WalkerDirectory supplies fallback building names.
type WalkerDirectory interface {
	WalkerSchools(ctx context.Context) ([]string, error)
}

type Resolver struct {
	plans       FloorPlanCatalog
	walkers     WalkerDirectory
	store       storage.Store
	placeholder string
}

func NewResolver(plans FloorPlanCatalog, walkers WalkerDirectory, store storage.Store, placeholder string) *Resolver {
	return &Resolver{
		plans:       plans,
		walkers:     walkers,
		store:       store,
		placeholder: placeholder,
	}
}

// ListBuildings merges buildings that have an active plan with walker schools.
// A failing source is logged and treated as empty.
func (r *Resolver) ListBuildings(ctx context.Context) []string {
	seen := map[string]struct{}{}
	var out []string
	add := func(names []string) {
		for _, n := range names {
			if n == "" {
				continue
			}
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}

	planned, err := r.plans.ActiveBuildings(ctx)
	if err != nil {
		log.Printf("[RESOLVER] list floor plan buildings: %v", err)
	}
	add(planned)

	if r.walkers != nil {
		schools, err := r.walkers.WalkerSchools(ctx)
		if err != nil {
			log.Printf("[RESOLVER] list walker schools: %v", err)
		}
		add(schools)
	}

	sort.Strings(out)
	if out == nil {
		out = []string{}
	}
	return out
}

// ListFloors returns the floors with an active plan, or the default list when
// the building has none at all.
func (r *Resolver) ListFloors(ctx context.Context, building string) []string {
	floors, err := r.plans.ActiveFloors(ctx, building)
	if err != nil {
		log.Printf("[RESOLVER] list floors for %q: %v", building, err)
		return models.DefaultFloors()
	}
	if len(floors) == 0 {
		return models.DefaultFloors()
	}
	return floors
}

// ResolveImageURL returns the active plan's URL; ok is false when there is none.
func (r *Resolver) ResolveImageURL(ctx context.Context, building, floor string) (string, bool) {
	fp, err := r.plans.ActiveFloorPlan(ctx, building, floor)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			log.Printf("[RESOLVER] active floor plan %q/%q: %v", building, floor, err)
		}
		return "", false
	}

	url, err := r.store.URL(ctx, fp.ObjectKey)
	if err != nil {
		log.Printf("[RESOLVER] url for %s: %v", fp.ObjectKey, err)
		return "", false
	}
	return url, true
}

// ImageOrPlaceholder always yields something to render; placeholder reports the fallback.
func (r *Resolver) ImageOrPlaceholder(ctx context.Context, building, floor string) (url string, placeholder bool) {
	if url, ok := r.ResolveImageURL(ctx, building, floor); ok {
		return url, false
	}
	return r.placeholder, true
}
