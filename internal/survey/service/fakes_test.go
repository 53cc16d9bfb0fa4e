package service

import (
	"context"
	"errors"
	"sync"

	"facility-survey/internal/survey/models"
)

type fakeCatalog struct {
	plans []models.FloorPlan
	err   error
}

func (f *fakeCatalog) ActiveBuildings(context.Context) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []string
	for _, p := range f.plans {
		if p.IsActive && !containsString(out, p.Building) {
			out = append(out, p.Building)
		}
	}
	return out, nil
}

func (f *fakeCatalog) ActiveFloors(_ context.Context, building string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []string
	for _, p := range f.plans {
		if p.IsActive && p.Building == building {
			out = append(out, p.FloorLevel)
		}
	}
	models.SortFloors(out)
	return out, nil
}

func (f *fakeCatalog) ActiveFloorPlan(_ context.Context, building, floor string) (*models.FloorPlan, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.plans {
		p := f.plans[i]
		if p.IsActive && p.Building == building && p.FloorLevel == floor {
			return &p, nil
		}
	}
	return nil, models.ErrNotFound
}

type fakeWalkers struct {
	schools []string
	err     error
}

func (f *fakeWalkers) WalkerSchools(context.Context) ([]string, error) {
	return f.schools, f.err
}

type fakeWriter struct {
	mu      sync.Mutex
	updates []models.LocationUpdate
	skips   []string
	err     error
}

func (f *fakeWriter) UpdateLocation(_ context.Context, u models.LocationUpdate) (*models.Photo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.updates = append(f.updates, u)
	x, y := u.X, u.Y
	return &models.Photo{ID: u.PhotoID, LocationX: &x, LocationY: &y, LocationStatus: u.Status}, nil
}

func (f *fakeWriter) Skip(_ context.Context, photoID string) (*models.Photo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.skips = append(f.skips, photoID)
	zero := 0.0
	return &models.Photo{ID: photoID, LocationX: &zero, LocationY: &zero, LocationStatus: models.LocationSkipped}, nil
}

type fakePhotos struct {
	ids map[string]bool
}

func (f *fakePhotos) GetPhoto(_ context.Context, id string) (*models.Photo, error) {
	if !f.ids[id] {
		return nil, models.ErrNotFound
	}
	return &models.Photo{ID: id}, nil
}

type fakeLocationStore struct {
	last *models.LocationUpdate
	err  error
}

func (f *fakeLocationStore) UpdatePhotoLocation(_ context.Context, u models.LocationUpdate) (*models.Photo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.last = &u
	return &models.Photo{ID: u.PhotoID}, nil
}

var errBackend = errors.New("backend unavailable")

func plan(building, floor string) models.FloorPlan {
	return models.FloorPlan{
		ID:         building + "/" + floor,
		Building:   building,
		FloorLevel: floor,
		ObjectKey:  "floorplans/" + building + "/" + floor + ".png",
		IsActive:   true,
		Version:    1,
	}
}

func strPtr(s string) *string { return &s }

func floatPtr(v float64) *float64 { return &v }
