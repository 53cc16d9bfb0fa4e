package service

import (
	"context"
	"fmt"
	"log"

	"facility-survey/internal/survey/models"
)

// ============================================================
// Location Persistence Gateway
// ============================================================

// LocationStore persists a single location update.
type LocationStore interface {
	UpdatePhotoLocation(ctx context.Context, u models.LocationUpdate) (*models.Photo, error)
}

type LocationGateway struct {
	repo LocationStore
}

func NewLocationGateway(repo LocationStore) *LocationGateway {
	return &LocationGateway{repo: repo}
}

// UpdateLocation validates and stores u. Legacy sentinel values in floor and
// building leave the stored columns untouched, and the legacy skip payload is
// stored as skipped.
func (g *LocationGateway) UpdateLocation(ctx context.Context, u models.LocationUpdate) (*models.Photo, error) {
	if u.IsLegacySkip() {
		u.Status = models.LocationSkipped
	}
	u.Floor = u.Floor.WithoutSentinel(models.UnknownFloor)
	u.Building = u.Building.WithoutSentinel(models.UnknownBuilding)
	if u.Status == "" {
		u.Status = models.LocationLocated
	}

	if err := u.Validate(); err != nil {
		return nil, err
	}

	p, err := g.repo.UpdatePhotoLocation(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("update location of %s: %w", u.PhotoID, err)
	}
	log.Printf("[LOCATION] photo=%s status=%s x=%v y=%v", u.PhotoID, u.Status, u.X, u.Y)
	return p, nil
}

// Skip records that the photo was not located. Floor and building keep their values.
func (g *LocationGateway) Skip(ctx context.Context, photoID string) (*models.Photo, error) {
	return g.UpdateLocation(ctx, models.LocationUpdate{
		PhotoID: photoID,
		Status:  models.LocationSkipped,
	})
}
