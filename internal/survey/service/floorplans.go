package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"facility-survey/internal/survey/floorplan"
	"facility-survey/internal/survey/models"
	"facility-survey/internal/survey/storage"

	"github.com/google/uuid"
)

// ============================================================
// Floor Plan Catalog
// ============================================================

type FloorPlanRepository interface {
	InsertFloorPlanVersion(ctx context.Context, fp *models.FloorPlan) error
	ListFloorPlans(ctx context.Context, building string) ([]models.FloorPlan, error)
	GetFloorPlan(ctx context.Context, id string) (*models.FloorPlan, error)
	DeleteFloorPlan(ctx context.Context, id string) (*models.FloorPlan, error)
}

type FloorPlanUpload struct {
	Building    string
	Floor       string
	Description string
	UploadedBy  string
	Data        []byte
}

type FloorPlanService struct {
	repo     FloorPlanRepository
	store    storage.Store
	maxBytes int64
	now      func() time.Time
}

func NewFloorPlanService(repo FloorPlanRepository, store storage.Store, maxBytes int64) *FloorPlanService {
	return &FloorPlanService{
		repo:     repo,
		store:    store,
		maxBytes: maxBytes,
		now:      time.Now,
	}
}

// Upload stores the image and makes it the active plan for its building and floor.
func (s *FloorPlanService) Upload(ctx context.Context, in FloorPlanUpload) (*models.FloorPlan, error) {
	building := strings.TrimSpace(in.Building)
	floor := models.NormalizeFloor(in.Floor)
	if building == "" {
		return nil, fmt.Errorf("%w: building is required", models.ErrInvalidInput)
	}
	if floor == "" || floor == models.UnknownFloor {
		return nil, fmt.Errorf("%w: a floor level is required", models.ErrInvalidInput)
	}
	if !models.IsKnownFloor(floor) {
		log.Printf("[FLOORPLAN] building=%q uses custom floor level %q", building, floor)
	}
	if !storage.ValidateFileSize(int64(len(in.Data)), s.maxBytes) {
		return nil, fmt.Errorf("%w: file must be between 1 and %d bytes", models.ErrInvalidInput, s.maxBytes)
	}

	mime, ext := storage.DetectMime(in.Data)
	if !storage.IsAllowedFloorPlanMime(mime) {
		return nil, fmt.Errorf("%w: unsupported floor plan type %s", models.ErrInvalidInput, mime)
	}

	fp := &models.FloorPlan{
		ID:         uuid.NewString(),
		Building:   building,
		FloorLevel: floor,
		ObjectKey:  storage.FloorPlanKey(building, floor, ext, s.now()),
		FileSize:   int64(len(in.Data)),
		MimeType:   mime,
		UploadedBy: in.UploadedBy,
	}
	if d := strings.TrimSpace(in.Description); d != "" {
		fp.Description = &d
	}
	if w, h, err := floorplan.Dimensions(in.Data, mime); err == nil {
		fp.Width, fp.Height = &w, &h
	} else {
		log.Printf("[FLOORPLAN] size of %s: %v", fp.ObjectKey, err)
	}

	if err := s.store.Put(ctx, fp.ObjectKey, bytes.NewReader(in.Data), fp.FileSize, mime); err != nil {
		return nil, fmt.Errorf("store floor plan: %w", err)
	}
	if err := s.repo.InsertFloorPlanVersion(ctx, fp); err != nil {
		if delErr := s.store.Delete(ctx, fp.ObjectKey); delErr != nil {
			log.Printf("[FLOORPLAN] cleanup %s: %v", fp.ObjectKey, delErr)
		}
		return nil, err
	}

	log.Printf("[FLOORPLAN] %s/%s version %d uploaded (%d bytes)", fp.Building, fp.FloorLevel, fp.Version, fp.FileSize)
	return fp, nil
}

func (s *FloorPlanService) List(ctx context.Context, building string) ([]models.FloorPlan, error) {
	return s.repo.ListFloorPlans(ctx, building)
}

func (s *FloorPlanService) Get(ctx context.Context, id string) (*models.FloorPlan, error) {
	return s.repo.GetFloorPlan(ctx, id)
}

// Delete removes the row, then the blob. A leftover blob is only logged.
func (s *FloorPlanService) Delete(ctx context.Context, id string) (*models.FloorPlan, error) {
	fp, err := s.repo.DeleteFloorPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.Delete(ctx, fp.ObjectKey); err != nil {
		log.Printf("[FLOORPLAN] delete blob %s: %v", fp.ObjectKey, err)
	}
	return fp, nil
}

// URL returns the browser address of a plan's image.
func (s *FloorPlanService) URL(ctx context.Context, fp *models.FloorPlan) (string, error) {
	return s.store.URL(ctx, fp.ObjectKey)
}
