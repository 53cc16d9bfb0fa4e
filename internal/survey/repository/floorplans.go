package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"facility-survey/internal/survey/models"

	"github.com/pocketbase/dbx"
)

// ============================================================
// Floor Plans
// ============================================================

// ActiveBuildings lists buildings with at least one active floor plan.
func (r *Repository) ActiveBuildings(ctx context.Context) ([]string, error) {
	buildings := []string{}
	err := r.db.NewQuery(`
        SELECT DISTINCT building
        FROM floor_plans
        WHERE is_active = {:active}
        ORDER BY building ASC
    `).Bind(dbx.Params{"active": true}).WithContext(ctx).Column(&buildings)
	if err != nil {
		return nil, fmt.Errorf("list active buildings: %w", err)
	}
	return buildings, nil
}

// ActiveFloors lists floors of a building that have an active plan.
func (r *Repository) ActiveFloors(ctx context.Context, building string) ([]string, error) {
	floors := []string{}
	err := r.db.NewQuery(`
        SELECT DISTINCT floor_level
        FROM floor_plans
        WHERE building = {:building} AND is_active = {:active}
    `).Bind(dbx.Params{"building": building, "active": true}).WithContext(ctx).Column(&floors)
	if err != nil {
		return nil, fmt.Errorf("list active floors: %w", err)
	}
	models.SortFloors(floors)
	return floors, nil
}

// ActiveFloorPlan returns the most recent active plan for building/floor.
func (r *Repository) ActiveFloorPlan(ctx context.Context, building, floor string) (*models.FloorPlan, error) {
	var fp models.FloorPlan
	err := r.db.Select("*").
		From("floor_plans").
		Where(dbx.HashExp{"building": building, "floor_level": floor, "is_active": true}).
		OrderBy("version DESC", "created_at DESC").
		Limit(1).
		WithContext(ctx).
		One(&fp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("floor plan %s/%s: %w", building, floor, models.ErrNotFound)
		}
		return nil, fmt.Errorf("get active floor plan: %w", err)
	}
	return &fp, nil
}

// InsertFloorPlanVersion supersedes the active plan and inserts fp as the new
// active version inside one transaction.
func (r *Repository) InsertFloorPlanVersion(ctx context.Context, fp *models.FloorPlan) error {
	return r.db.TransactionalContext(ctx, nil, func(tx *dbx.Tx) error {
		var current int
		err := tx.NewQuery(`
            SELECT COALESCE(MAX(version), 0)
            FROM floor_plans
            WHERE building = {:building} AND floor_level = {:floor}
        `).Bind(dbx.Params{"building": fp.Building, "floor": fp.FloorLevel}).WithContext(ctx).Row(&current)
		if err != nil {
			return fmt.Errorf("read floor plan version: %w", err)
		}

		now := r.timestamp()
		_, err = tx.Update("floor_plans",
			dbx.Params{"is_active": false, "updated_at": now},
			dbx.HashExp{"building": fp.Building, "floor_level": fp.FloorLevel, "is_active": true},
		).WithContext(ctx).Execute()
		if err != nil {
			return fmt.Errorf("deactivate floor plans: %w", err)
		}

		fp.Version = current + 1
		fp.IsActive = true
		fp.CreatedAt = now
		fp.UpdatedAt = now

		_, err = tx.Insert("floor_plans", dbx.Params{
			"id":          fp.ID,
			"building":    fp.Building,
			"floor_level": fp.FloorLevel,
			"object_key":  fp.ObjectKey,
			"file_size":   fp.FileSize,
			"mime_type":   fp.MimeType,
			"width":       fp.Width,
			"height":      fp.Height,
			"description": fp.Description,
			"is_active":   true,
			"version":     fp.Version,
			"uploaded_by": fp.UploadedBy,
			"created_at":  fp.CreatedAt,
			"updated_at":  fp.UpdatedAt,
		}).WithContext(ctx).Execute()
		if err != nil {
			return fmt.Errorf("insert floor plan: %w", err)
		}
		return nil
	})
}

// ListFloorPlans lists every version, optionally for one building.
func (r *Repository) ListFloorPlans(ctx context.Context, building string) ([]models.FloorPlan, error) {
	q := r.db.Select("*").From("floor_plans")
	if building != "" {
		q = q.Where(dbx.HashExp{"building": building})
	}

	plans := []models.FloorPlan{}
	err := q.OrderBy("building ASC", "floor_level ASC", "version DESC").WithContext(ctx).All(&plans)
	if err != nil {
		return nil, fmt.Errorf("list floor plans: %w", err)
	}
	return plans, nil
}

func (r *Repository) GetFloorPlan(ctx context.Context, id string) (*models.FloorPlan, error) {
	return getFloorPlan(ctx, r.db, id)
}

// DeleteFloorPlan hard-deletes a row and returns it for blob cleanup.
func (r *Repository) DeleteFloorPlan(ctx context.Context, id string) (*models.FloorPlan, error) {
	var deleted *models.FloorPlan
	err := r.db.TransactionalContext(ctx, nil, func(tx *dbx.Tx) error {
		fp, err := getFloorPlan(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, err := tx.Delete("floor_plans", dbx.HashExp{"id": id}).WithContext(ctx).Execute(); err != nil {
			return fmt.Errorf("delete floor plan: %w", err)
		}
		deleted = fp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func getFloorPlan(ctx context.Context, b dbx.Builder, id string) (*models.FloorPlan, error) {
	var fp models.FloorPlan
	err := b.Select("*").
		From("floor_plans").
		Where(dbx.HashExp{"id": id}).
		WithContext(ctx).
		One(&fp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("floor plan %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("get floor plan: %w", err)
	}
	return &fp, nil
}
