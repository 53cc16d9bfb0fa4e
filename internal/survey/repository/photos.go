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
// Photos
// ============================================================

func (r *Repository) CreatePhoto(ctx context.Context, p *models.Photo) error {
	if p.UploadedAt == "" {
		p.UploadedAt = r.timestamp()
	}
	if p.LocationStatus == "" {
		p.LocationStatus = models.LocationPending
	}

	_, err := r.db.Insert("photos", dbx.Params{
		"id":              p.ID,
		"submission_id":   p.SubmissionID,
		"category":        p.Category,
		"room_number":     p.RoomNumber,
		"object_key":      p.ObjectKey,
		"caption":         p.Caption,
		"mime_type":       p.MimeType,
		"file_size":       p.FileSize,
		"uploaded_at":     p.UploadedAt,
		"location_status": string(p.LocationStatus),
	}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("insert photo: %w", err)
	}
	return nil
}

func (r *Repository) GetPhoto(ctx context.Context, id string) (*models.Photo, error) {
	return getPhoto(ctx, r.db, id)
}

func (r *Repository) ListPhotosBySubmission(ctx context.Context, submissionID string) ([]models.Photo, error) {
	photos := []models.Photo{}
	err := r.db.Select("*").
		From("photos").
		Where(dbx.HashExp{"submission_id": submissionID}).
		OrderBy("uploaded_at ASC").
		WithContext(ctx).
		All(&photos)
	if err != nil {
		return nil, fmt.Errorf("list photos: %w", err)
	}
	return photos, nil
}

// ListGalleryPhotos returns every photo with the school of its walker, if any.
func (r *Repository) ListGalleryPhotos(ctx context.Context) ([]models.GalleryPhoto, error) {
	photos := []models.GalleryPhoto{}
	err := r.db.NewQuery(`
        SELECT p.*, w.school AS walker_school
        FROM photos p
        LEFT JOIN submissions s ON s.id = p.submission_id
        LEFT JOIN walkers w ON w.id = s.walker_id
        ORDER BY p.uploaded_at ASC, p.id ASC
    `).WithContext(ctx).All(&photos)
	if err != nil {
		return nil, fmt.Errorf("list gallery photos: %w", err)
	}
	return photos, nil
}

// UpdatePhotoLocation writes one location update and returns the stored row.
func (r *Repository) UpdatePhotoLocation(ctx context.Context, u models.LocationUpdate) (*models.Photo, error) {
	var updated *models.Photo
	err := r.db.TransactionalContext(ctx, nil, func(tx *dbx.Tx) error {
		if _, err := getPhoto(ctx, tx, u.PhotoID); err != nil {
			return err
		}

		params := dbx.Params{
			"location_x":          u.X,
			"location_y":          u.Y,
			"location_status":     string(u.Status),
			"location_updated_at": r.timestamp(),
		}
		applyOptional(params, "floor_level", u.Floor)
		applyOptional(params, "building", u.Building)

		_, err := tx.Update("photos", params, dbx.HashExp{"id": u.PhotoID}).WithContext(ctx).Execute()
		if err != nil {
			return fmt.Errorf("update photo location: %w", err)
		}

		updated, err = getPhoto(ctx, tx, u.PhotoID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeletePhoto removes the row and returns it so the caller can drop the blob.
func (r *Repository) DeletePhoto(ctx context.Context, id string) (*models.Photo, error) {
	var deleted *models.Photo
	err := r.db.TransactionalContext(ctx, nil, func(tx *dbx.Tx) error {
		p, err := getPhoto(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, err := tx.Delete("photos", dbx.HashExp{"id": id}).WithContext(ctx).Execute(); err != nil {
			return fmt.Errorf("delete photo: %w", err)
		}
		deleted = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func getPhoto(ctx context.Context, b dbx.Builder, id string) (*models.Photo, error) {
	var p models.Photo
	err := b.Select("*").
		From("photos").
		Where(dbx.HashExp{"id": id}).
		WithContext(ctx).
		One(&p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("photo %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("get photo: %w", err)
	}
	return &p, nil
}

func applyOptional(params dbx.Params, column string, v models.OptionalString) {
	if v.IsClear() {
		params[column] = nil
		return
	}
	if s, ok := v.Get(); ok {
		params[column] = s
	}
}
