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
// Walkers & Submissions
// ============================================================

func (r *Repository) CreateWalker(ctx context.Context, w *models.Walker) error {
	w.CreatedAt = r.timestamp()
	_, err := r.db.Insert("walkers", dbx.Params{
		"id":         w.ID,
		"name":       w.Name,
		"school":     w.School,
		"created_at": w.CreatedAt,
	}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("insert walker: %w", err)
	}
	return nil
}

func (r *Repository) CreateSubmission(ctx context.Context, s *models.Submission) error {
	s.CreatedAt = r.timestamp()
	if s.SurveyDate == "" {
		s.SurveyDate = s.CreatedAt[:10]
	}
	_, err := r.db.Insert("submissions", dbx.Params{
		"id":          s.ID,
		"walker_id":   s.WalkerID,
		"survey_date": s.SurveyDate,
		"created_at":  s.CreatedAt,
	}).WithContext(ctx).Execute()
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

func (r *Repository) GetSubmission(ctx context.Context, id string) (*models.Submission, error) {
	var s models.Submission
	err := r.db.Select("*").
		From("submissions").
		Where(dbx.HashExp{"id": id}).
		WithContext(ctx).
		One(&s)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("submission %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("get submission: %w", err)
	}
	return &s, nil
}

func (r *Repository) GetWalker(ctx context.Context, id string) (*models.Walker, error) {
	var w models.Walker
	err := r.db.Select("*").
		From("walkers").
		Where(dbx.HashExp{"id": id}).
		WithContext(ctx).
		One(&w)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("walker %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("get walker: %w", err)
	}
	return &w, nil
}

// WalkerSchools lists the distinct non-empty schools of all walkers.
func (r *Repository) WalkerSchools(ctx context.Context) ([]string, error) {
	schools := []string{}
	err := r.db.NewQuery(`
        SELECT DISTINCT school
        FROM walkers
        WHERE school <> ''
        ORDER BY school ASC
    `).WithContext(ctx).Column(&schools)
	if err != nil {
		return nil, fmt.Errorf("list walker schools: %w", err)
	}
	return schools, nil
}
