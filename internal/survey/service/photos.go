package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"facility-survey/internal/survey/models"
	"facility-survey/internal/survey/storage"

	"github.com/google/uuid"
)

// ============================================================
// Photos, Walkers & Submissions
// ============================================================

type PhotoRepository interface {
	CreatePhoto(ctx context.Context, p *models.Photo) error
	GetPhoto(ctx context.Context, id string) (*models.Photo, error)
	ListPhotosBySubmission(ctx context.Context, submissionID string) ([]models.Photo, error)
	DeletePhoto(ctx context.Context, id string) (*models.Photo, error)
	CreateWalker(ctx context.Context, w *models.Walker) error
	GetWalker(ctx context.Context, id string) (*models.Walker, error)
	CreateSubmission(ctx context.Context, s *models.Submission) error
	GetSubmission(ctx context.Context, id string) (*models.Submission, error)
}

type PhotoUpload struct {
	SubmissionID string
	Category     string
	RoomNumber   string
	Caption      string
	Data         []byte
}

type PhotoService struct {
	repo     PhotoRepository
	store    storage.Store
	maxBytes int64
}

func NewPhotoService(repo PhotoRepository, store storage.Store, maxBytes int64) *PhotoService {
	return &PhotoService{repo: repo, store: store, maxBytes: maxBytes}
}

// Upload stores a photo with no location yet and returns its record.
func (s *PhotoService) Upload(ctx context.Context, in PhotoUpload) (*models.Photo, error) {
	if in.SubmissionID == "" {
		return nil, fmt.Errorf("%w: submissionId is required", models.ErrInvalidInput)
	}
	if !storage.ValidateFileSize(int64(len(in.Data)), s.maxBytes) {
		return nil, fmt.Errorf("%w: file must be between 1 and %d bytes", models.ErrInvalidInput, s.maxBytes)
	}
	if _, err := s.repo.GetSubmission(ctx, in.SubmissionID); err != nil {
		return nil, err
	}

	mime, ext := storage.DetectMime(in.Data)
	if !storage.IsAllowedPhotoMime(mime) {
		return nil, fmt.Errorf("%w: unsupported photo type %s", models.ErrInvalidInput, mime)
	}

	p := &models.Photo{
		ID:           uuid.NewString(),
		SubmissionID: in.SubmissionID,
		Category:     strings.TrimSpace(in.Category),
		ObjectKey:    storage.PhotoKey(in.SubmissionID, ext),
		Caption:      strings.TrimSpace(in.Caption),
		MimeType:     mime,
		FileSize:     int64(len(in.Data)),
	}
	if room := strings.TrimSpace(in.RoomNumber); room != "" {
		p.RoomNumber = &room
	}

	if err := s.store.Put(ctx, p.ObjectKey, bytes.NewReader(in.Data), p.FileSize, mime); err != nil {
		return nil, fmt.Errorf("store photo: %w", err)
	}
	if err := s.repo.CreatePhoto(ctx, p); err != nil {
		if delErr := s.store.Delete(ctx, p.ObjectKey); delErr != nil {
			log.Printf("[PHOTOS] cleanup %s: %v", p.ObjectKey, delErr)
		}
		return nil, err
	}

	log.Printf("[PHOTOS] uploaded %s for submission %s", p.ID, p.SubmissionID)
	return p, nil
}

func (s *PhotoService) Get(ctx context.Context, id string) (*models.Photo, error) {
	return s.repo.GetPhoto(ctx, id)
}

func (s *PhotoService) ListBySubmission(ctx context.Context, submissionID string) ([]models.Photo, error) {
	return s.repo.ListPhotosBySubmission(ctx, submissionID)
}

// FileURL returns where the browser can load the photo.
func (s *PhotoService) FileURL(ctx context.Context, id string) (string, error) {
	p, err := s.repo.GetPhoto(ctx, id)
	if err != nil {
		return "", err
	}
	return s.store.URL(ctx, p.ObjectKey)
}

func (s *PhotoService) Delete(ctx context.Context, id string) (*models.Photo, error) {
	p, err := s.repo.DeletePhoto(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.Delete(ctx, p.ObjectKey); err != nil {
		log.Printf("[PHOTOS] delete blob %s: %v", p.ObjectKey, err)
	}
	return p, nil
}

func (s *PhotoService) CreateWalker(ctx context.Context, name, school string) (*models.Walker, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", models.ErrInvalidInput)
	}
	w := &models.Walker{ID: uuid.NewString(), Name: name, School: strings.TrimSpace(school)}
	if err := s.repo.CreateWalker(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *PhotoService) CreateSubmission(ctx context.Context, walkerID, surveyDate string) (*models.Submission, error) {
	if walkerID == "" {
		return nil, fmt.Errorf("%w: walkerId is required", models.ErrInvalidInput)
	}
	if _, err := s.repo.GetWalker(ctx, walkerID); err != nil {
		return nil, err
	}
	sub := &models.Submission{ID: uuid.NewString(), WalkerID: walkerID, SurveyDate: surveyDate}
	if err := s.repo.CreateSubmission(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}
