package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"facility-survey/internal/survey/models"

	"github.com/google/uuid"
)

// ============================================================
// Capture Session Manager
// ============================================================

// PhotoLookup confirms a photo exists before a capture opens for it.
type PhotoLookup interface {
	GetPhoto(ctx context.Context, id string) (*models.Photo, error)
}

type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*CaptureSession

	photos   PhotoLookup
	resolver CaptureResolver
	writer   LocationWriter
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionManager(photos PhotoLookup, resolver CaptureResolver, writer LocationWriter, ttl time.Duration) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*CaptureSession),
		photos:   photos,
		resolver: resolver,
		writer:   writer,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Open starts a capture for photoID in the building-selection state.
func (m *SessionManager) Open(ctx context.Context, photoID string) (*CaptureSession, error) {
	if photoID == "" {
		return nil, fmt.Errorf("%w: photoId is required", models.ErrInvalidInput)
	}
	if _, err := m.photos.GetPhoto(ctx, photoID); err != nil {
		return nil, err
	}

	buildings := m.resolver.ListBuildings(ctx)
	s := newCaptureSession(uuid.NewString(), photoID, buildings, m.resolver, m.writer, m.now())

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()

	log.Printf("[CAPTURE] opened session=%s photo=%s", s.id, photoID)
	return s, nil
}

// Get resolves a session and marks it active.
func (m *SessionManager) Get(id string) (*CaptureSession, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrSessionNotFound)
	}
	s.touch(m.now())
	return s, nil
}

func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep drops sessions idle for longer than the TTL, and returns how many.
// Terminal sessions are kept until they expire so clients can read the result.
// An abandoned capture is dismissed first so its photo is recorded as skipped.
func (m *SessionManager) Sweep(ctx context.Context) int {
	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	var expired []*CaptureSession
	for id, s := range m.sessions {
		if s.idleSince().Before(cutoff) {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		if s.isTerminal() {
			continue
		}
		if _, err := s.Dismiss(ctx); err != nil && !errors.Is(err, ErrSessionClosed) {
			log.Printf("[CAPTURE] dismiss idle session=%s: %v", s.id, err)
		}
	}
	return len(expired)
}

// Run sweeps expired sessions until ctx is done.
func (m *SessionManager) Run(ctx context.Context) {
	interval := m.ttl / 2
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(ctx); n > 0 {
				log.Printf("[CAPTURE] swept %d idle sessions", n)
			}
		}
	}
}
