package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"facility-survey/internal/survey/models"
)

func TestSessionManagerOpenRequiresPhoto(t *testing.T) {
	photos := &fakePhotos{ids: map[string]bool{"photo-1": true}}
	m := NewSessionManager(photos, newStubResolver(), &fakeWriter{}, time.Hour)

	if _, err := m.Open(context.Background(), "missing"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("open missing photo: %v", err)
	}
	if _, err := m.Open(context.Background(), ""); !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("open without id: %v", err)
	}

	s, err := m.Open(context.Background(), "photo-1")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	got, err := m.Get(s.ID())
	if err != nil || got != s {
		t.Errorf("get = %v, %v", got, err)
	}
	if _, err := m.Get("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("get unknown: %v", err)
	}
}

func TestSessionManagerSweep(t *testing.T) {
	photos := &fakePhotos{ids: map[string]bool{"photo-1": true}}
	m := NewSessionManager(photos, newStubResolver(), &fakeWriter{}, 10*time.Minute)

	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	stale, _ := m.Open(context.Background(), "photo-1")
	now = now.Add(8 * time.Minute)
	fresh, _ := m.Open(context.Background(), "photo-1")

	now = now.Add(5 * time.Minute)
	if n := m.Sweep(context.Background()); n != 1 {
		t.Fatalf("swept %d, want 1", n)
	}
	if _, err := m.Get(stale.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("stale session still present: %v", err)
	}
	if _, err := m.Get(fresh.ID()); err != nil {
		t.Errorf("fresh session swept: %v", err)
	}
	if m.Len() != 1 {
		t.Errorf("len = %d", m.Len())
	}
}

func TestSessionManagerSweepSkipsAbandonedCapture(t *testing.T) {
	photos := &fakePhotos{ids: map[string]bool{"photo-1": true, "photo-2": true}}
	writer := &fakeWriter{}
	m := NewSessionManager(photos, newStubResolver(), writer, 10*time.Minute)

	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	abandoned, _ := m.Open(context.Background(), "photo-1")
	if _, err := abandoned.ChooseBuilding(context.Background(), "Main Building"); err != nil {
		t.Fatalf("choose building: %v", err)
	}
	done, _ := m.Open(context.Background(), "photo-2")
	if _, err := done.Skip(context.Background()); err != nil {
		t.Fatalf("skip: %v", err)
	}

	now = now.Add(time.Hour)
	if n := m.Sweep(context.Background()); n != 2 {
		t.Fatalf("swept %d, want 2", n)
	}

	if len(writer.updates) != 0 {
		t.Errorf("updates = %v, want none", writer.updates)
	}
	want := []string{"photo-2", "photo-1"}
	if len(writer.skips) != len(want) {
		t.Fatalf("skips = %v, want %v", writer.skips, want)
	}
	for i := range want {
		if writer.skips[i] != want[i] {
			t.Errorf("skips = %v, want %v", writer.skips, want)
		}
	}
	if got := abandoned.Snapshot(); got.State != StateSkipped {
		t.Errorf("abandoned state = %s, want %s", got.State, StateSkipped)
	}
}
