package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"facility-survey/internal/survey/models"
)

func TestUpdateLocationDropsSentinels(t *testing.T) {
	store := &fakeLocationStore{}
	g := NewLocationGateway(store)

	_, err := g.UpdateLocation(context.Background(), models.LocationUpdate{
		PhotoID:  "p1",
		X:        12.5,
		Y:        99,
		Floor:    models.Value("unknown"),
		Building: models.Value("Unknown Building"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !store.last.Floor.IsUnset() || !store.last.Building.IsUnset() {
		t.Errorf("sentinels were not dropped: %+v", store.last)
	}
	if store.last.Status != models.LocationLocated {
		t.Errorf("status = %s, want located", store.last.Status)
	}
}

func TestUpdateLocationLegacySkipPayload(t *testing.T) {
	tests := []struct {
		name string
		u    models.LocationUpdate
		want models.LocationStatus
	}{
		{"origin with both sentinels", models.LocationUpdate{PhotoID: "p1", Floor: models.Value("unknown"), Building: models.Value("Unknown Building"), Status: models.LocationLocated}, models.LocationSkipped},
		{"origin with real floor", models.LocationUpdate{PhotoID: "p1", Floor: models.Value("first"), Building: models.Value("Unknown Building")}, models.LocationLocated},
		{"origin without sentinels", models.LocationUpdate{PhotoID: "p1"}, models.LocationLocated},
		{"sentinels off origin", models.LocationUpdate{PhotoID: "p1", X: 1, Floor: models.Value("unknown"), Building: models.Value("Unknown Building")}, models.LocationLocated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeLocationStore{}
			if _, err := NewLocationGateway(store).UpdateLocation(context.Background(), tt.u); err != nil {
				t.Fatalf("update: %v", err)
			}
			if store.last.Status != tt.want {
				t.Errorf("status = %s, want %s", store.last.Status, tt.want)
			}
		})
	}
}

func TestUpdateLocationKeepsRealValues(t *testing.T) {
	store := &fakeLocationStore{}
	g := NewLocationGateway(store)

	_, err := g.UpdateLocation(context.Background(), models.LocationUpdate{
		PhotoID:  "p1",
		X:        42.7,
		Y:        88.1,
		Floor:    models.Value("second"),
		Building: models.Value("Lincoln Elementary"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	floor, _ := store.last.Floor.Get()
	building, _ := store.last.Building.Get()
	if floor != "second" || building != "Lincoln Elementary" {
		t.Errorf("floor=%q building=%q", floor, building)
	}
}

func TestUpdateLocationValidation(t *testing.T) {
	tests := []struct {
		name string
		u    models.LocationUpdate
	}{
		{"missing photo id", models.LocationUpdate{X: 1, Y: 1}},
		{"x below range", models.LocationUpdate{PhotoID: "p1", X: -0.1, Y: 1}},
		{"y above range", models.LocationUpdate{PhotoID: "p1", X: 1, Y: 100.01}},
		{"nan", models.LocationUpdate{PhotoID: "p1", X: math.NaN(), Y: 1}},
		{"infinite", models.LocationUpdate{PhotoID: "p1", X: 1, Y: math.Inf(1)}},
		{"pending status", models.LocationUpdate{PhotoID: "p1", X: 1, Y: 1, Status: models.LocationPending}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeLocationStore{}
			_, err := NewLocationGateway(store).UpdateLocation(context.Background(), tt.u)
			if !errors.Is(err, models.ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
			if store.last != nil {
				t.Error("invalid update reached the store")
			}
		})
	}
}

func TestSkipWritesOrigin(t *testing.T) {
	store := &fakeLocationStore{}

	if _, err := NewLocationGateway(store).Skip(context.Background(), "p1"); err != nil {
		t.Fatalf("skip: %v", err)
	}
	u := store.last
	if u.X != 0 || u.Y != 0 || u.Status != models.LocationSkipped {
		t.Errorf("skip update = %+v", u)
	}
	if !u.Floor.IsUnset() || !u.Building.IsUnset() {
		t.Errorf("skip must not touch floor or building: %+v", u)
	}
}

func TestUpdateLocationWrapsStoreErrors(t *testing.T) {
	store := &fakeLocationStore{err: models.ErrNotFound}

	_, err := NewLocationGateway(store).UpdateLocation(context.Background(), models.LocationUpdate{PhotoID: "nope", X: 1, Y: 1})
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
