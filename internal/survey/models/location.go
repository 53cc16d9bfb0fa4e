package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// ============================================================
// Optional String
// ============================================================

// OptionalString distinguishes a field that was left out, set to a value,
// or explicitly cleared.
type OptionalString struct {
	state optionalState
	value string
}

type optionalState uint8

const (
	optionalUnset optionalState = iota
	optionalValue
	optionalClear
)

func Unset() OptionalString { return OptionalString{} }
func Value(v string) OptionalString { return OptionalString{state: optionalValue, value: v} }
func Clear() OptionalString { return OptionalString{state: optionalClear} }
func (o OptionalString) IsUnset() bool { return o.state == optionalUnset }
func (o OptionalString) IsClear() bool { return o.state == optionalClear }

// Get returns the value and whether one was set.
func (o OptionalString) Get() (string, bool) {
	return o.value, o.state == optionalValue
}

// UnmarshalJSON only runs for keys present in the payload, so a missing key stays unset.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Clear()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expected string or null: %w", err)
	}
	*o = Value(s)
	return nil
}

func (o OptionalString) MarshalJSON() ([]byte, error) {
	if o.state == optionalValue {
		return json.Marshal(o.value)
	}
	return []byte("null"), nil
}

// WithoutSentinel maps a legacy "do not overwrite" marker to unset.
func (o OptionalString) WithoutSentinel(sentinel string) OptionalString {
	if v, ok := o.Get(); ok && v == sentinel {
		return Unset()
	}
	return o
}

// ============================================================
// Location Update
// ============================================================

const (
	MinCoordinate = 0.0
	MaxCoordinate = 100.0
)

type LocationUpdate struct {
	PhotoID  string
	X        float64
	Y        float64
	Floor    OptionalString
	Building OptionalString
	Status   LocationStatus
}

// Validate checks the photo id and the [0,100] coordinate domain.
func (u LocationUpdate) Validate() error {
	if u.PhotoID == "" {
		return fmt.Errorf("%w: photoId is required", ErrInvalidInput)
	}
	if err := validateCoordinate("x", u.X); err != nil {
		return err
	}
	if err := validateCoordinate("y", u.Y); err != nil {
		return err
	}
	if u.Status != LocationLocated && u.Status != LocationSkipped {
		return fmt.Errorf("%w: unsupported location status %q", ErrInvalidInput, u.Status)
	}
	return nil
}

// IsLegacySkip reports whether u is the skip payload older clients send:
// the origin with both sentinels.
func (u LocationUpdate) IsLegacySkip() bool {
	floor, okF := u.Floor.Get()
	building, okB := u.Building.Get()
	return u.X == 0 && u.Y == 0 &&
		okF && floor == UnknownFloor &&
		okB && building == UnknownBuilding
}

func validateCoordinate(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be a finite number", ErrInvalidInput, name)
	}
	if v < MinCoordinate || v > MaxCoordinate {
		return fmt.Errorf("%w: %s must be within [0, 100], got %v", ErrInvalidInput, name, v)
	}
	return nil
}
