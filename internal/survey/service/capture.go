package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"facility-survey/internal/survey/floorplan"
	"facility-survey/internal/survey/models"
)

// ============================================================
// Location Capture Session
// ============================================================

var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrSessionClosed     = errors.New("capture session closed")
	ErrNoPin             = errors.New("no pin placed")
	ErrSessionNotFound   = errors.New("capture session not found")
)

type CaptureState string

const (
	StateSelectBuilding CaptureState = "select_building"
	StateSelectFloor    CaptureState = "select_floor"
	StatePlacePin       CaptureState = "place_pin"
	StateConfirmed      CaptureState = "confirmed"
	StateSkipped        CaptureState = "skipped"
)

func (s CaptureState) Terminal() bool {
	return s == StateConfirmed || s == StateSkipped
}

// CaptureResolver supplies the choices shown while capturing.
type CaptureResolver interface {
	ListBuildings(ctx context.Context) []string
	ListFloors(ctx context.Context, building string) []string
	ImageOrPlaceholder(ctx context.Context, building, floor string) (string, bool)
}

// LocationWriter receives the outcome of a capture.
type LocationWriter interface {
	UpdateLocation(ctx context.Context, u models.LocationUpdate) (*models.Photo, error)
	Skip(ctx context.Context, photoID string) (*models.Photo, error)
}

// CaptureResult is the tuple emitted when the session ends.
type CaptureResult struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Floor    string  `json:"floor"`
	Building string  `json:"building"`
	Skipped  bool    `json:"skipped"`
}

type CaptureSnapshot struct {
	ID          string              `json:"id"`
	PhotoID     string              `json:"photoId"`
	State       CaptureState        `json:"state"`
	Buildings   []string            `json:"buildings"`
	Building    string              `json:"building,omitempty"`
	Floors      []string            `json:"floors,omitempty"`
	Floor       string              `json:"floor,omitempty"`
	ImageURL    string              `json:"imageUrl,omitempty"`
	Placeholder bool                `json:"placeholder"`
	Loading     bool                `json:"loading"`
	Pin         *floorplan.Percent  `json:"pin,omitempty"`
	PinStyle    *floorplan.PinStyle `json:"pinStyle,omitempty"`
	Scale       float64             `json:"scale"`
	Transform   string              `json:"transform"`
	Result      *CaptureResult      `json:"result,omitempty"`
	Record      *models.Photo       `json:"record,omitempty"`
	Notice      string              `json:"notice,omitempty"`
}

type CaptureSession struct {
	mu sync.Mutex

	id       string
	photoID  string
	resolver CaptureResolver
	writer   LocationWriter

	state     CaptureState
	buildings []string
	building  string
	floors    []string
	floor     string
	imageURL  string
	fallback  bool
	pin       *floorplan.Percent
	viewport  *floorplan.Viewport

	// Each fetch carries the generation it was issued under; a result is
	// applied only while its generation is still the latest.
	floorsGen     uint64
	imageGen      uint64
	loadingFloors bool
	loadingImage  bool

	result *CaptureResult
	record *models.Photo
	notice string

	lastActive time.Time
}

func newCaptureSession(id, photoID string, buildings []string, resolver CaptureResolver, writer LocationWriter, now time.Time) *CaptureSession {
	return &CaptureSession{
		id:         id,
		photoID:    photoID,
		resolver:   resolver,
		writer:     writer,
		state:      StateSelectBuilding,
		buildings:  buildings,
		viewport:   floorplan.NewViewport(),
		lastActive: now,
	}
}

func (s *CaptureSession) ID() string {
	return s.id
}

// ChooseBuilding selects a building and loads its floors.
func (s *CaptureSession) ChooseBuilding(ctx context.Context, building string) (CaptureSnapshot, error) {
	if building == "" {
		return s.Snapshot(), fmt.Errorf("%w: building is required", models.ErrInvalidInput)
	}

	s.mu.Lock()
	if err := s.expect(StateSelectBuilding); err != nil {
		s.mu.Unlock()
		return s.Snapshot(), err
	}
	s.building = building
	s.state = StateSelectFloor
	s.floors = nil
	s.clearFloorLocked()
	s.floorsGen++
	gen := s.floorsGen
	s.loadingFloors = true
	s.mu.Unlock()

	floors := s.resolver.ListFloors(ctx, building)

	s.mu.Lock()
	if s.floorsGen == gen {
		s.floors = floors
		s.loadingFloors = false
	} else {
		log.Printf("[CAPTURE] session=%s dropped stale floors for %q", s.id, building)
	}
	s.mu.Unlock()
	return s.Snapshot(), nil
}

// ChangeBuilding returns to building selection and clears floor and pin.
func (s *CaptureSession) ChangeBuilding() (CaptureSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Terminal() {
		return s.snapshotLocked(), ErrSessionClosed
	}
	s.state = StateSelectBuilding
	s.building = ""
	s.floors = nil
	s.clearFloorLocked()
	s.floorsGen++
	s.loadingFloors = false
	return s.snapshotLocked(), nil
}

// ChooseFloor selects a floor, resets zoom and loads the floor-plan image.
func (s *CaptureSession) ChooseFloor(ctx context.Context, floor string) (CaptureSnapshot, error) {
	floor = models.NormalizeFloor(floor)
	if floor == "" {
		return s.Snapshot(), fmt.Errorf("%w: floor is required", models.ErrInvalidInput)
	}

	s.mu.Lock()
	if err := s.expect(StateSelectFloor); err != nil {
		s.mu.Unlock()
		return s.Snapshot(), err
	}
	s.clearFloorLocked()
	s.floor = floor
	s.state = StatePlacePin
	building := s.building
	s.imageGen++
	gen := s.imageGen
	s.loadingImage = true
	s.mu.Unlock()

	url, fallback := s.resolver.ImageOrPlaceholder(ctx, building, floor)

	s.mu.Lock()
	if s.imageGen == gen {
		s.imageURL = url
		s.fallback = fallback
		s.loadingImage = false
	} else {
		log.Printf("[CAPTURE] session=%s dropped stale image for %q/%q", s.id, building, floor)
	}
	s.mu.Unlock()
	return s.Snapshot(), nil
}

// ChangeFloor returns to floor selection keeping the building.
func (s *CaptureSession) ChangeFloor() (CaptureSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Terminal() {
		return s.snapshotLocked(), ErrSessionClosed
	}
	switch s.state {
	case StateSelectFloor:
		return s.snapshotLocked(), nil
	case StatePlacePin:
	default:
		return s.snapshotLocked(), fmt.Errorf("%w: change floor from %s", ErrInvalidTransition, s.state)
	}
	s.state = StateSelectFloor
	s.clearFloorLocked()
	return s.snapshotLocked(), nil
}

// Click places or moves the pending pin. Clicks ending a drag are ignored.
func (s *CaptureSession) Click(pos floorplan.Point, rect floorplan.Rect) (CaptureSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.expect(StatePlacePin); err != nil {
		return s.snapshotLocked(), err
	}
	if !s.viewport.ConsumeClick() {
		return s.snapshotLocked(), nil
	}
	p, err := floorplan.PointToPercent(pos.X, pos.Y, rect)
	if err != nil {
		return s.snapshotLocked(), err
	}
	s.pin = &p
	return s.snapshotLocked(), nil
}

func (s *CaptureSession) ClearSelection() (CaptureSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.expect(StatePlacePin); err != nil {
		return s.snapshotLocked(), err
	}
	s.pin = nil
	return s.snapshotLocked(), nil
}

type ZoomAction string

const (
	ZoomIn    ZoomAction = "in"
	ZoomOut   ZoomAction = "out"
	ZoomWheel ZoomAction = "wheel"
	ZoomReset ZoomAction = "reset"
)

func (s *CaptureSession) Zoom(action ZoomAction, deltaY float64) (CaptureSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.expect(StatePlacePin); err != nil {
		return s.snapshotLocked(), err
	}
	switch action {
	case ZoomIn:
		s.viewport.ZoomIn()
	case ZoomOut:
		s.viewport.ZoomOut()
	case ZoomWheel:
		s.viewport.Wheel(deltaY)
	case ZoomReset:
		s.viewport.Reset()
	default:
		return s.snapshotLocked(), fmt.Errorf("%w: unknown zoom action %q", models.ErrInvalidInput, action)
	}
	return s.snapshotLocked(), nil
}

type PointerPhase string

const (
	PointerDown PointerPhase = "down"
	PointerMove PointerPhase = "move"
	PointerUp   PointerPhase = "up"
)

// Pointer feeds one pointer event to the pan controller.
func (s *CaptureSession) Pointer(phase PointerPhase, pos floorplan.Point, onImage bool) (CaptureSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.expect(StatePlacePin); err != nil {
		return s.snapshotLocked(), err
	}
	switch phase {
	case PointerDown:
		s.viewport.BeginDrag(pos, onImage)
	case PointerMove:
		s.viewport.Drag(pos)
	case PointerUp:
		s.viewport.EndDrag()
	default:
		return s.snapshotLocked(), fmt.Errorf("%w: unknown pointer phase %q", models.ErrInvalidInput, phase)
	}
	return s.snapshotLocked(), nil
}

// Confirm ends the session with the pending pin and persists it. A write
// failure is reported as a notice; the session still closes.
func (s *CaptureSession) Confirm(ctx context.Context) (CaptureSnapshot, error) {
	s.mu.Lock()
	if err := s.expect(StatePlacePin); err != nil {
		s.mu.Unlock()
		return s.Snapshot(), err
	}
	if s.pin == nil {
		s.mu.Unlock()
		return s.Snapshot(), ErrNoPin
	}
	res := &CaptureResult{X: s.pin.X, Y: s.pin.Y, Floor: s.floor, Building: s.building}
	s.finishLocked(StateConfirmed, res)
	s.mu.Unlock()

	record, err := s.writer.UpdateLocation(ctx, models.LocationUpdate{
		PhotoID:  s.photoID,
		X:        res.X,
		Y:        res.Y,
		Floor:    models.Value(res.Floor),
		Building: models.Value(res.Building),
		Status:   models.LocationLocated,
	})
	s.recordOutcome(record, err)
	return s.Snapshot(), nil
}

// Skip ends the session without a location.
func (s *CaptureSession) Skip(ctx context.Context) (CaptureSnapshot, error) {
	s.mu.Lock()
	if s.state.Terminal() {
		s.mu.Unlock()
		return s.Snapshot(), ErrSessionClosed
	}
	s.finishLocked(StateSkipped, &CaptureResult{
		Floor:    models.UnknownFloor,
		Building: models.UnknownBuilding,
		Skipped:  true,
	})
	s.mu.Unlock()

	record, err := s.writer.Skip(ctx, s.photoID)
	s.recordOutcome(record, err)
	return s.Snapshot(), nil
}

// Dismiss closes the modal without a choice, which completes as a skip.
func (s *CaptureSession) Dismiss(ctx context.Context) (CaptureSnapshot, error) {
	return s.Skip(ctx)
}

func (s *CaptureSession) Snapshot() CaptureSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *CaptureSession) snapshotLocked() CaptureSnapshot {
	snap := CaptureSnapshot{
		ID:          s.id,
		PhotoID:     s.photoID,
		State:       s.state,
		Buildings:   append([]string(nil), s.buildings...),
		Building:    s.building,
		Floors:      append([]string(nil), s.floors...),
		Floor:       s.floor,
		ImageURL:    s.imageURL,
		Placeholder: s.fallback,
		Loading:     s.loadingFloors || s.loadingImage,
		Scale:       s.viewport.Scale,
		Transform:   s.viewport.Transform(),
		Result:      s.result,
		Record:      s.record,
		Notice:      s.notice,
	}
	if s.pin != nil {
		pin := *s.pin
		style := floorplan.PercentToStyle(pin)
		snap.Pin = &pin
		snap.PinStyle = &style
	}
	return snap
}

func (s *CaptureSession) expect(want CaptureState) error {
	if s.state.Terminal() {
		return ErrSessionClosed
	}
	if s.state != want {
		return fmt.Errorf("%w: expected %s, session is in %s", ErrInvalidTransition, want, s.state)
	}
	return nil
}

// clearFloorLocked drops the floor selection and any image fetch in flight.
func (s *CaptureSession) clearFloorLocked() {
	s.imageGen++
	s.loadingImage = false
	s.floor = ""
	s.imageURL = ""
	s.fallback = false
	s.pin = nil
	s.viewport.Reset()
}

func (s *CaptureSession) finishLocked(state CaptureState, res *CaptureResult) {
	s.state = state
	s.result = res
	s.floorsGen++
	s.imageGen++
	s.loadingFloors = false
	s.loadingImage = false
}

func (s *CaptureSession) recordOutcome(record *models.Photo, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		log.Printf("[CAPTURE] session=%s photo=%s save location: %v", s.id, s.photoID, err)
		s.notice = "The photo was saved but its location could not be recorded."
		return
	}
	s.record = record
}

func (s *CaptureSession) touch(now time.Time) {
	s.mu.Lock()
	s.lastActive = now
	s.mu.Unlock()
}

func (s *CaptureSession) isTerminal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Terminal()
}

func (s *CaptureSession) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}
