package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"facility-survey/internal/survey/floorplan"
	"facility-survey/internal/survey/models"
	"facility-survey/internal/survey/service"

	"github.com/gofiber/fiber/v3"
	"github.com/spf13/cast"
)

// ============================================================
// Capture Session Handler
// ============================================================

type CaptureHandler struct {
	sessions *service.SessionManager
}

func NewCaptureHandler(sessions *service.SessionManager) *CaptureHandler {
	return &CaptureHandler{sessions: sessions}
}

// eventPayload is a loosely typed event body; browsers send coordinates as
// numbers or numeric strings depending on where they were read from.
type eventPayload map[string]any

func parsePayload(body []byte) (eventPayload, error) {
	p := eventPayload{}
	if len(body) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("%w: invalid json", models.ErrInvalidInput)
	}
	return p, nil
}

func (p eventPayload) str(key string) string {
	return cast.ToString(p[key])
}

func (p eventPayload) num(key string) (float64, error) {
	v, ok := p[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("%w: %s is required", models.ErrInvalidInput, key)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", models.ErrInvalidInput, key)
	}
	return f, nil
}

func (p eventPayload) flag(key string) bool {
	return cast.ToBool(p[key])
}

func (p eventPayload) point() (floorplan.Point, error) {
	x, err := p.num("x")
	if err != nil {
		return floorplan.Point{}, err
	}
	y, err := p.num("y")
	if err != nil {
		return floorplan.Point{}, err
	}
	return floorplan.Point{X: x, Y: y}, nil
}

func (p eventPayload) rect() (floorplan.Rect, error) {
	raw := eventPayload(cast.ToStringMap(p["rect"]))
	var r floorplan.Rect
	var err error
	if r.Left, err = raw.num("left"); err != nil {
		return r, err
	}
	if r.Top, err = raw.num("top"); err != nil {
		return r, err
	}
	if r.Width, err = raw.num("width"); err != nil {
		return r, err
	}
	if r.Height, err = raw.num("height"); err != nil {
		return r, err
	}
	return r, nil
}

// Open handles POST /captures {photoId}.
func (h *CaptureHandler) Open(c fiber.Ctx) error {
	p, err := parsePayload(c.Body())
	if err != nil {
		return writeError(c, "CAPTURE", err)
	}
	s, err := h.sessions.Open(c.Context(), p.str("photoId"))
	if err != nil {
		return writeError(c, "CAPTURE", err)
	}
	return c.Status(http.StatusCreated).JSON(s.Snapshot())
}

func (h *CaptureHandler) Get(c fiber.Ctx) error {
	s, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return writeError(c, "CAPTURE", err)
	}
	return c.JSON(s.Snapshot())
}

// Event handles POST /captures/:id/:event.
func (h *CaptureHandler) Event(c fiber.Ctx) error {
	s, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return writeError(c, "CAPTURE", err)
	}
	p, err := parsePayload(c.Body())
	if err != nil {
		return writeError(c, "CAPTURE", err)
	}

	snap, err := h.dispatch(c, s, c.Params("event"), p)
	if err != nil {
		status := statusFor(err)
		return c.Status(status).JSON(fiber.Map{"error": err.Error(), "session": snap})
	}
	return c.JSON(snap)
}

func (h *CaptureHandler) dispatch(c fiber.Ctx, s *service.CaptureSession, event string, p eventPayload) (service.CaptureSnapshot, error) {
	ctx := c.Context()

	switch event {
	case "building":
		return s.ChooseBuilding(ctx, p.str("building"))
	case "change-building":
		return s.ChangeBuilding()
	case "floor":
		return s.ChooseFloor(ctx, p.str("floor"))
	case "change-floor":
		return s.ChangeFloor()
	case "click":
		pos, err := p.point()
		if err != nil {
			return s.Snapshot(), err
		}
		rect, err := p.rect()
		if err != nil {
			return s.Snapshot(), err
		}
		return s.Click(pos, rect)
	case "clear":
		return s.ClearSelection()
	case "zoom":
		return s.Zoom(service.ZoomAction(p.str("action")), cast.ToFloat64(p["deltaY"]))
	case "pointer":
		pos, err := p.point()
		if err != nil {
			return s.Snapshot(), err
		}
		return s.Pointer(service.PointerPhase(p.str("phase")), pos, p.flag("onImage"))
	case "confirm":
		return s.Confirm(ctx)
	case "skip":
		return s.Skip(ctx)
	case "dismiss":
		return s.Dismiss(ctx)
	default:
		return s.Snapshot(), fmt.Errorf("%w: unknown event %q", models.ErrInvalidInput, event)
	}
}
