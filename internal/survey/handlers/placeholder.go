package handlers

import (
	_ "embed"

	"github.com/gofiber/fiber/v3"
)

// PlaceholderImagePath is where the generic floor plan image is served.
const PlaceholderImagePath = "/static/floorplan-placeholder.svg"

//go:embed floorplan-placeholder.svg
var placeholderSVG []byte

// PlaceholderImage serves the image shown for floors without a floor plan.
func PlaceholderImage(c fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	c.Type("svg")
	return c.Send(placeholderSVG)
}
