package handlers

import (
	"fmt"
	"io"

	"facility-survey/internal/survey/models"

	"github.com/gofiber/fiber/v3"
)

// readFormFile reads the named multipart file, refusing anything over maxBytes.
func readFormFile(c fiber.Ctx, field string, maxBytes int64) ([]byte, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("%w: %s required", models.ErrInvalidInput, field)
	}
	if maxBytes > 0 && fileHeader.Size > maxBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", models.ErrInvalidInput, field, maxBytes)
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if maxBytes > 0 {
		r = io.LimitReader(f, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return data, nil
}
