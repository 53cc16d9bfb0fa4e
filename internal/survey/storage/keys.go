package storage

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ============================================================
// Object Keys & Content Types
// ============================================================

var (
	floorPlanMimeTypes = map[string]bool{
		"image/png":     true,
		"image/jpeg":    true,
		"image/webp":    true,
		"image/svg+xml": true,
	}

	photoMimeTypes = map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/webp": true,
		"image/heic": true,
	}

	invalidCharsRegex = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)
)

// DetectMime sniffs the content type of data, ignoring parameters such as charset.
func DetectMime(data []byte) (string, string) {
	m := mimetype.Detect(data)
	mime := m.String()
	if i := strings.IndexByte(mime, ';'); i >= 0 {
		mime = mime[:i]
	}
	return mime, m.Extension()
}

func IsAllowedFloorPlanMime(mime string) bool {
	return floorPlanMimeTypes[mime]
}

func IsAllowedPhotoMime(mime string) bool {
	return photoMimeTypes[mime]
}

func safeSegment(s string) string {
	s = invalidCharsRegex.ReplaceAllString(strings.TrimSpace(s), "_")
	s = strings.Trim(s, "._")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		return "_"
	}
	return s
}

// FloorPlanKey returns floorplans/<building>/<floor>/<unix>_<uuid><ext>.
func FloorPlanKey(building, floor, ext string, now time.Time) string {
	return fmt.Sprintf("floorplans/%s/%s/%d_%s%s",
		safeSegment(building), safeSegment(floor), now.Unix(), uuid.NewString(), ext)
}

// PhotoKey returns photos/<submission>/<uuid><ext>.
func PhotoKey(submissionID, ext string) string {
	return fmt.Sprintf("photos/%s/%s%s", safeSegment(submissionID), uuid.NewString(), ext)
}

func ValidateFileSize(size int64, maxSize int64) bool {
	return size > 0 && size <= maxSize
}
