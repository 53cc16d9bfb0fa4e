package models

// ============================================================
// Photo Model
// ============================================================

type LocationStatus string

const (
	LocationPending LocationStatus = "pending"
	LocationLocated LocationStatus = "located"
	LocationSkipped LocationStatus = "skipped"
)

type Photo struct {
	ID                string         `db:"id" json:"id"`
	SubmissionID      string         `db:"submission_id" json:"submission_id"`
	Category          string         `db:"category" json:"category"`
	RoomNumber        *string        `db:"room_number" json:"room_number,omitempty"`
	ObjectKey         string         `db:"object_key" json:"object_key"`
	Caption           string         `db:"caption" json:"caption"`
	MimeType          string         `db:"mime_type" json:"mime_type"`
	FileSize          int64          `db:"file_size" json:"file_size"`
	UploadedAt        string         `db:"uploaded_at" json:"uploaded_at"`
	LocationX         *float64       `db:"location_x" json:"location_x"`
	LocationY         *float64       `db:"location_y" json:"location_y"`
	FloorLevel        *string        `db:"floor_level" json:"floor_level"`
	Building          *string        `db:"building" json:"building"`
	LocationStatus    LocationStatus `db:"location_status" json:"location_status"`
	LocationUpdatedAt *string        `db:"location_updated_at" json:"location_updated_at,omitempty"`
}

// HasLocation reports whether both coordinates are set.
func (p *Photo) HasLocation() bool {
	return p.LocationX != nil && p.LocationY != nil
}

// IsPinnable reports whether the photo should be drawn on a floor plan.
// Skipped photos carry the (0,0) placeholder and are never drawn.
func (p *Photo) IsPinnable() bool {
	return p.HasLocation() && p.LocationStatus != LocationSkipped
}

// GalleryPhoto is a photo joined with the school of the walker who submitted it.
type GalleryPhoto struct {
	Photo
	WalkerSchool *string `db:"walker_school" json:"walker_school,omitempty"`
}
