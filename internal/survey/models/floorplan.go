package models

// ============================================================
// Floor Plan Model
// ============================================================

type FloorPlan struct {
	ID          string  `db:"id" json:"id"`
	Building    string  `db:"building" json:"building"`
	FloorLevel  string  `db:"floor_level" json:"floor_level"`
	ObjectKey   string  `db:"object_key" json:"object_key"`
	FileSize    int64   `db:"file_size" json:"file_size"`
	MimeType    string  `db:"mime_type" json:"mime_type"`
	Width       *int    `db:"width" json:"width,omitempty"`
	Height      *int    `db:"height" json:"height,omitempty"`
	Description *string `db:"description" json:"description,omitempty"`
	IsActive    bool    `db:"is_active" json:"is_active"`
	Version     int     `db:"version" json:"version"`
	UploadedBy  string  `db:"uploaded_by" json:"uploaded_by"`
	CreatedAt   string  `db:"created_at" json:"created_at"`
	UpdatedAt   string  `db:"updated_at" json:"updated_at"`
}
