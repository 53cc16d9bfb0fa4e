package models

// ============================================================
// Walker & Submission Models
// ============================================================

type Walker struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	School    string `db:"school" json:"school"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

type Submission struct {
	ID         string `db:"id" json:"id"`
	WalkerID   string `db:"walker_id" json:"walker_id"`
	SurveyDate string `db:"survey_date" json:"survey_date"`
	CreatedAt  string `db:"created_at" json:"created_at"`
}
