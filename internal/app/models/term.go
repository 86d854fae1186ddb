package models

// Term represents an academic term within exactly one program.
type Term struct {
	ID        string `json:"id"`
	ProgramID string `json:"programId"`
	Label     string `json:"label"` // e.g. "Term 3", "Fall 2024"
}
