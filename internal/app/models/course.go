package models

// Course represents a course offered in exactly one term. The course code is
// unique within its term but may repeat across terms, which is why lookups by
// code alone can be ambiguous.
type Course struct {
	ID            string   `json:"id"`
	TermID        string   `json:"termId"`
	Code          string   `json:"code"`
	Title         string   `json:"title"`
	Description   *string  `json:"description,omitempty"`   // Nullable
	Credits       *float64 `json:"credits,omitempty"`       // Nullable
	Prerequisites *string  `json:"prerequisites,omitempty"` // Nullable
	Outcomes      *string  `json:"outcomes,omitempty"`      // Nullable

	// InstructorIDs are references, not ownership: an instructor may teach
	// several courses and outlives all of them.
	InstructorIDs []string `json:"instructorIds"`
}

// Display returns the human-readable "CODE - Title" form used in answers.
func (c *Course) Display() string {
	if c.Title == "" {
		return c.Code
	}
	return c.Code + " - " + c.Title
}
