package models

// Instructor defines an instructor referenced by one or more courses. Its
// lifetime is independent of any course.
type Instructor struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Email       *string `json:"email,omitempty"`       // Nullable
	Office      *string `json:"office,omitempty"`      // Nullable
	OfficeHours *string `json:"officeHours,omitempty"` // Nullable
}
