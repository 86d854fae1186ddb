package models

// Assessment represents one assessment component of a course (quiz, midterm,
// project...), owned exclusively by that course. Weights across a course's
// assessments should total 100 percent; source outlines sometimes violate
// this and the engine reports the violation instead of normalizing it.
type Assessment struct {
	ID          string   `json:"id"`
	CourseID    string   `json:"courseId"`
	Name        string   `json:"name"`
	Weight      *float64 `json:"weight,omitempty"`      // Nullable, percentage
	DueDate     *string  `json:"dueDate,omitempty"`     // Nullable
	Description *string  `json:"description,omitempty"` // Nullable
}
