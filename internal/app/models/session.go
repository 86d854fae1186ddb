package models

// Session represents one teaching session of a course, owned exclusively by
// that course.
type Session struct {
	ID              string  `json:"id"`
	CourseID        string  `json:"courseId"`
	Number          int     `json:"number"`
	Topic           string  `json:"topic"`
	Module          *string `json:"module,omitempty"`          // Nullable
	Date            *string `json:"date,omitempty"`            // Nullable
	ReadingMaterial *string `json:"readingMaterial,omitempty"` // Nullable
}
