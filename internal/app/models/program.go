package models

// Program represents a degree program; it owns a set of terms.
type Program struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
