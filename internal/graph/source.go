package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/syllabot/syllabot/internal/app/models"
	"github.com/syllabot/syllabot/internal/pkg/apperrors"
)

// SnapshotData is the raw record form of a persisted graph snapshot, as
// written by the external graph builder. It is the JSON shape of the snapshot
// file and the row shape of the Postgres tables; BuildSnapshot turns it into
// the indexed, validated in-memory graph.
type SnapshotData struct {
	Programs    []models.Program    `json:"programs"`
	Terms       []models.Term       `json:"terms"`
	Courses     []models.Course     `json:"courses"`
	Sessions    []models.Session    `json:"sessions"`
	Assessments []models.Assessment `json:"assessments"`
	Instructors []models.Instructor `json:"instructors"`
}

// Source supplies a snapshot's raw records. Implementations must be safe to
// call again for reload.
type Source interface {
	Fetch(ctx context.Context) (*SnapshotData, error)
}

// FileSource loads a snapshot from a JSON file on disk.
type FileSource struct {
	Path string
}

// NewFileSource creates a file-backed snapshot source
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Fetch reads and decodes the snapshot file
func (s *FileSource) Fetch(_ context.Context) (*SnapshotData, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, apperrors.NewSnapshotLoadError(fmt.Sprintf("failed to read snapshot file %s: %v", s.Path, err))
	}

	var data SnapshotData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, apperrors.NewSnapshotLoadError(fmt.Sprintf("failed to decode snapshot file %s: %v", s.Path, err))
	}

	return &data, nil
}
