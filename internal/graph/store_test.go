package graph

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syllabot/syllabot/internal/pkg/apperrors"
)

func writeSnapshotFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalSnapshot = `{
  "programs": [{"id": "p1", "name": "CS"}],
  "terms": [{"id": "t1", "programId": "p1", "label": "Fall 2025"}],
  "courses": [{"id": "c1", "termId": "t1", "code": "CS101", "title": "Intro", "instructorIds": []}],
  "sessions": [],
  "assessments": [],
  "instructors": []
}`

func TestStoreLoadFromFile(t *testing.T) {
	store := NewStore(zerolog.Nop())
	assert.Nil(t, store.Snapshot())

	path := writeSnapshotFile(t, minimalSnapshot)
	require.NoError(t, store.Load(context.Background(), NewFileSource(path)))

	snap := store.Snapshot()
	require.NotNil(t, snap)
	assert.Equal(t, 1, snap.Stats().Courses)
}

func TestStoreLoadFailureKeepsOldSnapshot(t *testing.T) {
	store := NewStore(zerolog.Nop())
	path := writeSnapshotFile(t, minimalSnapshot)
	require.NoError(t, store.Load(context.Background(), NewFileSource(path)))
	old := store.Snapshot()

	bad := writeSnapshotFile(t, `{"programs": not json`)
	err := store.Load(context.Background(), NewFileSource(bad))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrSnapshotLoad)
	assert.Same(t, old, store.Snapshot())

	// A structurally valid file with a broken reference also fails the swap.
	invalid := writeSnapshotFile(t, `{
	  "programs": [],
	  "terms": [{"id": "t1", "programId": "ghost", "label": "Fall"}],
	  "courses": [], "sessions": [], "assessments": [], "instructors": []
	}`)
	err = store.Load(context.Background(), NewFileSource(invalid))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrSnapshotInvalid)
	assert.Same(t, old, store.Snapshot())
}

func TestStoreReloadSwapsSnapshot(t *testing.T) {
	store := NewStore(zerolog.Nop())
	path := writeSnapshotFile(t, minimalSnapshot)
	require.NoError(t, store.Load(context.Background(), NewFileSource(path)))
	first := store.Snapshot()

	require.NoError(t, store.Load(context.Background(), NewFileSource(path)))
	second := store.Snapshot()

	assert.NotSame(t, first, second)
	// The pinned old snapshot still answers after the swap.
	_, ok := first.CourseByID("c1")
	assert.True(t, ok)
}
