package pagination

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syllabot/syllabot/internal/pkg/apperrors"
)

func numberedItems(n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf("item %d", i+1)
	}
	return items
}

func TestPagesPartitionWithoutLossOrDuplication(t *testing.T) {
	m := NewManager(10)
	items := numberedItems(25)

	page := m.Start("conv", "key", "header", items)
	var seen []string
	seen = append(seen, page.Items...)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 3, page.Total)
	assert.True(t, page.HasMore)

	for page.HasMore {
		next, err := m.Next("conv")
		require.NoError(t, err)
		seen = append(seen, next.Items...)
		page = next
	}

	assert.Equal(t, items, seen)
	assert.Equal(t, 3, page.Number)
	assert.Len(t, page.Items, 5)
}

func TestNextAfterFinalPageIsExhausted(t *testing.T) {
	m := NewManager(3)
	m.Start("conv", "key", "", numberedItems(5))

	_, err := m.Next("conv")
	require.NoError(t, err)

	_, err = m.Next("conv")
	assert.ErrorIs(t, err, apperrors.ErrCursorExhausted)

	// The exhausted cursor is gone; the one after that is a no-cursor case.
	_, err = m.Next("conv")
	assert.ErrorIs(t, err, apperrors.ErrNoCursor)
}

func TestNextWithoutCursor(t *testing.T) {
	m := NewManager(3)
	_, err := m.Next("unseen")
	assert.ErrorIs(t, err, apperrors.ErrNoCursor)
}

func TestSinglePageInstallsNoCursor(t *testing.T) {
	m := NewManager(10)
	page := m.Start("conv", "key", "", numberedItems(4))
	assert.False(t, page.HasMore)
	assert.Equal(t, 1, page.Total)

	_, err := m.Next("conv")
	assert.ErrorIs(t, err, apperrors.ErrNoCursor)
}

func TestDiscardDropsPendingCursor(t *testing.T) {
	m := NewManager(3)
	m.Start("conv", "key", "", numberedItems(9))
	assert.Equal(t, "key", m.Key("conv"))

	m.Discard("conv")
	assert.Equal(t, "", m.Key("conv"))
	_, err := m.Next("conv")
	assert.ErrorIs(t, err, apperrors.ErrNoCursor)
}

func TestStartReplacesPriorCursor(t *testing.T) {
	m := NewManager(3)
	m.Start("conv", "first", "", numberedItems(9))
	m.Start("conv", "second", "", numberedItems(9))

	assert.Equal(t, "second", m.Key("conv"))
	page, err := m.Next("conv")
	require.NoError(t, err)
	assert.Equal(t, 2, page.Number)
}

func TestConversationsAreIsolated(t *testing.T) {
	m := NewManager(3)
	m.Start("a", "ka", "", numberedItems(9))
	m.Start("b", "kb", "", numberedItems(9))

	pa, err := m.Next("a")
	require.NoError(t, err)
	pb, err := m.Next("b")
	require.NoError(t, err)
	assert.Equal(t, 2, pa.Number)
	assert.Equal(t, 2, pb.Number)
}
