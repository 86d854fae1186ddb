// Package pagination tracks per-conversation cursors over list answers that
// exceed one conversational turn. A cursor is valid only for the exact
// answer it was created for: any new question for the same conversation
// discards it, so "show more" can never continue an unrelated prior answer.
package pagination

import (
	"sync"

	"github.com/syllabot/syllabot/internal/pkg/apperrors"
)

// DefaultPageSize matches the conversational page size of the original
// outline assistant.
const DefaultPageSize = 3

// Page is a bounded slice of an ordered answer list plus continuation state.
type Page struct {
	Header  string
	Items   []string
	Number  int // 1-based
	Total   int
	HasMore bool
}

// cursor is the continuation state for one conversation
type cursor struct {
	key      string // (action, resolved entity set) the cursor belongs to
	header   string
	items    []string
	pageSize int
	offset   int
}

// Manager keys cursors by conversation identifier. A single lock guards the
// map; requests for one conversation are expected to arrive sequentially,
// and requests for different conversations do not interfere beyond the
// brief critical section.
type Manager struct {
	mu       sync.Mutex
	cursors  map[string]*cursor
	pageSize int
}

// NewManager creates a pagination manager with the given default page size
func NewManager(pageSize int) *Manager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Manager{
		cursors:  make(map[string]*cursor),
		pageSize: pageSize,
	}
}

// PageSize returns the configured page size
func (m *Manager) PageSize() int { return m.pageSize }

// Start installs a fresh cursor for the conversation, replacing any prior
// one, and returns the first page. key identifies the answer the cursor
// belongs to.
func (m *Manager) Start(conversationID, key, header string, items []string) Page {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur := &cursor{
		key:      key,
		header:   header,
		items:    items,
		pageSize: m.pageSize,
	}
	m.cursors[conversationID] = cur
	page := cur.page()
	cur.offset += len(page.Items)

	if !page.HasMore {
		delete(m.cursors, conversationID)
	}
	return page
}

// Next returns the following page for the conversation. It fails with
// ErrNoCursor when no list answer is pending and ErrCursorExhausted when
// every page has already been served.
func (m *Manager) Next(conversationID string) (Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.cursors[conversationID]
	if !ok {
		return Page{}, apperrors.ErrNoCursor
	}
	if cur.offset >= len(cur.items) {
		delete(m.cursors, conversationID)
		return Page{}, apperrors.ErrCursorExhausted
	}

	// The cursor stays in place after the final page so that one more
	// "next" is answered as exhausted rather than as an unknown request.
	page := cur.page()
	cur.offset += len(page.Items)
	return page, nil
}

// Discard removes the conversation's cursor, if any. Called whenever a new
// question arrives for the conversation.
func (m *Manager) Discard(conversationID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.cursors, conversationID)
}

// Key returns the answer key the conversation's pending cursor was created
// for, empty if none exists.
func (m *Manager) Key(conversationID string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.cursors[conversationID]; ok {
		return cur.key
	}
	return ""
}

func (c *cursor) page() Page {
	end := c.offset + c.pageSize
	if end > len(c.items) {
		end = len(c.items)
	}

	total := (len(c.items) + c.pageSize - 1) / c.pageSize
	number := c.offset/c.pageSize + 1

	return Page{
		Header:  c.header,
		Items:   c.items[c.offset:end],
		Number:  number,
		Total:   total,
		HasMore: end < len(c.items),
	}
}
