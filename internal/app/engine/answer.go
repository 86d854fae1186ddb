package engine

import (
	"fmt"
	"strings"

	"github.com/syllabot/syllabot/internal/app/pagination"
)

// Request is the structured query delivered by the transport layer.
type Request struct {
	Action         string            `json:"action"`
	Parameters     map[string]string `json:"parameters"`
	ConversationID string            `json:"conversationId"`
}

// Reply is the outbound response. EndOfConversationTurn=false signals that a
// "show more" follow-up is expected and pagination state exists for the
// conversation.
type Reply struct {
	Text                  string `json:"text"`
	EndOfConversationTurn bool   `json:"endOfConversationTurn"`
}

// Answer is a handler's result: either a single text value or an ordered
// list of items with an optional header. Note carries data-quality remarks
// (e.g. assessment weights not summing to 100) that are appended to every
// rendering of the answer. Answers are what the response cache stores.
type Answer struct {
	Text   string   `json:"text,omitempty"`
	Header string   `json:"header,omitempty"`
	Items  []string `json:"items,omitempty"`
	Note   string   `json:"note,omitempty"`
}

// IsList reports whether the answer is an ordered item list
func (a *Answer) IsList() bool {
	return len(a.Items) > 0
}

// textAnswer builds a scalar answer
func textAnswer(format string, args ...interface{}) *Answer {
	return &Answer{Text: fmt.Sprintf(format, args...)}
}

// listAnswer builds an ordered-list answer
func listAnswer(header string, items []string) *Answer {
	return &Answer{Header: header, Items: items}
}

// renderFull renders an answer that fits in a single turn
func (a *Answer) renderFull() string {
	var b strings.Builder
	if a.IsList() {
		if a.Header != "" {
			b.WriteString(a.Header)
			b.WriteString("\n")
		}
		b.WriteString(strings.Join(a.Items, "\n"))
	} else {
		b.WriteString(a.Text)
	}
	if a.Note != "" {
		b.WriteString("\n\n")
		b.WriteString(a.Note)
	}
	return b.String()
}

// renderPage renders one page of a list answer, with a continuation footer
// while more pages remain.
func renderPage(page pagination.Page, note string) Reply {
	var b strings.Builder
	if page.Header != "" {
		b.WriteString(page.Header)
		b.WriteString("\n")
	}
	b.WriteString(strings.Join(page.Items, "\n"))
	if note != "" {
		b.WriteString("\n\n")
		b.WriteString(note)
	}
	if page.HasMore {
		b.WriteString(fmt.Sprintf("\n\n(Page %d/%d - say 'next page' for more)", page.Number, page.Total))
	} else if page.Total > 1 {
		b.WriteString(fmt.Sprintf("\n\n(Page %d/%d)", page.Number, page.Total))
	}
	return Reply{Text: b.String(), EndOfConversationTurn: !page.HasMore}
}
