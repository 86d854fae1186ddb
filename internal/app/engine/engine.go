// Package engine is the query-resolution core: it routes an action name to a
// registered handler, resolves loosely-specified parameters into graph
// entities, traverses the graph to assemble an answer, memoizes answers, and
// paginates list answers across conversational turns.
//
// Every request terminates in exactly one outcome: answered, ambiguous
// (clarifying question), not-found, or a caller contract violation answered
// as text. No request-path error is fatal to the process.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/syllabot/syllabot/internal/app/cache"
	"github.com/syllabot/syllabot/internal/app/pagination"
	"github.com/syllabot/syllabot/internal/app/resolver"
	"github.com/syllabot/syllabot/internal/graph"
	"github.com/syllabot/syllabot/internal/pkg/apperrors"
)

// handlerFunc consumes resolved parameters and produces an answer. Expected
// non-answers (ambiguity, no data) are returned as classified errors that
// Dispatch maps to reply texts.
type handlerFunc func(hc *handlerContext) (*Answer, error)

// action describes one registered action: its name, the parameters that must
// be present before the handler runs, and the handler itself.
type action struct {
	name     string
	required []string
	handle   handlerFunc
}

// Engine dispatches structured requests against the current graph snapshot.
type Engine struct {
	store    *graph.Store
	resolver *resolver.Resolver
	answers  cache.Cache[Answer]
	pages    *pagination.Manager
	logger   zerolog.Logger
	actions  map[string]action
}

// New creates an engine with the full action catalog registered.
func New(store *graph.Store, answers cache.Cache[Answer], pages *pagination.Manager, logger zerolog.Logger) *Engine {
	e := &Engine{
		store:    store,
		resolver: resolver.New(),
		answers:  answers,
		pages:    pages,
		logger:   logger,
		actions:  make(map[string]action),
	}
	for _, a := range catalog() {
		e.register(a)
	}
	return e
}

// register adds an action descriptor; duplicate names are programmer errors.
func (e *Engine) register(a action) {
	if _, exists := e.actions[a.name]; exists {
		panic(fmt.Sprintf("engine: action %q registered twice", a.name))
	}
	e.actions[a.name] = a
}

// Actions returns the registered action names, sorted.
func (e *Engine) Actions() []string {
	names := make([]string, 0, len(e.actions))
	for name := range e.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PurgeCache discards every cached answer. Must be called after a snapshot
// reload: the cache is subordinate to one snapshot and partial invalidation
// risks serving stale answers against the new graph.
func (e *Engine) PurgeCache(ctx context.Context) error {
	return e.answers.Purge(ctx)
}

// Dispatch routes a request to its handler and always produces a reply;
// contract violations and resolution failures become conversational text.
func (e *Engine) Dispatch(ctx context.Context, req Request) Reply {
	if req.Action == ActionNextPage {
		return e.continueList(req.ConversationID)
	}

	act, known := e.actions[req.Action]
	if !known {
		e.logger.Warn().Str("action", req.Action).Msg("Unknown action requested")
		return e.replyForError(req, apperrors.NewCustomError(apperrors.ErrUnknownAction,
			"This query type is not supported yet."))
	}

	// A new question invalidates any pending list continuation for this
	// conversation, whatever it was about.
	e.pages.Discard(req.ConversationID)

	for _, name := range act.required {
		value, ok := req.Parameters[name]
		if !ok || value == "" {
			return e.replyForError(req, apperrors.NewCustomError(apperrors.ErrMissingParameter,
				fmt.Sprintf("I need the %s to answer that.", name)))
		}
	}

	// Every supplied parameter passes the input guard, optional hints
	// included; the handlers read them unchecked.
	for name, value := range req.Parameters {
		if value == "" {
			continue
		}
		if !resolver.ValidInput(value) {
			return e.replyForError(req, apperrors.NewCustomError(apperrors.ErrInvalidParameter,
				fmt.Sprintf("Please provide a valid %s (up to %d characters).", name, resolver.MaxParamLength)))
		}
	}

	snap := e.store.Snapshot()
	if snap == nil {
		e.logger.Error().Str("action", req.Action).Msg("Dispatch before snapshot load")
		return endTurn("The course catalog is not available right now. Please try again later.")
	}

	key := e.cacheKey(req)
	if answer, hit := e.answers.Get(ctx, key); hit {
		e.logger.Debug().Str("action", req.Action).Str("key", key).Msg("Answer served from cache")
		return e.deliver(req.ConversationID, key, &answer)
	}

	hc := &handlerContext{
		snap:     snap,
		resolver: e.resolver,
		params:   req.Parameters,
	}

	answer, err := act.handle(hc)
	if err != nil {
		return e.replyForError(req, err)
	}

	if putErr := e.answers.Put(ctx, key, *answer); putErr != nil {
		e.logger.Warn().Err(putErr).Str("key", key).Msg("Failed to cache answer")
	}

	return e.deliver(req.ConversationID, key, answer)
}

// deliver renders an answer, starting a pagination cursor when the item list
// exceeds one page.
func (e *Engine) deliver(conversationID, key string, answer *Answer) Reply {
	if answer.IsList() && len(answer.Items) > e.pages.PageSize() {
		page := e.pages.Start(conversationID, key, answer.Header, answer.Items)
		return renderPage(page, answer.Note)
	}
	return endTurn(answer.renderFull())
}

// continueList serves the next page of a pending list answer.
func (e *Engine) continueList(conversationID string) Reply {
	page, err := e.pages.Next(conversationID)
	switch {
	case errors.Is(err, apperrors.ErrNoCursor):
		return endTurn("There is nothing to continue. Ask me about a course first.")
	case errors.Is(err, apperrors.ErrCursorExhausted):
		return endTurn("That was everything I had on this.")
	case err != nil:
		e.logger.Error().Err(err).Str("conversation", conversationID).Msg("Pagination failure")
		return endTurn("Sorry, I could not continue the previous answer.")
	}
	return renderPage(page, "")
}

// replyForError maps classified errors onto the reply taxonomy: ambiguity
// becomes a clarifying question, not-found becomes a no-data answer, caller
// contract violations restate the contract, anything else a generic failure
// that never crashes the process.
func (e *Engine) replyForError(req Request, err error) Reply {
	switch {
	case errors.Is(err, apperrors.ErrAmbiguous),
		errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrUnknownAction),
		errors.Is(err, apperrors.ErrMissingParameter),
		errors.Is(err, apperrors.ErrInvalidParameter):
		return endTurn(err.Error())
	default:
		e.logger.Error().Err(err).Str("action", req.Action).Msg("Handler failed")
		return endTurn("Sorry, I encountered an error processing your request.")
	}
}

// cacheKey builds the memoization key from the action name and the
// canonical values of all supplied parameters in name order, so different
// phrasings of the same question share an entry.
func (e *Engine) cacheKey(req Request) string {
	names := make([]string, 0, len(req.Parameters))
	for name := range req.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)

	canonical := make([]string, 0, len(names)*2)
	for _, name := range names {
		canonical = append(canonical, name, canonicalValue(name, req.Parameters[name]))
	}
	return cache.Key(req.Action, canonical...)
}

// canonicalValue reduces a parameter value to the form the resolver matches
// it in. Code-like parameters resolve on the folded form, so "CS 350",
// "cs-350" and "CS350" must share one key; everything else resolves on the
// whitespace-normalized form, which keeps distinct names like "an na" and
// "anna" on distinct keys.
func canonicalValue(name, value string) string {
	switch name {
	case ParamCourseCode, ParamTerm, ParamProgram:
		return graph.FoldCode(value)
	default:
		return resolver.Normalize(value)
	}
}

func endTurn(text string) Reply {
	return Reply{Text: text, EndOfConversationTurn: true}
}
