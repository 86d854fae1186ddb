// Package resolver maps loosely specified textual parameters (course codes
// typed inconsistently, abbreviated instructor names, term labels with odd
// casing) onto concrete graph entities. Every resolution is tri-state:
// exactly one match, a candidate set (ambiguous), or no match. Ambiguity is
// never collapsed to a guess; the handler turns it into a clarifying
// question.
package resolver

import (
	"strings"
	"unicode"

	"github.com/syllabot/syllabot/internal/app/models"
	"github.com/syllabot/syllabot/internal/graph"
)

// MaxParamLength bounds user-supplied parameter values, mirroring the input
// guard of the conversational front end.
const MaxParamLength = 100

// Result is the tri-state outcome of a resolution. Matches preserves
// snapshot load order, which keeps resolution deterministic for a given
// snapshot and input.
type Result[T any] struct {
	Matches []T
}

// Unique returns the single match when resolution was unambiguous
func (r Result[T]) Unique() (T, bool) {
	if len(r.Matches) == 1 {
		return r.Matches[0], true
	}
	var zero T
	return zero, false
}

// Ambiguous reports whether more than one candidate matched
func (r Result[T]) Ambiguous() bool { return len(r.Matches) > 1 }

// Empty reports whether nothing matched
func (r Result[T]) Empty() bool { return len(r.Matches) == 0 }

// Resolver performs entity resolution against a graph snapshot. It holds no
// state of its own; the snapshot is passed per call so that a request keeps
// resolving against the snapshot it started with even across a reload.
type Resolver struct{}

// New creates a resolver
func New() *Resolver {
	return &Resolver{}
}

// ValidInput rejects parameter values that are empty, too long, or contain
// control characters, before any matching is attempted.
func ValidInput(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" || len(value) > MaxParamLength {
		return false
	}
	for _, r := range value {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// Normalize produces the canonical form of a parameter value used for cache
// keys: case-folded, trimmed, inner whitespace collapsed. Two phrasings of
// the same entity share a key.
func Normalize(value string) string {
	return strings.Join(strings.Fields(strings.ToLower(value)), " ")
}

// ResolveCourse resolves a course code, optionally restricted by a term
// hint. Matching rules apply in order and the first rule yielding exactly
// one candidate wins:
//  1. exact folded-code match within the hinted term
//  2. exact folded-code match across all terms
//  3. prefix match, then substring match, across all terms
//
// An exact match in several terms (same code offered twice, no usable hint)
// is returned as the candidate set, never an arbitrary pick.
func (r *Resolver) ResolveCourse(snap *graph.Snapshot, code, termHint string) Result[*models.Course] {
	folded := graph.FoldCode(code)
	if folded == "" {
		return Result[*models.Course]{}
	}

	// Step 1: exact match inside the hinted term, if the hint itself
	// resolves uniquely.
	if termHint != "" {
		if term, ok := r.ResolveTerm(snap, termHint).Unique(); ok {
			var hinted []*models.Course
			for _, c := range snap.CoursesInTerm(term.ID) {
				if graph.FoldCode(c.Code) == folded {
					hinted = append(hinted, c)
				}
			}
			if len(hinted) == 1 {
				return Result[*models.Course]{Matches: hinted}
			}
		}
	}

	// Step 2: exact match across all terms.
	var exact []*models.Course
	for _, c := range snap.Courses() {
		if graph.FoldCode(c.Code) == folded {
			exact = append(exact, c)
		}
	}
	if len(exact) > 0 {
		return Result[*models.Course]{Matches: exact}
	}

	// Step 3: prefix first, substring as fallback.
	var prefix, substring []*models.Course
	for _, c := range snap.Courses() {
		cf := graph.FoldCode(c.Code)
		if strings.HasPrefix(cf, folded) {
			prefix = append(prefix, c)
		} else if strings.Contains(cf, folded) {
			substring = append(substring, c)
		}
	}
	if len(prefix) > 0 {
		return Result[*models.Course]{Matches: prefix}
	}
	return Result[*models.Course]{Matches: substring}
}

// ResolveInstructor resolves a name fragment with case-insensitive substring
// matching against the full name, plus equality against the last name so
// "Sharma" finds "A. Sharma" without also matching every substring hit.
func (r *Resolver) ResolveInstructor(snap *graph.Snapshot, fragment string) Result[*models.Instructor] {
	needle := Normalize(fragment)
	if needle == "" {
		return Result[*models.Instructor]{}
	}

	var matches []*models.Instructor
	for _, ins := range snap.Instructors() {
		name := Normalize(ins.Name)
		if strings.Contains(name, needle) || lastName(name) == needle {
			matches = append(matches, ins)
		}
	}
	return Result[*models.Instructor]{Matches: matches}
}

// ResolveTerm resolves a term label: folded equality first, substring
// fallback second.
func (r *Resolver) ResolveTerm(snap *graph.Snapshot, label string) Result[*models.Term] {
	folded := graph.FoldCode(label)
	if folded == "" {
		return Result[*models.Term]{}
	}

	var exact, partial []*models.Term
	for _, t := range snap.Terms() {
		tf := graph.FoldCode(t.Label)
		if tf == folded {
			exact = append(exact, t)
		} else if strings.Contains(tf, folded) {
			partial = append(partial, t)
		}
	}
	if len(exact) > 0 {
		return Result[*models.Term]{Matches: exact}
	}
	return Result[*models.Term]{Matches: partial}
}

// ResolveProgram resolves a program name: folded equality first, substring
// fallback second.
func (r *Resolver) ResolveProgram(snap *graph.Snapshot, name string) Result[*models.Program] {
	folded := graph.FoldCode(name)
	if folded == "" {
		return Result[*models.Program]{}
	}

	var exact, partial []*models.Program
	for _, p := range snap.Programs() {
		pf := graph.FoldCode(p.Name)
		if pf == folded {
			exact = append(exact, p)
		} else if strings.Contains(pf, folded) {
			partial = append(partial, p)
		}
	}
	if len(exact) > 0 {
		return Result[*models.Program]{Matches: exact}
	}
	return Result[*models.Program]{Matches: partial}
}

func lastName(normalized string) string {
	fields := strings.Fields(normalized)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
