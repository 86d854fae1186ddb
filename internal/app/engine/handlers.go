package engine

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/syllabot/syllabot/internal/app/models"
	"github.com/syllabot/syllabot/internal/app/resolver"
	"github.com/syllabot/syllabot/internal/graph"
	"github.com/syllabot/syllabot/internal/pkg/apperrors"
)

// maxCandidatesShown bounds how many candidates a clarifying question lists
const maxCandidatesShown = 5

// handlerContext carries everything a handler needs for one request. The
// snapshot is pinned at dispatch time, so a concurrent reload cannot change
// the graph mid-traversal.
type handlerContext struct {
	snap     *graph.Snapshot
	resolver *resolver.Resolver
	params   map[string]string
}

// param returns a trimmed parameter value, empty if absent
func (hc *handlerContext) param(name string) string {
	return strings.TrimSpace(hc.params[name])
}

// course resolves the courseCode parameter (with the optional term hint)
// into exactly one course, or fails with a classified ambiguity/not-found
// error carrying the reply text.
func (hc *handlerContext) course() (*models.Course, error) {
	code := hc.param(ParamCourseCode)
	result := hc.resolver.ResolveCourse(hc.snap, code, hc.param(ParamTerm))

	if c, ok := result.Unique(); ok {
		return c, nil
	}
	if result.Empty() {
		return nil, notFound(fmt.Sprintf("I couldn't find course '%s'.", code))
	}
	return nil, hc.ambiguousCourses(code, result.Matches)
}

// instructor resolves the instructorName parameter into exactly one
// instructor, with the same tri-state discipline as course.
func (hc *handlerContext) instructor() (*models.Instructor, error) {
	fragment := hc.param(ParamInstructorName)
	result := hc.resolver.ResolveInstructor(hc.snap, fragment)

	if ins, ok := result.Unique(); ok {
		return ins, nil
	}
	if result.Empty() {
		return nil, notFound(fmt.Sprintf("I couldn't find instructor '%s'.", fragment))
	}

	names := make([]string, 0, len(result.Matches))
	for i, ins := range result.Matches {
		if i == maxCandidatesShown {
			break
		}
		names = append(names, ins.Name)
	}
	return nil, ambiguous(fmt.Sprintf("I found more than one instructor matching '%s': %s. Which one did you mean?",
		fragment, strings.Join(names, ", ")))
}

// ambiguousCourses builds the clarifying question for a multi-course match,
// labelling each candidate with its term so identical codes in different
// terms stay distinguishable.
func (hc *handlerContext) ambiguousCourses(code string, matches []*models.Course) error {
	labels := make([]string, 0, len(matches))
	for i, c := range matches {
		if i == maxCandidatesShown {
			break
		}
		label := c.Code
		if term, ok := hc.snap.TermOf(c); ok {
			label = fmt.Sprintf("%s (%s)", c.Code, term.Label)
		}
		labels = append(labels, label)
	}
	return ambiguous(fmt.Sprintf("I found more than one course matching '%s': %s. Which one did you mean?",
		code, strings.Join(labels, ", ")))
}

func notFound(message string) error {
	return apperrors.NewCustomError(apperrors.ErrNotFound, message)
}

func ambiguous(message string) error {
	return apperrors.NewCustomError(apperrors.ErrAmbiguous, message)
}

func invalidParam(message string) error {
	return apperrors.NewCustomError(apperrors.ErrInvalidParameter, message)
}

// orUnavailable renders a nullable field, making ingestion gaps visible in
// the answer instead of silently dropping them.
func orUnavailable(value *string) string {
	if value == nil || *value == "" {
		return "not available"
	}
	return *value
}

// formatWeight renders a weight percentage without trailing zeros
func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// weightNote reports violations of the weights-total-100 invariant for a
// course's assessments. The engine never normalizes malformed totals; it
// states them.
func weightNote(snap *graph.Snapshot, course *models.Course) string {
	assessments := snap.AssessmentsOf(course.ID)
	if len(assessments) == 0 {
		return ""
	}
	total, complete := snap.AssessmentWeightTotal(course.ID)
	if !complete {
		return fmt.Sprintf("Note: some assessment weights for %s are not available.", course.Code)
	}
	if math.Abs(total-100) > 0.01 {
		return fmt.Sprintf("Note: the assessment weights for %s total %s%%, not 100%%.", course.Code, formatWeight(total))
	}
	return ""
}
