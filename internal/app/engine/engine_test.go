package engine

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syllabot/syllabot/internal/app/cache"
	"github.com/syllabot/syllabot/internal/app/models"
	"github.com/syllabot/syllabot/internal/app/pagination"
	"github.com/syllabot/syllabot/internal/graph"
)

func ptr[T any](v T) *T { return &v }

// staticSource serves a fixed record set, standing in for the file or
// database source.
type staticSource struct {
	data *graph.SnapshotData
}

func (s *staticSource) Fetch(_ context.Context) (*graph.SnapshotData, error) {
	return s.data, nil
}

func fixtureData() *graph.SnapshotData {
	data := &graph.SnapshotData{
		Programs: []models.Program{
			{ID: "p-cs", Name: "Computer Science"},
		},
		Terms: []models.Term{
			{ID: "t-fall", ProgramID: "p-cs", Label: "Fall 2025"},
			{ID: "t-spring", ProgramID: "p-cs", Label: "Spring 2026"},
		},
		Courses: []models.Course{
			{
				ID: "c-cs101-f", TermID: "t-fall", Code: "CS101",
				Title:         "Intro to Programming",
				Description:   ptr("Programming from first principles."),
				Credits:       ptr(6.0),
				InstructorIDs: []string{"i-aydin"},
			},
			{
				ID: "c-cs101-s", TermID: "t-spring", Code: "CS101",
				Title: "Intro to Programming",
			},
			{
				ID: "c-cs350", TermID: "t-fall", Code: "CS350",
				Title:         "Computer Networks",
				InstructorIDs: []string{"i-demir"},
			},
			{
				ID: "c-cs210", TermID: "t-fall", Code: "CS210",
				Title: "Systems Programming",
			},
		},
		Instructors: []models.Instructor{
			{ID: "i-aydin", Name: "Elif Aydin", Email: ptr("elif.aydin@example.edu"), Office: ptr("B-204")},
			{ID: "i-demir", Name: "Kerem Demir"},
		},
		Assessments: []models.Assessment{
			{ID: "a1", CourseID: "c-cs101-f", Name: "Midterm", Weight: ptr(30.0)},
			{ID: "a2", CourseID: "c-cs101-f", Name: "Final", Weight: ptr(50.0)},
			{ID: "a3", CourseID: "c-cs101-f", Name: "Homework", Weight: ptr(20.0)},

			// CS350's outline sums to 90, a data defect the engine must report.
			{ID: "a4", CourseID: "c-cs350", Name: "Midterm", Weight: ptr(30.0)},
			{ID: "a5", CourseID: "c-cs350", Name: "Final", Weight: ptr(40.0)},
			{ID: "a6", CourseID: "c-cs350", Name: "Labs", Weight: ptr(20.0)},
		},
	}

	for n := 1; n <= 12; n++ {
		data.Sessions = append(data.Sessions, models.Session{
			ID: fmt.Sprintf("s-%d", n), CourseID: "c-cs210", Number: n,
			Topic: fmt.Sprintf("Topic %d", n),
		})
	}

	// Seven extra spring courses so term listings spill across pages.
	for n := 1; n <= 7; n++ {
		data.Courses = append(data.Courses, models.Course{
			ID:     fmt.Sprintf("c-se%d", n),
			TermID: "t-spring",
			Code:   fmt.Sprintf("SE30%d", n),
			Title:  fmt.Sprintf("Software Elective %d", n),
		})
	}
	return data
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	store := graph.NewStore(zerolog.Nop())
	require.NoError(t, store.Load(context.Background(), &staticSource{data: fixtureData()}))
	return New(store, cache.NewLRU[Answer](64), pagination.NewManager(3), zerolog.Nop())
}

func dispatch(e *Engine, action string, params map[string]string) Reply {
	return e.Dispatch(context.Background(), Request{
		Action:         action,
		Parameters:     params,
		ConversationID: "conv-1",
	})
}

func TestDispatchUnknownAction(t *testing.T) {
	e := newTestEngine(t)
	reply := dispatch(e, "OrderPizza", nil)
	assert.Equal(t, "This query type is not supported yet.", reply.Text)
	assert.True(t, reply.EndOfConversationTurn)
}

func TestDispatchMissingParameter(t *testing.T) {
	e := newTestEngine(t)
	reply := dispatch(e, ActionGetCourseCredits, nil)
	assert.Equal(t, "I need the courseCode to answer that.", reply.Text)

	reply = dispatch(e, ActionGetSessionDetail, map[string]string{ParamCourseCode: "CS210"})
	assert.Equal(t, "I need the sessionNumber to answer that.", reply.Text)
}

func TestDispatchRejectsInvalidParameter(t *testing.T) {
	e := newTestEngine(t)
	reply := dispatch(e, ActionGetCourseCredits, map[string]string{ParamCourseCode: "bad\x00code"})
	assert.Contains(t, reply.Text, "Please provide a valid courseCode")
}

func TestDispatchValidatesOptionalParameters(t *testing.T) {
	e := newTestEngine(t)

	reply := dispatch(e, ActionGetCourseCredits, map[string]string{
		ParamCourseCode: "CS350",
		ParamTerm:       "fall\x002025",
	})
	assert.Contains(t, reply.Text, "Please provide a valid term")

	reply = dispatch(e, ActionGetAssessmentWeight, map[string]string{
		ParamCourseCode:     "CS350",
		ParamAssessmentName: strings.Repeat("x", 101),
	})
	assert.Contains(t, reply.Text, "Please provide a valid assessmentName")

	// Empty optional values are treated as absent, not invalid.
	reply = dispatch(e, ActionGetCourseCredits, map[string]string{
		ParamCourseCode: "CS350",
		ParamTerm:       "",
	})
	assert.Equal(t, "The credit value for CS350 - Computer Networks is not available.", reply.Text)
}

func TestGetInstructorIncludesEmail(t *testing.T) {
	e := newTestEngine(t)
	reply := dispatch(e, ActionGetInstructor, map[string]string{
		ParamCourseCode: "CS101",
		ParamTerm:       "Fall 2025",
	})
	assert.Equal(t, "Elif Aydin (elif.aydin@example.edu) teaches CS101 - Intro to Programming.", reply.Text)
	assert.True(t, reply.EndOfConversationTurn)

	reply = dispatch(e, ActionGetInstructor, map[string]string{ParamCourseCode: "CS350"})
	assert.Equal(t, "Kerem Demir (email not available) teaches CS350 - Computer Networks.", reply.Text)
}

func TestAmbiguousCourseAsksForClarification(t *testing.T) {
	e := newTestEngine(t)
	reply := dispatch(e, ActionGetCourseOverview, map[string]string{ParamCourseCode: "CS101"})
	assert.Contains(t, reply.Text, "more than one course matching 'CS101'")
	assert.Contains(t, reply.Text, "Fall 2025")
	assert.Contains(t, reply.Text, "Spring 2026")
	assert.True(t, reply.EndOfConversationTurn)
}

func TestUnknownCourse(t *testing.T) {
	e := newTestEngine(t)
	reply := dispatch(e, ActionGetCourseOverview, map[string]string{ParamCourseCode: "MATH999"})
	assert.Equal(t, "I couldn't find course 'MATH999'.", reply.Text)
}

func TestMissingFieldAnsweredAsUnavailable(t *testing.T) {
	e := newTestEngine(t)
	reply := dispatch(e, ActionGetCourseCredits, map[string]string{ParamCourseCode: "CS350"})
	assert.Equal(t, "The credit value for CS350 - Computer Networks is not available.", reply.Text)
}

func TestAssessmentWeightSumViolationIsReported(t *testing.T) {
	e := newTestEngine(t)

	reply := dispatch(e, ActionGetAssessmentWeight, map[string]string{
		ParamCourseCode:     "CS350",
		ParamAssessmentName: "Final",
	})
	assert.Contains(t, reply.Text, "Final counts for 40% of CS350.")
	assert.Contains(t, reply.Text, "Note: the assessment weights for CS350 total 90%, not 100%.")

	// A well-formed outline carries no note.
	reply = dispatch(e, ActionGetAssessmentWeight, map[string]string{
		ParamCourseCode: "CS101",
		ParamTerm:       "Fall 2025",
	})
	assert.NotContains(t, reply.Text, "Note:")
	assert.Contains(t, reply.Text, "Midterm: 30%")
}

func TestGetSessionDetail(t *testing.T) {
	e := newTestEngine(t)

	reply := dispatch(e, ActionGetSessionDetail, map[string]string{
		ParamCourseCode:    "CS210",
		ParamSessionNumber: "2",
	})
	assert.Contains(t, reply.Text, "Session 2 of CS210: Topic 2")

	reply = dispatch(e, ActionGetSessionDetail, map[string]string{
		ParamCourseCode:    "CS210",
		ParamSessionNumber: "99",
	})
	assert.Equal(t, "CS210 has 12 sessions; I couldn't find session 99.", reply.Text)

	reply = dispatch(e, ActionGetSessionDetail, map[string]string{
		ParamCourseCode:    "CS210",
		ParamSessionNumber: "soon",
	})
	assert.Equal(t, "'soon' is not a valid session number.", reply.Text)
}

func TestGetTotalSessions(t *testing.T) {
	e := newTestEngine(t)

	reply := dispatch(e, ActionGetTotalSessions, map[string]string{ParamCourseCode: "CS210"})
	assert.Equal(t, "CS210 - Systems Programming has 12 sessions.", reply.Text)

	reply = dispatch(e, ActionGetTotalSessions, map[string]string{ParamCourseCode: "CS350"})
	assert.Equal(t, "No sessions listed for CS350 - Computer Networks.", reply.Text)
}

func TestDispatchIsDeterministicAndCached(t *testing.T) {
	e := newTestEngine(t)
	params := map[string]string{ParamCourseCode: "CS101", ParamTerm: "Fall 2025"}

	first := dispatch(e, ActionGetCourseOverview, params)
	second := dispatch(e, ActionGetCourseOverview, params)
	assert.Equal(t, first, second)

	// A rephrasing that normalizes identically shares the cache entry.
	rephrased := dispatch(e, ActionGetCourseOverview, map[string]string{
		ParamCourseCode: "cs101", ParamTerm: "  FALL   2025 ",
	})
	assert.Equal(t, first, rephrased)
	assert.Equal(t, 1, e.answers.Len(context.Background()))
}

func TestCodeSpellingsShareOneCacheEntry(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	var replies []Reply
	for _, spelling := range []string{"CS350", "CS 350", "cs-350"} {
		replies = append(replies, dispatch(e, ActionGetCourseCredits,
			map[string]string{ParamCourseCode: spelling}))
	}

	// Every spelling resolves to the same course, answers identically, and
	// lands on the same memoization key.
	assert.Equal(t, replies[0], replies[1])
	assert.Equal(t, replies[0], replies[2])
	assert.Equal(t, 1, e.answers.Len(ctx))

	// Term labels fold the same way.
	dispatch(e, ActionListCoursesInTerm, map[string]string{ParamTerm: "Fall 2025"})
	dispatch(e, ActionListCoursesInTerm, map[string]string{ParamTerm: "fall2025"})
	assert.Equal(t, 2, e.answers.Len(ctx))
}

func TestCanonicalValuePerParameterKind(t *testing.T) {
	// Code-like parameters fold punctuation and whitespace away, matching
	// how they are resolved.
	assert.Equal(t, canonicalValue(ParamCourseCode, "CS 350"), canonicalValue(ParamCourseCode, "cs-350"))
	assert.Equal(t, canonicalValue(ParamTerm, "Fall 2025"), canonicalValue(ParamTerm, "fall2025"))
	assert.Equal(t, canonicalValue(ParamProgram, "Computer Science"), canonicalValue(ParamProgram, "computerscience"))

	// Name-like parameters only fold casing and whitespace runs; stripping
	// spaces entirely would collapse distinct names like "an na" and "anna".
	assert.Equal(t, canonicalValue(ParamInstructorName, "Elif  Aydin"), canonicalValue(ParamInstructorName, "elif aydin"))
	assert.NotEqual(t, canonicalValue(ParamInstructorName, "an na"), canonicalValue(ParamInstructorName, "anna"))
}

func TestListPaginationFlow(t *testing.T) {
	e := newTestEngine(t)
	params := map[string]string{ParamTerm: "Spring 2026"}

	reply := dispatch(e, ActionListCoursesInTerm, params)
	assert.Contains(t, reply.Text, "Courses offered in Spring 2026 (Computer Science):")
	assert.Contains(t, reply.Text, "(Page 1/3 - say 'next page' for more)")
	assert.False(t, reply.EndOfConversationTurn)

	reply = dispatch(e, ActionNextPage, nil)
	assert.Contains(t, reply.Text, "(Page 2/3 - say 'next page' for more)")
	assert.False(t, reply.EndOfConversationTurn)

	reply = dispatch(e, ActionNextPage, nil)
	assert.Contains(t, reply.Text, "(Page 3/3)")
	assert.True(t, reply.EndOfConversationTurn)

	reply = dispatch(e, ActionNextPage, nil)
	assert.Equal(t, "That was everything I had on this.", reply.Text)

	reply = dispatch(e, ActionNextPage, nil)
	assert.Equal(t, "There is nothing to continue. Ask me about a course first.", reply.Text)
}

func TestNewQuestionDiscardsPendingCursor(t *testing.T) {
	e := newTestEngine(t)

	reply := dispatch(e, ActionListCoursesInTerm, map[string]string{ParamTerm: "Spring 2026"})
	assert.False(t, reply.EndOfConversationTurn)

	dispatch(e, ActionGetCourseCredits, map[string]string{ParamCourseCode: "CS350"})

	reply = dispatch(e, ActionNextPage, nil)
	assert.Equal(t, "There is nothing to continue. Ask me about a course first.", reply.Text)
}

func TestPaginationCoversAllItems(t *testing.T) {
	e := newTestEngine(t)
	params := map[string]string{ParamTerm: "Spring 2026"}

	var combined string
	reply := dispatch(e, ActionListCoursesInTerm, params)
	combined += reply.Text
	for !reply.EndOfConversationTurn {
		reply = dispatch(e, ActionNextPage, nil)
		combined += "\n" + reply.Text
	}

	assert.Contains(t, combined, "CS101 - Intro to Programming")
	for n := 1; n <= 7; n++ {
		assert.Contains(t, combined, fmt.Sprintf("SE30%d - Software Elective %d", n, n))
	}
}

func TestPurgeCacheDropsMemoizedAnswers(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()

	dispatch(e, ActionGetCourseCredits, map[string]string{ParamCourseCode: "CS350"})
	require.Equal(t, 1, e.answers.Len(ctx))

	require.NoError(t, e.PurgeCache(ctx))
	assert.Equal(t, 0, e.answers.Len(ctx))
}

func TestActionCatalogIsComplete(t *testing.T) {
	e := newTestEngine(t)
	names := e.Actions()
	assert.Len(t, names, 18)
	assert.Contains(t, names, ActionGetInstructor)
	assert.Contains(t, names, ActionGetTotalSessions)
	assert.Contains(t, names, ActionListInstructorsInProgram)
	assert.NotContains(t, names, ActionNextPage)
}
