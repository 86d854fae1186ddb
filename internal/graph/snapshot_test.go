package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syllabot/syllabot/internal/app/models"
	"github.com/syllabot/syllabot/internal/pkg/apperrors"
)

func ptr[T any](v T) *T { return &v }

func validData() *SnapshotData {
	return &SnapshotData{
		Programs: []models.Program{
			{ID: "p1", Name: "Computer Science"},
		},
		Terms: []models.Term{
			{ID: "t1", ProgramID: "p1", Label: "Fall 2025"},
			{ID: "t2", ProgramID: "p1", Label: "Spring 2026"},
		},
		Courses: []models.Course{
			{ID: "c1", TermID: "t1", Code: "CS101", Title: "Intro", InstructorIDs: []string{"i1"}},
			{ID: "c2", TermID: "t2", Code: "CS101", Title: "Intro again", InstructorIDs: []string{"i1"}},
			{ID: "c3", TermID: "t2", Code: "CS201", Title: "Data Structures"},
		},
		Sessions: []models.Session{
			{ID: "s3", CourseID: "c1", Number: 3, Topic: "Control flow"},
			{ID: "s1", CourseID: "c1", Number: 1, Topic: "Introduction"},
			{ID: "s2", CourseID: "c1", Number: 2, Topic: "Variables"},
		},
		Assessments: []models.Assessment{
			{ID: "a1", CourseID: "c1", Name: "Midterm", Weight: ptr(30.0)},
			{ID: "a2", CourseID: "c1", Name: "Final", Weight: ptr(50.0)},
			{ID: "a3", CourseID: "c1", Name: "Homework", Weight: ptr(20.0)},
		},
		Instructors: []models.Instructor{
			{ID: "i1", Name: "Elif Aydin", Email: ptr("elif@example.edu")},
		},
	}
}

func TestBuildSnapshotIndexes(t *testing.T) {
	snap, err := BuildSnapshot(validData())
	require.NoError(t, err)

	course, ok := snap.CourseByID("c1")
	require.True(t, ok)
	assert.Equal(t, "CS101", course.Code)

	term, ok := snap.TermOf(course)
	require.True(t, ok)
	assert.Equal(t, "Fall 2025", term.Label)

	program, ok := snap.ProgramOf(term)
	require.True(t, ok)
	assert.Equal(t, "Computer Science", program.Name)

	assert.Len(t, snap.CoursesInTerm("t2"), 2)
	assert.Len(t, snap.CoursesOf("i1"), 2)
	assert.Len(t, snap.InstructorsOf("c1"), 1)
	assert.Empty(t, snap.InstructorsOf("c3"))
}

func TestBuildSnapshotSortsSessions(t *testing.T) {
	snap, err := BuildSnapshot(validData())
	require.NoError(t, err)

	sessions := snap.SessionsOf("c1")
	require.Len(t, sessions, 3)
	for i, s := range sessions {
		assert.Equal(t, i+1, s.Number)
	}
}

func TestBuildSnapshotValidationFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *SnapshotData)
	}{
		{"term references unknown program", func(d *SnapshotData) {
			d.Terms[0].ProgramID = "missing"
		}},
		{"course references unknown term", func(d *SnapshotData) {
			d.Courses[0].TermID = "missing"
		}},
		{"course references unknown instructor", func(d *SnapshotData) {
			d.Courses[0].InstructorIDs = []string{"missing"}
		}},
		{"session references unknown course", func(d *SnapshotData) {
			d.Sessions[0].CourseID = "missing"
		}},
		{"assessment references unknown course", func(d *SnapshotData) {
			d.Assessments[0].CourseID = "missing"
		}},
		{"duplicate course id", func(d *SnapshotData) {
			d.Courses[1].ID = d.Courses[0].ID
		}},
		{"empty course code", func(d *SnapshotData) {
			d.Courses[0].Code = ""
		}},
		{"folded code collision within a term", func(d *SnapshotData) {
			d.Courses[2].Code = "cs 101"
			d.Courses[2].TermID = "t2"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := validData()
			tt.mutate(data)
			_, err := BuildSnapshot(data)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrSnapshotInvalid)
		})
	}
}

func TestFoldCode(t *testing.T) {
	assert.Equal(t, "cs101", FoldCode("CS101"))
	assert.Equal(t, "cs101", FoldCode("cs 101"))
	assert.Equal(t, "cs101", FoldCode("CS-101"))
	assert.Equal(t, "", FoldCode("  --  "))
}

func TestAssessmentWeightTotal(t *testing.T) {
	data := validData()
	snap, err := BuildSnapshot(data)
	require.NoError(t, err)

	total, complete := snap.AssessmentWeightTotal("c1")
	assert.True(t, complete)
	assert.InDelta(t, 100.0, total, 0.001)

	data = validData()
	data.Assessments[2].Weight = nil
	snap, err = BuildSnapshot(data)
	require.NoError(t, err)

	total, complete = snap.AssessmentWeightTotal("c1")
	assert.False(t, complete)
	assert.InDelta(t, 80.0, total, 0.001)

	_, complete = snap.AssessmentWeightTotal("c3")
	assert.True(t, complete)
}
