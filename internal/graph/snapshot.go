package graph

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/syllabot/syllabot/internal/app/models"
	"github.com/syllabot/syllabot/internal/pkg/apperrors"
)

// Snapshot is the immutable in-memory knowledge graph. All lookups are pure
// reads; slices returned by accessors must not be modified by callers. A
// snapshot is fully validated before it becomes visible to any reader.
type Snapshot struct {
	programs    []*models.Program
	terms       []*models.Term
	courses     []*models.Course
	instructors []*models.Instructor

	programByID    map[string]*models.Program
	termByID       map[string]*models.Term
	courseByID     map[string]*models.Course
	instructorByID map[string]*models.Instructor

	termsByProgram      map[string][]*models.Term
	coursesByTerm       map[string][]*models.Course
	sessionsByCourse    map[string][]*models.Session
	assessmentsByCourse map[string][]*models.Assessment
	coursesByInstructor map[string][]*models.Course

	loadedAt time.Time
}

// Stats summarizes a snapshot for health reporting and reload logging.
type Stats struct {
	Programs    int       `json:"programs"`
	Terms       int       `json:"terms"`
	Courses     int       `json:"courses"`
	Sessions    int       `json:"sessions"`
	Assessments int       `json:"assessments"`
	Instructors int       `json:"instructors"`
	LoadedAt    time.Time `json:"loadedAt"`
}

// BuildSnapshot validates raw snapshot records and assembles the indexed
// graph. Validation covers duplicate or empty identifiers, every ownership
// reference (term→program, course→term, session→course, assessment→course),
// every instructor reference, and course-code uniqueness within a term. Any
// violation fails the whole build; readers never observe a partial graph.
func BuildSnapshot(data *SnapshotData) (*Snapshot, error) {
	if data == nil {
		return nil, apperrors.NewValidationError("snapshot data is nil")
	}

	s := &Snapshot{
		programByID:         make(map[string]*models.Program, len(data.Programs)),
		termByID:            make(map[string]*models.Term, len(data.Terms)),
		courseByID:          make(map[string]*models.Course, len(data.Courses)),
		instructorByID:      make(map[string]*models.Instructor, len(data.Instructors)),
		termsByProgram:      make(map[string][]*models.Term),
		coursesByTerm:       make(map[string][]*models.Course),
		sessionsByCourse:    make(map[string][]*models.Session),
		assessmentsByCourse: make(map[string][]*models.Assessment),
		coursesByInstructor: make(map[string][]*models.Course),
		loadedAt:            time.Now(),
	}

	for i := range data.Programs {
		p := &data.Programs[i]
		if p.ID == "" {
			return nil, apperrors.NewValidationError("program with empty id")
		}
		if _, dup := s.programByID[p.ID]; dup {
			return nil, apperrors.NewValidationError(fmt.Sprintf("duplicate program id %q", p.ID))
		}
		s.programByID[p.ID] = p
		s.programs = append(s.programs, p)
	}

	for i := range data.Instructors {
		ins := &data.Instructors[i]
		if ins.ID == "" {
			return nil, apperrors.NewValidationError("instructor with empty id")
		}
		if _, dup := s.instructorByID[ins.ID]; dup {
			return nil, apperrors.NewValidationError(fmt.Sprintf("duplicate instructor id %q", ins.ID))
		}
		s.instructorByID[ins.ID] = ins
		s.instructors = append(s.instructors, ins)
	}

	for i := range data.Terms {
		t := &data.Terms[i]
		if t.ID == "" {
			return nil, apperrors.NewValidationError("term with empty id")
		}
		if _, dup := s.termByID[t.ID]; dup {
			return nil, apperrors.NewValidationError(fmt.Sprintf("duplicate term id %q", t.ID))
		}
		if _, ok := s.programByID[t.ProgramID]; !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("term %q references unknown program %q", t.ID, t.ProgramID))
		}
		s.termByID[t.ID] = t
		s.terms = append(s.terms, t)
		s.termsByProgram[t.ProgramID] = append(s.termsByProgram[t.ProgramID], t)
	}

	// Course codes must be unique within a term; compare on the folded form
	// so "CS101" and "cs 101" in one term are rejected as a collision.
	codeSeen := make(map[string]string) // termID+foldedCode -> courseID

	for i := range data.Courses {
		c := &data.Courses[i]
		if c.ID == "" {
			return nil, apperrors.NewValidationError("course with empty id")
		}
		if c.Code == "" {
			return nil, apperrors.NewValidationError(fmt.Sprintf("course %q has empty code", c.ID))
		}
		if _, dup := s.courseByID[c.ID]; dup {
			return nil, apperrors.NewValidationError(fmt.Sprintf("duplicate course id %q", c.ID))
		}
		if _, ok := s.termByID[c.TermID]; !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("course %q references unknown term %q", c.ID, c.TermID))
		}
		codeKey := c.TermID + "\x00" + FoldCode(c.Code)
		if prev, clash := codeSeen[codeKey]; clash {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("course code %q duplicated within term %q (courses %q and %q)", c.Code, c.TermID, prev, c.ID))
		}
		codeSeen[codeKey] = c.ID

		for _, insID := range c.InstructorIDs {
			if _, ok := s.instructorByID[insID]; !ok {
				return nil, apperrors.NewValidationError(fmt.Sprintf("course %q references unknown instructor %q", c.ID, insID))
			}
		}

		s.courseByID[c.ID] = c
		s.courses = append(s.courses, c)
		s.coursesByTerm[c.TermID] = append(s.coursesByTerm[c.TermID], c)
		for _, insID := range c.InstructorIDs {
			s.coursesByInstructor[insID] = append(s.coursesByInstructor[insID], c)
		}
	}

	for i := range data.Sessions {
		sess := &data.Sessions[i]
		if _, ok := s.courseByID[sess.CourseID]; !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("session %q references unknown course %q", sess.ID, sess.CourseID))
		}
		s.sessionsByCourse[sess.CourseID] = append(s.sessionsByCourse[sess.CourseID], sess)
	}
	for _, sessions := range s.sessionsByCourse {
		sort.SliceStable(sessions, func(i, j int) bool { return sessions[i].Number < sessions[j].Number })
	}

	for i := range data.Assessments {
		a := &data.Assessments[i]
		if _, ok := s.courseByID[a.CourseID]; !ok {
			return nil, apperrors.NewValidationError(fmt.Sprintf("assessment %q references unknown course %q", a.ID, a.CourseID))
		}
		s.assessmentsByCourse[a.CourseID] = append(s.assessmentsByCourse[a.CourseID], a)
	}

	return s, nil
}

// FoldCode normalizes a course code for comparison: case-folded with all
// whitespace and punctuation removed, so "CS 101", "cs-101" and "CS101" fold
// to the same key.
func FoldCode(code string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(code) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Stats returns entity counts for this snapshot
func (s *Snapshot) Stats() Stats {
	sessions := 0
	for _, list := range s.sessionsByCourse {
		sessions += len(list)
	}
	assessments := 0
	for _, list := range s.assessmentsByCourse {
		assessments += len(list)
	}
	return Stats{
		Programs:    len(s.programs),
		Terms:       len(s.terms),
		Courses:     len(s.courses),
		Sessions:    sessions,
		Assessments: assessments,
		Instructors: len(s.instructors),
		LoadedAt:    s.loadedAt,
	}
}

// ProgramByID looks up a program by identifier
func (s *Snapshot) ProgramByID(id string) (*models.Program, bool) {
	p, ok := s.programByID[id]
	return p, ok
}

// TermByID looks up a term by identifier
func (s *Snapshot) TermByID(id string) (*models.Term, bool) {
	t, ok := s.termByID[id]
	return t, ok
}

// CourseByID looks up a course by identifier
func (s *Snapshot) CourseByID(id string) (*models.Course, bool) {
	c, ok := s.courseByID[id]
	return c, ok
}

// InstructorByID looks up an instructor by identifier
func (s *Snapshot) InstructorByID(id string) (*models.Instructor, bool) {
	ins, ok := s.instructorByID[id]
	return ins, ok
}

// Programs returns all programs in load order
func (s *Snapshot) Programs() []*models.Program { return s.programs }

// Terms returns all terms in load order
func (s *Snapshot) Terms() []*models.Term { return s.terms }

// Courses returns all courses in load order
func (s *Snapshot) Courses() []*models.Course { return s.courses }

// Instructors returns all instructors in load order
func (s *Snapshot) Instructors() []*models.Instructor { return s.instructors }

// TermsOf returns the terms owned by a program, empty if none
func (s *Snapshot) TermsOf(programID string) []*models.Term {
	return s.termsByProgram[programID]
}

// CoursesInTerm returns the courses offered in a term, empty if none
func (s *Snapshot) CoursesInTerm(termID string) []*models.Course {
	return s.coursesByTerm[termID]
}

// SessionsOf returns a course's sessions ordered by session number, empty if
// none
func (s *Snapshot) SessionsOf(courseID string) []*models.Session {
	return s.sessionsByCourse[courseID]
}

// AssessmentsOf returns a course's assessments in snapshot order, empty if
// none
func (s *Snapshot) AssessmentsOf(courseID string) []*models.Assessment {
	return s.assessmentsByCourse[courseID]
}

// InstructorsOf returns the instructors referenced by a course, empty if none
func (s *Snapshot) InstructorsOf(courseID string) []*models.Instructor {
	c, ok := s.courseByID[courseID]
	if !ok {
		return nil
	}
	out := make([]*models.Instructor, 0, len(c.InstructorIDs))
	for _, id := range c.InstructorIDs {
		if ins, ok := s.instructorByID[id]; ok {
			out = append(out, ins)
		}
	}
	return out
}

// CoursesOf returns the courses that reference an instructor, empty if none
func (s *Snapshot) CoursesOf(instructorID string) []*models.Course {
	return s.coursesByInstructor[instructorID]
}

// TermOf returns the term a course belongs to
func (s *Snapshot) TermOf(course *models.Course) (*models.Term, bool) {
	t, ok := s.termByID[course.TermID]
	return t, ok
}

// ProgramOf returns the program a term belongs to
func (s *Snapshot) ProgramOf(term *models.Term) (*models.Program, bool) {
	p, ok := s.programByID[term.ProgramID]
	return p, ok
}

// AssessmentWeightTotal sums the known assessment weights of a course. The
// second return reports whether every assessment carried a weight; a partial
// sum is still returned so answers can flag the gap.
func (s *Snapshot) AssessmentWeightTotal(courseID string) (float64, bool) {
	total := 0.0
	complete := true
	for _, a := range s.assessmentsByCourse[courseID] {
		if a.Weight == nil {
			complete = false
			continue
		}
		total += *a.Weight
	}
	return total, complete
}
