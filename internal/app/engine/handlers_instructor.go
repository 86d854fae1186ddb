package engine

import (
	"fmt"
	"strings"
)

// handleGetInstructor answers "who teaches {course}?" including contact
// email so the caller has a usable point of contact in one turn.
func handleGetInstructor(hc *handlerContext) (*Answer, error) {
	course, err := hc.course()
	if err != nil {
		return nil, err
	}

	instructors := hc.snap.InstructorsOf(course.ID)
	if len(instructors) == 0 {
		return nil, notFound(fmt.Sprintf("No instructor listed for %s.", course.Display()))
	}

	parts := make([]string, 0, len(instructors))
	for _, ins := range instructors {
		email := "email not available"
		if ins.Email != nil && *ins.Email != "" {
			email = *ins.Email
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", ins.Name, email))
	}

	verb := "teaches"
	if len(instructors) > 1 {
		verb = "teach"
	}
	return textAnswer("%s %s %s.", strings.Join(parts, " and "), verb, course.Display()), nil
}

// handleGetContactInfo answers "contact details for the instructor of
// {course}?" with one line per instructor; missing fields are reported as
// not available, never dropped.
func handleGetContactInfo(hc *handlerContext) (*Answer, error) {
	course, err := hc.course()
	if err != nil {
		return nil, err
	}

	instructors := hc.snap.InstructorsOf(course.ID)
	if len(instructors) == 0 {
		return nil, notFound(fmt.Sprintf("No instructor listed for %s.", course.Display()))
	}

	items := make([]string, 0, len(instructors))
	for _, ins := range instructors {
		items = append(items, fmt.Sprintf("%s - email: %s, office: %s, office hours: %s",
			ins.Name,
			orUnavailable(ins.Email),
			orUnavailable(ins.Office),
			orUnavailable(ins.OfficeHours)))
	}

	if len(items) == 1 {
		return textAnswer("Contact for %s: %s", course.Code, items[0]), nil
	}
	return listAnswer(fmt.Sprintf("Contacts for %s:", course.Display()), items), nil
}

// handleGetInstructorOffice answers "where is the office of the instructor
// for {course}?"
func handleGetInstructorOffice(hc *handlerContext) (*Answer, error) {
	course, err := hc.course()
	if err != nil {
		return nil, err
	}

	instructors := hc.snap.InstructorsOf(course.ID)
	if len(instructors) == 0 {
		return nil, notFound(fmt.Sprintf("No instructor listed for %s.", course.Display()))
	}

	items := make([]string, 0, len(instructors))
	for _, ins := range instructors {
		items = append(items, fmt.Sprintf("%s: %s", ins.Name, orUnavailable(ins.Office)))
	}

	if len(items) == 1 {
		ins := instructors[0]
		if ins.Office == nil || *ins.Office == "" {
			return textAnswer("The office location of %s is not available.", ins.Name), nil
		}
		return textAnswer("%s's office is %s.", ins.Name, *ins.Office), nil
	}
	return listAnswer(fmt.Sprintf("Office locations for %s:", course.Display()), items), nil
}

// handleGetCoursesByInstructor answers "what does {instructor} teach?"
func handleGetCoursesByInstructor(hc *handlerContext) (*Answer, error) {
	instructor, err := hc.instructor()
	if err != nil {
		return nil, err
	}

	courses := hc.snap.CoursesOf(instructor.ID)
	if len(courses) == 0 {
		return nil, notFound(fmt.Sprintf("No courses listed for %s.", instructor.Name))
	}

	items := make([]string, 0, len(courses))
	for _, c := range courses {
		line := c.Display()
		if term, ok := hc.snap.TermOf(c); ok {
			line = fmt.Sprintf("%s (%s)", line, term.Label)
		}
		items = append(items, line)
	}
	return listAnswer(fmt.Sprintf("Courses taught by %s:", instructor.Name), items), nil
}
