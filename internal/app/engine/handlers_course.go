package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// handleGetCourseOverview answers "what is {course}?"
func handleGetCourseOverview(hc *handlerContext) (*Answer, error) {
	course, err := hc.course()
	if err != nil {
		return nil, err
	}
	if course.Description == nil || *course.Description == "" {
		return textAnswer("The overview for %s is not available.", course.Display()), nil
	}
	return textAnswer("%s: %s", course.Display(), *course.Description), nil
}

// handleGetCourseCredits answers "how many credits is {course} worth?"
func handleGetCourseCredits(hc *handlerContext) (*Answer, error) {
	course, err := hc.course()
	if err != nil {
		return nil, err
	}
	if course.Credits == nil {
		return textAnswer("The credit value for %s is not available.", course.Display()), nil
	}
	return textAnswer("%s is worth %s credits.", course.Display(), formatWeight(*course.Credits)), nil
}

// handleGetPrerequisites answers "what are the prerequisites for {course}?"
func handleGetPrerequisites(hc *handlerContext) (*Answer, error) {
	course, err := hc.course()
	if err != nil {
		return nil, err
	}
	if course.Prerequisites == nil || *course.Prerequisites == "" {
		return textAnswer("The prerequisites for %s are not available.", course.Display()), nil
	}
	return textAnswer("Prerequisites for %s: %s", course.Display(), *course.Prerequisites), nil
}

// handleGetLearningOutcomes answers "what are the learning outcomes for
// {course}?"
func handleGetLearningOutcomes(hc *handlerContext) (*Answer, error) {
	course, err := hc.course()
	if err != nil {
		return nil, err
	}
	if course.Outcomes == nil || *course.Outcomes == "" {
		return textAnswer("The learning outcomes for %s are not available.", course.Display()), nil
	}
	return textAnswer("Learning outcomes for %s: %s", course.Display(), *course.Outcomes), nil
}

// handleGetAssessmentWeight answers weight questions. With an assessmentName
// parameter it reports that single component; otherwise it lists every
// component. Either way a weight-total violation is reported, never
// silently corrected.
func handleGetAssessmentWeight(hc *handlerContext) (*Answer, error) {
	course, err := hc.course()
	if err != nil {
		return nil, err
	}

	assessments := hc.snap.AssessmentsOf(course.ID)
	if len(assessments) == 0 {
		return nil, notFound(fmt.Sprintf("No assessments listed for %s.", course.Display()))
	}

	if name := hc.param(ParamAssessmentName); name != "" {
		needle := strings.ToLower(name)
		for _, a := range assessments {
			if strings.ToLower(a.Name) != needle {
				continue
			}
			if a.Weight == nil {
				answer := textAnswer("The weight of %s in %s is not available.", a.Name, course.Code)
				answer.Note = weightNote(hc.snap, course)
				return answer, nil
			}
			answer := textAnswer("%s counts for %s%% of %s.", a.Name, formatWeight(*a.Weight), course.Code)
			answer.Note = weightNote(hc.snap, course)
			return answer, nil
		}
		return nil, notFound(fmt.Sprintf("I couldn't find an assessment called '%s' in %s.", name, course.Code))
	}

	items := make([]string, 0, len(assessments))
	for _, a := range assessments {
		if a.Weight == nil {
			items = append(items, fmt.Sprintf("%s: weight not available", a.Name))
			continue
		}
		items = append(items, fmt.Sprintf("%s: %s%%", a.Name, formatWeight(*a.Weight)))
	}

	answer := listAnswer(fmt.Sprintf("Assessment weights for %s:", course.Display()), items)
	answer.Note = weightNote(hc.snap, course)
	return answer, nil
}

// handleGetHighestAssessment answers "which assessment has the highest
// weight in {course}?"
func handleGetHighestAssessment(hc *handlerContext) (*Answer, error) {
	course, err := hc.course()
	if err != nil {
		return nil, err
	}

	assessments := hc.snap.AssessmentsOf(course.ID)
	var highestName string
	var highestWeight float64
	found := false
	for _, a := range assessments {
		if a.Weight == nil {
			continue
		}
		if !found || *a.Weight > highestWeight {
			highestName = a.Name
			highestWeight = *a.Weight
			found = true
		}
	}
	if !found {
		return nil, notFound(fmt.Sprintf("No assessment weights available for %s.", course.Display()))
	}

	answer := textAnswer("The highest weighted assessment in %s is %s (%s%%).",
		course.Code, highestName, formatWeight(highestWeight))
	answer.Note = weightNote(hc.snap, course)
	return answer, nil
}

// handleListAssessments lists every assessment with its details
func handleListAssessments(hc *handlerContext) (*Answer, error) {
	course, err := hc.course()
	if err != nil {
		return nil, err
	}

	assessments := hc.snap.AssessmentsOf(course.ID)
	if len(assessments) == 0 {
		return nil, notFound(fmt.Sprintf("No assessments listed for %s.", course.Display()))
	}

	items := make([]string, 0, len(assessments))
	for _, a := range assessments {
		weight := "weight not available"
		if a.Weight != nil {
			weight = formatWeight(*a.Weight) + "%"
		}
		line := fmt.Sprintf("%s (%s)", a.Name, weight)
		if a.DueDate != nil && *a.DueDate != "" {
			line += ", due " + *a.DueDate
		}
		if a.Description != nil && *a.Description != "" {
			line += ": " + *a.Description
		}
		items = append(items, line)
	}

	answer := listAnswer(fmt.Sprintf("Assessments for %s:", course.Display()), items)
	answer.Note = weightNote(hc.snap, course)
	return answer, nil
}

// handleGetSessionDetail answers "session {n} info of {course}?". A session
// number beyond the plan is a not-found answer, never an index error.
func handleGetSessionDetail(hc *handlerContext) (*Answer, error) {
	course, err := hc.course()
	if err != nil {
		return nil, err
	}

	raw := hc.param(ParamSessionNumber)
	number, convErr := strconv.Atoi(raw)
	if convErr != nil || number < 1 {
		return nil, invalidParam(fmt.Sprintf("'%s' is not a valid session number.", raw))
	}

	sessions := hc.snap.SessionsOf(course.ID)
	for _, s := range sessions {
		if s.Number != number {
			continue
		}
		detail := fmt.Sprintf("Session %d of %s: %s", s.Number, course.Code, s.Topic)
		var extras []string
		if s.Module != nil && *s.Module != "" {
			extras = append(extras, "module: "+*s.Module)
		}
		if s.Date != nil && *s.Date != "" {
			extras = append(extras, "date: "+*s.Date)
		}
		extras = append(extras, "reading: "+orUnavailable(s.ReadingMaterial))
		return textAnswer("%s (%s)", detail, strings.Join(extras, "; ")), nil
	}

	if len(sessions) == 0 {
		return nil, notFound(fmt.Sprintf("No sessions listed for %s.", course.Display()))
	}
	return nil, notFound(fmt.Sprintf("%s has %d sessions; I couldn't find session %d.",
		course.Code, len(sessions), number))
}

// handleGetTotalSessions answers "how many sessions does {course} have?"
func handleGetTotalSessions(hc *handlerContext) (*Answer, error) {
	course, err := hc.course()
	if err != nil {
		return nil, err
	}

	sessions := hc.snap.SessionsOf(course.ID)
	if len(sessions) == 0 {
		return nil, notFound(fmt.Sprintf("No sessions listed for %s.", course.Display()))
	}
	if len(sessions) == 1 {
		return textAnswer("%s has 1 session.", course.Display()), nil
	}
	return textAnswer("%s has %d sessions.", course.Display(), len(sessions)), nil
}

// handleListSessions lists the full session plan in session order
func handleListSessions(hc *handlerContext) (*Answer, error) {
	course, err := hc.course()
	if err != nil {
		return nil, err
	}

	sessions := hc.snap.SessionsOf(course.ID)
	if len(sessions) == 0 {
		return nil, notFound(fmt.Sprintf("No sessions listed for %s.", course.Display()))
	}

	items := make([]string, 0, len(sessions))
	for _, s := range sessions {
		line := fmt.Sprintf("Session %d: %s", s.Number, s.Topic)
		if s.Module != nil && *s.Module != "" {
			line = fmt.Sprintf("Session %d: %s - %s", s.Number, *s.Module, s.Topic)
		}
		items = append(items, line)
	}
	return listAnswer(fmt.Sprintf("Sessions for %s:", course.Display()), items), nil
}

// handleGetReadingMaterials lists the readings across the session plan
func handleGetReadingMaterials(hc *handlerContext) (*Answer, error) {
	course, err := hc.course()
	if err != nil {
		return nil, err
	}

	var items []string
	for _, s := range hc.snap.SessionsOf(course.ID) {
		if s.ReadingMaterial == nil || *s.ReadingMaterial == "" {
			continue
		}
		items = append(items, fmt.Sprintf("Session %d: %s", s.Number, *s.ReadingMaterial))
	}
	if len(items) == 0 {
		return nil, notFound(fmt.Sprintf("No reading materials listed for %s.", course.Display()))
	}
	return listAnswer(fmt.Sprintf("Required readings for %s:", course.Display()), items), nil
}

// handleGetProgramForCourse answers "in which program is {course} taught?"
func handleGetProgramForCourse(hc *handlerContext) (*Answer, error) {
	course, err := hc.course()
	if err != nil {
		return nil, err
	}

	term, ok := hc.snap.TermOf(course)
	if !ok {
		return nil, notFound(fmt.Sprintf("The term for %s is not on record.", course.Display()))
	}
	program, ok := hc.snap.ProgramOf(term)
	if !ok {
		return nil, notFound(fmt.Sprintf("The program for %s is not on record.", course.Display()))
	}
	return textAnswer("%s is taught in the %s program (%s).", course.Display(), program.Name, term.Label), nil
}
