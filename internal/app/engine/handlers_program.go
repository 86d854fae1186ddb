package engine

import (
	"fmt"
	"strings"

	"github.com/syllabot/syllabot/internal/app/models"
)

// handleListCoursesInTerm answers "which courses run in {term}?", optionally
// narrowed by a program parameter when the term label alone is ambiguous
// across programs.
func handleListCoursesInTerm(hc *handlerContext) (*Answer, error) {
	label := hc.param(ParamTerm)
	result := hc.resolver.ResolveTerm(hc.snap, label)

	matches := result.Matches
	if len(matches) > 1 {
		if programName := hc.param(ParamProgram); programName != "" {
			if program, ok := hc.resolver.ResolveProgram(hc.snap, programName).Unique(); ok {
				var narrowed []*models.Term
				for _, t := range matches {
					if t.ProgramID == program.ID {
						narrowed = append(narrowed, t)
					}
				}
				matches = narrowed
			}
		}
	}

	if len(matches) == 0 {
		return nil, notFound(fmt.Sprintf("I couldn't find term '%s'.", label))
	}
	if len(matches) > 1 {
		labels := make([]string, 0, len(matches))
		for i, t := range matches {
			if i == maxCandidatesShown {
				break
			}
			entry := t.Label
			if program, ok := hc.snap.ProgramOf(t); ok {
				entry = fmt.Sprintf("%s (%s)", t.Label, program.Name)
			}
			labels = append(labels, entry)
		}
		return nil, ambiguous(fmt.Sprintf("I found more than one term matching '%s': %s. Which one did you mean?",
			label, strings.Join(labels, ", ")))
	}

	term := matches[0]
	courses := hc.snap.CoursesInTerm(term.ID)
	if len(courses) == 0 {
		return nil, notFound(fmt.Sprintf("No courses listed for %s.", term.Label))
	}

	items := make([]string, 0, len(courses))
	for _, c := range courses {
		items = append(items, c.Display())
	}

	header := fmt.Sprintf("Courses offered in %s:", term.Label)
	if program, ok := hc.snap.ProgramOf(term); ok {
		header = fmt.Sprintf("Courses offered in %s (%s):", term.Label, program.Name)
	}
	return listAnswer(header, items), nil
}

// handleListInstructorsInProgram answers "which instructors are associated
// with {program}?" Instructors are deduplicated but keep first-seen order so
// repeated questions produce identical answers.
func handleListInstructorsInProgram(hc *handlerContext) (*Answer, error) {
	name := hc.param(ParamProgram)
	result := hc.resolver.ResolveProgram(hc.snap, name)

	program, ok := result.Unique()
	if !ok {
		if result.Empty() {
			return nil, notFound(fmt.Sprintf("I couldn't find program '%s'.", name))
		}
		names := make([]string, 0, len(result.Matches))
		for i, p := range result.Matches {
			if i == maxCandidatesShown {
				break
			}
			names = append(names, p.Name)
		}
		return nil, ambiguous(fmt.Sprintf("I found more than one program matching '%s': %s. Which one did you mean?",
			name, strings.Join(names, ", ")))
	}

	seen := make(map[string]bool)
	var items []string
	for _, term := range hc.snap.TermsOf(program.ID) {
		for _, course := range hc.snap.CoursesInTerm(term.ID) {
			for _, ins := range hc.snap.InstructorsOf(course.ID) {
				if seen[ins.ID] {
					continue
				}
				seen[ins.ID] = true
				items = append(items, ins.Name)
			}
		}
	}

	if len(items) == 0 {
		return nil, notFound(fmt.Sprintf("No instructors listed for the %s program.", program.Name))
	}
	return listAnswer(fmt.Sprintf("Instructors in the %s program:", program.Name), items), nil
}
