package engine

// Action names form a fixed enumerated catalog; the conversational front end
// maps user intents onto these identifiers.
const (
	ActionGetInstructor            = "GetInstructor"
	ActionGetContactInfo           = "GetContactInfo"
	ActionGetInstructorOffice      = "GetInstructorOffice"
	ActionGetCoursesByInstructor   = "GetCoursesByInstructor"
	ActionGetCourseOverview        = "GetCourseOverview"
	ActionGetCourseCredits         = "GetCourseCredits"
	ActionGetPrerequisites         = "GetPrerequisites"
	ActionGetLearningOutcomes      = "GetLearningOutcomes"
	ActionGetAssessmentWeight      = "GetAssessmentWeight"
	ActionGetHighestAssessment     = "GetHighestAssessment"
	ActionListAssessments          = "ListAssessments"
	ActionGetSessionDetail         = "GetSessionDetail"
	ActionGetTotalSessions         = "GetTotalSessions"
	ActionListSessions             = "ListSessions"
	ActionGetReadingMaterials      = "GetReadingMaterials"
	ActionGetProgramForCourse      = "GetProgramForCourse"
	ActionListCoursesInTerm        = "ListCoursesInTerm"
	ActionListInstructorsInProgram = "ListInstructorsInProgram"

	// ActionNextPage continues a paginated list answer; it is handled by the
	// pagination manager, not a graph handler.
	ActionNextPage = "NextPage"
)

// Parameter names shared between the front end's entity extraction and the
// handlers.
const (
	ParamCourseCode     = "courseCode"
	ParamTerm           = "term"
	ParamInstructorName = "instructorName"
	ParamSessionNumber  = "sessionNumber"
	ParamAssessmentName = "assessmentName"
	ParamProgram        = "program"
)

// catalog declares every action with its required parameters. Optional
// parameters (a term hint on course lookups, an assessment name on
// GetAssessmentWeight) are read by the handlers when present.
func catalog() []action {
	return []action{
		{ActionGetInstructor, []string{ParamCourseCode}, handleGetInstructor},
		{ActionGetContactInfo, []string{ParamCourseCode}, handleGetContactInfo},
		{ActionGetInstructorOffice, []string{ParamCourseCode}, handleGetInstructorOffice},
		{ActionGetCoursesByInstructor, []string{ParamInstructorName}, handleGetCoursesByInstructor},
		{ActionGetCourseOverview, []string{ParamCourseCode}, handleGetCourseOverview},
		{ActionGetCourseCredits, []string{ParamCourseCode}, handleGetCourseCredits},
		{ActionGetPrerequisites, []string{ParamCourseCode}, handleGetPrerequisites},
		{ActionGetLearningOutcomes, []string{ParamCourseCode}, handleGetLearningOutcomes},
		{ActionGetAssessmentWeight, []string{ParamCourseCode}, handleGetAssessmentWeight},
		{ActionGetHighestAssessment, []string{ParamCourseCode}, handleGetHighestAssessment},
		{ActionListAssessments, []string{ParamCourseCode}, handleListAssessments},
		{ActionGetSessionDetail, []string{ParamCourseCode, ParamSessionNumber}, handleGetSessionDetail},
		{ActionGetTotalSessions, []string{ParamCourseCode}, handleGetTotalSessions},
		{ActionListSessions, []string{ParamCourseCode}, handleListSessions},
		{ActionGetReadingMaterials, []string{ParamCourseCode}, handleGetReadingMaterials},
		{ActionGetProgramForCourse, []string{ParamCourseCode}, handleGetProgramForCourse},
		{ActionListCoursesInTerm, []string{ParamTerm}, handleListCoursesInTerm},
		{ActionListInstructorsInProgram, []string{ParamProgram}, handleListInstructorsInProgram},
	}
}
