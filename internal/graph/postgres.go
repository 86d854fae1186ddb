package graph

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/syllabot/syllabot/internal/app/models"
	"github.com/syllabot/syllabot/internal/pkg/apperrors"
)

// PostgresSource reads the persisted graph snapshot from the tables the
// external graph builder maintains. Each Fetch reads the whole graph; the
// result is validated by BuildSnapshot exactly like the file source's.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource creates a Postgres-backed snapshot source
func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

// Fetch loads all snapshot records from the database
func (s *PostgresSource) Fetch(ctx context.Context) (*SnapshotData, error) {
	data := &SnapshotData{}

	if err := s.fetchPrograms(ctx, data); err != nil {
		return nil, err
	}
	if err := s.fetchTerms(ctx, data); err != nil {
		return nil, err
	}
	if err := s.fetchInstructors(ctx, data); err != nil {
		return nil, err
	}
	if err := s.fetchCourses(ctx, data); err != nil {
		return nil, err
	}
	if err := s.fetchSessions(ctx, data); err != nil {
		return nil, err
	}
	if err := s.fetchAssessments(ctx, data); err != nil {
		return nil, err
	}

	return data, nil
}

func (s *PostgresSource) fetchPrograms(ctx context.Context, data *SnapshotData) error {
	rows, err := s.pool.Query(ctx, `SELECT id, name FROM programs ORDER BY id`)
	if err != nil {
		return loadErr("programs", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Program
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return loadErr("programs", err)
		}
		data.Programs = append(data.Programs, p)
	}
	return rowsErr("programs", rows.Err())
}

func (s *PostgresSource) fetchTerms(ctx context.Context, data *SnapshotData) error {
	rows, err := s.pool.Query(ctx, `SELECT id, program_id, label FROM terms ORDER BY id`)
	if err != nil {
		return loadErr("terms", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t models.Term
		if err := rows.Scan(&t.ID, &t.ProgramID, &t.Label); err != nil {
			return loadErr("terms", err)
		}
		data.Terms = append(data.Terms, t)
	}
	return rowsErr("terms", rows.Err())
}

func (s *PostgresSource) fetchInstructors(ctx context.Context, data *SnapshotData) error {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, email, office, office_hours FROM instructors ORDER BY id`)
	if err != nil {
		return loadErr("instructors", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ins models.Instructor
		if err := rows.Scan(&ins.ID, &ins.Name, &ins.Email, &ins.Office, &ins.OfficeHours); err != nil {
			return loadErr("instructors", err)
		}
		data.Instructors = append(data.Instructors, ins)
	}
	return rowsErr("instructors", rows.Err())
}

func (s *PostgresSource) fetchCourses(ctx context.Context, data *SnapshotData) error {
	rows, err := s.pool.Query(ctx,
		`SELECT id, term_id, code, title, description, credits, prerequisites, outcomes
		 FROM courses ORDER BY id`)
	if err != nil {
		return loadErr("courses", err)
	}
	defer rows.Close()

	index := make(map[string]int)
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.TermID, &c.Code, &c.Title,
			&c.Description, &c.Credits, &c.Prerequisites, &c.Outcomes); err != nil {
			return loadErr("courses", err)
		}
		index[c.ID] = len(data.Courses)
		data.Courses = append(data.Courses, c)
	}
	if err := rows.Err(); err != nil {
		return loadErr("courses", err)
	}

	// Instructor references live in a join table since the relationship is
	// N-N (reference, not ownership).
	refRows, err := s.pool.Query(ctx,
		`SELECT course_id, instructor_id FROM course_instructors ORDER BY course_id, instructor_id`)
	if err != nil {
		return loadErr("course_instructors", err)
	}
	defer refRows.Close()

	for refRows.Next() {
		var courseID, instructorID string
		if err := refRows.Scan(&courseID, &instructorID); err != nil {
			return loadErr("course_instructors", err)
		}
		i, ok := index[courseID]
		if !ok {
			return apperrors.NewSnapshotLoadError(
				fmt.Sprintf("course_instructors references unknown course %q", courseID))
		}
		data.Courses[i].InstructorIDs = append(data.Courses[i].InstructorIDs, instructorID)
	}
	return rowsErr("course_instructors", refRows.Err())
}

func (s *PostgresSource) fetchSessions(ctx context.Context, data *SnapshotData) error {
	rows, err := s.pool.Query(ctx,
		`SELECT id, course_id, number, topic, module, session_date, reading_material
		 FROM sessions ORDER BY course_id, number`)
	if err != nil {
		return loadErr("sessions", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sess models.Session
		if err := rows.Scan(&sess.ID, &sess.CourseID, &sess.Number, &sess.Topic,
			&sess.Module, &sess.Date, &sess.ReadingMaterial); err != nil {
			return loadErr("sessions", err)
		}
		data.Sessions = append(data.Sessions, sess)
	}
	return rowsErr("sessions", rows.Err())
}

func (s *PostgresSource) fetchAssessments(ctx context.Context, data *SnapshotData) error {
	rows, err := s.pool.Query(ctx,
		`SELECT id, course_id, name, weight, due_date, description
		 FROM assessments ORDER BY course_id, id`)
	if err != nil {
		return loadErr("assessments", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a models.Assessment
		if err := rows.Scan(&a.ID, &a.CourseID, &a.Name, &a.Weight, &a.DueDate, &a.Description); err != nil {
			return loadErr("assessments", err)
		}
		data.Assessments = append(data.Assessments, a)
	}
	return rowsErr("assessments", rows.Err())
}

func loadErr(table string, err error) error {
	return apperrors.NewSnapshotLoadError(fmt.Sprintf("failed to load %s: %v", table, err))
}

func rowsErr(table string, err error) error {
	if err == nil {
		return nil
	}
	return loadErr(table, err)
}
