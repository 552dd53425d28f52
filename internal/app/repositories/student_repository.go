package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emrekara/course-feedback/internal/app/models"
	"github.com/emrekara/course-feedback/internal/pkg/apperrors"
	"github.com/emrekara/course-feedback/internal/pkg/dberrors"
	"github.com/emrekara/course-feedback/internal/pkg/logger"
)

// Unique constraint names from migrations/001_init.sql.
const (
	studentEmailConstraint = "students_email_key"
	studentRollConstraint  = "students_roll_number_key"
)

const studentColumns = "id, name, email, roll_number, college_name, contact_no, course, semester, completion_percentage, feedback_given, created_at, updated_at"

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
	// Use squirrel instance with placeholder format
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new student with initial progress 0 and no feedback.
// Duplicate email or roll number surfaces as the matching conflict error.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	sql, args, err := r.sb.Insert("students").
		Columns("name", "email", "roll_number", "college_name", "contact_no", "course", "semester", "completion_percentage", "feedback_given").
		Values(student.Name, student.Email, student.RollNumber, student.CollegeName, student.ContactNo, student.Course, student.Semester, student.CompletionPercentage, student.FeedbackGiven).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create student SQL")
		return fmt.Errorf("failed to build create student query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, studentEmailConstraint):
			return apperrors.ErrEmailAlreadyExists
		case dberrors.IsDuplicateConstraintError(err, studentRollConstraint):
			return apperrors.ErrRollNumberAlreadyExists
		case dberrors.IsDuplicateKeyError(err):
			return apperrors.ErrConflict
		}
		logger.Error().Err(err).Msg("Error executing create student query")
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByID retrieves a student by ID, including the ids of its feedbacks.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns).
		From("students").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	student, err := r.scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, err
	}

	if student.FeedbackIDs, err = r.feedbackIDs(ctx, id); err != nil {
		return nil, err
	}

	return student, nil
}

// GetByEmailAndRoll retrieves the student matching both email and roll number.
func (r *StudentRepository) GetByEmailAndRoll(ctx context.Context, email, rollNumber string) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns).
		From("students").
		Where(squirrel.Eq{"email": email, "roll_number": rollNumber}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	return r.scanStudent(r.db.QueryRow(ctx, sql, args...))
}

// GetByRollNumber retrieves a student by roll number.
func (r *StudentRepository) GetByRollNumber(ctx context.Context, rollNumber string) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns).
		From("students").
		Where(squirrel.Eq{"roll_number": rollNumber}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	return r.scanStudent(r.db.QueryRow(ctx, sql, args...))
}

// GetAll retrieves all students, newest registrations first.
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns).
		From("students").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var s models.Student
		if err := rows.Scan(
			&s.ID, &s.Name, &s.Email, &s.RollNumber, &s.CollegeName, &s.ContactNo,
			&s.Course, &s.Semester, &s.CompletionPercentage, &s.FeedbackGiven,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		students = append(students, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// UpdateProgress applies the requested completion percentage only when it is
// strictly greater than the stored value, resetting feedback_given in the
// same statement. Returns whether the transition was applied. The condition
// lives inside the UPDATE so monotonicity holds without a read-then-write
// sequence.
func (r *StudentRepository) UpdateProgress(ctx context.Context, id int64, completionPercentage int) (bool, error) {
	// Existence first, so a missing student is distinguishable from a no-op.
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM students WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student existence: %w", err)
	}
	if !exists {
		return false, apperrors.ErrStudentNotFound
	}

	cmdTag, err := r.db.Exec(ctx, `
		UPDATE students
		SET completion_percentage = $2, feedback_given = FALSE, updated_at = NOW()
		WHERE id = $1 AND completion_percentage < $2
	`, id, completionPercentage)
	if err != nil {
		return false, fmt.Errorf("error updating student progress: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

// scanStudent scans a single student row, translating no-rows to not-found.
func (r *StudentRepository) scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	err := row.Scan(
		&s.ID, &s.Name, &s.Email, &s.RollNumber, &s.CollegeName, &s.ContactNo,
		&s.Course, &s.Semester, &s.CompletionPercentage, &s.FeedbackGiven,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return &s, nil
}

// feedbackIDs loads the ids of a student's feedbacks, checkpoint ascending.
func (r *StudentRepository) feedbackIDs(ctx context.Context, studentID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id FROM feedbacks WHERE student_id = $1 ORDER BY completion_percentage ASC
	`, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student feedback ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
