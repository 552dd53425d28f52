package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/emrekara/course-feedback/internal/app/models"
	"github.com/emrekara/course-feedback/internal/pkg/apperrors"
	"github.com/emrekara/course-feedback/internal/pkg/validation"
)

// StudentService handles student-related operations
type StudentService struct {
	students StudentStore
}

// NewStudentService creates a new student service instance
func NewStudentService(students StudentStore) *StudentService {
	return &StudentService{
		students: students,
	}
}

// validateStudent validates registration data before database operations
func (s *StudentService) validateStudent(student *models.Student) error {
	if student == nil {
		return fmt.Errorf("%w: student is nil", apperrors.ErrValidationFailed)
	}

	if !validation.IsValidName(student.Name) {
		return fmt.Errorf("%w: name must be between %d and %d characters",
			apperrors.ErrValidationFailed, validation.NameMinLength, validation.NameMaxLength)
	}

	if !validation.IsValidEmail(student.Email) {
		return fmt.Errorf("%w: invalid email format", apperrors.ErrValidationFailed)
	}

	if !validation.IsValidRollNumber(student.RollNumber) {
		return fmt.Errorf("%w: roll number must be 4-20 uppercase letters or digits", apperrors.ErrValidationFailed)
	}

	if strings.TrimSpace(student.CollegeName) == "" {
		return fmt.Errorf("%w: college name cannot be empty", apperrors.ErrValidationFailed)
	}

	if !validation.IsValidContactNo(student.ContactNo) {
		return fmt.Errorf("%w: invalid contact number", apperrors.ErrValidationFailed)
	}

	if strings.TrimSpace(student.Course) == "" {
		return fmt.Errorf("%w: course cannot be empty", apperrors.ErrValidationFailed)
	}

	if student.Semester < 1 {
		return fmt.Errorf("%w: semester must be positive", apperrors.ErrValidationFailed)
	}

	return nil
}

// Register creates a new student at checkpoint 0 with no feedback given.
// Duplicate email or roll number propagates as the matching conflict error.
func (s *StudentService) Register(ctx context.Context, student *models.Student) error {
	student.Email = strings.ToLower(strings.TrimSpace(student.Email))
	student.RollNumber = strings.ToUpper(strings.TrimSpace(student.RollNumber))

	if err := s.validateStudent(student); err != nil {
		return err
	}

	// Registration always starts the state machine at zero.
	student.CompletionPercentage = models.ProgressStart
	student.FeedbackGiven = false
	student.FeedbackIDs = nil

	return s.students.Create(ctx, student)
}

// GetByID retrieves a student by ID
func (s *StudentService) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid student ID", apperrors.ErrValidationFailed)
	}

	return s.students.GetByID(ctx, id)
}

// GetAll retrieves all students, newest registrations first.
func (s *StudentService) GetAll(ctx context.Context) ([]*models.Student, error) {
	students, err := s.students.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving students: %w", err)
	}

	if students == nil {
		students = []*models.Student{}
	}

	return students, nil
}

// UpdateProgress runs the progress state machine for one student: the
// requested value applies only when it is strictly greater than the stored
// one, and any accepted transition clears feedbackGiven. A lower-or-equal
// request is a silent no-op, not an error; either way the current record is
// returned.
func (s *StudentService) UpdateProgress(ctx context.Context, id int64, completionPercentage int) (*models.Student, error) {
	if !models.IsValidProgress(completionPercentage) {
		return nil, fmt.Errorf("%w: must be one of %v",
			apperrors.ErrInvalidCompletionPercentage, models.ProgressValues)
	}

	if _, err := s.students.UpdateProgress(ctx, id, completionPercentage); err != nil {
		return nil, err
	}

	return s.students.GetByID(ctx, id)
}
