package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/emrekara/course-feedback/internal/app/models"
	"github.com/emrekara/course-feedback/internal/pkg/apperrors"
	"github.com/emrekara/course-feedback/internal/pkg/auth"
)

// AuthService handles credential issuance and verification. Registration
// goes through the same StudentService path as the public registration
// endpoint, so there is exactly one creation contract.
type AuthService struct {
	studentService *StudentService
	students       StudentStore
	scheme         auth.CredentialScheme
	logger         zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(studentService *StudentService, students StudentStore, scheme auth.CredentialScheme, logger zerolog.Logger) *AuthService {
	return &AuthService{
		studentService: studentService,
		students:       students,
		scheme:         scheme,
		logger:         logger,
	}
}

// Register creates the student and issues a credential for it.
func (s *AuthService) Register(ctx context.Context, student *models.Student) (string, error) {
	if err := s.studentService.Register(ctx, student); err != nil {
		return "", err
	}

	credential, err := s.scheme.Issue(student.RollNumber)
	if err != nil {
		// The record exists at this point; the student can still log in.
		s.logger.Error().Err(err).Str("rollNumber", student.RollNumber).Msg("Failed to issue credential after registration")
		return "", err
	}

	return credential, nil
}

// Login matches the (email, rollNumber) pair against the store and issues a
// credential. A non-matching pair is indistinguishable from a missing
// student: both come back as invalid credentials.
func (s *AuthService) Login(ctx context.Context, email, rollNumber string) (*models.Student, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	rollNumber = strings.ToUpper(strings.TrimSpace(rollNumber))

	student, err := s.students.GetByEmailAndRoll(ctx, email, rollNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	credential, err := s.scheme.Issue(student.RollNumber)
	if err != nil {
		return nil, "", err
	}

	return student, credential, nil
}

// VerifyCredential checks a presented credential against the claimed roll
// number and resolves the matching student.
func (s *AuthService) VerifyCredential(ctx context.Context, rollNumber, credential string) (*models.Student, error) {
	if err := s.scheme.Verify(rollNumber, credential); err != nil {
		return nil, err
	}

	student, err := s.students.GetByRollNumber(ctx, rollNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	return student, nil
}

// CredentialExpiresIn returns the lifetime of issued credentials, 0 when
// they never expire.
func (s *AuthService) CredentialExpiresIn() time.Duration {
	return s.scheme.ExpiresIn()
}
