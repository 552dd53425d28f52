// Package services holds the business logic between the HTTP controllers and
// the repositories.
//
// Services defined in this package:
// - StudentService: registration, queries, progress state machine
// - FeedbackService: feedback submission validation and queries
// - AuthService: credential issuance and verification
// - QuestionService: read-only feedback question catalog
package services

import (
	"context"

	"github.com/emrekara/course-feedback/internal/app/models"
)

// StudentStore is the persistence interface StudentService and AuthService
// consume. *repositories.StudentRepository implements it.
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByEmailAndRoll(ctx context.Context, email, rollNumber string) (*models.Student, error)
	GetByRollNumber(ctx context.Context, rollNumber string) (*models.Student, error)
	GetAll(ctx context.Context) ([]*models.Student, error)
	UpdateProgress(ctx context.Context, id int64, completionPercentage int) (bool, error)
}

// FeedbackStore is the persistence interface FeedbackService consumes.
// *repositories.FeedbackRepository implements it.
type FeedbackStore interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	GetByStudent(ctx context.Context, studentID int64) ([]*models.Feedback, error)
	GetByStudentAndCheckpoint(ctx context.Context, studentID int64, checkpoint int) (*models.Feedback, error)
}

// QuestionStore is the persistence interface QuestionService consumes.
// *repositories.QuestionRepository implements it.
type QuestionStore interface {
	GetAll(ctx context.Context) ([]*models.Question, error)
	GetByCheckpoint(ctx context.Context, checkpoint int) ([]*models.Question, error)
}
