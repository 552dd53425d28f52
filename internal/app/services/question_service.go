package services

import (
	"context"
	"fmt"

	"github.com/emrekara/course-feedback/internal/app/models"
	"github.com/emrekara/course-feedback/internal/pkg/apperrors"
)

// QuestionService exposes the read-only feedback question catalog.
type QuestionService struct {
	questions QuestionStore
}

// NewQuestionService creates a new question service instance
func NewQuestionService(questions QuestionStore) *QuestionService {
	return &QuestionService{
		questions: questions,
	}
}

// GetAll retrieves the full catalog.
func (s *QuestionService) GetAll(ctx context.Context) ([]*models.Question, error) {
	questions, err := s.questions.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving questions: %w", err)
	}

	if questions == nil {
		questions = []*models.Question{}
	}

	return questions, nil
}

// GetByCheckpoint retrieves the catalog entries for one checkpoint.
func (s *QuestionService) GetByCheckpoint(ctx context.Context, checkpoint int) ([]*models.Question, error) {
	if !models.IsValidCheckpoint(checkpoint) {
		return nil, fmt.Errorf("%w: must be one of %v",
			apperrors.ErrInvalidCompletionPercentage, models.FeedbackCheckpoints)
	}

	questions, err := s.questions.GetByCheckpoint(ctx, checkpoint)
	if err != nil {
		return nil, fmt.Errorf("error retrieving questions: %w", err)
	}

	if questions == nil {
		questions = []*models.Question{}
	}

	return questions, nil
}
