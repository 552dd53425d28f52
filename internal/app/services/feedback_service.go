package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/emrekara/course-feedback/internal/app/models"
	"github.com/emrekara/course-feedback/internal/pkg/apperrors"
)

// Answer rating bounds.
const (
	RatingMin = 1
	RatingMax = 5
)

// FeedbackService handles feedback submission and queries
type FeedbackService struct {
	feedbacks FeedbackStore
	students  StudentStore
}

// NewFeedbackService creates a new feedback service instance
func NewFeedbackService(feedbacks FeedbackStore, students StudentStore) *FeedbackService {
	return &FeedbackService{
		feedbacks: feedbacks,
		students:  students,
	}
}

// validateSubmission validates feedback data before database operations
func (s *FeedbackService) validateSubmission(feedback *models.Feedback) error {
	if feedback == nil {
		return fmt.Errorf("%w: feedback is nil", apperrors.ErrValidationFailed)
	}

	if !models.IsValidCheckpoint(feedback.CompletionPercentage) {
		return fmt.Errorf("%w: must be one of %v",
			apperrors.ErrInvalidCompletionPercentage, models.FeedbackCheckpoints)
	}

	if len(feedback.Answers) == 0 {
		return fmt.Errorf("%w: at least one answer is required", apperrors.ErrValidationFailed)
	}

	for i, answer := range feedback.Answers {
		if strings.TrimSpace(answer.Question) == "" {
			return fmt.Errorf("%w: answer %d has no question text", apperrors.ErrValidationFailed, i)
		}
		if answer.Rating < RatingMin || answer.Rating > RatingMax {
			return fmt.Errorf("%w: answer %d rating must be between %d and %d",
				apperrors.ErrValidationFailed, i, RatingMin, RatingMax)
		}
	}

	return nil
}

// Submit validates and stores a feedback submission. At most one feedback
// exists per (student, checkpoint); a second submission for the same pair
// fails with ErrFeedbackAlreadySubmitted. Submitting the 100% feedback sets
// the student's feedbackGiven flag.
func (s *FeedbackService) Submit(ctx context.Context, feedback *models.Feedback) error {
	if err := s.validateSubmission(feedback); err != nil {
		return err
	}

	// Student must resolve before anything is written.
	if _, err := s.students.GetByID(ctx, feedback.StudentID); err != nil {
		return err
	}

	// The store's unique constraint is the duplicate gate, so two racing
	// submissions for the same checkpoint cannot both land.
	return s.feedbacks.Create(ctx, feedback)
}

// GetByStudent retrieves all feedbacks of a student, checkpoint ascending.
func (s *FeedbackService) GetByStudent(ctx context.Context, studentID int64) ([]*models.Feedback, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	feedbacks, err := s.feedbacks.GetByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving feedbacks: %w", err)
	}

	if feedbacks == nil {
		feedbacks = []*models.Feedback{}
	}

	return feedbacks, nil
}

// GetByCheckpoint retrieves the feedback a student submitted at one
// checkpoint.
func (s *FeedbackService) GetByCheckpoint(ctx context.Context, studentID int64, checkpoint int) (*models.Feedback, error) {
	if !models.IsValidCheckpoint(checkpoint) {
		return nil, fmt.Errorf("%w: must be one of %v",
			apperrors.ErrInvalidCompletionPercentage, models.FeedbackCheckpoints)
	}

	return s.feedbacks.GetByStudentAndCheckpoint(ctx, studentID, checkpoint)
}
