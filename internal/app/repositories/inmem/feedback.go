package inmem

import (
	"context"
	"sort"
	"time"

	"github.com/emrekara/course-feedback/internal/app/models"
	"github.com/emrekara/course-feedback/internal/pkg/apperrors"
)

// FeedbackStore implements services.FeedbackStore in memory.
type FeedbackStore struct {
	db *DB
}

// Create inserts a feedback and applies the same side effects as the
// transactional Postgres path: the duplicate gate on (student, checkpoint)
// and the feedback_given flag at the 100% checkpoint.
func (s *FeedbackStore) Create(_ context.Context, feedback *models.Feedback) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, existing := range s.db.feedbacks {
		if existing.StudentID == feedback.StudentID && existing.CompletionPercentage == feedback.CompletionPercentage {
			return apperrors.ErrFeedbackAlreadySubmitted
		}
	}

	s.db.feedbackSeq++
	feedback.ID = s.db.feedbackSeq
	feedback.SubmittedAt = time.Now()
	for i := range feedback.Answers {
		feedback.Answers[i].FeedbackID = feedback.ID
		feedback.Answers[i].Position = i
	}

	stored := *feedback
	stored.Answers = append([]models.FeedbackAnswer(nil), feedback.Answers...)
	s.db.feedbacks[feedback.ID] = &stored

	if feedback.CompletionPercentage == models.CheckpointHundred {
		if student, ok := s.db.students[feedback.StudentID]; ok {
			student.FeedbackGiven = true
			student.UpdatedAt = time.Now()
		}
	}

	return nil
}

// GetByStudent retrieves a student's feedbacks, checkpoint ascending.
func (s *FeedbackStore) GetByStudent(_ context.Context, studentID int64) ([]*models.Feedback, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var feedbacks []*models.Feedback
	for _, stored := range s.db.feedbacks {
		if stored.StudentID == studentID {
			feedbacks = append(feedbacks, copyFeedback(stored))
		}
	}

	sort.Slice(feedbacks, func(i, j int) bool {
		return feedbacks[i].CompletionPercentage < feedbacks[j].CompletionPercentage
	})

	return feedbacks, nil
}

// GetByStudentAndCheckpoint retrieves one (student, checkpoint) feedback.
func (s *FeedbackStore) GetByStudentAndCheckpoint(_ context.Context, studentID int64, checkpoint int) (*models.Feedback, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, stored := range s.db.feedbacks {
		if stored.StudentID == studentID && stored.CompletionPercentage == checkpoint {
			return copyFeedback(stored), nil
		}
	}

	return nil, apperrors.ErrFeedbackNotFound
}

func copyFeedback(stored *models.Feedback) *models.Feedback {
	feedback := *stored
	feedback.Answers = append([]models.FeedbackAnswer(nil), stored.Answers...)
	return &feedback
}
