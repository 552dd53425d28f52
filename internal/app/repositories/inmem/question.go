package inmem

import (
	"context"
	"sort"

	"github.com/emrekara/course-feedback/internal/app/models"
)

// QuestionStore implements services.QuestionStore in memory.
type QuestionStore struct {
	db *DB
}

// Create inserts a catalog entry; an existing (checkpoint, position) pair is
// kept untouched, matching the idempotent seed behavior.
func (s *QuestionStore) Create(_ context.Context, question *models.Question) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, existing := range s.db.questions {
		if existing.Checkpoint == question.Checkpoint && existing.Position == question.Position {
			question.ID = existing.ID
			return nil
		}
	}

	s.db.questionSeq++
	question.ID = s.db.questionSeq
	stored := *question
	s.db.questions[question.ID] = &stored
	return nil
}

// GetAll retrieves the catalog, checkpoint then position order.
func (s *QuestionStore) GetAll(_ context.Context) ([]*models.Question, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	questions := make([]*models.Question, 0, len(s.db.questions))
	for _, stored := range s.db.questions {
		q := *stored
		questions = append(questions, &q)
	}

	sortQuestions(questions)
	return questions, nil
}

// GetByCheckpoint retrieves the catalog entries for one checkpoint.
func (s *QuestionStore) GetByCheckpoint(_ context.Context, checkpoint int) ([]*models.Question, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	var questions []*models.Question
	for _, stored := range s.db.questions {
		if stored.Checkpoint == checkpoint {
			q := *stored
			questions = append(questions, &q)
		}
	}

	sortQuestions(questions)
	return questions, nil
}

func sortQuestions(questions []*models.Question) {
	sort.Slice(questions, func(i, j int) bool {
		if questions[i].Checkpoint == questions[j].Checkpoint {
			return questions[i].Position < questions[j].Position
		}
		return questions[i].Checkpoint < questions[j].Checkpoint
	})
}
