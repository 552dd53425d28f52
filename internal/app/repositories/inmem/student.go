package inmem

import (
	"context"
	"sort"
	"time"

	"github.com/emrekara/course-feedback/internal/app/models"
	"github.com/emrekara/course-feedback/internal/pkg/apperrors"
)

// StudentStore implements services.StudentStore in memory.
type StudentStore struct {
	db *DB
}

// Create inserts a student, enforcing email and roll number uniqueness the
// way the database constraints do.
func (s *StudentStore) Create(_ context.Context, student *models.Student) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, existing := range s.db.students {
		if existing.Email == student.Email {
			return apperrors.ErrEmailAlreadyExists
		}
		if existing.RollNumber == student.RollNumber {
			return apperrors.ErrRollNumberAlreadyExists
		}
	}

	s.db.studentSeq++
	student.ID = s.db.studentSeq
	now := time.Now()
	student.CreatedAt = now
	student.UpdatedAt = now

	stored := *student
	s.db.students[student.ID] = &stored
	return nil
}

// GetByID retrieves a student copy with its feedback ids attached.
func (s *StudentStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	stored, ok := s.db.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}

	student := *stored
	student.FeedbackIDs = s.feedbackIDsLocked(id)
	return &student, nil
}

// GetByEmailAndRoll retrieves the student matching both fields.
func (s *StudentStore) GetByEmailAndRoll(_ context.Context, email, rollNumber string) (*models.Student, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, stored := range s.db.students {
		if stored.Email == email && stored.RollNumber == rollNumber {
			student := *stored
			return &student, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

// GetByRollNumber retrieves a student by roll number.
func (s *StudentStore) GetByRollNumber(_ context.Context, rollNumber string) (*models.Student, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, stored := range s.db.students {
		if stored.RollNumber == rollNumber {
			student := *stored
			return &student, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

// GetAll retrieves all students, newest registrations first.
func (s *StudentStore) GetAll(_ context.Context) ([]*models.Student, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	students := make([]*models.Student, 0, len(s.db.students))
	for _, stored := range s.db.students {
		student := *stored
		students = append(students, &student)
	}

	sort.Slice(students, func(i, j int) bool {
		if students[i].CreatedAt.Equal(students[j].CreatedAt) {
			return students[i].ID > students[j].ID
		}
		return students[i].CreatedAt.After(students[j].CreatedAt)
	})

	return students, nil
}

// UpdateProgress applies the requested value only when strictly greater than
// the stored one, clearing feedbackGiven on any accepted transition.
func (s *StudentStore) UpdateProgress(_ context.Context, id int64, completionPercentage int) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	stored, ok := s.db.students[id]
	if !ok {
		return false, apperrors.ErrStudentNotFound
	}

	if completionPercentage <= stored.CompletionPercentage {
		return false, nil
	}

	stored.CompletionPercentage = completionPercentage
	stored.FeedbackGiven = false
	stored.UpdatedAt = time.Now()
	return true, nil
}

// feedbackIDsLocked collects a student's feedback ids, checkpoint ascending.
// Caller must hold at least a read lock.
func (s *StudentStore) feedbackIDsLocked(studentID int64) []int64 {
	type entry struct {
		id         int64
		checkpoint int
	}
	var entries []entry
	for _, f := range s.db.feedbacks {
		if f.StudentID == studentID {
			entries = append(entries, entry{id: f.ID, checkpoint: f.CompletionPercentage})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].checkpoint < entries[j].checkpoint })

	ids := make([]int64, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.id)
	}
	if len(ids) == 0 {
		return nil
	}
	return ids
}
