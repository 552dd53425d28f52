// Package inmem provides an in-memory implementation of the persistence
// interfaces consumed by the services. It mirrors the behavior of the
// Postgres repositories, including uniqueness and conditional-update
// semantics, and is used by tests and local experiments.
package inmem

import (
	"sync"

	"github.com/emrekara/course-feedback/internal/app/models"
)

// DB is an in-memory stand-in for the document store.
type DB struct {
	mu sync.RWMutex

	studentSeq  int64
	feedbackSeq int64
	questionSeq int64

	students  map[int64]*models.Student
	feedbacks map[int64]*models.Feedback
	questions map[int64]*models.Question
}

// NewDB creates an empty in-memory database.
func NewDB() *DB {
	return &DB{
		students:  make(map[int64]*models.Student),
		feedbacks: make(map[int64]*models.Feedback),
		questions: make(map[int64]*models.Question),
	}
}

// Students returns the student store view of the database.
func (db *DB) Students() *StudentStore {
	return &StudentStore{db: db}
}

// Feedbacks returns the feedback store view of the database.
func (db *DB) Feedbacks() *FeedbackStore {
	return &FeedbackStore{db: db}
}

// Questions returns the question store view of the database.
func (db *DB) Questions() *QuestionStore {
	return &QuestionStore{db: db}
}
