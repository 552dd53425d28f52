package models

import (
	"time"
)

// Feedback defines the feedback model based on the 'feedbacks' table.
// A student submits at most one feedback per checkpoint; records are
// immutable after creation.
type Feedback struct {
	ID                   int64     `json:"id" db:"id"`
	StudentID            int64     `json:"studentId" db:"student_id"`
	CompletionPercentage int       `json:"completionPercentage" db:"completion_percentage"`
	AdditionalComments   string    `json:"additionalComments,omitempty" db:"additional_comments"`
	SubmittedAt          time.Time `json:"submittedAt" db:"submitted_at"`

	Answers []FeedbackAnswer `json:"answers"` // Relation, no db tag
}

// FeedbackAnswer defines one answered question within a feedback submission,
// based on the 'feedback_answers' table. Position preserves the order the
// answers were submitted in.
type FeedbackAnswer struct {
	ID         int64  `json:"-" db:"id"`
	FeedbackID int64  `json:"-" db:"feedback_id"`
	Position   int    `json:"-" db:"position"`
	Question   string `json:"question" db:"question"`
	Rating     int    `json:"rating" db:"rating"`
	Comment    string `json:"comment,omitempty" db:"comment"`
}

// Question defines an entry of the canonical feedback question catalog,
// based on the 'feedback_questions' table. The catalog is seeded at startup
// and read-only at runtime.
type Question struct {
	ID         int64  `json:"id" db:"id"`
	Checkpoint int    `json:"checkpoint" db:"checkpoint"`
	Position   int    `json:"position" db:"position"`
	Text       string `json:"text" db:"text"`
}
