package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emrekara/course-feedback/internal/app/models"
	"github.com/emrekara/course-feedback/internal/pkg/apperrors"
	"github.com/emrekara/course-feedback/internal/pkg/dberrors"
	"github.com/emrekara/course-feedback/internal/pkg/logger"
)

// Unique constraint name from migrations/001_init.sql. The constraint is what
// makes "one feedback per (student, checkpoint)" hold under concurrent
// submissions; there is deliberately no separate existence check before the
// insert.
const feedbackCheckpointConstraint = "feedbacks_student_id_completion_percentage_key"

// FeedbackRepository handles feedback database operations
type FeedbackRepository struct {
	db *pgxpool.Pool
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{
		db: db,
	}
}

// Create inserts a feedback with its answers and updates the owning
// student's feedback_given flag, all in one transaction. A duplicate
// (student, checkpoint) pair surfaces as ErrFeedbackAlreadySubmitted.
func (r *FeedbackRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	err = tx.QueryRow(ctx, `
		INSERT INTO feedbacks (student_id, completion_percentage, additional_comments)
		VALUES ($1, $2, $3)
		RETURNING id, submitted_at
	`, feedback.StudentID, feedback.CompletionPercentage, feedback.AdditionalComments).
		Scan(&feedback.ID, &feedback.SubmittedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, feedbackCheckpointConstraint) {
			return apperrors.ErrFeedbackAlreadySubmitted
		}
		logger.Error().Err(err).Msg("Error inserting feedback")
		return fmt.Errorf("error creating feedback: %w", err)
	}

	for i := range feedback.Answers {
		answer := &feedback.Answers[i]
		answer.FeedbackID = feedback.ID
		answer.Position = i

		err = tx.QueryRow(ctx, `
			INSERT INTO feedback_answers (feedback_id, position, question, rating, comment)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, answer.FeedbackID, answer.Position, answer.Question, answer.Rating, answer.Comment).
			Scan(&answer.ID)
		if err != nil {
			return fmt.Errorf("error creating feedback answer: %w", err)
		}
	}

	// The 100% feedback marks the final flag; earlier checkpoints leave the
	// flag untouched. Progress updates are what clear it again.
	if feedback.CompletionPercentage == models.CheckpointHundred {
		_, err = tx.Exec(ctx, `
			UPDATE students SET feedback_given = TRUE, updated_at = NOW() WHERE id = $1
		`, feedback.StudentID)
		if err != nil {
			return fmt.Errorf("error updating student feedback flag: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetByStudent retrieves all feedbacks of a student, checkpoint ascending,
// with answers attached.
func (r *FeedbackRepository) GetByStudent(ctx context.Context, studentID int64) ([]*models.Feedback, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, student_id, completion_percentage, additional_comments, submitted_at
		FROM feedbacks
		WHERE student_id = $1
		ORDER BY completion_percentage ASC
	`, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing feedbacks: %w", err)
	}
	defer rows.Close()

	var feedbacks []*models.Feedback
	for rows.Next() {
		var f models.Feedback
		if err := rows.Scan(&f.ID, &f.StudentID, &f.CompletionPercentage, &f.AdditionalComments, &f.SubmittedAt); err != nil {
			return nil, err
		}
		feedbacks = append(feedbacks, &f)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, f := range feedbacks {
		if f.Answers, err = r.answers(ctx, f.ID); err != nil {
			return nil, err
		}
	}

	return feedbacks, nil
}

// GetByStudentAndCheckpoint retrieves the single feedback a student
// submitted at the given checkpoint.
func (r *FeedbackRepository) GetByStudentAndCheckpoint(ctx context.Context, studentID int64, checkpoint int) (*models.Feedback, error) {
	var f models.Feedback
	err := r.db.QueryRow(ctx, `
		SELECT id, student_id, completion_percentage, additional_comments, submitted_at
		FROM feedbacks
		WHERE student_id = $1 AND completion_percentage = $2
	`, studentID, checkpoint).
		Scan(&f.ID, &f.StudentID, &f.CompletionPercentage, &f.AdditionalComments, &f.SubmittedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("error retrieving feedback: %w", err)
	}

	if f.Answers, err = r.answers(ctx, f.ID); err != nil {
		return nil, err
	}

	return &f, nil
}

// answers loads a feedback's answers in submission order.
func (r *FeedbackRepository) answers(ctx context.Context, feedbackID int64) ([]models.FeedbackAnswer, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, feedback_id, position, question, rating, comment
		FROM feedback_answers
		WHERE feedback_id = $1
		ORDER BY position ASC
	`, feedbackID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving feedback answers: %w", err)
	}
	defer rows.Close()

	var answers []models.FeedbackAnswer
	for rows.Next() {
		var a models.FeedbackAnswer
		if err := rows.Scan(&a.ID, &a.FeedbackID, &a.Position, &a.Question, &a.Rating, &a.Comment); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}

	return answers, rows.Err()
}
