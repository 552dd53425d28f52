package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emrekara/course-feedback/internal/app/models"
)

// QuestionRepository handles the feedback question catalog
type QuestionRepository struct {
	db *pgxpool.Pool
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{
		db: db,
	}
}

// GetAll retrieves the full question catalog, checkpoint then position order.
func (r *QuestionRepository) GetAll(ctx context.Context) ([]*models.Question, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, checkpoint, position, text
		FROM feedback_questions
		ORDER BY checkpoint ASC, position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("error listing feedback questions: %w", err)
	}
	defer rows.Close()

	var questions []*models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.Checkpoint, &q.Position, &q.Text); err != nil {
			return nil, err
		}
		questions = append(questions, &q)
	}

	return questions, rows.Err()
}

// GetByCheckpoint retrieves the catalog entries for one checkpoint.
func (r *QuestionRepository) GetByCheckpoint(ctx context.Context, checkpoint int) ([]*models.Question, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, checkpoint, position, text
		FROM feedback_questions
		WHERE checkpoint = $1
		ORDER BY position ASC
	`, checkpoint)
	if err != nil {
		return nil, fmt.Errorf("error listing feedback questions: %w", err)
	}
	defer rows.Close()

	var questions []*models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.Checkpoint, &q.Position, &q.Text); err != nil {
			return nil, err
		}
		questions = append(questions, &q)
	}

	return questions, rows.Err()
}

// Create inserts a catalog entry; existing (checkpoint, position) pairs are
// left untouched so seeding is idempotent.
func (r *QuestionRepository) Create(ctx context.Context, question *models.Question) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO feedback_questions (checkpoint, position, text)
		VALUES ($1, $2, $3)
		ON CONFLICT (checkpoint, position) DO UPDATE SET text = feedback_questions.text
		RETURNING id
	`, question.Checkpoint, question.Position, question.Text).Scan(&question.ID)
	if err != nil {
		return fmt.Errorf("error creating feedback question: %w", err)
	}

	return nil
}
