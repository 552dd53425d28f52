package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emrekara/course-feedback/internal/app/models"
	"github.com/emrekara/course-feedback/internal/app/repositories/inmem"
	"github.com/emrekara/course-feedback/internal/pkg/apperrors"
)

func newFeedbackFixture(t *testing.T) (*FeedbackService, *StudentService, *models.Student) {
	t.Helper()

	db := inmem.NewDB()
	studentSvc := NewStudentService(db.Students())
	feedbackSvc := NewFeedbackService(db.Feedbacks(), db.Students())

	student := validStudent()
	require.NoError(t, studentSvc.Register(context.Background(), student))

	return feedbackSvc, studentSvc, student
}

func checkpointFeedback(studentID int64, checkpoint int) *models.Feedback {
	return &models.Feedback{
		StudentID:            studentID,
		CompletionPercentage: checkpoint,
		AdditionalComments:   "Good so far",
		Answers: []models.FeedbackAnswer{
			{Question: "How clear were the course objectives so far?", Rating: 4, Comment: "Good"},
			{Question: "How would you rate the pace of the course?", Rating: 5, Comment: "Excellent"},
		},
	}
}

func TestFeedbackServiceSubmit(t *testing.T) {
	svc, _, student := newFeedbackFixture(t)
	ctx := context.Background()

	feedback := checkpointFeedback(student.ID, models.CheckpointTwenty)
	require.NoError(t, svc.Submit(ctx, feedback))

	assert.NotZero(t, feedback.ID)
	assert.False(t, feedback.SubmittedAt.IsZero())
}

func TestFeedbackServiceDuplicateCheckpoint(t *testing.T) {
	svc, _, student := newFeedbackFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Submit(ctx, checkpointFeedback(student.ID, models.CheckpointTwenty)))

	err := svc.Submit(ctx, checkpointFeedback(student.ID, models.CheckpointTwenty))
	assert.ErrorIs(t, err, apperrors.ErrFeedbackAlreadySubmitted)

	// A different checkpoint is still open.
	assert.NoError(t, svc.Submit(ctx, checkpointFeedback(student.ID, models.CheckpointFifty)))
}

func TestFeedbackServiceSubmitValidation(t *testing.T) {
	svc, _, student := newFeedbackFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*models.Feedback)
		wantErr error
	}{
		{
			name:    "checkpoint zero",
			mutate:  func(f *models.Feedback) { f.CompletionPercentage = 0 },
			wantErr: apperrors.ErrInvalidCompletionPercentage,
		},
		{
			name:    "checkpoint outside set",
			mutate:  func(f *models.Feedback) { f.CompletionPercentage = 75 },
			wantErr: apperrors.ErrInvalidCompletionPercentage,
		},
		{
			name:    "no answers",
			mutate:  func(f *models.Feedback) { f.Answers = nil },
			wantErr: apperrors.ErrValidationFailed,
		},
		{
			name:    "rating too high",
			mutate:  func(f *models.Feedback) { f.Answers[0].Rating = 6 },
			wantErr: apperrors.ErrValidationFailed,
		},
		{
			name:    "rating too low",
			mutate:  func(f *models.Feedback) { f.Answers[0].Rating = 0 },
			wantErr: apperrors.ErrValidationFailed,
		},
		{
			name:    "blank question",
			mutate:  func(f *models.Feedback) { f.Answers[0].Question = "  " },
			wantErr: apperrors.ErrValidationFailed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feedback := checkpointFeedback(student.ID, models.CheckpointTwenty)
			tt.mutate(feedback)
			assert.ErrorIs(t, svc.Submit(ctx, feedback), tt.wantErr)
		})
	}
}

func TestFeedbackServiceSubmitUnknownStudent(t *testing.T) {
	svc, _, _ := newFeedbackFixture(t)

	err := svc.Submit(context.Background(), checkpointFeedback(999, models.CheckpointTwenty))
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestFeedbackServiceHundredSetsFlag(t *testing.T) {
	svc, studentSvc, student := newFeedbackFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Submit(ctx, checkpointFeedback(student.ID, models.CheckpointTwenty)))
	got, err := studentSvc.GetByID(ctx, student.ID)
	require.NoError(t, err)
	assert.False(t, got.FeedbackGiven, "only the final checkpoint feedback sets the flag")

	require.NoError(t, svc.Submit(ctx, checkpointFeedback(student.ID, models.CheckpointHundred)))
	got, err = studentSvc.GetByID(ctx, student.ID)
	require.NoError(t, err)
	assert.True(t, got.FeedbackGiven)

	// Re-requesting the already-held progress value is a no-op and must not
	// reset the flag, since no transition occurred.
	_, err = studentSvc.UpdateProgress(ctx, student.ID, student.CompletionPercentage)
	require.NoError(t, err)
	got, err = studentSvc.GetByID(ctx, student.ID)
	require.NoError(t, err)
	assert.True(t, got.FeedbackGiven)
}

func TestFeedbackServiceProgressResetsFlag(t *testing.T) {
	svc, studentSvc, student := newFeedbackFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Submit(ctx, checkpointFeedback(student.ID, models.CheckpointHundred)))

	// An accepted transition clears the flag again.
	_, err := studentSvc.UpdateProgress(ctx, student.ID, models.CheckpointFifty)
	require.NoError(t, err)

	updated, err := studentSvc.UpdateProgress(ctx, student.ID, models.CheckpointHundred)
	require.NoError(t, err)
	assert.False(t, updated.FeedbackGiven)
}

func TestFeedbackServiceQueries(t *testing.T) {
	svc, studentSvc, student := newFeedbackFixture(t)
	ctx := context.Background()

	feedbacks, err := svc.GetByStudent(ctx, student.ID)
	require.NoError(t, err)
	assert.NotNil(t, feedbacks)
	assert.Empty(t, feedbacks)

	require.NoError(t, svc.Submit(ctx, checkpointFeedback(student.ID, models.CheckpointFifty)))
	require.NoError(t, svc.Submit(ctx, checkpointFeedback(student.ID, models.CheckpointTwenty)))

	feedbacks, err = svc.GetByStudent(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, feedbacks, 2)
	// Checkpoint ascending regardless of submission order.
	assert.Equal(t, models.CheckpointTwenty, feedbacks[0].CompletionPercentage)
	assert.Equal(t, models.CheckpointFifty, feedbacks[1].CompletionPercentage)

	got, err := svc.GetByCheckpoint(ctx, student.ID, models.CheckpointFifty)
	require.NoError(t, err)
	assert.Equal(t, models.CheckpointFifty, got.CompletionPercentage)
	assert.Len(t, got.Answers, 2)

	_, err = svc.GetByCheckpoint(ctx, student.ID, models.CheckpointHundred)
	assert.ErrorIs(t, err, apperrors.ErrFeedbackNotFound)

	_, err = svc.GetByCheckpoint(ctx, student.ID, 33)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCompletionPercentage)

	_, err = svc.GetByStudent(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	// The student record exposes its feedback ids.
	record, err := studentSvc.GetByID(ctx, student.ID)
	require.NoError(t, err)
	assert.Len(t, record.FeedbackIDs, 2)
}

func TestFeedbackServiceProgressAfterHundredFeedback(t *testing.T) {
	// Full walkthrough of the state machine: 0 -> 50 resets the flag, the
	// final checkpoint feedback sets it, and a redundant progress request
	// leaves it alone.
	svc, studentSvc, student := newFeedbackFixture(t)
	ctx := context.Background()

	updated, err := studentSvc.UpdateProgress(ctx, student.ID, models.CheckpointFifty)
	require.NoError(t, err)
	assert.Equal(t, models.CheckpointFifty, updated.CompletionPercentage)
	assert.False(t, updated.FeedbackGiven)

	updated, err = studentSvc.UpdateProgress(ctx, student.ID, models.CheckpointHundred)
	require.NoError(t, err)
	assert.Equal(t, models.CheckpointHundred, updated.CompletionPercentage)

	require.NoError(t, svc.Submit(ctx, checkpointFeedback(student.ID, models.CheckpointHundred)))

	updated, err = studentSvc.UpdateProgress(ctx, student.ID, models.CheckpointHundred)
	require.NoError(t, err)
	assert.Equal(t, models.CheckpointHundred, updated.CompletionPercentage)
	assert.True(t, updated.FeedbackGiven)
}
