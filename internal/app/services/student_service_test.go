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

func validStudent() *models.Student {
	return &models.Student{
		Name:        "Priya Sharma",
		Email:       "priya@example.com",
		RollNumber:  "CS2023001",
		CollegeName: "NIT Trichy",
		ContactNo:   "9876543210",
		Course:      "Computer Science",
		Semester:    5,
	}
}

func newStudentService() (*StudentService, *inmem.DB) {
	db := inmem.NewDB()
	return NewStudentService(db.Students()), db
}

func TestStudentServiceRegister(t *testing.T) {
	svc, _ := newStudentService()
	ctx := context.Background()

	student := validStudent()
	require.NoError(t, svc.Register(ctx, student))

	assert.NotZero(t, student.ID)
	assert.Equal(t, models.ProgressStart, student.CompletionPercentage)
	assert.False(t, student.FeedbackGiven)
	assert.False(t, student.CreatedAt.IsZero())
}

func TestStudentServiceRegisterNormalizes(t *testing.T) {
	svc, _ := newStudentService()
	ctx := context.Background()

	student := validStudent()
	student.Email = "  Priya@Example.COM "
	student.RollNumber = " cs2023001 "
	require.NoError(t, svc.Register(ctx, student))

	assert.Equal(t, "priya@example.com", student.Email)
	assert.Equal(t, "CS2023001", student.RollNumber)
}

func TestStudentServiceRegisterValidation(t *testing.T) {
	svc, _ := newStudentService()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*models.Student)
	}{
		{name: "short name", mutate: func(s *models.Student) { s.Name = "P" }},
		{name: "bad email", mutate: func(s *models.Student) { s.Email = "not-an-email" }},
		{name: "bad roll number", mutate: func(s *models.Student) { s.RollNumber = "ab" }},
		{name: "empty college", mutate: func(s *models.Student) { s.CollegeName = "  " }},
		{name: "bad contact", mutate: func(s *models.Student) { s.ContactNo = "12" }},
		{name: "empty course", mutate: func(s *models.Student) { s.Course = "" }},
		{name: "zero semester", mutate: func(s *models.Student) { s.Semester = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			student := validStudent()
			tt.mutate(student)
			err := svc.Register(ctx, student)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
}

func TestStudentServiceRegisterDuplicates(t *testing.T) {
	svc, _ := newStudentService()
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, validStudent()))

	// Same email, different roll number.
	dup := validStudent()
	dup.RollNumber = "CS2023002"
	assert.ErrorIs(t, svc.Register(ctx, dup), apperrors.ErrEmailAlreadyExists)

	// Same roll number, different email.
	dup = validStudent()
	dup.Email = "other@example.com"
	assert.ErrorIs(t, svc.Register(ctx, dup), apperrors.ErrRollNumberAlreadyExists)
}

func TestStudentServiceUpdateProgress(t *testing.T) {
	svc, _ := newStudentService()
	ctx := context.Background()

	student := validStudent()
	require.NoError(t, svc.Register(ctx, student))

	// 0 -> 50 is accepted even though it skips the 20 checkpoint.
	updated, err := svc.UpdateProgress(ctx, student.ID, models.CheckpointFifty)
	require.NoError(t, err)
	assert.Equal(t, models.CheckpointFifty, updated.CompletionPercentage)
	assert.False(t, updated.FeedbackGiven)

	// Lower value is a silent no-op, not an error.
	updated, err = svc.UpdateProgress(ctx, student.ID, models.CheckpointTwenty)
	require.NoError(t, err)
	assert.Equal(t, models.CheckpointFifty, updated.CompletionPercentage)

	// Equal value is also a no-op.
	updated, err = svc.UpdateProgress(ctx, student.ID, models.CheckpointFifty)
	require.NoError(t, err)
	assert.Equal(t, models.CheckpointFifty, updated.CompletionPercentage)

	updated, err = svc.UpdateProgress(ctx, student.ID, models.CheckpointHundred)
	require.NoError(t, err)
	assert.Equal(t, models.CheckpointHundred, updated.CompletionPercentage)
}

func TestStudentServiceUpdateProgressMonotonic(t *testing.T) {
	svc, _ := newStudentService()
	ctx := context.Background()

	student := validStudent()
	require.NoError(t, svc.Register(ctx, student))

	// After any request sequence, the stored value equals the maximum of
	// the accepted values and never leaves the legal set.
	sequence := []int{20, 0, 50, 20, 50, 100, 20}
	max := 0
	for _, v := range sequence {
		if v > max {
			max = v
		}
		updated, err := svc.UpdateProgress(ctx, student.ID, v)
		require.NoError(t, err)
		assert.Equal(t, max, updated.CompletionPercentage)
		assert.True(t, models.IsValidProgress(updated.CompletionPercentage))
	}
}

func TestStudentServiceUpdateProgressErrors(t *testing.T) {
	svc, _ := newStudentService()
	ctx := context.Background()

	student := validStudent()
	require.NoError(t, svc.Register(ctx, student))

	_, err := svc.UpdateProgress(ctx, student.ID, 37)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCompletionPercentage)

	_, err = svc.UpdateProgress(ctx, student.ID+100, models.CheckpointTwenty)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestStudentServiceQueries(t *testing.T) {
	svc, _ := newStudentService()
	ctx := context.Background()

	students, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, students)
	assert.Empty(t, students)

	first := validStudent()
	require.NoError(t, svc.Register(ctx, first))

	second := validStudent()
	second.Email = "amit@example.com"
	second.RollNumber = "CS2023002"
	require.NoError(t, svc.Register(ctx, second))

	students, err = svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, students, 2)
	// Newest registrations first.
	assert.Equal(t, second.ID, students[0].ID)

	got, err := svc.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Email, got.Email)

	_, err = svc.GetByID(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	_, err = svc.GetByID(ctx, 0)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
