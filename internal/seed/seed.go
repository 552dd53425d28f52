// Package seed populates the feedback question catalog.
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/emrekara/course-feedback/internal/app/models"
	appRepos "github.com/emrekara/course-feedback/internal/app/repositories"
)

// defaultQuestions is the catalog presented to students at each checkpoint.
// Seeding is idempotent: rows are keyed by (checkpoint, position).
var defaultQuestions = []appModels.Question{
	{Checkpoint: appModels.CheckpointTwenty, Position: 1, Text: "How clear were the course objectives so far?"},
	{Checkpoint: appModels.CheckpointTwenty, Position: 2, Text: "How would you rate the pace of the course?"},
	{Checkpoint: appModels.CheckpointTwenty, Position: 3, Text: "How useful were the introductory materials?"},

	{Checkpoint: appModels.CheckpointFifty, Position: 1, Text: "How well do the assignments reinforce the lectures?"},
	{Checkpoint: appModels.CheckpointFifty, Position: 2, Text: "How approachable is the instructor for questions?"},
	{Checkpoint: appModels.CheckpointFifty, Position: 3, Text: "How manageable is the workload at this point?"},

	{Checkpoint: appModels.CheckpointHundred, Position: 1, Text: "How well did the course meet your expectations overall?"},
	{Checkpoint: appModels.CheckpointHundred, Position: 2, Text: "How likely are you to recommend this course to other students?"},
	{Checkpoint: appModels.CheckpointHundred, Position: 3, Text: "How relevant was the course content to your goals?"},
	{Checkpoint: appModels.CheckpointHundred, Position: 4, Text: "How would you rate the course as a whole?"},
}

// CreateDefaultData seeds the feedback question catalog if it is missing.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	questionRepo := appRepos.NewQuestionRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (feedback questions)...")
	var finalErr error

	for i := range defaultQuestions {
		q := defaultQuestions[i]
		if err := questionRepo.Create(ctx, &q); err != nil {
			lgr.Error().Err(err).
				Int("checkpoint", q.Checkpoint).
				Int("position", q.Position).
				Msg("Error seeding feedback question")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Int("questions", len(defaultQuestions)).Msg("Feedback question catalog ready")
	}
	return finalErr
}
