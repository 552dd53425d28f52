// Command liststudents dumps every student record as indented JSON.
// Handy for inspecting the database without going through the API.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/emrekara/course-feedback/internal/app/repositories"
	"github.com/emrekara/course-feedback/internal/config"
	"github.com/emrekara/course-feedback/internal/db"
	"github.com/emrekara/course-feedback/internal/pkg/logger"
)

func main() {
	configPath := "configs/config.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to connect to database")
		os.Exit(1)
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	studentRepo := repositories.NewStudentRepository(database.Pool)
	students, err := studentRepo.GetAll(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list students")
		os.Exit(1)
	}

	out, err := json.MarshalIndent(students, "", "  ")
	if err != nil {
		logger.Error().Err(err).Msg("Failed to encode students")
		os.Exit(1)
	}

	fmt.Println(string(out))
}
