package main

import (
	"os"

	"github.com/emrekara/course-feedback/internal/pkg/logger"
	"github.com/emrekara/course-feedback/internal/server"
)

// @title Course Feedback API
// @version 1.0
// @description API for tracking student course progress and collecting checkpoint feedback

// @contact.name API Support
// @contact.email support@course-feedback.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:5000
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Credential issued at registration or login

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
	os.Exit(0)
}
