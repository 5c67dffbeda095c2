package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/rahulk/vaxportal/internal/pkg/logger"
	"github.com/rahulk/vaxportal/internal/server"
)

// @title School Vaccination Portal API
// @version 1.0
// @description API for managing students, vaccination drives and dose records in a school

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	// A missing .env is fine; configuration falls back to config.yaml and defaults
	if err := godotenv.Load(); err == nil {
		logger.Debug().Msg("Loaded environment from .env file")
	}

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
}
