package main

import (
	"os"

	"github.com/znurfzh/ethic-sub000/internal/pkg/logger"
	"github.com/znurfzh/ethic-sub000/internal/server"
)

// @title ETHIC API
// @version 1.0
// @description API for the ETHIC educational technology community

// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// blocks until a shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
