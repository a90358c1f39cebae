package config

import (
	"os"

	"go.uber.org/zap"
)

var Logger *zap.Logger

// InitLogger sets up the global logger. APP_ENV=development switches to the
// human-readable console encoder.
func InitLogger() error {
	var (
		logger *zap.Logger
		err    error
	)

	if os.Getenv("APP_ENV") == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}

	Logger = logger
	return nil
}
