package logging

import (
	"os"

	"go.uber.org/zap"
)

// NewSugaredLogger builds the application logger. Production encoding by
// default; set LOG_MODE=development for human-readable output.
func NewSugaredLogger() *zap.SugaredLogger {
	var logger *zap.Logger
	var err error

	if os.Getenv("LOG_MODE") == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic("cannot initialize zap: " + err.Error())
	}

	return logger.Sugar()
}
