package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// Init builds the process-wide logger and installs it via
// zap.ReplaceGlobals, so the rest of the codebase can use zap.L().
// Production gets the JSON encoder, everything else the console one.
func Init(environment string) error {
	var (
		log *zap.Logger
		err error
	)

	switch environment {
	case "production":
		log, err = zap.NewProduction()
	default:
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return fmt.Errorf("zap build -> %w", err)
	}

	zap.ReplaceGlobals(log)

	return nil
}
