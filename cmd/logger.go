package cmd

import (
	"fmt"
	"os"

	"github.com/ethpandaops/loadtest-collect/internal/config"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// LoadEnvFile loads the specified environment file.
// A missing default .env file is not an error.
func LoadEnvFile(file string) error {
	if file == "" {
		file = config.DefaultEnvFile
	}

	if err := godotenv.Load(file); err != nil {
		if file == config.DefaultEnvFile && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to load env file '%s': %w", file, err)
	}

	return nil
}

// InitLogger configures the shared Logger from LOG_LEVEL and LOG_FORMAT.
func InitLogger() error {
	return configureLogger(Logger, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

func configureLogger(log *logrus.Logger, levelName, format string) error {
	if levelName == "" {
		levelName = config.DefaultLogLevel
	}

	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL '%s': %w", levelName, err)
	}
	log.SetLevel(level)

	switch format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
		})
	default:
		return fmt.Errorf("%w: %q", config.ErrInvalidLogFormat, format)
	}

	return nil
}

// setVerbose raises the shared logger to DebugLevel when verbose is true.
func setVerbose(verbose bool) {
	if verbose {
		Logger.SetLevel(logrus.DebugLevel)
	}
}
