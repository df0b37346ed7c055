package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads variables from a .env file into the process environment.
// Variables already set win; a missing file is ignored.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with values from the environment
func ApplyEnv(cfg *LocalConfig) error {
	cfg.Daemon.Bind = getEnv("ANTIVIBE_BIND", getEnv("HOST", cfg.Daemon.Bind))
	cfg.Daemon.LogLevel = getEnv("ANTIVIBE_LOG_LEVEL", cfg.Daemon.LogLevel)
	cfg.Knowledge.Path = getEnv("ANTIVIBE_KNOWLEDGE_PATH", cfg.Knowledge.Path)

	port, err := getEnvInt("ANTIVIBE_PORT", cfg.Daemon.Port)
	if err != nil {
		return err
	}
	if os.Getenv("ANTIVIBE_PORT") == "" {
		if port, err = getEnvInt("PORT", cfg.Daemon.Port); err != nil {
			return err
		}
	}
	cfg.Daemon.Port = port

	if cfg.Limits.MaxConcurrent, err = getEnvInt("ANTIVIBE_MAX_CONCURRENT", cfg.Limits.MaxConcurrent); err != nil {
		return err
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return i, nil
}
