// Package config resolves the engine's ambient configuration: where the
// store lives on disk, who checkpoints are attributed to, the PBKDF2
// iteration count, and the logging level, following the flag-then-env
// precedence cmd/vista/main.go's getEnv establishes.
package config

import (
	"fmt"
	"os"

	"github.com/rybkr/checkpointstore/internal/aesgcm"
)

// Config is the resolved set of options the CLI needs to construct the
// engine's adapters for a single invocation.
type Config struct {
	StoreRoot     string
	Author        string
	KDFIterations int
	LogLevel      string
	LogFormat     string
}

// Default returns a Config seeded from environment variables, falling back
// to sensible defaults for anything unset. Flags parsed by the CLI layer
// take precedence over these when both are present.
func Default() Config {
	return Config{
		StoreRoot:     getEnv("CHECKPOINTSTORE_STORE", "."),
		Author:        getEnv("CHECKPOINTSTORE_AUTHOR", defaultAuthor()),
		KDFIterations: aesgcm.KDFIterations,
		LogLevel:      getEnv("CHECKPOINTSTORE_LOG_LEVEL", "info"),
		LogFormat:     getEnv("CHECKPOINTSTORE_LOG_FORMAT", "text"),
	}
}

// Validate rejects a Config that cannot construct a usable engine.
func (c Config) Validate() error {
	if c.StoreRoot == "" {
		return fmt.Errorf("config: store root must not be empty")
	}
	if c.KDFIterations <= 0 {
		return fmt.Errorf("config: kdf iterations must be positive, got %d", c.KDFIterations)
	}
	return nil
}

func defaultAuthor() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "unknown"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
