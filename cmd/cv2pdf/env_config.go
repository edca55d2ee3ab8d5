package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/alnah/go-cv2pdf/internal/config"
	"github.com/alnah/go-cv2pdf/internal/logfields"
)

// envPrefix marks the environment variables read by cv2pdf.
const envPrefix = "CV2PDF_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // CV2PDF_CONFIG: config file name or path
	DataPath   string        // CV2PDF_DATA: CV data file
	OutputDir  string        // CV2PDF_OUTPUT_DIR: output directory
	FontsDir   string        // CV2PDF_FONTS_DIR: font directory
	Timeout    time.Duration // CV2PDF_TIMEOUT: PDF generation timeout
	Date       string        // CV2PDF_DATE: footer date
}

// knownEnvVars lists valid CV2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"CV2PDF_CONFIG":     true,
	"CV2PDF_DATA":       true,
	"CV2PDF_OUTPUT_DIR": true,
	"CV2PDF_FONTS_DIR":  true,
	"CV2PDF_TIMEOUT":    true,
	"CV2PDF_DATE":       true,
}

// loadDotEnv loads .env from the working directory. A missing file is not an
// error; existing environment variables are never overwritten.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// loadEnvConfig reads configuration from environment variables.
// An unparsable or non-positive CV2PDF_TIMEOUT is ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("CV2PDF_CONFIG"),
		DataPath:   os.Getenv("CV2PDF_DATA"),
		OutputDir:  os.Getenv("CV2PDF_OUTPUT_DIR"),
		FontsDir:   os.Getenv("CV2PDF_FONTS_DIR"),
		Date:       os.Getenv("CV2PDF_DATE"),
	}

	if timeout := os.Getenv("CV2PDF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized CV2PDF_* variables.
// Helps catch typos like CV2PDF_FONT_DIR instead of CV2PDF_FONTS_DIR.
func warnUnknownEnvVars(logger *slog.Logger) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", slog.String("name", name))
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables override the config file; CLI flags are applied afterwards
// by mergeFlags, so the order is: flags > env > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config, logger *slog.Logger) {
	if env.DataPath != "" {
		cfg.Data.Path = env.DataPath
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.FontsDir != "" {
		cfg.Fonts.Dir = env.FontsDir
	}
	if env.Date != "" {
		cfg.Footer.Date = env.Date
	}
	logger.Debug("environment applied", logfields.Stage("config"))
}
