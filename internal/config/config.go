package config

import (
	"os"
	"strconv"

	"godrift/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Drift  DriftConfig
	Report ReportConfig
}

// DriftConfig holds the knobs for the test battery
type DriftConfig struct {
	Alpha              float64
	Border             float64
	BootstrapResamples int
	Seed               int64
	Concurrency        int
}

// ReportConfig holds optional report output paths
type ReportConfig struct {
	XLSXPath string
	HTMLPath string
}

// Load reads configuration from environment variables, falling back to
// the documented defaults, and validates the ranges.
func Load() (*Config, error) {
	drift, err := loadDriftConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load drift configuration")
	}

	return &Config{
		Drift: *drift,
		Report: ReportConfig{
			XLSXPath: os.Getenv("DRIFT_REPORT_XLSX"),
			HTMLPath: os.Getenv("DRIFT_REPORT_HTML"),
		},
	}, nil
}

func loadDriftConfig() (*DriftConfig, error) {
	alpha, err := getEnvFloat("DRIFT_ALPHA", 0.05)
	if err != nil {
		return nil, err
	}
	if alpha <= 0 || alpha >= 1 {
		return nil, errors.ConfigInvalid("DRIFT_ALPHA must be in (0, 1)")
	}

	border, err := getEnvFloat("DRIFT_BORDER", 0.1)
	if err != nil {
		return nil, err
	}
	if border <= 0 {
		return nil, errors.ConfigInvalid("DRIFT_BORDER must be positive")
	}

	resamples, err := getEnvInt("DRIFT_BOOTSTRAP_RESAMPLES", 10_000)
	if err != nil {
		return nil, err
	}
	if resamples <= 0 {
		return nil, errors.ConfigInvalid("DRIFT_BOOTSTRAP_RESAMPLES must be positive")
	}

	seed, err := getEnvInt("DRIFT_SEED", 0)
	if err != nil {
		return nil, err
	}

	concurrency, err := getEnvInt("DRIFT_CONCURRENCY", 4)
	if err != nil {
		return nil, err
	}
	if concurrency <= 0 {
		return nil, errors.ConfigInvalid("DRIFT_CONCURRENCY must be positive")
	}

	return &DriftConfig{
		Alpha:              alpha,
		Border:             border,
		BootstrapResamples: resamples,
		Seed:               int64(seed),
		Concurrency:        concurrency,
	}, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " is not a valid number: " + raw)
	}
	return v, nil
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " is not a valid integer: " + raw)
	}
	return v, nil
}
