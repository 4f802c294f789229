package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"go-dental-forensics/internal/pipeline"
	"go-dental-forensics/pkg/scoring"
)

// Config carries server settings from the environment plus the pipeline
// threshold tables, optionally overridden by a YAML file. Thresholds are
// read-only after startup; concurrent pipeline runs share them without
// locking.
type Config struct {
	Host               string
	Port               string
	RequestTimeout     time.Duration
	ImageFetchTimeout  time.Duration
	MaxRequestBodySize int64

	Thresholds Thresholds
}

// Thresholds groups every tunable boundary table in one YAML document:
//
//	detector:
//	  min_width: 64
//	classifier:
//	  bright_delta: 40
//	scoring:
//	  admissibility_min: 70
type Thresholds struct {
	Detector   pipeline.DetectorConfig       `yaml:"detector"`
	Classifier pipeline.ClassifierThresholds `yaml:"classifier"`
	Scoring    scoring.Thresholds            `yaml:"scoring"`
}

// DefaultThresholds returns the built-in tables.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Detector:   pipeline.DefaultDetectorConfig(),
		Classifier: pipeline.DefaultClassifierThresholds(),
		Scoring:    scoring.DefaultThresholds(),
	}
}

func (c *Config) ServerAddress() string {
	// Trim any whitespace from host and port
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

// LoadFromEnv builds the configuration from environment variables, reading
// the optional THRESHOLDS_FILE on top of the defaults.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Host:               getEnvOrDefault("HOST", "0.0.0.0"),
		Port:               getEnvOrDefault("PORT", "8080"),
		RequestTimeout:     parseDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		ImageFetchTimeout:  parseDurationOrDefault("IMAGE_FETCH_TIMEOUT", 15*time.Second),
		MaxRequestBodySize: parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 30*1024*1024), // 30MB
		Thresholds:         DefaultThresholds(),
	}

	// Validate port is numeric and in range
	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if cfg.MaxRequestBodySize <= 0 {
		return nil, fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", cfg.MaxRequestBodySize)
	}
	if cfg.RequestTimeout <= 0 || cfg.ImageFetchTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be > 0 (got request=%s, fetch=%s)",
			cfg.RequestTimeout, cfg.ImageFetchTimeout)
	}

	if path := os.Getenv("THRESHOLDS_FILE"); path != "" {
		thresholds, err := LoadThresholds(path)
		if err != nil {
			return nil, err
		}
		cfg.Thresholds = thresholds
	}
	return cfg, nil
}

// LoadThresholds reads a YAML thresholds file over the defaults; omitted
// keys keep their default values.
func LoadThresholds(path string) (Thresholds, error) {
	thresholds := DefaultThresholds()

	data, err := os.ReadFile(path)
	if err != nil {
		return thresholds, fmt.Errorf("reading thresholds file: %w", err)
	}
	if err := yaml.Unmarshal(data, &thresholds); err != nil {
		return thresholds, fmt.Errorf("parsing thresholds file %s: %w", path, err)
	}
	return thresholds, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
