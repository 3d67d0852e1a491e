// Package config loads and validates the service configuration from the
// environment
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Environment is the deployment environment the service runs in
type Environment string

const (
	EnvDevelopment Environment = "dev"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "prod"
	EnvTest        Environment = "test"
)

// String returns the canonical short name
func (e Environment) String() string {
	return string(e)
}

// ParseEnvironment accepts the short names plus "development" and "production"
func ParseEnvironment(s string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dev", "development":
		return EnvDevelopment, nil
	case "staging":
		return EnvStaging, nil
	case "prod", "production":
		return EnvProduction, nil
	case "test":
		return EnvTest, nil
	}
	return EnvDevelopment, fmt.Errorf("ENV must be one of: [dev staging prod test], got: %s", s)
}

// Default remote endpoints
const (
	DefaultRxNavBaseURL   = "https://rxnav.nlm.nih.gov/REST"
	DefaultOpenFDABaseURL = "https://api.fda.gov"
)

// Bounds on the number of medications in one check
const (
	MinMedications = 2
	MaxMedications = 50
)

// Config holds all application configuration
type Config struct {
	Port              string
	Address           string
	Env               Environment
	LogLevel          string
	LogDir            string
	LogRetentionWeeks int   // Number of weeks to keep log files
	MaxLogFileSize    int64 // Maximum log file size in bytes
	MaxRequestBody    int64 // Maximum request body size in bytes
	MaxHeaderSize     int64 // Maximum header size in bytes

	MaxMedications int // Maximum medications per check

	RemoteEnabled       bool
	RxNavBaseURL        string
	OpenFDABaseURL      string
	RemoteTimeout       time.Duration // One remote call
	RemoteStageTimeout  time.Duration // All remote calls of one check
	RemoteRatePerSecond float64
	ProbeInterval       time.Duration

	DatasetPath           string // Optional extra interaction table
	DatasetReloadInterval time.Duration
}

// Load loads and validates configuration from environment variables
func Load() (*Config, error) {
	env, err := ParseEnvironment(getEnvWithDefault("ENV", "dev"))
	if err != nil {
		return nil, fmt.Errorf("configuration validation failed: invalid ENV: %w", err)
	}

	cfg := &Config{
		Port:              getEnvWithDefault("PORT", "8000"),
		Address:           getEnvWithDefault("ADDRESS", "127.0.0.1"),
		Env:               env,
		LogLevel:          getEnvWithDefault("LOG_LEVEL", "info"),
		LogDir:            getEnvWithDefault("LOG_DIR", "logs"),
		LogRetentionWeeks: getIntEnvWithDefault("LOG_RETENTION_WEEKS", 4),         // 4 weeks default
		MaxLogFileSize:    getInt64EnvWithDefault("MAX_LOG_FILE_SIZE", 104857600), // 100MB default
		MaxRequestBody:    getInt64EnvWithDefault("MAX_REQUEST_BODY", 1048576),    // 1MB default
		MaxHeaderSize:     getInt64EnvWithDefault("MAX_HEADER_SIZE", 1048576),     // 1MB default

		MaxMedications: getIntEnvWithDefault("MAX_MEDICATIONS", 20),

		RemoteEnabled:       getBoolEnvWithDefault("REMOTE_ENABLED", true),
		RxNavBaseURL:        getEnvWithDefault("RXNAV_BASE_URL", DefaultRxNavBaseURL),
		OpenFDABaseURL:      getEnvWithDefault("OPENFDA_BASE_URL", DefaultOpenFDABaseURL),
		RemoteTimeout:       getDurationEnvWithDefault("REMOTE_TIMEOUT", 5*time.Second),
		RemoteStageTimeout:  getDurationEnvWithDefault("REMOTE_STAGE_TIMEOUT", 8*time.Second),
		RemoteRatePerSecond: getFloatEnvWithDefault("REMOTE_RATE_PER_SECOND", 10),
		ProbeInterval:       getDurationEnvWithDefault("PROBE_INTERVAL", 15*time.Minute),

		DatasetPath:           os.Getenv("DATASET_PATH"),
		DatasetReloadInterval: getDurationEnvWithDefault("DATASET_RELOAD_INTERVAL", 6*time.Hour),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// validateConfig validates all configuration values
func validateConfig(cfg *Config) error {
	// Validate PORT
	if err := validatePort(cfg.Port); err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	// Validate ADDRESS
	if err := validateAddress(cfg.Address); err != nil {
		return fmt.Errorf("invalid ADDRESS: %w", err)
	}

	// Validate LOG_LEVEL
	if err := validateLogLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	// Validate MAX_REQUEST_BODY
	if err := validateSizeLimit(cfg.MaxRequestBody, "MAX_REQUEST_BODY"); err != nil {
		return fmt.Errorf("invalid MAX_REQUEST_BODY: %w", err)
	}

	// Validate MAX_HEADER_SIZE
	if err := validateSizeLimit(cfg.MaxHeaderSize, "MAX_HEADER_SIZE"); err != nil {
		return fmt.Errorf("invalid MAX_HEADER_SIZE: %w", err)
	}

	// Validate LOG_RETENTION_WEEKS
	if err := validateLogRetentionWeeks(cfg.LogRetentionWeeks); err != nil {
		return fmt.Errorf("invalid LOG_RETENTION_WEEKS: %w", err)
	}

	// Validate MAX_LOG_FILE_SIZE
	if err := validateMaxLogFileSize(cfg.MaxLogFileSize); err != nil {
		return fmt.Errorf("invalid MAX_LOG_FILE_SIZE: %w", err)
	}

	if err := validateMaxMedications(cfg.MaxMedications); err != nil {
		return fmt.Errorf("invalid MAX_MEDICATIONS: %w", err)
	}

	if cfg.RemoteEnabled {
		if err := validateBaseURL(cfg.RxNavBaseURL); err != nil {
			return fmt.Errorf("invalid RXNAV_BASE_URL: %w", err)
		}
		if err := validateBaseURL(cfg.OpenFDABaseURL); err != nil {
			return fmt.Errorf("invalid OPENFDA_BASE_URL: %w", err)
		}
		if err := validateDuration(cfg.RemoteTimeout, 100*time.Millisecond, 30*time.Second); err != nil {
			return fmt.Errorf("invalid REMOTE_TIMEOUT: %w", err)
		}
		if err := validateDuration(cfg.RemoteStageTimeout, cfg.RemoteTimeout, time.Minute); err != nil {
			return fmt.Errorf("invalid REMOTE_STAGE_TIMEOUT: %w", err)
		}
		if cfg.RemoteRatePerSecond <= 0 || cfg.RemoteRatePerSecond > 100 {
			return fmt.Errorf("invalid REMOTE_RATE_PER_SECOND: must be in (0, 100], got: %g", cfg.RemoteRatePerSecond)
		}
		if err := validateDuration(cfg.ProbeInterval, time.Minute, 24*time.Hour); err != nil {
			return fmt.Errorf("invalid PROBE_INTERVAL: %w", err)
		}
	}

	if cfg.DatasetPath != "" {
		if err := validateDatasetPath(cfg.DatasetPath); err != nil {
			return fmt.Errorf("invalid DATASET_PATH: %w", err)
		}
		if err := validateDuration(cfg.DatasetReloadInterval, time.Minute, 7*24*time.Hour); err != nil {
			return fmt.Errorf("invalid DATASET_RELOAD_INTERVAL: %w", err)
		}
	}

	return nil
}

// validatePort validates the PORT environment variable
func validatePort(port string) error {
	if port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}

	portNum, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("PORT must be a valid number: %w", err)
	}

	if portNum < 1 || portNum > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}

	// Check for privileged ports
	if portNum < 1024 {
		return fmt.Errorf("PORT %d is privileged (less than 1024), use ports 1024-65535", portNum)
	}

	return nil
}

// validateAddress validates the ADDRESS environment variable
func validateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("ADDRESS cannot be empty")
	}

	// Check for localhost/loopback addresses first
	if address == "127.0.0.1" || address == "::1" || address == "localhost" || address == "0.0.0.0" {
		return nil
	}

	ip := net.ParseIP(address)
	if ip == nil {
		return fmt.Errorf("ADDRESS must be a valid IP address or 'localhost', got: %s", address)
	}

	// Check for private network ranges (10.0.0.0/8, 172.16.0.0/12, 192.168.0.0/16)
	if !ip.IsLoopback() && !ip.IsPrivate() {
		return fmt.Errorf("ADDRESS %s is a public IP, consider using private network ranges for security", address)
	}

	return nil
}

// validateLogLevel validates the LOG_LEVEL environment variable
func validateLogLevel(logLevel string) error {
	if logLevel == "" {
		return fmt.Errorf("LOG_LEVEL cannot be empty")
	}

	validLevels := []string{"debug", "info", "warn", "warning", "error"}
	logLevel = strings.ToLower(logLevel)

	for _, level := range validLevels {
		if logLevel == level {
			return nil
		}
	}

	return fmt.Errorf("LOG_LEVEL must be one of: %v, got: %s", validLevels, logLevel)
}

// validateSizeLimit validates size limit configuration values
func validateSizeLimit(size int64, configName string) error {
	if size <= 0 {
		return fmt.Errorf("%s must be positive, got: %d", configName, size)
	}

	if size > 100*1024*1024 { // 100MB
		return fmt.Errorf("%s is too large (max 100MB), got: %d bytes", configName, size)
	}

	return nil
}

// validateLogRetentionWeeks validates the LOG_RETENTION_WEEKS environment variable
func validateLogRetentionWeeks(weeks int) error {
	if weeks <= 0 {
		return fmt.Errorf("LOG_RETENTION_WEEKS must be positive, got: %d", weeks)
	}

	if weeks > 52 { // 1 year maximum
		return fmt.Errorf("LOG_RETENTION_WEEKS is too large (max 52 weeks), got: %d", weeks)
	}

	return nil
}

// validateMaxLogFileSize validates the MAX_LOG_FILE_SIZE environment variable
func validateMaxLogFileSize(size int64) error {
	if size <= 0 {
		return fmt.Errorf("MAX_LOG_FILE_SIZE must be positive, got: %d", size)
	}

	// Minimum 1MB, maximum 1GB
	if size < 1024*1024 {
		return fmt.Errorf("MAX_LOG_FILE_SIZE is too small (min 1MB), got: %d bytes", size)
	}

	if size > 1024*1024*1024 {
		return fmt.Errorf("MAX_LOG_FILE_SIZE is too large (max 1GB), got: %d bytes", size)
	}

	return nil
}

func validateMaxMedications(n int) error {
	if n < MinMedications || n > MaxMedications {
		return fmt.Errorf("MAX_MEDICATIONS must be between %d and %d, got: %d", MinMedications, MaxMedications, n)
	}
	return nil
}

// validateBaseURL requires an absolute http(s) URL
func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("must be a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got: %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("host cannot be empty")
	}
	return nil
}

func validateDuration(d, min, max time.Duration) error {
	if d < min || d > max {
		return fmt.Errorf("must be between %s and %s, got: %s", min, max, d)
	}
	return nil
}

func validateDatasetPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot read dataset file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

// getEnvWithDefault gets an environment variable with a default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnvWithDefault gets an environment variable as int with a default value
func getIntEnvWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getInt64EnvWithDefault gets an environment variable as int64 with a default value
func getInt64EnvWithDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloatEnvWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getBoolEnvWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnvWithDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// GetEnvVars returns a list of all expected environment variables
func GetEnvVars() []string {
	return []string{
		"PORT",
		"ADDRESS",
		"ENV",
		"LOG_LEVEL",
		"LOG_DIR",
		"LOG_RETENTION_WEEKS",
		"MAX_LOG_FILE_SIZE",
		"MAX_REQUEST_BODY",
		"MAX_HEADER_SIZE",
		"MAX_MEDICATIONS",
		"REMOTE_ENABLED",
		"RXNAV_BASE_URL",
		"OPENFDA_BASE_URL",
		"REMOTE_TIMEOUT",
		"REMOTE_STAGE_TIMEOUT",
		"REMOTE_RATE_PER_SECOND",
		"PROBE_INTERVAL",
		"DATASET_PATH",
		"DATASET_RELOAD_INTERVAL",
	}
}
