package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/crete-bi/account-linkage/internal/match"
	"github.com/crete-bi/account-linkage/internal/normalize"
)

// SourceSystem identifies which operational dataset a run covers.
type SourceSystem string

const (
	SystemBuildOps SourceSystem = "BUILDOPS"
	SystemSpectrum SourceSystem = "SPECTRUM"
	SystemBoth     SourceSystem = "BOTH"
)

// ConfigurationError is fatal: it aborts the whole run before any unit
// executes.
type ConfigurationError struct {
	Field string
	Value string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s=%q", e.Field, e.Value)
}

// ParseSourceSystem validates a system name from config. "both" expands to
// running BuildOps and Spectrum in sequence.
func ParseSourceSystem(s string) (SourceSystem, error) {
	switch SourceSystem(strings.ToUpper(strings.TrimSpace(s))) {
	case SystemBuildOps:
		return SystemBuildOps, nil
	case SystemSpectrum:
		return SystemSpectrum, nil
	case SystemBoth, "":
		return SystemBoth, nil
	}
	return "", &ConfigurationError{Field: "SYSTEM", Value: s}
}

// Systems lists the concrete systems a run covers.
func (s SourceSystem) Systems() []SourceSystem {
	if s == SystemBoth {
		return []SourceSystem{SystemBuildOps, SystemSpectrum}
	}
	return []SourceSystem{s}
}

// Config is the explicit configuration passed into the pipeline runner.
// There is no process-wide mutable state; a Config is built once at startup
// and handed down.
type Config struct {
	CompanyCode       string
	System            SourceSystem
	MaxDist           int
	NormalizerVersion normalize.Version
	Profile           match.ScoringProfile
	Workers           int

	Database DatabaseConfig
	Web      WebConfig
}

// DatabaseConfig carries Postgres connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// DSN renders the lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name)
}

// WebConfig carries review server settings.
type WebConfig struct {
	Host string
	Port int
}

// Load builds a Config from the environment, reading a .env file first when
// one is present. Values already set in the environment win over the file.
func Load() (*Config, error) {
	_ = godotenv.Load() // missing .env is fine

	system, err := ParseSourceSystem(getEnv("SYSTEM", "BOTH"))
	if err != nil {
		return nil, err
	}

	version, err := normalize.ParseVersion(getEnv("NORMALIZER_VERSION", "aggressive"))
	if err != nil {
		return nil, &ConfigurationError{Field: "NORMALIZER_VERSION", Value: os.Getenv("NORMALIZER_VERSION")}
	}

	profile, err := match.ParseProfile(getEnv("SCORING_PROFILE", "full"))
	if err != nil {
		return nil, &ConfigurationError{Field: "SCORING_PROFILE", Value: os.Getenv("SCORING_PROFILE")}
	}

	maxDist := getEnvInt("DIST", 5)
	if maxDist <= 0 {
		return nil, &ConfigurationError{Field: "DIST", Value: os.Getenv("DIST")}
	}

	return &Config{
		CompanyCode:       getEnv("COMPANY_CODE", "ALL"),
		System:            system,
		MaxDist:           maxDist,
		NormalizerVersion: version,
		Profile:           profile,
		Workers:           getEnvInt("WORKERS", 1),
		Database: DatabaseConfig{
			Host:     getEnv("PGHOST", "localhost"),
			Port:     getEnv("PGPORT", "5432"),
			User:     getEnv("PGUSER", "postgres"),
			Password: getEnv("PGPASSWORD", ""),
			Name:     getEnv("PGDATABASE", "linkage"),
		},
		Web: WebConfig{
			Host: getEnv("WEB_HOST", "0.0.0.0"),
			Port: getEnvInt("WEB_PORT", 8080),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
