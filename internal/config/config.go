// Package config handles CLI configuration and environment loading for the
// transformation pipeline.
package config

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"duck-demo/internal/domain"
)

// CyclePolicy controls how the scheduler reacts to a dependency cycle.
type CyclePolicy string

// Cycle policies.
const (
	CyclePolicyStrict   CyclePolicy = "strict"
	CyclePolicyTolerant CyclePolicy = "tolerant"
)

// Config holds the resolved settings for a single pipeline run, matching the
// CLI contract's option table.
type Config struct {
	Directory             string
	DBPath                string
	DefaultSchema         string
	DefaultOutputType     domain.OutputKind
	DefaultOutputLocation string
	CyclePolicy           CyclePolicy
	DryRun                bool
	// PerFile bypasses planning entirely and executes each SQL file directly
	// in lexicographic model-name order, logging and continuing past
	// per-file errors.
	PerFile bool

	LogLevel string

	// Warnings collects non-fatal notices generated while loading config,
	// logged by the caller once the logger is initialized.
	Warnings []string
}

// Defaults returns a Config populated with the CLI contract's default values.
func Defaults() Config {
	return Config{
		DBPath:                ":memory:",
		DefaultSchema:         "main",
		DefaultOutputType:     domain.OutputTable,
		DefaultOutputLocation: "./output",
		CyclePolicy:           CyclePolicyStrict,
		LogLevel:              "info",
	}
}

// Validate checks that the configuration is internally consistent, returning
// a *domain.ValidationError (mapped by the CLI to exit code 3) on failure.
func (c *Config) Validate() error {
	if c.Directory == "" {
		return domain.ErrValidation("directory is required")
	}
	switch c.CyclePolicy {
	case CyclePolicyStrict, CyclePolicyTolerant:
	case "":
		c.CyclePolicy = CyclePolicyStrict
	default:
		return domain.ErrValidation("cycle_policy must be %q or %q, got %q", CyclePolicyStrict, CyclePolicyTolerant, c.CyclePolicy)
	}
	switch c.DefaultOutputType {
	case domain.OutputTable, domain.OutputView, domain.OutputParquet, domain.OutputCSV, domain.OutputJSON:
	case "":
		c.DefaultOutputType = domain.OutputTable
	default:
		return domain.ErrValidation("default_output_type %q is not recognized", c.DefaultOutputType)
	}
	if c.DBPath == "" {
		c.DBPath = ":memory:"
	}
	if c.DefaultSchema == "" {
		c.DefaultSchema = "main"
	}
	if c.DefaultOutputLocation == "" {
		c.DefaultOutputLocation = "./output"
	}
	return nil
}

// SlogLevel maps LogLevel to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// EnvDefaults reads fallback values from the environment, used as flag
// defaults before the CLI's own flag/env precedence resolution runs.
// Recognized variables mirror the flag names, upper-cased with a common
// prefix: SQLORCH_DIRECTORY, SQLORCH_DB_PATH, SQLORCH_DEFAULT_SCHEMA,
// SQLORCH_DEFAULT_OUTPUT_TYPE, SQLORCH_DEFAULT_OUTPUT_LOCATION,
// SQLORCH_CYCLE_POLICY, SQLORCH_LOG_LEVEL.
func EnvDefaults() Config {
	cfg := Defaults()
	if v := os.Getenv("SQLORCH_DIRECTORY"); v != "" {
		cfg.Directory = v
	}
	if v := os.Getenv("SQLORCH_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("SQLORCH_DEFAULT_SCHEMA"); v != "" {
		cfg.DefaultSchema = v
	}
	if v := os.Getenv("SQLORCH_DEFAULT_OUTPUT_TYPE"); v != "" {
		cfg.DefaultOutputType = domain.OutputKind(strings.ToLower(v))
	}
	if v := os.Getenv("SQLORCH_DEFAULT_OUTPUT_LOCATION"); v != "" {
		cfg.DefaultOutputLocation = v
	}
	if v := os.Getenv("SQLORCH_CYCLE_POLICY"); v != "" {
		cfg.CyclePolicy = CyclePolicy(strings.ToLower(v))
	}
	if v := os.Getenv("SQLORCH_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return cfg
}

// LoadDotEnv reads a .env file and sets any variables not already present in
// the environment. Lines must be in KEY=VALUE format; comments (#) and blank
// lines are skipped. Used so ${NAME} placeholders in model SQL can be
// resolved from a project-local file instead of the shell environment.
func LoadDotEnv(path string) error {
	f, err := os.Open(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = stripQuotes(strings.TrimSpace(value))
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("setenv %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}

// stripQuotes removes surrounding double or single quotes from a value.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
