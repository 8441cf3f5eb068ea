// Package cli implements the sqlorch command-line interface: run, plan,
// validate, backup, restore, version, and completion, wired to
// internal/config, internal/registry, internal/orchestrator, and
// internal/engine.
package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"duck-demo/internal/config"
	"duck-demo/internal/domain"
)

var (
	version = "dev"
	commit  = "none"
)

// Execute runs the CLI and returns the process exit code, per spec.md
// section 6's contract (0 ok, 1 execution failure, 2 planning error,
// 3 configuration error, 130 cancelled).
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCodeFor(err)
	}
	return 0
}

func exitCodeFor(err error) int {
	var validationErr *domain.ValidationError
	var configParseErr *domain.ConfigParseError
	var cycleErr *domain.CycleError
	var dupErr *domain.DuplicateModelError
	var collisionErr *domain.OutputCollisionError
	var sqlParseErr *domain.SqlParseError
	var cancelledErr *domain.Cancelled

	switch {
	case errors.As(err, &validationErr), errors.As(err, &configParseErr):
		return 3
	case errors.As(err, &cycleErr), errors.As(err, &dupErr),
		errors.As(err, &collisionErr), errors.As(err, &sqlParseErr):
		return 2
	case errors.As(err, &cancelledErr):
		return 130
	default:
		return 1
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "sqlorch",
		Short:         "A dependency-aware SQL transformation orchestrator over an embedded DuckDB database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.Directory, "directory", "", "directory of model .sql files (required)")
	rootCmd.PersistentFlags().StringVar(&opts.DBPath, "db-path", "", "path to the DuckDB database file (default :memory:)")
	rootCmd.PersistentFlags().StringVar(&opts.DefaultSchema, "default-schema", "", "schema used when a model's @config omits one")
	rootCmd.PersistentFlags().StringVar(&opts.DefaultOutputType, "default-output-type", "", "table, view, parquet, csv, or json")
	rootCmd.PersistentFlags().StringVar(&opts.DefaultOutputLocation, "default-output-location", "", "base directory for file outputs")
	rootCmd.PersistentFlags().StringVar(&opts.CyclePolicy, "cycle-policy", "", "strict or tolerant")
	rootCmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "debug, info, warn, or error")
	rootCmd.PersistentFlags().StringVar(&opts.DotEnv, "env-file", "", "optional .env file to load before resolving model placeholders")

	rootCmd.AddCommand(
		newRunCmd(opts),
		newPlanCmd(opts),
		newValidateCmd(opts),
		newBackupCmd(),
		newRestoreCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

// rootOptions mirrors the CLI contract's option table (spec.md section 6).
// The value options are strings rather than typed values because empty means
// "not set on the command line", letting resolveConfig apply env-var and
// default precedence before validation; DryRun, PerFile, and Parallel are
// plain boolean switches.
type rootOptions struct {
	Directory             string
	DBPath                string
	DefaultSchema         string
	DefaultOutputType     string
	DefaultOutputLocation string
	CyclePolicy           string
	LogLevel              string
	DotEnv                string
	DryRun                bool
	PerFile               bool
	Parallel              bool
}

// resolveConfig merges CLI flags over SQLORCH_* environment defaults, loads
// an optional .env file, and validates the result.
func resolveConfig(opts *rootOptions) (*config.Config, error) {
	if opts.DotEnv != "" {
		if err := config.LoadDotEnv(opts.DotEnv); err != nil {
			return nil, domain.ErrValidation("load env file %s: %v", opts.DotEnv, err)
		}
	}

	cfg := config.EnvDefaults()
	if opts.Directory != "" {
		cfg.Directory = opts.Directory
	}
	if opts.DBPath != "" {
		cfg.DBPath = opts.DBPath
	}
	if opts.DefaultSchema != "" {
		cfg.DefaultSchema = opts.DefaultSchema
	}
	if opts.DefaultOutputType != "" {
		cfg.DefaultOutputType = domain.OutputKind(opts.DefaultOutputType)
	}
	if opts.DefaultOutputLocation != "" {
		cfg.DefaultOutputLocation = opts.DefaultOutputLocation
	}
	if opts.CyclePolicy != "" {
		cfg.CyclePolicy = config.CyclePolicy(opts.CyclePolicy)
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	cfg.DryRun = opts.DryRun
	cfg.PerFile = opts.PerFile

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}
