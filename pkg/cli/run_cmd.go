package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"duck-demo/internal/domain"
	"duck-demo/internal/engine"
	"duck-demo/internal/orchestrator"
	"duck-demo/internal/registry"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	var schedule string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Register, plan, and execute every model under --directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if schedule == "" {
				return runOnce(cmd, opts)
			}
			return runOnSchedule(cmd, opts, schedule)
		},
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "compute and print the plan without executing")
	cmd.Flags().BoolVar(&opts.PerFile, "per-file", false, "bypass planning; execute each model independently in name order")
	cmd.Flags().BoolVar(&opts.Parallel, "parallel", false, "pre-resolve each tier's models concurrently before materializing")
	cmd.Flags().StringVar(&schedule, "schedule", "", "optional cron expression to re-run on a recurring schedule instead of once")

	return cmd
}

func runOnce(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	reg, warnings, err := registry.Load(cfg.Directory, domain.OutputSpec{
		Kind:   cfg.DefaultOutputType,
		Schema: cfg.DefaultSchema,
	})
	if err != nil {
		return err
	}
	for _, w := range warnings {
		logger.Warn(w)
	}

	if cfg.DryRun {
		plan, err := orchestrator.Plan(reg, cfg.CyclePolicy)
		if err != nil {
			return err
		}
		printPlan(plan)
		return nil
	}

	eng, err := engine.Open(cfg.DBPath, logger)
	if err != nil {
		return err
	}
	defer eng.Close() //nolint:errcheck

	ctx, cancel := signalContext(cmd)
	defer cancel()

	var summary *domain.RunSummary
	if cfg.PerFile {
		summary = orchestrator.RunPerFile(ctx, reg, eng, orchestrator.Options{
			CyclePolicy: cfg.CyclePolicy,
			Lookup:      os.LookupEnv,
			Cancel:      ctx.Done(),
			Logger:      logger,
		})
	} else {
		summary, err = orchestrator.Run(ctx, reg, eng, orchestrator.Options{
			CyclePolicy: cfg.CyclePolicy,
			DryRun:      cfg.DryRun,
			Parallel:    opts.Parallel,
			Lookup:      os.LookupEnv,
			Cancel:      ctx.Done(),
			Logger:      logger,
		})
		if err != nil {
			return err
		}
	}

	printSummary(summary)
	if len(summary.Failed) > 0 {
		return fmt.Errorf("%d model(s) failed", len(summary.Failed))
	}
	return nil
}

func runOnSchedule(cmd *cobra.Command, opts *rootOptions, expr string) error {
	c := cron.New()
	_, err := c.AddFunc(expr, func() {
		if err := runOnce(cmd, opts); err != nil {
			fmt.Fprintf(os.Stderr, "scheduled run failed: %v\n", err)
		}
	})
	if err != nil {
		return domain.ErrValidation("invalid --schedule expression %q: %v", expr, err)
	}
	c.Start()
	defer c.Stop()

	ctx, cancel := signalContext(cmd)
	defer cancel()
	<-ctx.Done()
	return nil
}

func signalContext(cmd *cobra.Command) (context.Context, func()) {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	return ctx, cancel
}

func printSummary(s *domain.RunSummary) {
	fmt.Printf("ok: %d, failed: %d, skipped: %d\n", len(s.Ok), len(s.Failed), len(s.Skipped))
	for _, name := range s.Failed {
		fmt.Printf("  FAILED %s: %s\n", name, s.FirstError[name])
	}
	for _, name := range s.Skipped {
		fmt.Printf("  SKIPPED %s\n", name)
	}
}
