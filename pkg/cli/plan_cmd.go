package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"duck-demo/internal/domain"
	"duck-demo/internal/orchestrator"
	"duck-demo/internal/registry"
	"duck-demo/internal/scheduler"
)

func newPlanCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Register every model and print the execution plan without touching the database",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
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

			plan, err := orchestrator.Plan(reg, cfg.CyclePolicy)
			if err != nil {
				return err
			}

			printPlan(plan)
			return nil
		},
	}
}

func printPlan(plan scheduler.Plan) {
	for i, tier := range plan.Tiers {
		fmt.Printf("tier %d: %v\n", i, tier)
	}
	if len(plan.CycleBroken) > 0 {
		fmt.Printf("cycle-broken (skipped under tolerant policy): %v\n", plan.CycleBroken)
	}
}
