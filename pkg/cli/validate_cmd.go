package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"duck-demo/internal/domain"
	"duck-demo/internal/orchestrator"
	"duck-demo/internal/registry"
)

// newValidateCmd runs registration and planning only, surfacing the same
// *domain errors run/plan would hit before execution, without opening the
// database or materializing anything.
func newValidateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check every model's config, SQL, and dependency graph without executing anything",
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

			if _, err := orchestrator.Plan(reg, cfg.CyclePolicy); err != nil {
				return err
			}

			fmt.Printf("%d model(s) registered and planned successfully\n", reg.Len())
			return nil
		},
	}
}
