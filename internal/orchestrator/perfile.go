package orchestrator

import (
	"context"

	"duck-demo/internal/domain"
	"duck-demo/internal/engine"
	"duck-demo/internal/registry"
)

// RunPerFile bypasses planning entirely (spec.md section 9's open question)
// and executes every model in lexicographic name order, independent of its
// declared or inferred dependencies. Each model's success or failure is
// recorded individually; a failure never skips or aborts any other model —
// there is no containment in this mode, matching the "individually ignoring
// dependency errors" behavior the spec allows as a one-off mode.
func RunPerFile(ctx context.Context, reg *registry.Registry, eng *engine.Engine, opts Options) *domain.RunSummary {
	exec := newExecutor(reg, eng, opts, nil)

	var schemas []string
	for _, m := range reg.Models() {
		if m.Output.Kind == domain.OutputTable || m.Output.Kind == domain.OutputView {
			schemas = append(schemas, m.Output.Schema)
		}
	}
	if err := eng.EnsureSchemas(ctx, schemas); err != nil {
		opts.logger().Error("ensure schemas failed", "error", err)
	}

	for _, name := range reg.Names() {
		if cancelled(opts.Cancel) {
			break
		}
		exec.runOne(ctx, name)
	}

	return summarize(reg)
}
