// Package orchestrator ties the model registry, dependency scheduler, and
// execution engine together into a single run: it computes the plan,
// resolves environment variables, dispatches each model to the engine in
// plan order, and implements the fail-fast-with-dependents containment
// policy (spec.md section 7) plus cooperative cancellation (section 5).
package orchestrator

import (
	"context"
	"log/slog"
	"os"
	"sort"

	"github.com/google/uuid"

	"duck-demo/internal/config"
	"duck-demo/internal/domain"
	"duck-demo/internal/engine"
	"duck-demo/internal/registry"
	"duck-demo/internal/scheduler"
)

// Options controls a single Run invocation. Zero value is a serial, strict,
// non-cancellable run against the process environment.
type Options struct {
	CyclePolicy config.CyclePolicy
	DryRun      bool
	Parallel    bool
	// Lookup resolves ${NAME} placeholders; nil uses os.LookupEnv.
	Lookup engine.Lookup
	// Cancel, when non-nil, is checked between models; a closed channel
	// halts the run before the next model starts.
	Cancel <-chan struct{}
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

func (o Options) lookup() engine.Lookup {
	if o.Lookup != nil {
		return o.Lookup
	}
	return os.LookupEnv
}

// Plan computes the dependency graph and a deterministic tiered execution
// order over reg, without touching the database. A *domain.CycleError under
// config.CyclePolicyStrict aborts planning entirely, per spec.md P6.
func Plan(reg *registry.Registry, cyclePolicy config.CyclePolicy) (scheduler.Plan, error) {
	deps := make(map[string][]string, reg.Len())
	for _, m := range reg.Models() {
		deps[m.Name] = m.EffectiveDeps
	}
	return scheduler.Schedule(reg.Names(), deps, cyclePolicy)
}

// Flatten returns plan's tiers concatenated into a single ordered sequence,
// preserving the lexicographic tie-break within each tier (spec.md P1/P2).
func Flatten(plan scheduler.Plan) []string {
	var out []string
	for _, tier := range plan.Tiers {
		out = append(out, tier...)
	}
	return out
}

// Run computes the plan and, unless opts.DryRun, executes it against eng.
// It returns a domain.RunSummary describing the terminal state of every
// model once the run halts. A non-nil error is either a planning failure
// (fatal, no model executed — the summary is then nil) or a *domain.Cancelled
// once opts.Cancel fires between models (the summary still reflects
// whatever ran before the signal).
func Run(ctx context.Context, reg *registry.Registry, eng *engine.Engine, opts Options) (*domain.RunSummary, error) {
	runID := uuid.New().String()
	logger := opts.logger().With("run_id", runID)

	plan, err := Plan(reg, opts.CyclePolicy)
	if err != nil {
		return nil, err
	}

	for _, name := range plan.CycleBroken {
		if m, ok := reg.Get(name); ok {
			m.Status = domain.StatusSkipped
			m.SkipReason = domain.SkipCycleBroken
		}
	}

	if opts.DryRun {
		return summarize(reg), nil
	}

	if err := ensureSchemas(ctx, reg, plan, eng); err != nil {
		return nil, err
	}

	logger.Info("run started", "models", reg.Len(), "tiers", len(plan.Tiers))

	dependents := buildDependents(reg)
	exec := newExecutor(reg, eng, opts, dependents)
	exec.opts.Logger = logger

	for _, tier := range plan.Tiers {
		var tierErr error
		if opts.Parallel {
			tierErr = exec.runTierParallel(ctx, tier)
		} else {
			tierErr = exec.runTierSerial(ctx, tier)
		}
		if tierErr != nil {
			logger.Error("run halted", "error", tierErr)
			return summarize(reg), tierErr
		}
	}

	summary := summarize(reg)
	logger.Info("run finished", "ok", len(summary.Ok), "failed", len(summary.Failed), "skipped", len(summary.Skipped))
	return summary, nil
}

func cancelled(ch <-chan struct{}) bool {
	if ch == nil {
		return false
	}
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

// ensureSchemas hoists every distinct schema referenced by a Table or View
// output to a single CREATE SCHEMA IF NOT EXISTS batch before execution
// starts, per spec.md section 4.5 step 2.
func ensureSchemas(ctx context.Context, reg *registry.Registry, plan scheduler.Plan, eng *engine.Engine) error {
	var schemas []string
	for _, name := range Flatten(plan) {
		m, ok := reg.Get(name)
		if !ok {
			continue
		}
		if m.Output.Kind == domain.OutputTable || m.Output.Kind == domain.OutputView {
			schemas = append(schemas, m.Output.Schema)
		}
	}
	return eng.EnsureSchemas(ctx, schemas)
}

// buildDependents inverts EffectiveDeps into a forward adjacency: for every
// edge "u depends on v", dependents[v] gains u. Used to propagate
// Skipped(AncestorFailed) down from a failed model to its descendants.
func buildDependents(reg *registry.Registry) map[string][]string {
	dependents := make(map[string][]string, reg.Len())
	for _, m := range reg.Models() {
		for _, dep := range m.EffectiveDeps {
			dependents[dep] = append(dependents[dep], m.Name)
		}
	}
	for dep, list := range dependents {
		sort.Strings(list)
		dependents[dep] = list
	}
	return dependents
}

func summarize(reg *registry.Registry) *domain.RunSummary {
	s := &domain.RunSummary{FirstError: make(map[string]string)}
	for _, m := range reg.Models() {
		switch m.Status {
		case domain.StatusOk:
			s.Ok = append(s.Ok, m.Name)
		case domain.StatusFailed:
			s.Failed = append(s.Failed, m.Name)
			if m.RunErr != nil {
				s.FirstError[m.Name] = m.RunErr.Error()
			}
		case domain.StatusSkipped:
			s.Skipped = append(s.Skipped, m.Name)
		}
	}
	sort.Strings(s.Ok)
	sort.Strings(s.Failed)
	sort.Strings(s.Skipped)
	return s
}
