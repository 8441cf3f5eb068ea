package orchestrator

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"duck-demo/internal/domain"
	"duck-demo/internal/engine"
	"duck-demo/internal/registry"
)

// executor holds the per-run state shared across tiers: the registry being
// mutated, the engine connection (serialized behind mu in parallel mode),
// and the forward dependents graph used for failure containment.
type executor struct {
	reg        *registry.Registry
	eng        *engine.Engine
	opts       Options
	dependents map[string][]string

	mu sync.Mutex
}

func newExecutor(reg *registry.Registry, eng *engine.Engine, opts Options, dependents map[string][]string) *executor {
	return &executor{reg: reg, eng: eng, opts: opts, dependents: dependents}
}

// runTierSerial executes every non-skipped model in tier one at a time,
// checking cancellation between each (spec.md section 5). It stops and
// returns a *domain.Cancelled error as soon as the signal fires, leaving
// the model it was about to start (and everything after it) Pending.
func (x *executor) runTierSerial(ctx context.Context, tier []string) error {
	for _, name := range tier {
		if cancelled(x.opts.Cancel) {
			return &domain.Cancelled{NextModel: name}
		}
		x.runOne(ctx, name)
	}
	return nil
}

// runTierParallel resolves each model's substituted SQL concurrently
// (the only genuinely parallelizable pre-execution work, per spec.md
// section 5) but serializes the actual Materialize call against the single
// engine connection behind x.mu. Cancellation is checked once before the
// tier starts; mid-model cancellation is not supported (spec.md section 5).
func (x *executor) runTierParallel(ctx context.Context, tier []string) error {
	if cancelled(x.opts.Cancel) {
		return &domain.Cancelled{NextModel: tier[0]}
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, name := range tier {
		name := name
		g.Go(func() error {
			x.runOne(gctx, name)
			return nil
		})
	}
	_ = g.Wait()
	return nil
}

// runOne transitions a single model from Pending through Running to a
// terminal status, substituting environment variables and dispatching to
// the engine. It never returns an error: failures are recorded on the
// model itself, and propagated to dependents via markDescendantsSkipped.
func (x *executor) runOne(ctx context.Context, name string) {
	m, ok := x.reg.Get(name)
	if !ok || m.Status != domain.StatusPending {
		return
	}

	m.Status = domain.StatusRunning

	substituted, err := engine.SubstituteEnvVars(m.Name, m.SourceSQL, x.opts.lookup())
	if err != nil {
		x.fail(m, err)
		return
	}

	x.mu.Lock()
	err = x.eng.Materialize(ctx, m, substituted)
	x.mu.Unlock()

	if err != nil {
		x.fail(m, err)
		return
	}
	m.Status = domain.StatusOk
}

func (x *executor) fail(m *domain.Model, err error) {
	m.Status = domain.StatusFailed
	m.RunErr = err
	x.opts.logger().Error("model failed", "model", m.Name, "error", err)
	x.markDescendantsSkipped(m.Name)
}

// markDescendantsSkipped walks the forward dependents graph from failed and
// marks every still-Pending descendant Skipped(AncestorFailed), per spec.md
// P9. Models with no path from failed are left untouched and still run.
func (x *executor) markDescendantsSkipped(failed string) {
	queue := append([]string(nil), x.dependents[failed]...)
	seen := make(map[string]bool, len(queue))
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if seen[name] {
			continue
		}
		seen[name] = true

		m, ok := x.reg.Get(name)
		if !ok {
			continue
		}
		if m.Status == domain.StatusPending {
			m.Status = domain.StatusSkipped
			m.SkipReason = domain.SkipAncestorFailed
		}
		queue = append(queue, x.dependents[name]...)
	}
}

