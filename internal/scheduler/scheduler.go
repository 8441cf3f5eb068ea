// Package scheduler builds the model dependency graph and computes a
// deterministic execution order, using Kahn's algorithm with lexicographic
// tie-breaking. It never executes a model; it only orders them.
package scheduler

import (
	"sort"

	"duck-demo/internal/config"
	"duck-demo/internal/domain"
)

// Plan is a deterministic execution order: a sequence of tiers, where every
// model in a tier is safe to run in parallel once every prior tier has
// completed. CycleBroken lists models excluded from Tiers because the
// tolerant policy cut a feedback edge pointing at them.
type Plan struct {
	Tiers       [][]string
	CycleBroken []string
}

// Schedule computes a Plan over names, where deps[name] holds the effective
// dependencies (edge (u, r) meaning "u depends on r, r must run first") for
// each model. A self-loop is always illegal. Under config.CyclePolicyStrict
// any cycle aborts with a *domain.CycleError; under CyclePolicyTolerant
// cycles are broken one at a time: for each cycle found, the edge whose head
// (dependency) name sorts lexicographically latest is chosen, and its tail
// model is dropped from the plan together with all of its edges. The set of
// dropped models is not guaranteed to be a minimum feedback-arc set.
func Schedule(names []string, deps map[string][]string, policy config.CyclePolicy) (Plan, error) {
	active := make(map[string]bool, len(names))
	for _, n := range names {
		active[n] = true
	}

	var cycleBroken []string
	for {
		tiers, remaining := kahn(names, deps, active)
		if len(remaining) == 0 {
			sort.Strings(cycleBroken)
			return Plan{Tiers: tiers, CycleBroken: cycleBroken}, nil
		}

		cycle := findCycle(remaining, deps, active)
		if policy != config.CyclePolicyTolerant {
			return Plan{}, &domain.CycleError{Cycle: cycle}
		}

		cut := chooseFeedbackEdge(cycle, deps)
		active[cut] = false
		cycleBroken = append(cycleBroken, cut)
	}
}

// kahn runs one pass of Kahn's algorithm over the subgraph induced by
// active, returning the tiers it could resolve and the names it could not
// (because they're part of an unbroken cycle).
func kahn(names []string, deps map[string][]string, active map[string]bool) (tiers [][]string, remaining []string) {
	activeNames := make([]string, 0, len(names))
	for _, n := range names {
		if active[n] {
			activeNames = append(activeNames, n)
		}
	}
	sort.Strings(activeNames)

	inDegree := make(map[string]int, len(activeNames))
	dependents := make(map[string][]string)
	for _, n := range activeNames {
		for _, r := range deps[n] {
			if active[r] {
				inDegree[n]++
				dependents[r] = append(dependents[r], n)
			}
		}
	}

	var queue []string
	for _, n := range activeNames {
		if inDegree[n] == 0 {
			queue = append(queue, n)
		}
	}
	sort.Strings(queue)

	processed := 0
	for len(queue) > 0 {
		tier := append([]string(nil), queue...)
		tiers = append(tiers, tier)
		processed += len(tier)

		seen := make(map[string]bool)
		var next []string
		for _, n := range queue {
			ds := append([]string(nil), dependents[n]...)
			sort.Strings(ds)
			for _, dep := range ds {
				inDegree[dep]--
				if inDegree[dep] == 0 && !seen[dep] {
					seen[dep] = true
					next = append(next, dep)
				}
			}
		}
		sort.Strings(next)
		queue = next
	}

	if processed == len(activeNames) {
		return tiers, nil
	}
	for _, n := range activeNames {
		if inDegree[n] > 0 {
			remaining = append(remaining, n)
		}
	}
	sort.Strings(remaining)
	return tiers, remaining
}

// findCycle runs a deterministic DFS over the subgraph induced by remaining
// (restricted to active nodes) and returns the first cycle found, in edge
// order starting at the lexicographically first root that can reach one.
func findCycle(remaining []string, deps map[string][]string, active map[string]bool) []string {
	inRemaining := make(map[string]bool, len(remaining))
	for _, n := range remaining {
		inRemaining[n] = true
	}

	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(remaining))
	var stack []string
	var cycle []string

	var visit func(n string) bool
	visit = func(n string) bool {
		color[n] = gray
		stack = append(stack, n)

		out := append([]string(nil), deps[n]...)
		sort.Strings(out)
		for _, d := range out {
			if !inRemaining[d] || !active[d] {
				continue
			}
			switch color[d] {
			case white:
				if visit(d) {
					return true
				}
			case gray:
				start := 0
				for i, s := range stack {
					if s == d {
						start = i
						break
					}
				}
				cycle = append([]string(nil), stack[start:]...)
				return true
			}
		}

		stack = stack[:len(stack)-1]
		color[n] = black
		return false
	}

	for _, n := range remaining {
		if color[n] == white {
			if visit(n) {
				return cycle
			}
		}
	}
	return remaining
}

// chooseFeedbackEdge picks, among the edges of cycle (cycle[i] depends on
// cycle[i+1], wrapping around), the one whose head (the dependency, the
// tail's target) sorts lexicographically latest, and returns its tail — the
// model whose dependency declaration is being dropped to break the cycle.
func chooseFeedbackEdge(cycle []string, deps map[string][]string) string {
	bestTail := ""
	bestHead := ""
	for i, tail := range cycle {
		head := cycle[(i+1)%len(cycle)]
		if !dependsOn(deps, tail, head) {
			continue
		}
		if head > bestHead {
			bestHead = head
			bestTail = tail
		}
	}
	if bestTail == "" {
		return cycle[0]
	}
	return bestTail
}

func dependsOn(deps map[string][]string, tail, head string) bool {
	for _, d := range deps[tail] {
		if d == head {
			return true
		}
	}
	return false
}
