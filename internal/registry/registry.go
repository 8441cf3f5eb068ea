// Package registry discovers model files under a directory, extracts each
// model's config annotations and SQL references, and resolves the resulting
// effective dependency set. It does not schedule or execute anything.
package registry

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"duck-demo/internal/configextract"
	"duck-demo/internal/domain"
	"duck-demo/internal/duckdbsql"
)

// Registry holds every discovered model, keyed by name, after config and
// reference extraction but before scheduling.
type Registry struct {
	models map[string]*domain.Model
	names  []string // sorted
}

// Load walks dir for *.sql files and builds one domain.Model per file. Model
// names are derived from the file stem; symlinks are never followed, so a
// symlinked directory or file is silently skipped rather than traversed.
// Load returns once all files are read; warnings carries non-fatal notices
// (duplicate @config/@depends_on annotations, unresolved references).
func Load(dir string, defaultOutput domain.OutputSpec) (*Registry, []string, error) {
	reg := &Registry{models: make(map[string]*domain.Model)}
	seenPaths := make(map[string][]string)
	var warnings []string

	walkErr := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".sql") {
			return nil
		}

		name := strings.TrimSuffix(d.Name(), ".sql")
		seenPaths[name] = append(seenPaths[name], path)

		raw, err := os.ReadFile(path) // #nosec G304 -- path is constrained to the walked dir
		if err != nil {
			return domain.ErrIo(path, err)
		}
		sql := string(raw)

		extracted, err := configextract.Extract(name, sql, defaultOutput)
		if err != nil {
			return err
		}
		warnings = append(warnings, extracted.Warnings...)

		stmt, err := duckdbsql.Parse(sql)
		if err != nil {
			return domain.ErrSqlParse(name, "", "%v", err)
		}

		reg.models[name] = &domain.Model{
			Name:         name,
			SourcePath:   path,
			SourceSQL:    sql,
			Output:       extracted.Output,
			DeclaredRefs: extracted.DependsOn,
			InferredRefs: inferredNames(stmt),
			EnvRefs:      extracted.EnvRefs,
			Status:       domain.StatusPending,
		}
		return nil
	})
	if walkErr != nil {
		return nil, warnings, walkErr
	}

	for name, paths := range seenPaths {
		if len(paths) > 1 {
			sort.Strings(paths)
			return nil, warnings, &domain.DuplicateModelError{Name: name, Paths: paths}
		}
	}

	reg.names = make([]string, 0, len(reg.models))
	for n := range reg.models {
		reg.names = append(reg.names, n)
	}
	sort.Strings(reg.names)

	reg.resolveEffectiveDeps()
	warnings = append(warnings, reg.unknownReferenceWarnings()...)

	if err := reg.checkOutputCollisions(); err != nil {
		return nil, warnings, err
	}

	return reg, warnings, nil
}

// inferredNames runs the scope-aware SQL reference extractor and reduces its
// result to a deduplicated, sorted list of bare tail names.
func inferredNames(stmt duckdbsql.Stmt) []string {
	refs := duckdbsql.CollectExternalRefs(stmt)
	seen := make(map[string]bool, len(refs))
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		if seen[r.Tail] {
			continue
		}
		seen[r.Tail] = true
		out = append(out, r.Tail)
	}
	sort.Strings(out)
	return out
}

// resolveEffectiveDeps sets each model's EffectiveDeps to the union of its
// declared dependencies and whichever inferred references match a known
// model name.
func (r *Registry) resolveEffectiveDeps() {
	for _, m := range r.models {
		deps := make(map[string]bool, len(m.DeclaredRefs)+len(m.InferredRefs))
		for _, d := range m.DeclaredRefs {
			deps[d] = true
		}
		for _, ref := range m.InferredRefs {
			if _, ok := r.models[ref]; ok {
				deps[ref] = true
			}
		}
		list := make([]string, 0, len(deps))
		for d := range deps {
			list = append(list, d)
		}
		sort.Strings(list)
		m.EffectiveDeps = list
	}
}

// unknownReferenceWarnings reports declared or inferred references that
// don't match any known model; these never block a run, only surface as
// non-fatal notices.
func (r *Registry) unknownReferenceWarnings() []string {
	var warnings []string
	for _, name := range r.names {
		m := r.models[name]
		for _, ref := range m.DeclaredRefs {
			if _, ok := r.models[ref]; !ok {
				warnings = append(warnings, (&domain.UnknownReferenceWarning{Model: m.Name, Reference: ref}).Error())
			}
		}
	}
	return warnings
}

// checkOutputCollisions detects two models configured to write the same
// materialization target. This must run at registration time, not
// execution time, so a collision is reported before any model runs.
func (r *Registry) checkOutputCollisions() error {
	byTarget := make(map[string][]string)
	for _, name := range r.names {
		m := r.models[name]
		key := outputKey(m)
		byTarget[key] = append(byTarget[key], m.Name)
	}

	keys := make([]string, 0, len(byTarget))
	for k := range byTarget {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		models := byTarget[k]
		if len(models) <= 1 {
			continue
		}
		sort.Strings(models)
		return &domain.OutputCollisionError{Location: targetLabel(k), Models: models}
	}
	return nil
}

// outputKey is the string a model's materialization target collapses to for
// collision detection: the resolved file path for file outputs, or the
// schema-qualified relation name for table/view outputs.
func outputKey(m *domain.Model) string {
	if m.Output.IsFileOutput() {
		return "file:" + m.Output.ResolvedLocation(m.Name)
	}
	schema := m.Output.Schema
	if schema == "" {
		schema = "main"
	}
	return "rel:" + schema + "." + m.Name
}

// targetLabel strips the outputKey's kind prefix for use in error messages.
func targetLabel(key string) string {
	if rest, ok := strings.CutPrefix(key, "file:"); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(key, "rel:"); ok {
		return rest
	}
	return key
}

// Get returns the named model, if it was discovered.
func (r *Registry) Get(name string) (*domain.Model, bool) {
	m, ok := r.models[name]
	return m, ok
}

// Names returns every discovered model name, sorted.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Models returns every discovered model, in the same order as Names.
func (r *Registry) Models() []*domain.Model {
	out := make([]*domain.Model, 0, len(r.names))
	for _, n := range r.names {
		out = append(out, r.models[n])
	}
	return out
}

// Len returns the number of discovered models.
func (r *Registry) Len() int {
	return len(r.names)
}
