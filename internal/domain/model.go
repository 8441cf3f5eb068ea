package domain

import "fmt"

// OutputKind identifies how a model's result is materialized.
type OutputKind string

// Recognized output kinds. Table and View target the embedded database
// directly; Parquet, CSV, and JSON are file outputs written via COPY.
const (
	OutputTable   OutputKind = "table"
	OutputView    OutputKind = "view"
	OutputParquet OutputKind = "parquet"
	OutputCSV     OutputKind = "csv"
	OutputJSON    OutputKind = "json"
)

// IsFileOutput reports whether kind writes to the filesystem instead of the
// embedded database's catalog.
func (k OutputKind) IsFileOutput() bool {
	return k == OutputParquet || k == OutputCSV || k == OutputJSON
}

// copyFormat returns the DuckDB COPY ... (FORMAT ...) token for a file kind.
func (k OutputKind) copyFormat() string {
	switch k {
	case OutputParquet:
		return "PARQUET"
	case OutputCSV:
		return "CSV"
	case OutputJSON:
		return "JSON"
	default:
		return ""
	}
}

// CopyFormat returns the DuckDB COPY ... (FORMAT ...) token for a file kind,
// and false if kind is not a file output.
func (k OutputKind) CopyFormat() (string, bool) {
	f := k.copyFormat()
	return f, f != ""
}

// OutputSpec is the tagged description of how a model's SQL result is
// materialized: as a table or view in the embedded database's catalog, or as
// a file written via COPY. Schema applies only to Table/View; Location
// applies only to file kinds and may contain the "{table_name}" token.
type OutputSpec struct {
	Kind     OutputKind
	Schema   string
	Location string
}

// ResolvedLocation substitutes the {table_name} token in Location with name.
func (o OutputSpec) ResolvedLocation(name string) string {
	return substituteTableName(o.Location, name)
}

func substituteTableName(location, name string) string {
	const token = "{table_name}"
	out := make([]byte, 0, len(location))
	for {
		idx := indexOf(location, token)
		if idx < 0 {
			out = append(out, location...)
			break
		}
		out = append(out, location[:idx]...)
		out = append(out, name...)
		location = location[idx+len(token):]
	}
	return string(out)
}

func indexOf(s, sub string) int {
	n, m := len(s), len(sub)
	if m == 0 || m > n {
		return -1
	}
	for i := 0; i+m <= n; i++ {
		if s[i:i+m] == sub {
			return i
		}
	}
	return -1
}

// Status is the lifecycle state of a model within a single run.
// Transitions are strictly forward: Pending -> Running -> {Ok, Failed, Skipped}.
type Status string

// Model status values.
const (
	StatusPending Status = "PENDING"
	StatusRunning Status = "RUNNING"
	StatusOk      Status = "OK"
	StatusFailed  Status = "FAILED"
	StatusSkipped Status = "SKIPPED"
)

// SkipReason explains why a model transitioned to StatusSkipped.
type SkipReason string

// Skip reasons.
const (
	SkipAncestorFailed SkipReason = "ANCESTOR_FAILED"
	SkipCycleBroken    SkipReason = "CYCLE_BROKEN"
)

// EnvVarRef is a ${NAME} or ${NAME:-default} placeholder found in a model's
// SQL text. It is collected at registration time and resolved against the
// process environment at execution time.
type EnvVarRef struct {
	Name       string
	Default    string
	HasDefault bool
}

// Model is the unit of work: exactly one SQL file that produces one named
// relation. Name is derived from the file's stem and is stable for the
// lifetime of a run; Output and the ref sets are computed once at
// registration and never mutated thereafter.
type Model struct {
	Name       string
	SourcePath string
	SourceSQL  string
	Output     OutputSpec

	// DeclaredRefs are names listed in "-- @depends_on: ..." annotations.
	DeclaredRefs []string
	// InferredRefs are names produced by the SQL reference extractor,
	// scope-aware over CTEs and aliases.
	InferredRefs []string
	// EffectiveDeps is DeclaredRefs union (InferredRefs intersected with
	// known model names); computed once the full registry is available.
	EffectiveDeps []string
	// EnvRefs lists the ${NAME} placeholders found in SourceSQL, collected
	// but not resolved until execution.
	EnvRefs []EnvVarRef

	Status     Status
	SkipReason SkipReason
	RunErr     error

	// RowsAffected is populated after a successful Table materialization
	// with the new table's row count (zero if the count query fails); it
	// stays zero for View and File outputs.
	RowsAffected int64
}

// String renders the model for log lines and error messages.
func (m *Model) String() string {
	return fmt.Sprintf("%s (%s)", m.Name, m.SourcePath)
}

// RunSummary aggregates terminal model statuses at the end of a run.
type RunSummary struct {
	Ok      []string
	Failed  []string
	Skipped []string
	// FirstError maps a failed model name to its underlying error detail.
	FirstError map[string]string
}

// ExitCode maps the run outcome to the CLI contract's exit codes.
// Planning errors are reported separately by the caller (exit code 2/3);
// this only distinguishes a clean run (0) from one with execution failures (1).
func (s RunSummary) ExitCode() int {
	if len(s.Failed) > 0 {
		return 1
	}
	return 0
}
