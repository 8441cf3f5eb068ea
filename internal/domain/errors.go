// Package domain defines the core types and tagged errors shared by every
// stage of the transformation pipeline: registry, graph, scheduler, and
// execution engine.
package domain

import "fmt"

// Phase identifies which pipeline stage produced an error.
type Phase string

// Pipeline phases, used to annotate errors for user-facing reporting.
const (
	PhaseParse   Phase = "parse"
	PhasePlan    Phase = "plan"
	PhaseExecute Phase = "execute"
)

// ConfigParseError indicates a malformed @config annotation in a model's SQL.
type ConfigParseError struct {
	Model  string
	Detail string
}

func (e *ConfigParseError) Error() string {
	return fmt.Sprintf("model %s: config parse error: %s", e.Model, e.Detail)
}

// ErrConfigParse creates a ConfigParseError with a formatted detail message.
func ErrConfigParse(model, format string, args ...interface{}) *ConfigParseError {
	return &ConfigParseError{Model: model, Detail: fmt.Sprintf(format, args...)}
}

// SqlParseError indicates a model's SQL could not be parsed.
type SqlParseError struct {
	Model    string
	Position string // optional; empty if the parser did not supply one
	Detail   string
}

func (e *SqlParseError) Error() string {
	if e.Position != "" {
		return fmt.Sprintf("model %s: sql parse error at %s: %s", e.Model, e.Position, e.Detail)
	}
	return fmt.Sprintf("model %s: sql parse error: %s", e.Model, e.Detail)
}

// ErrSqlParse creates a SqlParseError with a formatted detail message.
func ErrSqlParse(model, position, format string, args ...interface{}) *SqlParseError {
	return &SqlParseError{Model: model, Position: position, Detail: fmt.Sprintf(format, args...)}
}

// DuplicateModelError indicates two or more files resolve to the same model name.
type DuplicateModelError struct {
	Name  string
	Paths []string
}

func (e *DuplicateModelError) Error() string {
	return fmt.Sprintf("duplicate model %q: %v", e.Name, e.Paths)
}

// OutputCollisionError indicates two models declare the same resolved file location.
type OutputCollisionError struct {
	Location string
	Models   []string
}

func (e *OutputCollisionError) Error() string {
	return fmt.Sprintf("output collision at %q between models %v", e.Location, e.Models)
}

// UnknownReferenceWarning indicates an inferred reference has no matching
// model. It is non-fatal and is surfaced as a diagnostic, never aborting a run.
type UnknownReferenceWarning struct {
	Model     string
	Reference string
}

func (e *UnknownReferenceWarning) Error() string {
	return fmt.Sprintf("model %s: unknown reference %q (treated as external)", e.Model, e.Reference)
}

// CycleError indicates a dependency cycle was detected under the strict cycle policy.
type CycleError struct {
	Cycle []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle: %v", e.Cycle)
}

// EnvVarError indicates a required ${NAME} placeholder had no value and no default.
type EnvVarError struct {
	Model string
	Name  string
}

func (e *EnvVarError) Error() string {
	return fmt.Sprintf("model %s: environment variable %q is not set and has no default", e.Model, e.Name)
}

// ExecError wraps a failure returned by the embedded database while
// materializing a model.
type ExecError struct {
	Model string
	Cause error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("model %s: execution failed: %v", e.Model, e.Cause)
}

func (e *ExecError) Unwrap() error { return e.Cause }

// ErrExec wraps cause as an ExecError for the given model.
func ErrExec(model string, cause error) *ExecError {
	return &ExecError{Model: model, Cause: cause}
}

// IoError indicates a file-system read or write failure.
type IoError struct {
	Path  string
	Cause error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("io error at %s: %v", e.Path, e.Cause)
}

func (e *IoError) Unwrap() error { return e.Cause }

// ErrIo wraps cause as an IoError for the given path.
func ErrIo(path string, cause error) *IoError {
	return &IoError{Path: path, Cause: cause}
}

// Cancelled indicates the run was cooperatively cancelled between models.
type Cancelled struct {
	NextModel string // the model that was about to start, if any
}

func (e *Cancelled) Error() string {
	if e.NextModel == "" {
		return "run cancelled"
	}
	return fmt.Sprintf("run cancelled before starting model %s", e.NextModel)
}

// ValidationError indicates malformed configuration or CLI input unrelated to a specific model.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
