package engine

import (
	"regexp"
	"strings"

	"duck-demo/internal/domain"
)

var envTokenPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-[^}]*)?\}`)

// Lookup resolves an environment variable by name, returning ok=false when
// unset. Production code passes os.LookupEnv; tests pass a fixed map.
type Lookup func(name string) (string, bool)

// SubstituteEnvVars replaces every ${NAME} / ${NAME:-default} token in sql
// with its resolved value from lookup, per spec.md section 4.5/6/8 (P10). A
// token with no default whose name is unset yields a *domain.EnvVarError
// naming the model and the unresolved variable; substitution still walks
// the rest of the string for diagnostics but the caller should treat any
// returned error as fatal for this model.
func SubstituteEnvVars(modelName, sqlText string, lookup Lookup) (string, error) {
	var firstErr error
	result := envTokenPattern.ReplaceAllStringFunc(sqlText, func(token string) string {
		m := envTokenPattern.FindStringSubmatch(token)
		name, rawDefault := m[1], m[2]

		if v, ok := lookup(name); ok {
			return v
		}
		if rawDefault != "" {
			return strings.TrimPrefix(rawDefault, ":-")
		}
		if firstErr == nil {
			firstErr = &domain.EnvVarError{Model: modelName, Name: name}
		}
		return token
	})
	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}
