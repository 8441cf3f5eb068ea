// Package configextract reads the "-- @config:" and "-- @depends_on:"
// annotations embedded in a model's SQL comments, plus any ${NAME}
// environment placeholders, without evaluating or resolving any of it.
package configextract

import (
	"fmt"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v4"

	"duck-demo/internal/domain"
)

var (
	configDirective    = regexp.MustCompile(`(?m)^\s*--\s*@config:\s*(.+)$`)
	dependsOnDirective = regexp.MustCompile(`(?m)^\s*--\s*@depends_on:\s*(.+)$`)
	envVarPattern      = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-[^}]*)?\}`)
)

// rawConfig is the recognized shape of an @config annotation's value. It is
// parsed as a YAML flow mapping, which already gives us whitespace
// insensitivity and single/double-quoted strings for free; unrecognized keys
// are silently dropped by yaml.Unmarshal's default behavior.
type rawConfig struct {
	Output struct {
		Type     string `yaml:"type"`
		Location string `yaml:"location"`
		Schema   string `yaml:"schema"`
	} `yaml:"output"`
}

// Extracted holds everything derived from a model's raw SQL text before it
// is parsed as SQL.
type Extracted struct {
	Output    domain.OutputSpec
	DependsOn []string
	EnvRefs   []domain.EnvVarRef
	Warnings  []string
}

// Extract scans sqlText for @config, @depends_on, and ${...} annotations.
// defaults supplies the output spec used when no @config annotation is
// present, or for any field the annotation omits. modelName labels errors
// and warnings only.
func Extract(modelName, sqlText string, defaults domain.OutputSpec) (Extracted, error) {
	out := Extracted{Output: defaults}

	if matches := configDirective.FindAllStringSubmatch(sqlText, -1); len(matches) > 0 {
		cfg, err := parseConfigAnnotation(matches[0][1])
		if err != nil {
			return out, domain.ErrConfigParse(modelName, "@config: %v", err)
		}
		out.Output = mergeOutput(defaults, cfg)
		if len(matches) > 1 {
			out.Warnings = append(out.Warnings, fmt.Sprintf(
				"model %s: %d @config annotations found, only the first is honored", modelName, len(matches)))
		}
	}

	if matches := dependsOnDirective.FindAllStringSubmatch(sqlText, -1); len(matches) > 0 {
		out.DependsOn = splitDependsOn(matches[0][1])
		if len(matches) > 1 {
			out.Warnings = append(out.Warnings, fmt.Sprintf(
				"model %s: %d @depends_on annotations found, only the first is honored", modelName, len(matches)))
		}
	}

	out.EnvRefs = collectEnvRefs(sqlText)

	return out, nil
}

func parseConfigAnnotation(raw string) (rawConfig, error) {
	var cfg rawConfig
	if err := yaml.Unmarshal([]byte(strings.TrimSpace(raw)), &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func mergeOutput(defaults domain.OutputSpec, cfg rawConfig) domain.OutputSpec {
	out := defaults
	if cfg.Output.Type != "" {
		out.Kind = domain.OutputKind(strings.ToLower(cfg.Output.Type))
	}
	if cfg.Output.Schema != "" {
		out.Schema = cfg.Output.Schema
	}
	if cfg.Output.Location != "" {
		out.Location = cfg.Output.Location
	}
	return out
}

func splitDependsOn(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.Trim(p, `"'`)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func collectEnvRefs(sqlText string) []domain.EnvVarRef {
	matches := envVarPattern.FindAllStringSubmatch(sqlText, -1)
	seen := make(map[string]bool, len(matches))
	var refs []domain.EnvVarRef
	for _, m := range matches {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		ref := domain.EnvVarRef{Name: name}
		if m[2] != "" {
			ref.HasDefault = true
			ref.Default = strings.TrimPrefix(m[2], ":-")
		}
		refs = append(refs, ref)
	}
	return refs
}
