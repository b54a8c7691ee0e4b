package loader

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultEnvPrefix is the prefix of environment overrides.
const DefaultEnvPrefix = "LINESTACK_"

// ValueKind is the type an environment value is converted to.
type ValueKind int

const (
	// KindString keeps the value as written.
	KindString ValueKind = iota
	// KindInt parses a base-10 integer.
	KindInt
	// KindBool accepts true/false, yes/no, on/off and 1/0.
	KindBool
)

// envMapping binds one variable to a config path.
type envMapping struct {
	path string
	kind ValueKind
}

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string                // Environment variable prefix (e.g., "LINESTACK_")
	mapping map[string]envMapping // Env var -> config path and type
	lookup  func(string) (string, bool)
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "LINESTACK_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(prefix),
		lookup:  os.LookupEnv,
	}
}

// defaultEnvMapping returns the default environment variable mappings.
func defaultEnvMapping(prefix string) map[string]envMapping {
	return map[string]envMapping{
		prefix + "OUTPUT":      {"editor.output_path", KindString},
		prefix + "MAX_HISTORY": {"history.max_entries", KindInt},
		prefix + "COLOR":       {"ui.color", KindBool},
		prefix + "MAX_WIDTH":   {"ui.max_width", KindInt},
		prefix + "LOG_LEVEL":   {"logging.level", KindString},
		prefix + "LOG_FILE":    {"logging.file", KindString},
	}
}

// AddMapping adds a custom environment variable mapping.
func (l *EnvLoader) AddMapping(envVar, configPath string, kind ValueKind) {
	if l.mapping == nil {
		l.mapping = make(map[string]envMapping)
	}
	l.mapping[envVar] = envMapping{path: configPath, kind: kind}
}

// Load reads mapped environment variables and returns a configuration map.
// Empty string values are treated as valid values, not as unset. A value
// that does not parse as its kind is an error naming the variable.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for env, m := range l.mapping {
		val, ok := l.lookup(env)
		if !ok {
			continue
		}
		v, err := parseValue(val, m.kind)
		if err != nil {
			return nil, fmt.Errorf("environment variable %s: %w", env, err)
		}
		SetByPath(config, m.path, v)
	}

	if len(config) == 0 {
		return nil, nil
	}
	return config, nil
}

// parseValue converts s to kind.
func parseValue(s string, kind ValueKind) (any, error) {
	switch kind {
	case KindInt:
		i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", s)
		}
		return i, nil
	case KindBool:
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "yes", "on", "1":
			return true, nil
		case "false", "no", "off", "0":
			return false, nil
		}
		return nil, fmt.Errorf("invalid boolean %q", s)
	default:
		return s, nil
	}
}

// SetByPath sets a value in a nested map using a dot-separated path.
func SetByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]
		if next, ok := current[part].(map[string]any); ok {
			current = next
		} else {
			next := make(map[string]any)
			current[part] = next
			current = next
		}
	}

	current[parts[len(parts)-1]] = value
}
