package description

import (
	"strings"

	"github.com/amitgilad3/confinode/internal/normalize"
)

// envValues scans environ ("KEY=value" entries) for variables starting with
// prefix, matched case-insensitively, and returns them keyed by normalized
// path with the prefix stripped: "APP_DB__HOST" → "db.host".
func envValues(environ []string, prefix string) map[string]any {
	result := make(map[string]any)
	upperPrefix := strings.ToUpper(prefix)

	for _, env := range environ {
		key, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}
		if !strings.HasPrefix(strings.ToUpper(key), upperPrefix) {
			continue
		}
		key = key[len(prefix):]
		if key == "" {
			continue
		}
		result[normalize.ToLowerDotPath(key)] = value
	}
	return result
}

// lookupEnv finds name in environ, case-sensitively.
func lookupEnv(environ []string, name string) (string, bool) {
	for _, env := range environ {
		key, value, ok := strings.Cut(env, "=")
		if ok && key == name {
			return value, true
		}
	}
	return "", false
}

// overlayEnv copies environment values over data. Only keys some field binds
// are taken, so unrelated variables sharing the prefix never trip strict mode.
// Variables named by env directives win over prefixed ones.
func overlayEnv(data map[string]any, environ []string, prefix string, keys keySet) {
	for key, value := range envValues(environ, prefix) {
		if keys.accepts(key) {
			data[key] = value
		}
	}
	for _, key := range normalize.SortedKeys(keys.env) {
		if value, ok := lookupEnv(environ, keys.env[key]); ok {
			data[key] = value
		}
	}
}
