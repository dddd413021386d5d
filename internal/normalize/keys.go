package normalize

import (
	"sort"
	"strings"
)

// ToLowerDotPath normalizes an environment variable name to a lowercase dot-separated path.
// Double underscores (__) are treated as level separators and converted to dots.
// Examples:
//   - "FOO__BAR" → "foo.bar"
//   - "DB_MAX_CONNECTIONS" → "db_max_connections"
func ToLowerDotPath(key string) string {
	return strings.ToLower(strings.ReplaceAll(key, "__", "."))
}

// FieldKey derives the configuration key for a struct field name.
// Keys are matched case-insensitively, so the field name is simply lowercased.
//   - "Host" → "host"
//   - "MaxConnections" → "maxconnections"
func FieldKey(fieldName string) string {
	return strings.ToLower(fieldName)
}

// ApplyPrefix combines a prefix with a key to create a nested configuration path.
//   - ApplyPrefix("database", "host") → "database.host"
//   - ApplyPrefix("", "host") → "host"
func ApplyPrefix(prefix, key string) string {
	if prefix == "" {
		return key
	}
	if key == "" {
		return prefix
	}
	return prefix + "." + key
}

// Flatten turns a nested document into lowercase dot-separated keys.
// Non-map values (including slices) are kept as leaves. A top-level value that
// is not a map yields an empty result.
func Flatten(doc any) map[string]any {
	out := make(map[string]any)
	flatten("", doc, out)
	return out
}

func flatten(prefix string, value any, out map[string]any) {
	switch v := value.(type) {
	case map[string]any:
		for key, val := range v {
			flatten(ApplyPrefix(prefix, strings.ToLower(key)), val, out)
		}
	case map[any]any:
		for key, val := range v {
			keyStr, ok := key.(string)
			if !ok {
				continue
			}
			flatten(ApplyPrefix(prefix, strings.ToLower(keyStr)), val, out)
		}
	default:
		if prefix != "" {
			out[prefix] = value
		}
	}
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
