package description

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/amitgilad3/confinode/internal/normalize"
)

// bindStruct populates the struct rv points to from data, a flat map of
// lowercase key paths. Missing and null keys fall back to the default directive.
// keyPrefix is the key path of the enclosing struct.
func bindStruct(rv reflect.Value, data map[string]any, fieldPrefix, keyPrefix string) []FieldError {
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}

	var errs []FieldError
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tags := parseTag(field.Tag.Get("conf"))
		fieldPath := joinFieldPath(fieldPrefix, field.Name)
		keyPath := determineKeyPath(field.Name, tags, keyPrefix)

		switch {
		case isNestedStruct(field.Type):
			errs = append(errs, bindStruct(rv.Field(i), data, fieldPath, nestedPrefix(keyPath, tags))...)
			continue
		case isStringMap(field.Type):
			if err := bindMap(rv.Field(i), data, keyPath); err != nil {
				errs = append(errs, FieldError{FieldPath: fieldPath, Code: ErrCodeInvalidType, Message: err.Error()})
			}
			continue
		}

		raw, ok := data[keyPath]
		if !ok || raw == nil {
			switch {
			case tags.hasDefault:
				raw = tags.defValue
			case tags.required:
				errs = append(errs, FieldError{
					FieldPath: fieldPath,
					Code:      ErrCodeRequired,
					Message:   fmt.Sprintf("key %q is required but not provided", keyPath),
				})
				continue
			default:
				continue
			}
		}

		value, err := convertValue(raw, field.Type)
		if err != nil {
			errs = append(errs, FieldError{FieldPath: fieldPath, Code: ErrCodeInvalidType, Message: err.Error()})
			continue
		}
		if value != nil {
			rv.Field(i).Set(reflect.ValueOf(value))
		}
	}
	return errs
}

// bindMap collects every key under keyPath into a map field: with keyPath
// "labels", "labels.team" becomes the entry "team".
func bindMap(fv reflect.Value, data map[string]any, keyPath string) error {
	prefix := keyPath + "."
	out := reflect.MakeMap(fv.Type())
	for _, key := range normalize.SortedKeys(data) {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		value, err := convertValue(data[key], fv.Type().Elem())
		if err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		elem := reflect.Zero(fv.Type().Elem())
		if value != nil {
			elem = reflect.ValueOf(value)
		}
		out.SetMapIndex(reflect.ValueOf(key[len(prefix):]).Convert(fv.Type().Key()), elem)
	}
	if out.Len() > 0 {
		fv.Set(out)
	}
	return nil
}

// determineKeyPath returns the key path a field binds to. A name directive is
// absolute; otherwise the lowercased field name is appended to parentPrefix.
func determineKeyPath(fieldName string, tags tagConfig, parentPrefix string) string {
	if tags.name != "" {
		return strings.ToLower(tags.name)
	}
	return normalize.ApplyPrefix(parentPrefix, normalize.FieldKey(fieldName))
}

// nestedPrefix is the key prefix for the fields of a nested struct.
func nestedPrefix(keyPath string, tags tagConfig) string {
	if tags.prefix != "" {
		return strings.ToLower(tags.prefix)
	}
	return keyPath
}

func joinFieldPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

// isNestedStruct reports whether t is bound field by field. time.Time and
// Optional are leaves.
func isNestedStruct(t reflect.Type) bool {
	return t.Kind() == reflect.Struct && t.PkgPath() != "time" && !isOptionalType(t)
}

func isStringMap(t reflect.Type) bool {
	return t.Kind() == reflect.Map && t.Key().Kind() == reflect.String
}

// keySet describes the keys a struct type accepts: exact key paths plus the
// prefixes owned by map fields.
type keySet struct {
	exact    map[string]bool
	prefixes []string
	env      map[string]string // key path → variable named by an env directive
}

func (s keySet) accepts(key string) bool {
	if s.exact[key] {
		return true
	}
	for _, p := range s.prefixes {
		if strings.HasPrefix(key, p+".") {
			return true
		}
	}
	return false
}

// collectKeys walks t and records every key it binds.
func collectKeys(t reflect.Type) keySet {
	s := keySet{exact: make(map[string]bool), env: make(map[string]string)}
	collectKeysRecursive(t, "", s)
	return s
}

func collectKeysRecursive(t reflect.Type, prefix string, s keySet) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tags := parseTag(field.Tag.Get("conf"))
		keyPath := determineKeyPath(field.Name, tags, prefix)

		switch {
		case isNestedStruct(field.Type):
			collectKeysRecursive(field.Type, nestedPrefix(keyPath, tags), s)
		case isStringMap(field.Type):
			s.prefixes = append(s.prefixes, keyPath)
		default:
			s.exact[keyPath] = true
			if tags.env != "" {
				s.env[keyPath] = tags.env
			}
		}
	}
}

// unknownKeys reports the keys of data no field binds, in sorted order.
func unknownKeys(data map[string]any, keys keySet) []FieldError {
	var errs []FieldError
	for _, key := range normalize.SortedKeys(data) {
		if !keys.accepts(key) {
			errs = append(errs, FieldError{
				FieldPath: key,
				Code:      ErrCodeUnknownKey,
				Message:   "unknown configuration key",
			})
		}
	}
	return errs
}
