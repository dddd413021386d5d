package description

import (
	"reflect"
	"time"
)

// Redacted replaces the value of secret fields in Export.
const Redacted = "***redacted***"

// Export flattens a bound configuration struct (or pointer to one) into key
// paths and values, the inverse of binding. Secret fields are redacted and
// unset Optional fields are omitted. Durations and times are rendered as
// strings. A nil pointer or a non-struct yields an empty map.
func Export(cfg any) map[string]any {
	result := make(map[string]any)

	v := reflect.ValueOf(cfg)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return result
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return result
	}

	exportFields(v, "", result)
	return result
}

func exportFields(v reflect.Value, keyPrefix string, result map[string]any) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tags := parseTag(field.Tag.Get("conf"))
		keyPath := determineKeyPath(field.Name, tags, keyPrefix)
		fv := v.Field(i)

		switch {
		case isOptionalType(field.Type):
			if fv.Field(1).Bool() {
				result[keyPath] = exportValue(fv.Field(0), tags)
			}
		case isNestedStruct(field.Type):
			exportFields(fv, nestedPrefix(keyPath, tags), result)
		case isStringMap(field.Type):
			iter := fv.MapRange()
			for iter.Next() {
				result[keyPath+"."+iter.Key().String()] = exportValue(iter.Value(), tags)
			}
		default:
			result[keyPath] = exportValue(fv, tags)
		}
	}
}

func exportValue(v reflect.Value, tags tagConfig) any {
	if tags.secret {
		return Redacted
	}
	switch {
	case v.Type() == durationType:
		return v.Interface().(time.Duration).String()
	case v.Type() == timeType:
		return v.Interface().(time.Time).Format(time.RFC3339)
	}
	return v.Interface()
}
