package description

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var (
	durationType = reflect.TypeOf(time.Duration(0))
	timeType     = reflect.TypeOf(time.Time{})
)

// timeLayouts are tried in order when a string is bound to time.Time.
var timeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// convertValue converts a raw document value to target. Strings coming from
// environment variables and defaults are parsed; typed values from structured
// formats are converted when the conversion is lossless.
func convertValue(raw any, target reflect.Type) (any, error) {
	if isOptionalType(target) {
		out := reflect.New(target).Elem()
		if raw == nil {
			return out.Interface(), nil
		}
		inner, err := convertValue(raw, target.Field(0).Type)
		if err != nil {
			return nil, err
		}
		out.Field(0).Set(reflect.ValueOf(inner))
		out.Field(1).SetBool(true)
		return out.Interface(), nil
	}

	if raw == nil {
		return reflect.Zero(target).Interface(), nil
	}

	switch target {
	case durationType:
		return toDuration(raw)
	case timeType:
		return toTime(raw)
	}

	out := reflect.New(target).Elem()
	switch target.Kind() {
	case reflect.String:
		out.SetString(toString(raw))
	case reflect.Bool:
		b, err := toBool(raw)
		if err != nil {
			return nil, cannotConvert(raw, target)
		}
		out.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := toInt64(raw)
		if err != nil || out.OverflowInt(n) {
			return nil, cannotConvert(raw, target)
		}
		out.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := toInt64(raw)
		if err != nil || n < 0 || out.OverflowUint(uint64(n)) {
			return nil, cannotConvert(raw, target)
		}
		out.SetUint(uint64(n))
	case reflect.Float32, reflect.Float64:
		f, err := toFloat64(raw)
		if err != nil || out.OverflowFloat(f) {
			return nil, cannotConvert(raw, target)
		}
		out.SetFloat(f)
	case reflect.Slice:
		return convertSlice(raw, target)
	case reflect.Interface:
		if !reflect.TypeOf(raw).AssignableTo(target) {
			return nil, cannotConvert(raw, target)
		}
		out.Set(reflect.ValueOf(raw))
	default:
		return nil, fmt.Errorf("unsupported field type %s", target)
	}
	return out.Interface(), nil
}

func cannotConvert(raw any, target reflect.Type) error {
	return fmt.Errorf("cannot convert %v (%T) to %s", raw, raw, target)
}

func toString(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func toBool(raw any) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		return parseBool(v)
	default:
		return false, fmt.Errorf("not a boolean: %T", raw)
	}
}

// parseBool accepts true/false, 1/0 and yes/no, case-insensitively.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", s)
	}
}

func toInt64(raw any) (int64, error) {
	v := reflect.ValueOf(raw)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if v.Uint() > math.MaxInt64 {
			return 0, fmt.Errorf("%d overflows int64", v.Uint())
		}
		return int64(v.Uint()), nil
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if f != math.Trunc(f) || f < math.MinInt64 || f > math.MaxInt64 {
			return 0, fmt.Errorf("%v is not an integer", f)
		}
		return int64(f), nil
	case reflect.String:
		return strconv.ParseInt(strings.TrimSpace(v.String()), 10, 64)
	default:
		return 0, fmt.Errorf("not an integer: %T", raw)
	}
}

func toFloat64(raw any) (float64, error) {
	v := reflect.ValueOf(raw)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	case reflect.String:
		return strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
	default:
		return 0, fmt.Errorf("not a number: %T", raw)
	}
}

// toDuration parses duration strings ("5s"); integers are nanoseconds.
func toDuration(raw any) (time.Duration, error) {
	switch v := raw.(type) {
	case time.Duration:
		return v, nil
	case string:
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return 0, cannotConvert(raw, durationType)
		}
		return d, nil
	}
	n, err := toInt64(raw)
	if err != nil {
		return 0, cannotConvert(raw, durationType)
	}
	return time.Duration(n), nil
}

func toTime(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, cannotConvert(raw, timeType)
}

// parseStringSlice accepts a list or a comma-separated string.
func parseStringSlice(raw any) ([]string, error) {
	switch v := raw.(type) {
	case []string:
		return v, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return []string{}, nil
		}
		parts := strings.Split(v, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts, nil
	case []any:
		out := make([]string, len(v))
		for i, item := range v {
			out[i] = toString(item)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot convert %T to a list", raw)
	}
}

func convertSlice(raw any, target reflect.Type) (any, error) {
	var items []any
	switch v := raw.(type) {
	case []any:
		items = v
	default:
		strs, err := parseStringSlice(raw)
		if err != nil {
			return nil, cannotConvert(raw, target)
		}
		items = make([]any, len(strs))
		for i, s := range strs {
			items[i] = s
		}
	}

	out := reflect.MakeSlice(target, len(items), len(items))
	for i, item := range items {
		elem, err := convertValue(item, target.Elem())
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if elem != nil {
			out.Index(i).Set(reflect.ValueOf(elem))
		}
	}
	return out.Interface(), nil
}
