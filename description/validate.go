package description

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// validateStruct walks a bound struct and checks the required, min, max and
// oneof directives of every field, nested structs included.
func validateStruct(rv reflect.Value, parentPath string) []FieldError {
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	var errs []FieldError
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		fieldPath := joinFieldPath(parentPath, field.Name)
		fv := rv.Field(i)
		tags := parseTag(field.Tag.Get("conf"))

		switch {
		case isOptionalType(field.Type):
			// Only a set Optional carries a value to check.
			if fv.Field(1).Bool() {
				errs = append(errs, validateField(fv.Field(0), fieldPath, tags)...)
			}
		case isNestedStruct(field.Type):
			errs = append(errs, validateStruct(fv, fieldPath)...)
		default:
			errs = append(errs, validateField(fv, fieldPath, tags)...)
		}
	}
	return errs
}

// validateField checks one value against its tag directives. A zero value
// only fails the required check; min, max and oneof apply to set values.
func validateField(fv reflect.Value, fieldPath string, tags tagConfig) []FieldError {
	if fv.IsZero() {
		if tags.required {
			return []FieldError{{
				FieldPath: fieldPath,
				Code:      ErrCodeRequired,
				Message:   "field is required but not provided",
			}}
		}
		return nil
	}

	var errs []FieldError
	if fe, ok := checkBound(fv, fieldPath, tags.min, ErrCodeMin); ok {
		errs = append(errs, fe)
	}
	if fe, ok := checkBound(fv, fieldPath, tags.max, ErrCodeMax); ok {
		errs = append(errs, fe)
	}
	if fe, ok := checkOneof(fv, fieldPath, tags.oneof); ok {
		errs = append(errs, fe)
	}
	return errs
}

// checkBound compares fv with a min or max directive. Strings and slices are
// bounded by length. Unparsable bounds are ignored.
func checkBound(fv reflect.Value, fieldPath, bound, code string) (FieldError, bool) {
	if bound == "" {
		return FieldError{}, false
	}
	limit, err := strconv.ParseFloat(bound, 64)
	if err != nil {
		return FieldError{}, false
	}

	var value float64
	what := "value"
	switch fv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		value = float64(fv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		value = float64(fv.Uint())
	case reflect.Float32, reflect.Float64:
		value = fv.Float()
	case reflect.String, reflect.Slice:
		value = float64(fv.Len())
		what = "length"
	default:
		return FieldError{}, false
	}

	switch {
	case code == ErrCodeMin && value < limit:
		return FieldError{
			FieldPath: fieldPath,
			Code:      ErrCodeMin,
			Message:   fmt.Sprintf("%s %g is below minimum %g", what, value, limit),
		}, true
	case code == ErrCodeMax && value > limit:
		return FieldError{
			FieldPath: fieldPath,
			Code:      ErrCodeMax,
			Message:   fmt.Sprintf("%s %g exceeds maximum %g", what, value, limit),
		}, true
	}
	return FieldError{}, false
}

// checkOneof compares the textual form of scalar values with the allowed set.
func checkOneof(fv reflect.Value, fieldPath string, allowed []string) (FieldError, bool) {
	if len(allowed) == 0 {
		return FieldError{}, false
	}

	var s string
	switch fv.Kind() {
	case reflect.String:
		s = fv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		s = strconv.FormatInt(fv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		s = strconv.FormatUint(fv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		s = strconv.FormatFloat(fv.Float(), 'f', -1, 64)
	case reflect.Bool:
		s = strconv.FormatBool(fv.Bool())
	default:
		return FieldError{}, false
	}

	for _, a := range allowed {
		if s == a {
			return FieldError{}, false
		}
	}
	return FieldError{
		FieldPath: fieldPath,
		Code:      ErrCodeOneOf,
		Message:   fmt.Sprintf("value %q must be one of: %s", s, strings.Join(allowed, ", ")),
	}, true
}
