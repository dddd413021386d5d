package description

import (
	"reflect"
	"strings"
)

// Optional distinguishes "not set" from "zero value".
type Optional[T any] struct {
	Value T
	Set   bool
}

// Get returns the wrapped value and whether it was set.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set
}

// OrDefault returns the wrapped value or the provided default.
func (o Optional[T]) OrDefault(defaultVal T) T {
	if o.Set {
		return o.Value
	}
	return defaultVal
}

var optionalPkgPath = reflect.TypeOf(Optional[int]{}).PkgPath()

// isOptionalType reports whether t is an instantiation of Optional.
func isOptionalType(t reflect.Type) bool {
	return t.Kind() == reflect.Struct &&
		t.PkgPath() == optionalPkgPath &&
		strings.HasPrefix(t.Name(), "Optional[")
}
