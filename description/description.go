package description

import (
	"fmt"
	"os"
	"reflect"

	"github.com/amitgilad3/confinode"
	"github.com/amitgilad3/confinode/internal/normalize"
)

// Validator performs custom validation after tag-based validation.
// Use for cross-field or semantic checks.
type Validator[T any] interface {
	// Validate checks configuration. Return *ValidationError for field-level errors.
	Validate(cfg *T) error
}

// ValidatorFunc is a function adapter for the Validator interface.
type ValidatorFunc[T any] func(cfg *T) error

// Validate calls f.
func (f ValidatorFunc[T]) Validate(cfg *T) error {
	return f(cfg)
}

// Option configures a StructDescription.
type Option func(*settings)

type settings struct {
	strict    bool
	useEnv    bool
	envPrefix string
	environ   func() []string
}

// Strict controls whether keys no field binds are rejected. Default: true.
func Strict(strict bool) Option {
	return func(s *settings) {
		s.strict = strict
	}
}

// WithEnvPrefix overlays environment variables starting with prefix on top of
// the file values, and enables env directives.
func WithEnvPrefix(prefix string) Option {
	return func(s *settings) {
		s.useEnv = true
		s.envPrefix = prefix
	}
}

// WithEnviron replaces os.Environ as the source of environment variables.
func WithEnviron(environ func() []string) Option {
	return func(s *settings) {
		s.environ = environ
	}
}

// StructDescription binds documents into T. T must be a struct type.
type StructDescription[T any] struct {
	settings   settings
	keys       keySet
	validators []Validator[T]
}

var _ confinode.Description[struct{}] = (*StructDescription[struct{}])(nil)

// Struct returns a description binding documents into T.
// It panics if T is not a struct type.
func Struct[T any](opts ...Option) *StructDescription[T] {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("description: %s is not a struct type", t))
	}

	s := settings{strict: true, environ: os.Environ}
	for _, opt := range opts {
		opt(&s)
	}
	return &StructDescription[T]{settings: s, keys: collectKeys(t)}
}

// WithValidator adds a custom validator, run after tag-based validation
// succeeds. Validators run in the order they were added.
func (d *StructDescription[T]) WithValidator(v Validator[T]) *StructDescription[T] {
	d.validators = append(d.validators, v)
	return d
}

// Parse binds raw into a new T and validates it.
func (d *StructDescription[T]) Parse(raw any, pctx confinode.ParserContext) (T, error) {
	var zero T

	if raw != nil && !isObject(raw) {
		return zero, &ValidationError{FieldErrors: []FieldError{{
			FieldPath: pctx.KeyName,
			Code:      ErrCodeInvalidType,
			Message:   fmt.Sprintf("expected an object, got %T", raw),
		}}}
	}

	data := normalize.Flatten(raw)
	if d.settings.useEnv {
		overlayEnv(data, d.settings.environ(), d.settings.envPrefix, d.keys)
	}

	var cfg T
	errs := bindStruct(reflect.ValueOf(&cfg), data, "", "")
	if d.settings.strict {
		errs = append(errs, unknownKeys(data, d.keys)...)
	}
	if len(errs) == 0 {
		errs = validateStruct(reflect.ValueOf(&cfg), "")
	}
	if len(errs) > 0 {
		return zero, &ValidationError{FieldErrors: errs}
	}

	for _, v := range d.validators {
		if err := v.Validate(&cfg); err != nil {
			return zero, fmt.Errorf("validate %s: %w", pctx.FileName, err)
		}
	}
	return cfg, nil
}

func isObject(raw any) bool {
	switch raw.(type) {
	case map[string]any, map[any]any:
		return true
	}
	return false
}

// Any passes the raw document through unchanged.
func Any() confinode.Description[any] {
	return confinode.DescriptionFunc[any](func(raw any, pctx confinode.ParserContext) (any, error) {
		return raw, nil
	})
}

// Map requires the document to be an object and returns it with string keys.
func Map() confinode.Description[map[string]any] {
	return confinode.DescriptionFunc[map[string]any](func(raw any, pctx confinode.ParserContext) (map[string]any, error) {
		switch m := raw.(type) {
		case map[string]any:
			return m, nil
		case map[any]any:
			out := make(map[string]any, len(m))
			for k, v := range m {
				out[fmt.Sprint(k)] = v
			}
			return out, nil
		}
		return nil, &ValidationError{FieldErrors: []FieldError{{
			FieldPath: pctx.KeyName,
			Code:      ErrCodeInvalidType,
			Message:   fmt.Sprintf("expected an object, got %T", raw),
		}}}
	})
}
