package confinode

import (
	"errors"
	"fmt"
)

// Loading failure causes.
var (
	ErrFileNotFound = errors.New("confinode: file not found")
	ErrNoLoader     = errors.New("confinode: no loader found")
)

// LoadingError is a recoverable failure tied to one file or name: it was not
// found, no loader handles it, its content did not parse or did not validate.
// During a search it only disqualifies the directory being examined.
type LoadingError struct {
	Name string // File path, or the name given to Load
	Err  error
}

// Error formats the failure with its file name.
func (e *LoadingError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Name, e.Err)
}

func (e *LoadingError) Unwrap() error {
	return e.Err
}

// IsLoadingError reports whether err is, or wraps, a *LoadingError.
func IsLoadingError(err error) bool {
	var le *LoadingError
	return errors.As(err, &le)
}

func loadingError(name string, err error) error {
	return &LoadingError{Name: name, Err: err}
}

// unexpectedValue reports a driver answering a Request with the wrong type.
func unexpectedValue(req Request, v any) error {
	return fmt.Errorf("request %s(%s) answered with %T", req.Kind(), req.Target(), v)
}
