package gateway

import (
	"context"
	"fmt"

	"github.com/amitgilad3/confinode/loaders"
)

// Blocking performs each operation before returning.
// Missing paths are not errors: IsDirectory and FileExists report false and
// ListEntries returns an empty listing.
type Blocking interface {
	IsDirectory(path string) (bool, error)
	FileExists(path string) (bool, error)
	ListEntries(path string) ([]string, error)
	// ReadAndParse reads path and hands the content to loader. A nil value
	// means the loader found the document empty.
	ReadAndParse(path string, loader loaders.Loader) (any, error)
}

// NonBlocking starts each operation and returns immediately. Each channel
// receives exactly one Outcome.
type NonBlocking interface {
	IsDirectoryAsync(ctx context.Context, path string) <-chan Outcome[bool]
	FileExistsAsync(ctx context.Context, path string) <-chan Outcome[bool]
	ListEntriesAsync(ctx context.Context, path string) <-chan Outcome[[]string]
	ReadAndParseAsync(ctx context.Context, path string, loader loaders.Loader) <-chan Outcome[any]
}

// Directory offers both forms of every operation.
type Directory interface {
	Blocking
	NonBlocking
}

// Outcome is the result of a non-blocking operation.
type Outcome[V any] struct {
	Value V
	Err   error
}

// PanicError carries a panic raised by fn inside Go.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Go runs fn on its own goroutine and delivers its result on the returned
// channel. The channel is buffered so an abandoned outcome never blocks.
// If ctx is done before fn starts, the context error is delivered instead.
// A panic in fn is delivered as a *PanicError.
func Go[V any](ctx context.Context, fn func() (V, error)) <-chan Outcome[V] {
	ch := make(chan Outcome[V], 1)
	go func() {
		if err := ctx.Err(); err != nil {
			ch <- Outcome[V]{Err: err}
			return
		}
		defer func() {
			if r := recover(); r != nil {
				ch <- Outcome[V]{Err: &PanicError{Value: r}}
			}
		}()
		v, err := fn()
		ch <- Outcome[V]{Value: v, Err: err}
	}()
	return ch
}

// Await waits for an outcome or for ctx to be done, whichever comes first.
func Await[V any](ctx context.Context, ch <-chan Outcome[V]) (V, error) {
	select {
	case out := <-ch:
		return out.Value, out.Err
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	}
}
