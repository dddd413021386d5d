package confinode

import (
	"context"
	"errors"
	"fmt"

	"github.com/amitgilad3/confinode/gateway"
	"github.com/amitgilad3/confinode/logging"
)

// operation is a search or load bound to its arguments.
type operation[T any] func(p *procedure[T]) (*Result[T], error)

// runSync drives op on the caller's goroutine, answering every Request with
// a blocking gateway call.
func (c *Confinode[T]) runSync(ctx context.Context, op operation[T]) *Result[T] {
	p := &procedure[T]{ctx: ctx, c: c, do: c.fulfill}
	return c.settle(guard(p, op))
}

// runAsync drives op on its own goroutine, answering every Request with a
// non-blocking gateway call and waiting for it before issuing the next one.
// The caller gets a Future immediately.
func (c *Confinode[T]) runAsync(ctx context.Context, op operation[T]) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		p := &procedure[T]{ctx: ctx, c: c, do: c.fulfillAsync}
		f.result = c.settle(guard(p, op))
		close(f.done)
	}()
	return f
}

func (c *Confinode[T]) fulfill(ctx context.Context, req Request) (any, error) {
	switch r := req.(type) {
	case IsDirectory:
		return c.gateway.IsDirectory(r.Path)
	case FileExists:
		return c.gateway.FileExists(r.Path)
	case DirectoryEntries:
		return c.gateway.ListEntries(r.Path)
	case LoadAndParse:
		return c.gateway.ReadAndParse(r.Path, r.Loader.Loader)
	default:
		return nil, fmt.Errorf("unsupported request %T", req)
	}
}

func (c *Confinode[T]) fulfillAsync(ctx context.Context, req Request) (any, error) {
	switch r := req.(type) {
	case IsDirectory:
		return gateway.Await(ctx, c.gateway.IsDirectoryAsync(ctx, r.Path))
	case FileExists:
		return gateway.Await(ctx, c.gateway.FileExistsAsync(ctx, r.Path))
	case DirectoryEntries:
		return gateway.Await(ctx, c.gateway.ListEntriesAsync(ctx, r.Path))
	case LoadAndParse:
		return gateway.Await(ctx, c.gateway.ReadAndParseAsync(ctx, r.Path, r.Loader.Loader))
	default:
		return nil, fmt.Errorf("unsupported request %T", req)
	}
}

// guard runs op, turning a panic from user code (loaders, descriptions,
// gateways) into an internal error.
func guard[T any](p *procedure[T], op operation[T]) (result *Result[T], err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, &gateway.PanicError{Value: r}
		}
	}()
	return op(p)
}

// settle logs a failed operation and maps it to "not found".
func (c *Confinode[T]) settle(result *Result[T], err error) *Result[T] {
	if err == nil {
		return result
	}
	var le *LoadingError
	if errors.As(err, &le) {
		c.log(logging.Error(logging.MsgLoadingError, "file", le.Name, "error", le.Err))
	} else {
		c.log(logging.Error(logging.MsgInternalError, "error", err))
	}
	return nil
}

// Future is the pending result of an asynchronous search or load.
type Future[T any] struct {
	done   chan struct{}
	result *Result[T]
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the operation completes and returns its result (nil when
// nothing was found).
func (f *Future[T]) Wait() *Result[T] {
	<-f.done
	return f.result
}

// Await is Wait bounded by ctx. The operation itself keeps running when ctx
// is done first.
func (f *Future[T]) Await(ctx context.Context) (*Result[T], error) {
	select {
	case <-f.done:
		return f.result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
