package gateway

import (
	"context"

	"github.com/amitgilad3/confinode/loaders"
	"github.com/prometheus/client_golang/prometheus"
)

// Operation labels used by Instrumented.
const (
	OpIsDirectory  = "is_directory"
	OpFileExists   = "file_exists"
	OpListEntries  = "list_entries"
	OpReadAndParse = "read_and_parse"
)

// Instrumented wraps a Directory and counts every call, blocking or not.
type Instrumented struct {
	inner    Directory
	requests *prometheus.CounterVec
	failures *prometheus.CounterVec
}

// Instrument wraps dir and registers its counters with reg. A nil reg leaves
// the counters unregistered, which is handy in tests.
func Instrument(dir Directory, reg prometheus.Registerer) *Instrumented {
	g := &Instrumented{
		inner: dir,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "confinode",
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "Directory gateway operations performed, by operation",
		}, []string{"op"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "confinode",
			Subsystem: "gateway",
			Name:      "errors_total",
			Help:      "Directory gateway operations that returned an error, by operation",
		}, []string{"op"}),
	}
	if reg != nil {
		reg.MustRegister(g.requests, g.failures)
	}
	return g
}

// Requests returns the request counter for op.
func (g *Instrumented) Requests(op string) prometheus.Counter {
	return g.requests.WithLabelValues(op)
}

// Failures returns the error counter for op.
func (g *Instrumented) Failures(op string) prometheus.Counter {
	return g.failures.WithLabelValues(op)
}

func (g *Instrumented) observe(op string, err error) {
	g.requests.WithLabelValues(op).Inc()
	if err != nil {
		g.failures.WithLabelValues(op).Inc()
	}
}

func (g *Instrumented) IsDirectory(path string) (bool, error) {
	ok, err := g.inner.IsDirectory(path)
	g.observe(OpIsDirectory, err)
	return ok, err
}

func (g *Instrumented) FileExists(path string) (bool, error) {
	ok, err := g.inner.FileExists(path)
	g.observe(OpFileExists, err)
	return ok, err
}

func (g *Instrumented) ListEntries(path string) ([]string, error) {
	names, err := g.inner.ListEntries(path)
	g.observe(OpListEntries, err)
	return names, err
}

func (g *Instrumented) ReadAndParse(path string, loader loaders.Loader) (any, error) {
	value, err := g.inner.ReadAndParse(path, loader)
	g.observe(OpReadAndParse, err)
	return value, err
}

func (g *Instrumented) IsDirectoryAsync(ctx context.Context, path string) <-chan Outcome[bool] {
	return relay(ctx, g, OpIsDirectory, g.inner.IsDirectoryAsync(ctx, path))
}

func (g *Instrumented) FileExistsAsync(ctx context.Context, path string) <-chan Outcome[bool] {
	return relay(ctx, g, OpFileExists, g.inner.FileExistsAsync(ctx, path))
}

func (g *Instrumented) ListEntriesAsync(ctx context.Context, path string) <-chan Outcome[[]string] {
	return relay(ctx, g, OpListEntries, g.inner.ListEntriesAsync(ctx, path))
}

func (g *Instrumented) ReadAndParseAsync(ctx context.Context, path string, loader loaders.Loader) <-chan Outcome[any] {
	return relay(ctx, g, OpReadAndParse, g.inner.ReadAndParseAsync(ctx, path, loader))
}

// relay forwards an outcome after counting it.
func relay[V any](ctx context.Context, g *Instrumented, op string, in <-chan Outcome[V]) <-chan Outcome[V] {
	return Go(context.WithoutCancel(ctx), func() (V, error) {
		out := <-in
		g.observe(op, out.Err)
		return out.Value, out.Err
	})
}
