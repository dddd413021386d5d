package confinode

import (
	"context"
	"sync"
	"testing"

	"github.com/amitgilad3/confinode/gateway"
	"github.com/amitgilad3/confinode/loaders"
	"github.com/amitgilad3/confinode/logging"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

const (
	testHome    = "/home/user"
	testProject = "/home/user/project"
)

// recordingGateway records every operation as "<kind> <path>" and can force a
// listing order or a listing failure.
type recordingGateway struct {
	*gateway.FS

	mu      sync.Mutex
	calls   []string
	order   map[string][]string
	listErr error
}

func newRecordingGateway(fsys afero.Fs) *recordingGateway {
	return &recordingGateway{FS: gateway.NewFS(fsys), order: make(map[string][]string)}
}

func (g *recordingGateway) record(kind, path string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, kind+" "+path)
}

func (g *recordingGateway) Calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.calls...)
}

func (g *recordingGateway) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = nil
}

func (g *recordingGateway) list(path string) ([]string, error) {
	if g.listErr != nil {
		return nil, g.listErr
	}
	if names, ok := g.order[path]; ok {
		return names, nil
	}
	return g.FS.ListEntries(path)
}

func (g *recordingGateway) IsDirectory(path string) (bool, error) {
	g.record("isDirectory", path)
	return g.FS.IsDirectory(path)
}

func (g *recordingGateway) FileExists(path string) (bool, error) {
	g.record("fileExists", path)
	return g.FS.FileExists(path)
}

func (g *recordingGateway) ListEntries(path string) ([]string, error) {
	g.record("directoryEntries", path)
	return g.list(path)
}

func (g *recordingGateway) ReadAndParse(path string, loader loaders.Loader) (any, error) {
	g.record("loadAndParse", path)
	return g.FS.ReadAndParse(path, loader)
}

func (g *recordingGateway) IsDirectoryAsync(ctx context.Context, path string) <-chan gateway.Outcome[bool] {
	g.record("isDirectory", path)
	return g.FS.IsDirectoryAsync(ctx, path)
}

func (g *recordingGateway) FileExistsAsync(ctx context.Context, path string) <-chan gateway.Outcome[bool] {
	g.record("fileExists", path)
	return g.FS.FileExistsAsync(ctx, path)
}

func (g *recordingGateway) ListEntriesAsync(ctx context.Context, path string) <-chan gateway.Outcome[[]string] {
	g.record("directoryEntries", path)
	return gateway.Go(ctx, func() ([]string, error) { return g.list(path) })
}

func (g *recordingGateway) ReadAndParseAsync(ctx context.Context, path string, loader loaders.Loader) <-chan gateway.Outcome[any] {
	g.record("loadAndParse", path)
	return g.FS.ReadAndParseAsync(ctx, path, loader)
}

// passthrough returns the raw document unchanged.
func passthrough() Description[any] {
	return DescriptionFunc[any](func(raw any, pctx ParserContext) (any, error) {
		return raw, nil
	})
}

// memTree creates dirs and files (path → content) in a fresh in-memory fs.
func memTree(t *testing.T, dirs []string, files map[string]string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for _, d := range dirs {
		require.NoError(t, fsys.MkdirAll(d, 0o755))
	}
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fsys, path, []byte(content), 0o644))
	}
	return fsys
}

type fixture struct {
	engine  *Confinode[any]
	gateway *recordingGateway
	logs    *logging.Recorder
}

func newFixture(t *testing.T, fsys afero.Fs, opts ...Option) fixture {
	t.Helper()
	rg := newRecordingGateway(fsys)
	rec := &logging.Recorder{}
	base := []Option{
		WithGateway(rg),
		WithLogger(rec),
		WithBaseDirectory(testProject),
		WithStopDirectory(testHome),
	}
	return fixture{
		engine:  New("app", passthrough(), append(base, opts...)...),
		gateway: rg,
		logs:    rec,
	}
}
