package confinode

import (
	"context"
	"os"
	"path/filepath"

	"github.com/amitgilad3/confinode/gateway"
	"github.com/amitgilad3/confinode/loaders"
	"github.com/amitgilad3/confinode/logging"
)

// Confinode searches for and loads the configuration of one application.
// Parameters are fixed at construction. Not safe for concurrent use: calls
// sharing an instance (including pending Futures) must be serialized.
type Confinode[T any] struct {
	name        string
	description Description[T]
	files       []FileDescription
	stopDir     string
	baseDir     string
	modulePaths []string
	registry    *loaders.Registry
	gateway     gateway.Directory
	logger      logging.Logger
	cache       *cache[T]
}

// New creates an engine for the application called name. description turns
// raw documents into T.
func New[T any](name string, description Description[T], opts ...Option) *Confinode[T] {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}

	baseDir := s.baseDir
	if baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			baseDir = wd
		} else {
			baseDir = string(filepath.Separator)
		}
	}
	if abs, err := filepath.Abs(baseDir); err == nil {
		baseDir = abs
	}

	c := &Confinode[T]{
		name:        name,
		description: description,
		baseDir:     filepath.Clean(baseDir),
		registry:    loaders.New(),
		gateway:     s.gateway,
		logger:      s.logger,
		cache:       newCache[T](s.cache),
	}

	c.files = DefaultFiles(name)
	if s.filesSet {
		c.files = s.files
	}

	switch {
	case s.stopDirSet && s.stopDir != "":
		c.stopDir = c.abs(s.stopDir)
	case !s.stopDirSet:
		if home, err := os.UserHomeDir(); err == nil {
			c.stopDir = filepath.Clean(home)
		}
	}

	c.modulePaths = []string{c.baseDir}
	if s.modulePaths != nil {
		c.modulePaths = make([]string, 0, len(s.modulePaths))
		for _, p := range s.modulePaths {
			c.modulePaths = append(c.modulePaths, c.abs(p))
		}
	}

	for _, cl := range s.custom {
		c.registry.Register(cl.suffix, cl.name, cl.loader)
	}
	if c.gateway == nil {
		c.gateway = gateway.OS()
	}
	if c.logger == nil {
		c.logger = logging.Default()
	}

	return c
}

// Name returns the application name.
func (c *Confinode[T]) Name() string {
	return c.name
}

// StopDirectory returns the highest directory a search examines ("" when the
// search may reach the filesystem root).
func (c *Confinode[T]) StopDirectory() string {
	return c.stopDir
}

// Registry returns the loader registry, built-ins plus custom loaders.
func (c *Confinode[T]) Registry() *loaders.Registry {
	return c.registry
}

// Search looks for the configuration from start (a file or directory,
// default: the base directory) up to the stop directory. Returns nil when
// nothing is found.
func (c *Confinode[T]) Search(ctx context.Context, start string) *Result[T] {
	return c.runSync(ctx, func(p *procedure[T]) (*Result[T], error) {
		return p.search(start)
	})
}

// SearchAsync is Search on the non-blocking driver.
func (c *Confinode[T]) SearchAsync(ctx context.Context, start string) *Future[T] {
	return c.runAsync(ctx, func(p *procedure[T]) (*Result[T], error) {
		return p.search(start)
	})
}

// Load loads a configuration by name without searching: an absolute path, a
// path relative to the base directory ("./conf/app.yaml"), or a module name
// with optional sub-path resolved against the module search paths. Returns
// nil when the file cannot be found or loaded.
func (c *Confinode[T]) Load(ctx context.Context, name string) *Result[T] {
	return c.runSync(ctx, func(p *procedure[T]) (*Result[T], error) {
		return p.load(name)
	})
}

// LoadAsync is Load on the non-blocking driver.
func (c *Confinode[T]) LoadAsync(ctx context.Context, name string) *Future[T] {
	return c.runAsync(ctx, func(p *procedure[T]) (*Result[T], error) {
		return p.load(name)
	})
}

// ClearCache drops every cached listing and result.
func (c *Confinode[T]) ClearCache() {
	c.cache.clear()
}

func (c *Confinode[T]) log(m logging.Message) {
	c.logger.Log(m)
}
