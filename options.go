package confinode

import (
	"github.com/amitgilad3/confinode/gateway"
	"github.com/amitgilad3/confinode/internal/normalize"
	"github.com/amitgilad3/confinode/loaders"
	"github.com/amitgilad3/confinode/logging"
)

// Option configures a Confinode.
type Option func(*settings)

type settings struct {
	files       []FileDescription
	filesSet    bool
	stopDir     string
	stopDirSet  bool
	baseDir     string
	modulePaths []string
	cache       bool
	logger      logging.Logger
	custom      []customLoader
	gateway     gateway.Directory
}

type customLoader struct {
	suffix string
	name   string
	loader loaders.Loader
}

func defaultSettings() settings {
	return settings{cache: true}
}

// WithFiles replaces the default file descriptions. Order is priority.
func WithFiles(files ...FileDescription) Option {
	return func(s *settings) {
		s.files = append([]FileDescription(nil), files...)
		s.filesSet = true
	}
}

// WithStopDirectory sets the highest directory the search examines.
// Default: the user's home directory. An empty dir searches up to the root.
func WithStopDirectory(dir string) Option {
	return func(s *settings) {
		s.stopDir = dir
		s.stopDirSet = true
	}
}

// WithBaseDirectory sets the directory relative paths are resolved against.
// Default: the working directory at construction time.
func WithBaseDirectory(dir string) Option {
	return func(s *settings) {
		s.baseDir = dir
	}
}

// WithModulePaths sets the directories Load searches for module names.
// Default: the base directory.
func WithModulePaths(paths ...string) Option {
	return func(s *settings) {
		s.modulePaths = append([]string(nil), paths...)
	}
}

// WithCache enables or disables the listing and result caches. Default: enabled.
func WithCache(enabled bool) Option {
	return func(s *settings) {
		s.cache = enabled
	}
}

// WithLogger sets the message sink. Default: logging.Default().
func WithLogger(l logging.Logger) Option {
	return func(s *settings) {
		s.logger = l
	}
}

// WithLoader registers a custom loader for suffix. Custom loaders take
// precedence over built-ins; the last registration for a suffix wins.
func WithLoader(suffix, name string, l loaders.Loader) Option {
	return func(s *settings) {
		s.custom = append(s.custom, customLoader{suffix: suffix, name: name, loader: l})
	}
}

// WithCustomLoaders registers a loader per suffix, as WithLoader does.
func WithCustomLoaders(custom map[string]loaders.Ref) Option {
	return func(s *settings) {
		for _, suffix := range normalize.SortedKeys(custom) {
			ref := custom[suffix]
			s.custom = append(s.custom, customLoader{suffix: suffix, name: ref.Name, loader: ref.Loader})
		}
	}
}

// WithGateway replaces the filesystem access layer. Default: gateway.OS().
func WithGateway(g gateway.Directory) Option {
	return func(s *settings) {
		s.gateway = g
	}
}
