package loaders

import "bytes"

// Loader parses the content of a configuration file.
// A nil result with a nil error means the document is empty.
type Loader interface {
	Load(content []byte, fileName string) (any, error)
}

// Func is a function adapter for the Loader interface.
type Func func(content []byte, fileName string) (any, error)

// Load calls f.
func (f Func) Load(content []byte, fileName string) (any, error) {
	return f(content, fileName)
}

// Conditional is implemented by loaders that depend on something found through
// the module search paths. Unavailable loaders are skipped during resolution.
type Conditional interface {
	Available(modulePaths []string) bool
}

// Ref identifies a loader. Name is used in log messages.
type Ref struct {
	Name    string
	Builtin bool
	Loader  Loader
}

// Named wraps a custom loader into a Ref.
func Named(name string, l Loader) Ref {
	return Ref{Name: name, Loader: l}
}

// String returns the loader name.
func (r Ref) String() string {
	if r.Name == "" {
		return "anonymous"
	}
	return r.Name
}

func blank(content []byte) bool {
	return len(bytes.TrimSpace(content)) == 0
}
