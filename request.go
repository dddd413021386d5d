package confinode

import "github.com/amitgilad3/confinode/loaders"

// Request describes one I/O step of a search or load. The search procedure
// never touches the filesystem itself; it hands Requests to its driver and
// continues with the answers. Each Request carries everything needed to
// fulfill it.
type Request interface {
	Kind() string   // Operation name, e.g. "isDirectory"
	Target() string // Path the operation is about
	request()
}

// IsDirectory asks whether Path is a directory. Answered with a bool.
type IsDirectory struct{ Path string }

// FileExists asks whether Path is an existing file. Answered with a bool.
type FileExists struct{ Path string }

// DirectoryEntries asks for the entry names of Path. Answered with a []string.
type DirectoryEntries struct{ Path string }

// LoadAndParse asks to read Path with Loader. Answered with the raw document,
// nil when the loader found it empty.
type LoadAndParse struct {
	Path   string
	Loader loaders.Ref
}

func (IsDirectory) Kind() string { return "isDirectory" }
func (FileExists) Kind() string { return "fileExists" }
func (DirectoryEntries) Kind() string { return "directoryEntries" }
func (LoadAndParse) Kind() string { return "loadAndParse" }

func (r IsDirectory) Target() string { return r.Path }
func (r FileExists) Target() string { return r.Path }
func (r DirectoryEntries) Target() string { return r.Path }
func (r LoadAndParse) Target() string { return r.Path }

func (IsDirectory) request() {}
func (FileExists) request() {}
func (DirectoryEntries) request() {}
func (LoadAndParse) request() {}
