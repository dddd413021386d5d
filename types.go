package confinode

import "github.com/amitgilad3/confinode/loaders"

// FileDescription is one candidate configuration file. Either a basename
// pattern (Basename) or an exact file name with its loader (File).
type FileDescription struct {
	stem   string
	name   string
	loader loaders.Ref
}

// Basename matches directory entries named "<stem>.<suffix>" for any suffix
// known to the loader registry. When several entries match, the first one in
// directory listing order wins and a warning is logged. Listing order comes
// from the filesystem and is not portable, so keep a single file per stem.
func Basename(stem string) FileDescription {
	return FileDescription{stem: stem}
}

// File matches the exact file name and parses it with loader.
func File(name string, loader loaders.Ref) FileDescription {
	return FileDescription{name: name, loader: loader}
}

// IsBasename reports whether d is a basename pattern.
func (d FileDescription) IsBasename() bool {
	return d.stem != ""
}

// String returns "<stem>.*" for patterns and the file name otherwise.
func (d FileDescription) String() string {
	if d.IsBasename() {
		return d.stem + ".*"
	}
	return d.name
}

// DefaultFiles returns the file descriptions used when none are configured:
// the name key of package.json, .<name>rc as YAML, .<name>rc.* and <name>.config.*.
func DefaultFiles(name string) []FileDescription {
	return []FileDescription{
		File("package.json", loaders.PackageJSON(name)),
		File("."+name+"rc", loaders.YAML),
		Basename("." + name + "rc"),
		Basename(name + ".config"),
	}
}

// ParserContext tells a Description where the raw value came from.
type ParserContext struct {
	KeyName  string // Dotted path of the value inside the document ("" for the root)
	FileName string // Absolute path of the file
	Final    bool   // No further layers will be merged on top
}

// Description turns a raw parsed document into the typed configuration.
type Description[T any] interface {
	// Parse returns the typed value or an error (typically *description.ValidationError).
	Parse(raw any, pctx ParserContext) (T, error)
}

// DescriptionFunc is a function adapter for the Description interface.
type DescriptionFunc[T any] func(raw any, pctx ParserContext) (T, error)

// Parse calls f.
func (f DescriptionFunc[T]) Parse(raw any, pctx ParserContext) (T, error) {
	return f(raw, pctx)
}
