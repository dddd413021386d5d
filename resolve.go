package confinode

import (
	"path/filepath"
	"strings"
)

// abs resolves path against the base directory.
func (c *Confinode[T]) abs(path string) string {
	if path == "" {
		return c.baseDir
	}
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(c.baseDir, path)
}

// moduleCandidates lists, in priority order, the files name may refer to:
//   - an absolute path is taken as is
//   - "./x" and "../x" are relative to the base directory
//   - anything else is a module name with an optional sub-path ("shared/app.yaml"),
//     looked up under each module search path in turn
func (c *Confinode[T]) moduleCandidates(name string) []string {
	if name == "" {
		return nil
	}
	if filepath.IsAbs(name) {
		return []string{filepath.Clean(name)}
	}
	if isExplicitlyRelative(name) {
		return []string{filepath.Join(c.baseDir, name)}
	}

	out := make([]string, 0, len(c.modulePaths))
	for _, dir := range c.modulePaths {
		out = append(out, filepath.Join(dir, name))
	}
	return out
}

func isExplicitlyRelative(name string) bool {
	slashed := filepath.ToSlash(name)
	return slashed == "." || slashed == ".." ||
		strings.HasPrefix(slashed, "./") || strings.HasPrefix(slashed, "../")
}
