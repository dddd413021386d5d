package loaders

import (
	"path/filepath"
	"sort"
	"strings"
)

// Registry resolves which loader, if any, handles a file.
// Registration is not safe for concurrent use; resolution is read-only.
type Registry struct {
	custom  map[string]Ref
	builtin map[string]Ref
}

// New creates a Registry holding the built-in loaders.
func New() *Registry {
	return &Registry{
		custom: make(map[string]Ref),
		builtin: map[string]Ref{
			"yaml":       YAML,
			"yml":        YAML,
			"json":       JSON,
			"toml":       TOML,
			"hcl":        HCL,
			"cue":        CUE,
			"env":        Dotenv,
			"properties": Properties,
		},
	}
}

// Register adds a custom loader for suffix (with or without the leading dot).
// Registering the same suffix twice keeps the last loader.
func (r *Registry) Register(suffix, name string, l Loader) *Registry {
	r.custom[normalizeSuffix(suffix)] = Ref{Name: name, Loader: l}
	return r
}

// Resolve returns the loader for fileName, or nil when no loader matches.
// When suffix is set it must match a registered suffix exactly; otherwise
// every suffix of the base name is tried, longest first ("config.yaml" before
// "yaml"). Custom loaders win over built-ins.
func (r *Registry) Resolve(modulePaths []string, fileName, suffix string) *Ref {
	var candidates []string
	if suffix != "" {
		candidates = []string{normalizeSuffix(suffix)}
	} else {
		candidates = Suffixes(filepath.Base(fileName))
	}

	for _, table := range []map[string]Ref{r.custom, r.builtin} {
		for _, s := range candidates {
			ref, ok := table[s]
			if !ok {
				continue
			}
			if c, ok := ref.Loader.(Conditional); ok && !c.Available(modulePaths) {
				continue
			}
			return &ref
		}
	}
	return nil
}

// Suffixes lists the registered suffixes, custom ones first, each group sorted.
func (r *Registry) Suffixes() []string {
	custom := keys(r.custom)
	var builtin []string
	for _, s := range keys(r.builtin) {
		if _, overridden := r.custom[s]; !overridden {
			builtin = append(builtin, s)
		}
	}
	return append(custom, builtin...)
}

// Lookup returns the loader registered for an exact suffix.
func (r *Registry) Lookup(suffix string) (Ref, bool) {
	s := normalizeSuffix(suffix)
	if ref, ok := r.custom[s]; ok {
		return ref, true
	}
	ref, ok := r.builtin[s]
	return ref, ok
}

// Suffixes returns the candidate suffixes of a base name, longest first.
// A leading dot does not start a suffix, so ".apprc.yml" yields only "yml".
//   - "app.config.yaml" → ["config.yaml", "yaml"]
//   - ".apprc" → []
func Suffixes(base string) []string {
	var out []string
	for i := 1; i < len(base); i++ {
		if base[i] == '.' && i+1 < len(base) {
			out = append(out, strings.ToLower(base[i+1:]))
		}
	}
	return out
}

func normalizeSuffix(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "."))
}

func keys(m map[string]Ref) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
