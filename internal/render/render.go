// Package render writes a loaded configuration for humans and scripts.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/amitgilad3/confinode"
	"github.com/amitgilad3/confinode/description"
	"github.com/amitgilad3/confinode/internal/normalize"
)

// Format selects the output encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatYAML, FormatJSON, FormatText:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want yaml, json or text)", s)
}

// Option configures rendering using the functional options pattern.
type Option func(*config)

type config struct {
	format      Format
	indent      string
	withSources bool
}

// AsJSON outputs JSON instead of YAML.
func AsJSON() Option {
	return WithFormat(FormatJSON)
}

// WithFormat sets the output format. Default: YAML.
func WithFormat(f Format) Option {
	return func(c *config) {
		c.format = f
	}
}

// WithIndent sets the indentation for JSON output. Default: two spaces.
func WithIndent(indent string) Option {
	return func(c *config) {
		c.indent = indent
	}
}

// WithSources adds the provenance of the configuration to text output.
// YAML and JSON output always carry it.
func WithSources() Option {
	return func(c *config) {
		c.withSources = true
	}
}

// document is the YAML and JSON shape of a result.
type document struct {
	Config any                  `json:"config" yaml:"config"`
	Files  confinode.Provenance `json:"files" yaml:"files"`
}

// Result writes r to w. Struct configurations are exported through their
// `conf` tags with secrets redacted; anything else is written as parsed.
func Result[T any](w io.Writer, r *confinode.Result[T], opts ...Option) error {
	if r == nil {
		return fmt.Errorf("result is nil")
	}

	c := config{format: FormatYAML, indent: "  "}
	for _, opt := range opts {
		opt(&c)
	}

	value := exportable(r.Config)
	switch c.format {
	case FormatJSON:
		return writeJSON(w, document{Config: value, Files: r.Files}, c.indent)
	case FormatText:
		return writeText(w, value, r.Files, c.withSources)
	default:
		return writeYAML(w, document{Config: value, Files: r.Files})
	}
}

// exportable returns what gets encoded for a configuration value.
func exportable(cfg any) any {
	v := reflect.ValueOf(cfg)
	if v.Kind() == reflect.Ptr && !v.IsNil() {
		v = v.Elem()
	}
	if v.Kind() == reflect.Struct {
		return description.Export(cfg)
	}
	return cfg
}

func writeJSON(w io.Writer, doc document, indent string) error {
	var data []byte
	var err error
	if indent != "" {
		data, err = json.MarshalIndent(doc, "", indent)
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return fmt.Errorf("json marshal error: %w", err)
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, doc document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("yaml encode error: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	return nil
}

// writeText outputs one "key: value" line per leaf, keys sorted.
func writeText(w io.Writer, value any, files confinode.Provenance, withSources bool) error {
	var b strings.Builder
	if withSources {
		writeProvenance(&b, files, 0)
	}

	flat, ok := value.(map[string]any)
	if ok {
		// Nested maps from raw documents; already-flat exports pass through.
		flat = normalize.Flatten(flat)
	}
	if !ok {
		fmt.Fprintf(&b, "%s\n", formatText(value))
	}
	for _, key := range normalize.SortedKeys(flat) {
		fmt.Fprintf(&b, "%s: %s\n", key, formatText(flat[key]))
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	return nil
}

func writeProvenance(b *strings.Builder, p confinode.Provenance, depth int) {
	fmt.Fprintf(b, "# %ssource: %s\n", strings.Repeat("  ", depth), p.Name)
	for _, parent := range p.Extends {
		writeProvenance(b, parent, depth+1)
	}
}

func formatText(v any) string {
	switch x := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return fmt.Sprintf("%q", x)
	case []string:
		return fmt.Sprintf("[%s]", strings.Join(x, ", "))
	default:
		return fmt.Sprintf("%v", x)
	}
}
