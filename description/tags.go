package description

import (
	"strings"
)

// tagConfig holds parsed directives from a struct field's `conf` tag.
type tagConfig struct {
	env        string   // Environment variable name (env:VAR_NAME)
	name       string   // Absolute key path (name:custom.path)
	prefix     string   // Key prefix for nested structs (prefix:foo)
	defValue   string   // Default value (default:value)
	min        string   // Minimum constraint (min:N)
	max        string   // Maximum constraint (max:M)
	oneof      []string // Allowed values (oneof:a,b,c)
	required   bool     // Field is required (required or required:true)
	secret     bool     // Field is secret (secret or secret:true)
	hasDefault bool     // Whether a default directive was present
}

// parseTag parses a `conf` struct tag into a structured tagConfig.
// Tag format: "directive1:value1,directive2:value2,..."
// Boolean directives can omit `:true` (e.g., "required" == "required:true").
func parseTag(tag string) tagConfig {
	cfg := tagConfig{}
	if tag == "" {
		return cfg
	}

	for _, directive := range splitDirectives(tag) {
		directive = strings.TrimSpace(directive)
		if directive == "" {
			continue
		}

		parts := strings.SplitN(directive, ":", 2)
		name := strings.TrimSpace(parts[0])
		var value string
		if len(parts) > 1 {
			value = parts[1] // empty values may be intentional (default:)
		}

		switch name {
		case "env":
			cfg.env = value
		case "name":
			cfg.name = value
		case "prefix":
			cfg.prefix = value
		case "default":
			cfg.defValue = value
			cfg.hasDefault = true
		case "min":
			cfg.min = value
		case "max":
			cfg.max = value
		case "oneof":
			if value != "" {
				cfg.oneof = strings.Split(value, ",")
				for i := range cfg.oneof {
					cfg.oneof[i] = strings.TrimSpace(cfg.oneof[i])
				}
			}
		case "required":
			cfg.required = parseFlag(value)
		case "secret":
			cfg.secret = parseFlag(value)
		}
	}

	return cfg
}

// parseFlag reads a boolean directive value. Anything but "false" is true.
func parseFlag(value string) bool {
	return value != "false"
}

// splitDirectives splits a tag string into individual directives. A comma
// inside oneof values only ends the directive when a known directive follows.
func splitDirectives(tag string) []string {
	var directives []string
	var current strings.Builder
	inOneof := false

	for i := 0; i < len(tag); i++ {
		ch := tag[i]

		if !inOneof && strings.HasPrefix(tag[i:], "oneof:") {
			inOneof = true
			current.WriteString("oneof:")
			i += len("oneof:") - 1
			continue
		}

		if ch != ',' {
			current.WriteByte(ch)
			continue
		}

		if inOneof && !startsWithDirective(tag[i+1:]) {
			current.WriteByte(ch)
			continue
		}
		inOneof = false
		directives = append(directives, current.String())
		current.Reset()
	}

	if current.Len() > 0 {
		directives = append(directives, current.String())
	}
	return directives
}

var directiveNames = []string{"env:", "name:", "prefix:", "default:", "min:", "max:", "oneof:", "required", "secret"}

// startsWithDirective checks if a string starts with a known directive name.
func startsWithDirective(s string) bool {
	s = strings.TrimSpace(s)
	for _, d := range directiveNames {
		if strings.HasPrefix(s, d) {
			return true
		}
	}
	return false
}
