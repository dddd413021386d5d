// Package logging defines the structured messages the search engine emits and
// adapters that forward them to charmbracelet/log or hashicorp/go-hclog.
//
// A Message carries a severity, a stable identifier (e.g. "multipleFiles")
// and key/value arguments. Loggers must not panic and have no return value.
package logging
