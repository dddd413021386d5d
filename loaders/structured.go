package loaders

import (
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Built-in loaders for structured data formats.
var (
	YAML = Ref{Name: "yaml", Builtin: true, Loader: Func(loadYAML)}
	JSON = Ref{Name: "json", Builtin: true, Loader: Func(loadJSON)}
	TOML = Ref{Name: "toml", Builtin: true, Loader: Func(loadTOML)}
)

func loadYAML(content []byte, fileName string) (any, error) {
	if blank(content) {
		return nil, nil
	}
	var raw any
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("parse YAML file %s: %w", fileName, err)
	}
	return raw, nil
}

func loadJSON(content []byte, fileName string) (any, error) {
	if blank(content) {
		return nil, nil
	}
	var raw any
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("parse JSON file %s: %w", fileName, err)
	}
	return raw, nil
}

func loadTOML(content []byte, fileName string) (any, error) {
	if blank(content) {
		return nil, nil
	}
	var raw map[string]any
	if err := toml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("parse TOML file %s: %w", fileName, err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}

// PackageJSON returns a loader reading the key property of a package.json-style
// document. A missing or null property is an empty result, so the search moves
// on to the next candidate.
func PackageJSON(key string) Ref {
	return Ref{
		Name:    "package.json",
		Builtin: true,
		Loader: Func(func(content []byte, fileName string) (any, error) {
			raw, err := loadJSON(content, fileName)
			if err != nil || raw == nil {
				return nil, err
			}
			obj, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("parse JSON file %s: top-level value is not an object", fileName)
			}
			return obj[key], nil
		}),
	}
}
