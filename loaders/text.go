package loaders

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/amitgilad3/confinode/internal/normalize"
	"github.com/magiconair/properties"
	"github.com/subosito/gotenv"
)

// Built-in loaders for flat key/value formats. Keys are split into nested
// objects: "DB__HOST" in a dotenv file and "db.host" in a properties file both
// become {"db": {"host": ...}}.
var (
	Dotenv     = Ref{Name: "dotenv", Builtin: true, Loader: Func(loadDotenv)}
	Properties = Ref{Name: "properties", Builtin: true, Loader: Func(loadProperties)}
)

func loadDotenv(content []byte, fileName string) (any, error) {
	if blank(content) {
		return nil, nil
	}
	env, err := gotenv.StrictParse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("parse dotenv file %s: %w", fileName, err)
	}
	flat := make(map[string]string, len(env))
	for k, v := range env {
		flat[normalize.ToLowerDotPath(k)] = v
	}
	return nest(flat), nil
}

func loadProperties(content []byte, fileName string) (any, error) {
	if blank(content) {
		return nil, nil
	}
	p, err := properties.Load(content, properties.UTF8)
	if err != nil {
		return nil, fmt.Errorf("parse properties file %s: %w", fileName, err)
	}
	return nest(p.Map()), nil
}

// nest expands dot-separated keys into nested maps. Keys are applied in sorted
// order so a leaf and a deeper key sharing a prefix resolve deterministically:
// the deeper key wins.
func nest(flat map[string]string) any {
	if len(flat) == 0 {
		return nil
	}
	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	root := make(map[string]any)
	for _, key := range keys {
		parts := strings.Split(key, ".")
		node := root
		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[part] = child
			}
			node = child
		}
		last := parts[len(parts)-1]
		if _, isMap := node[last].(map[string]any); !isMap {
			node[last] = flat[key]
		}
	}
	return root
}
