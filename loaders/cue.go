package loaders

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// CUE loads concrete CUE documents. Definitions and constraints may be used
// inside the file, but every regular field must resolve to a concrete value.
var CUE = Ref{Name: "cue", Builtin: true, Loader: Func(loadCUE)}

func loadCUE(content []byte, fileName string) (any, error) {
	if blank(content) {
		return nil, nil
	}

	value := cuecontext.New().CompileBytes(content, cue.Filename(fileName))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("parse CUE file %s: %w", fileName, err)
	}
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("validate CUE file %s: %w", fileName, err)
	}

	var out map[string]any
	if err := value.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode CUE file %s: %w", fileName, err)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}
