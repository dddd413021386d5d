package confinode

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/amitgilad3/confinode/gateway"
	"github.com/amitgilad3/confinode/loaders"
	"github.com/amitgilad3/confinode/logging"
)

// perform fulfills one Request. The sync and async drivers each supply one;
// it is the procedure's only way to reach the filesystem.
type perform func(ctx context.Context, req Request) (any, error)

// procedure is the search/load algorithm. It is written once and run by both
// drivers; Requests are issued strictly one at a time, in program order.
type procedure[T any] struct {
	ctx context.Context
	c   *Confinode[T]
	do  perform
}

// ask issues req and checks the answer's type.
func ask[V any, T any](p *procedure[T], req Request) (V, error) {
	var zero V
	if err := p.ctx.Err(); err != nil {
		return zero, err
	}
	answer, err := p.do(p.ctx, req)
	if err != nil {
		return zero, err
	}
	v, ok := answer.(V)
	if !ok && answer != nil {
		return zero, unexpectedValue(req, answer)
	}
	return v, nil
}

// search walks from start up to the stop directory and returns the first
// configuration found, or nil.
func (p *procedure[T]) search(start string) (*Result[T], error) {
	start = p.c.abs(start)
	p.c.log(logging.Trace(logging.MsgSearchStarting, "start", start))

	isDir, err := ask[bool](p, IsDirectory{Path: start})
	if err != nil {
		return nil, err
	}
	dir := start
	if !isDir {
		dir = filepath.Dir(start)
	}

	for {
		result, err := p.searchInDirectory(dir)
		if err != nil {
			return nil, err
		}
		if result != nil {
			return result, nil
		}
		if dir == p.c.stopDir {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	p.c.log(logging.Info(logging.MsgConfigurationNotFound, "start", start))
	return nil, nil
}

// searchInDirectory tries every file description, in order, in one directory.
// A loading error disqualifies the directory without aborting the search; it
// is not cached, so the directory is examined again on the next search.
func (p *procedure[T]) searchInDirectory(dir string) (*Result[T], error) {
	if cached, ok := p.c.cache.result(dir); ok {
		p.c.log(logging.Trace(logging.MsgSearchInCache, "dir", dir))
		return cached, nil
	}
	p.c.log(logging.Trace(logging.MsgSearchInDirectory, "dir", dir))

	var found *Result[T]
	for _, desc := range p.c.files {
		result, err := p.tryDescription(dir, desc)
		if err != nil {
			var le *LoadingError
			if !errors.As(err, &le) {
				return nil, err
			}
			p.c.log(logging.Error(logging.MsgLoadingError, "file", le.Name, "error", le.Err))
			return nil, nil
		}
		if result != nil {
			found = result
			break
		}
	}

	p.c.cache.setResult(dir, found)
	return found, nil
}

// tryDescription returns the configuration desc yields in dir, or nil when
// nothing matches or the matched file is empty.
func (p *procedure[T]) tryDescription(dir string, desc FileDescription) (*Result[T], error) {
	if desc.IsBasename() {
		path, ref, err := p.matchBasename(dir, desc.stem)
		if err != nil || path == "" {
			return nil, err
		}
		return p.loadFile(path, ref)
	}

	path := filepath.Join(dir, desc.name)
	exists, err := ask[bool](p, FileExists{Path: path})
	if err != nil || !exists {
		return nil, err
	}
	loader := desc.loader
	return p.loadFile(path, &loader)
}

type candidate struct {
	name string
	ref  loaders.Ref
}

// matchBasename picks the entry of dir named "<stem>.<suffix>" with a known
// suffix. Ties go to the first entry in listing order.
func (p *procedure[T]) matchBasename(dir, stem string) (string, *loaders.Ref, error) {
	entries, err := p.listEntries(dir)
	if err != nil {
		return "", nil, err
	}

	prefix := stem + "."
	var matches []candidate
	for _, name := range entries {
		if !strings.HasPrefix(name, prefix) || len(name) == len(prefix) {
			continue
		}
		ref := p.c.registry.Resolve(p.c.modulePaths, name, name[len(prefix):])
		if ref != nil {
			matches = append(matches, candidate{name: name, ref: *ref})
		}
	}

	if len(matches) == 0 {
		return "", nil, nil
	}
	if len(matches) > 1 {
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.name
		}
		p.c.log(logging.Warning(logging.MsgMultipleFiles,
			"dir", dir, "candidates", names, "chosen", matches[0].name))
	}
	return filepath.Join(dir, matches[0].name), &matches[0].ref, nil
}

func (p *procedure[T]) listEntries(dir string) ([]string, error) {
	if names, ok := p.c.cache.listing(dir); ok {
		return names, nil
	}
	names, err := ask[[]string](p, DirectoryEntries{Path: dir})
	if err != nil {
		return nil, err
	}
	p.c.cache.setListing(dir, names)
	return names, nil
}

// loadFile parses one file. A nil result means the loader found it empty.
// When hint is nil the loader is resolved from the file suffix.
func (p *procedure[T]) loadFile(path string, hint *loaders.Ref) (*Result[T], error) {
	if cached, ok := p.c.cache.result(path); ok {
		return cached, nil
	}

	ref := hint
	if ref == nil {
		ref = p.c.registry.Resolve(p.c.modulePaths, path, "")
		if ref == nil {
			p.c.log(logging.Error(logging.MsgNoLoaderFound, "file", path))
			return nil, loadingError(path, ErrNoLoader)
		}
	}

	p.c.log(logging.Info(logging.MsgLoadingFile, "file", path, "loader", ref.String()))
	raw, err := ask[any](p, LoadAndParse{Path: path, Loader: *ref})
	if err != nil {
		if ctxErr := p.ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		var pe *gateway.PanicError
		if errors.As(err, &pe) {
			return nil, err
		}
		return nil, loadingError(path, err)
	}

	var result *Result[T]
	if raw == nil {
		p.c.log(logging.Info(logging.MsgEmptyConfiguration, "file", path))
	} else {
		cfg, err := p.c.description.Parse(raw, ParserContext{FileName: path, Final: true})
		if err != nil {
			return nil, loadingError(path, err)
		}
		result = newResult(cfg, path)
		p.c.log(logging.Info(logging.MsgLoadedConfiguration, "file", path))
	}

	p.c.cache.setResult(path, result)
	return result, nil
}

// load resolves name to a file and loads it.
func (p *procedure[T]) load(name string) (*Result[T], error) {
	for _, path := range p.c.moduleCandidates(name) {
		exists, err := ask[bool](p, FileExists{Path: path})
		if err != nil {
			return nil, err
		}
		if exists {
			return p.loadFile(path, nil)
		}
	}
	p.c.log(logging.Error(logging.MsgFileNotFound, "name", name))
	return nil, loadingError(name, ErrFileNotFound)
}
