package confinode

// cache holds directory listings and results for one engine. Entries live
// until clear; there is no eviction. Result entries are keyed by absolute
// path: a file path maps to what that file produced, a directory path to what
// the directory produced. A nil result is a cached "nothing here".
type cache[T any] struct {
	enabled  bool
	listings map[string][]string
	results  map[string]*Result[T]
}

func newCache[T any](enabled bool) *cache[T] {
	c := &cache[T]{enabled: enabled}
	c.clear()
	return c
}

func (c *cache[T]) listing(dir string) ([]string, bool) {
	if !c.enabled {
		return nil, false
	}
	names, ok := c.listings[dir]
	return names, ok
}

func (c *cache[T]) setListing(dir string, names []string) {
	if c.enabled {
		c.listings[dir] = names
	}
}

func (c *cache[T]) result(path string) (*Result[T], bool) {
	if !c.enabled {
		return nil, false
	}
	r, ok := c.results[path]
	return r, ok
}

func (c *cache[T]) setResult(path string, r *Result[T]) {
	if c.enabled {
		c.results[path] = r
	}
}

// clear swaps in empty maps, dropping both tiers at once.
func (c *cache[T]) clear() {
	c.listings = make(map[string][]string)
	c.results = make(map[string]*Result[T])
}
