// Package loaders maps file-name suffixes to parsing functions.
//
// A Registry holds built-in loaders (yaml, yml, json, toml, hcl, cue, env,
// properties) and user-registered ones. Custom loaders are consulted first, so
// registering "cfg" or even "json" overrides the built-in behavior:
//
//	reg := loaders.New().Register("cfg", "ini-ish", loaders.Func(parseCfg))
//	ref := reg.Resolve(nil, "/etc/app/app.cfg", "")
//
// A loader returns nil to signal an empty document ("nothing here").
package loaders
