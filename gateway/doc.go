// Package gateway provides the filesystem operations the search engine needs:
// directory check, file existence, directory listing and read-and-parse.
//
// Every operation exists in a blocking form (Blocking) and a non-blocking
// form (NonBlocking) with identical semantics. FS implements both on top of an
// afero.Fs, so tests can run against afero.NewMemMapFs().
//
// Listing order is whatever the underlying filesystem enumerates. It is not
// sorted and differs across platforms; callers that break ties on listing
// order inherit that non-portability.
package gateway
