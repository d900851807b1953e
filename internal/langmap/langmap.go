// Package langmap resolves file names to languages and comment families.
//
// Resolution tries the whole file name first (as a dot-prefixed key, which
// is how manifest-style files without a conventional extension are listed),
// then scans suffixes starting at the leftmost dot so that multi-segment
// extensions win over their shorter tails.
package langmap

// Mapping binds one extension or whole-name key to a language.
type Mapping struct {
	// Ext is the key, lower-case, including the leading dot. A whole-name
	// key is the entire file name prefixed with a dot (".makefile").
	Ext string
	// Language is the canonical language name. Multiple keys may share
	// one language; aggregation merges them by this name.
	Language string

	// Index is the mapping's position in the resolver's table. The
	// aggregator uses it to cache a per-mapping record reference.
	Index int
}
