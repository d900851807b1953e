package meter

import (
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/nboyd-dev/tally/pkg/config"
)

// Excluder applies directory-name, extension, and gitignore-pattern
// exclusion rules relative to one scan root.
type Excluder struct {
	root    string
	dirs    map[string]struct{}
	exts    map[string]struct{}
	matcher gitignore.Matcher
}

// NewExcluder builds an Excluder for a root. Config patterns are parsed as
// gitignore syntax; when cfg.Gitignore is set the root's .gitignore files
// are honored too.
func NewExcluder(root string, cfg config.ExcludeConfig) *Excluder {
	e := &Excluder{
		root: root,
		dirs: make(map[string]struct{}, len(cfg.Dirs)),
		exts: make(map[string]struct{}, len(cfg.Extensions)),
	}
	for _, d := range cfg.Dirs {
		e.dirs[d] = struct{}{}
	}
	for _, x := range cfg.Extensions {
		if !strings.HasPrefix(x, ".") {
			x = "." + x
		}
		e.exts[strings.ToLower(x)] = struct{}{}
	}

	var patterns []gitignore.Pattern
	for _, p := range cfg.Patterns {
		patterns = append(patterns, gitignore.ParsePattern(p, nil))
	}
	if cfg.Gitignore {
		fs := osfs.New(root)
		if gitPatterns, err := gitignore.ReadPatterns(fs, nil); err == nil {
			patterns = append(patterns, gitPatterns...)
		}
	}
	if len(patterns) > 0 {
		e.matcher = gitignore.NewMatcher(patterns)
	}
	return e
}

// ExcludedDir reports whether a directory subtree should be pruned.
func (e *Excluder) ExcludedDir(path, name string) bool {
	if _, ok := e.dirs[name]; ok {
		return true
	}
	return e.matchesPattern(path, true)
}

// ExcludedFile reports whether a file should be skipped.
func (e *Excluder) ExcludedFile(path, name string) bool {
	if _, ok := e.exts[strings.ToLower(filepath.Ext(name))]; ok {
		return true
	}
	return e.matchesPattern(path, false)
}

func (e *Excluder) matchesPattern(path string, isDir bool) bool {
	if e.matcher == nil {
		return false
	}
	rel, err := filepath.Rel(e.root, path)
	if err != nil || rel == "." {
		return false
	}
	return e.matcher.Match(strings.Split(filepath.ToSlash(rel), "/"), isDir)
}
