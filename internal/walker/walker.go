// Package walker provides visitor-driven file system traversal.
package walker

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// SkipDir tells Walk not to descend into the directory just visited. The
// walk itself continues.
var SkipDir = fs.SkipDir

// Entry describes one visited file system entry.
type Entry struct {
	// Path is the full path of the entry, root included.
	Path string
	// Name is the bare entry name.
	Name string
	// IsDir reports whether the entry is a directory.
	IsDir bool
}

// VisitFunc is invoked for every non-skipped entry. Returning SkipDir on a
// directory prunes its subtree; any other non-nil error aborts the walk and
// is returned to the caller.
type VisitFunc func(Entry) error

// Options controls traversal.
type Options struct {
	// Recurse enables depth-first descent. When false only the root's
	// immediate children are visited.
	Recurse bool
	// Log receives skip warnings. Nil selects slog.Default().
	Log *slog.Logger
}

// Walk traverses root, calling visit for each entry. A root that is itself
// a regular file produces exactly one visit and no enumeration. Symlinks
// are skipped with a warning to avoid traversal cycles.
func Walk(root string, visit VisitFunc, opts Options) error {
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}

	info, err := os.Lstat(root)
	if err != nil {
		return fmt.Errorf("walk root %s: %w", root, err)
	}

	if info.Mode()&fs.ModeSymlink != 0 {
		log.Warn("skipping symlink", "path", root)
		return nil
	}

	if !info.IsDir() {
		err := visit(Entry{Path: root, Name: filepath.Base(root), IsDir: false})
		if errors.Is(err, SkipDir) {
			return nil
		}
		return err
	}

	err = walkDir(root, visit, opts, log)
	if errors.Is(err, SkipDir) {
		return nil
	}
	return err
}

func walkDir(dir string, visit VisitFunc, opts Options, log *slog.Logger) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %s: %w", dir, err)
	}

	for _, ent := range entries {
		// ReadDir never yields "." or "..".
		if ent.Type()&fs.ModeSymlink != 0 {
			log.Warn("skipping symlink", "path", filepath.Join(dir, ent.Name()))
			continue
		}

		full := filepath.Join(dir, ent.Name())
		isDir := ent.IsDir()

		err := visit(Entry{Path: full, Name: ent.Name(), IsDir: isDir})
		if err != nil {
			if isDir && errors.Is(err, SkipDir) {
				continue
			}
			return err
		}

		if isDir && opts.Recurse {
			if err := walkDir(full, visit, opts, log); err != nil {
				return err
			}
		}
	}
	return nil
}
