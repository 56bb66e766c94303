// Package walker lists the files of a local folder the way a browser folder
// upload does: one slash-separated path per file, prefixed by the folder name.
package walker

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
)

// ErrEmptyFolder is returned when filtering leaves no files to upload.
var ErrEmptyFolder = errors.New("folder contains no files to analyze")

// Config controls which files CollectFolder lists.
type Config struct {
	RootDir string   // Folder to list.
	Include []string // Glob patterns; only matching files are listed.
	Exclude []string // Glob patterns; matching files are skipped.
}

// CollectFolder walks cfg.RootDir and returns "<folder>/<rel/path>" for every
// regular file that survives .gitignore, the default directory excludes and
// the include/exclude globs. Paths are sorted.
func CollectFolder(cfg Config) ([]string, error) {
	root, err := filepath.Abs(cfg.RootDir)
	if err != nil {
		return nil, fmt.Errorf("walker: resolve root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("walker: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("walker: %s is not a directory", root)
	}

	f := newFilter(root, cfg)
	prefix := filepath.Base(root)

	var paths []string
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Unreadable entries are skipped, not fatal.
			return nil
		}
		if p == root {
			return nil
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if f.skipDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !f.keepFile(rel) {
			return nil
		}

		paths = append(paths, path.Join(prefix, rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walker: traversal: %w", err)
	}
	if len(paths) == 0 {
		return nil, ErrEmptyFolder
	}

	sort.Strings(paths)
	return paths, nil
}
