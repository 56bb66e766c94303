package walker

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// DefaultExcludes are directory names never descended into.
var DefaultExcludes = []string{
	".git",
	"node_modules",
	"vendor",
	"__pycache__",
	"dist",
	"build",
	".next",
	"target",
	".venv",
	".idea",
	".vscode",
}

var excludedDirs = func() map[string]bool {
	m := make(map[string]bool, len(DefaultExcludes))
	for _, d := range DefaultExcludes {
		m[strings.ToLower(d)] = true
	}
	return m
}()

// filter decides which entries of a folder are listed. Paths are relative
// to the folder root and slash-separated.
type filter struct {
	include   []string
	exclude   []string
	gitignore *ignore.GitIgnore
}

func newFilter(root string, cfg Config) *filter {
	return &filter{
		include:   slashPatterns(cfg.Include),
		exclude:   slashPatterns(cfg.Exclude),
		gitignore: loadGitignore(filepath.Join(root, ".gitignore")),
	}
}

// skipDir reports whether the directory at rel is pruned.
func (f *filter) skipDir(rel string) bool {
	if excludedDirs[strings.ToLower(path.Base(rel))] {
		return true
	}
	return f.gitignore != nil && f.gitignore.MatchesPath(rel+"/")
}

// keepFile reports whether the file at rel is listed.
func (f *filter) keepFile(rel string) bool {
	if f.gitignore != nil && f.gitignore.MatchesPath(rel) {
		return false
	}
	if len(f.include) > 0 && !Match(rel, f.include) {
		return false
	}
	return !Match(rel, f.exclude)
}

// Match reports whether rel, or its base name, matches any of the
// doublestar patterns. No patterns means no match.
func Match(rel string, patterns []string) bool {
	rel = filepath.ToSlash(rel)
	base := path.Base(rel)
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(p, base); ok {
			return true
		}
	}
	return false
}

func slashPatterns(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, filepath.ToSlash(p))
		}
	}
	return out
}

// loadGitignore compiles the root .gitignore, if any.
func loadGitignore(p string) *ignore.GitIgnore {
	if _, err := os.Stat(p); err != nil {
		return nil
	}
	gi, err := ignore.CompileIgnoreFile(p)
	if err != nil {
		return nil
	}
	return gi
}
