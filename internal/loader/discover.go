package loader

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/maruel/natural"
)

// DefaultPatterns match indented Sass and SCSS sources
var DefaultPatterns = []string{"**/*.sass", "**/*.scss"}

var skipDirs = []string{"node_modules", "dist", "build"}

// shouldSkipDirectory reports hidden directories and common build or
// dependency directories. The walk root itself is never skipped.
func shouldSkipDirectory(d fs.DirEntry) bool {
	if !d.IsDir() {
		return false
	}
	if strings.HasPrefix(d.Name(), ".") && d.Name() != "." {
		return true
	}
	return slices.Contains(skipDirs, d.Name())
}

// matchesAnyPattern checks relPath against doublestar patterns
func matchesAnyPattern(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, normalized); err == nil && matched {
			return true
		}
	}
	return false
}

// Discover walks root and returns the files matching any pattern, in
// natural order so that _2.sass sorts before _10.sass. Partials are
// included; the caller decides whether to follow imports instead.
func Discover(root string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid include pattern %q", p)
		}
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil // skip unreadable entries, continue walking
		}
		if path != root && shouldSkipDirectory(d) {
			return filepath.SkipDir
		}
		if d.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if matchesAnyPattern(relPath, patterns) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	sort.Sort(natural.StringSlice(files))
	return files, nil
}
