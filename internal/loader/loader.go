// Package loader reads Sass sources from disk and concatenates them into
// the single text the pipeline consumes.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"bennypowers.dev/sass2ts/internal/collections"
	"bennypowers.dev/sass2ts/internal/schema"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ReadFunc reads a whole file
type ReadFunc func(path string) ([]byte, error)

var (
	importRule = regexp.MustCompile(`^\s*@(import|use|forward)\s+(.+?)\s*;?\s*$`)
	quoted     = regexp.MustCompile(`"([^"]*)"|'([^']*)'`)
)

var extensions = []string{".sass", ".scss"}

// Bundle is the loaded source
type Bundle struct {
	// Files lists every file read, in concatenation order
	Files []string
	// Text is the content of Files joined with newlines
	Text string
}

// Loader concatenates Sass files, optionally following their imports
type Loader struct {
	read          ReadFunc
	includePaths  []string
	followImports bool
	log           *zap.Logger
}

// Option configures a Loader
type Option func(*Loader)

// WithReadFunc replaces os.ReadFile
func WithReadFunc(read ReadFunc) Option {
	return func(l *Loader) {
		l.read = read
	}
}

// WithIncludePaths adds directories searched for imports after the
// importing file's own directory.
func WithIncludePaths(dirs ...string) Option {
	return func(l *Loader) {
		l.includePaths = append(l.includePaths, dirs...)
	}
}

// WithFollowImports toggles import resolution
func WithFollowImports(follow bool) Option {
	return func(l *Loader) {
		l.followImports = follow
	}
}

// WithLogger sets the logger for loaded and skipped files
func WithLogger(log *zap.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

// New creates a Loader that follows imports and reads from disk
func New(opts ...Option) *Loader {
	l := &Loader{
		read:          os.ReadFile,
		followImports: true,
		log:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type loadState struct {
	seen  collections.Set[string]
	files []string
	texts []string
	err   error
}

// Load reads paths in order. Imports are inlined ahead of the importing
// file, depth first, and every file is read at most once. Failures are
// collected; the returned Bundle holds whatever could be read.
func (l *Loader) Load(paths ...string) (*Bundle, error) {
	st := &loadState{seen: collections.NewSet[string]()}
	for _, path := range paths {
		l.load(st, filepath.Clean(path))
	}
	return &Bundle{
		Files: st.files,
		Text:  strings.Join(st.texts, "\n"),
	}, st.err
}

func (l *Loader) load(st *loadState, path string) {
	if st.seen.Has(path) {
		return
	}
	st.seen.Add(path)

	data, err := l.read(path)
	if err != nil {
		st.err = multierr.Append(st.err, fmt.Errorf("failed to read %s: %w", path, err))
		return
	}

	if l.followImports {
		for _, target := range Imports(data) {
			resolved, err := l.resolve(path, target)
			if err != nil {
				st.err = multierr.Append(st.err, err)
				continue
			}
			l.load(st, resolved)
		}
	}

	l.log.Debug("loaded file", zap.String("path", path), zap.Int("bytes", len(data)))
	st.files = append(st.files, path)
	st.texts = append(st.texts, string(data))
}

// resolve finds the file an import refers to
func (l *Loader) resolve(from, target string) (string, error) {
	dirs := append([]string{filepath.Dir(from)}, l.includePaths...)
	var searched []string
	for _, dir := range dirs {
		for _, candidate := range Candidates(filepath.Join(dir, filepath.FromSlash(target))) {
			searched = append(searched, candidate)
			// directories and unreadable files are not candidates
			if _, err := l.read(candidate); err == nil {
				return filepath.Clean(candidate), nil
			}
		}
	}
	return "", schema.NewImportNotFoundError(from, target, searched)
}

// Candidates lists the files an import of base may refer to, in lookup
// order: the path itself, then with each extension, then as a partial, then
// as a directory index.
func Candidates(base string) []string {
	if ext := filepath.Ext(base); ext == ".sass" || ext == ".scss" {
		return []string{base, partial(base)}
	}

	out := []string{base}
	for _, ext := range extensions {
		out = append(out, base+ext)
	}
	for _, ext := range extensions {
		out = append(out, partial(base+ext))
	}
	for _, ext := range extensions {
		out = append(out, filepath.Join(base, "_index"+ext))
	}
	return out
}

func partial(path string) string {
	return filepath.Join(filepath.Dir(path), "_"+filepath.Base(path))
}

// Imports returns the local Sass files a source imports, in order. CSS
// files, URLs and built-in sass: modules are left out.
func Imports(src []byte) []string {
	var out []string
	for _, line := range strings.Split(string(src), "\n") {
		m := importRule.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		for _, target := range targets(m[1], m[2]) {
			if isLocal(target) {
				out = append(out, target)
			}
		}
	}
	return out
}

// targets extracts the imported names from the arguments of an at-rule.
// @import takes a comma separated list; @use and @forward take one string
// followed by optional clauses.
func targets(rule, args string) []string {
	if rule != "import" {
		if m := quoted.FindStringSubmatch(args); m != nil {
			return []string{m[1] + m[2]}
		}
		return nil
	}

	var out []string
	for _, arg := range strings.Split(args, ",") {
		arg = strings.TrimSpace(arg)
		if m := quoted.FindStringSubmatch(arg); m != nil {
			arg = m[1] + m[2]
		}
		if arg != "" {
			out = append(out, arg)
		}
	}
	return out
}

func isLocal(target string) bool {
	switch {
	case strings.HasSuffix(target, ".css"),
		strings.HasPrefix(target, "http://"),
		strings.HasPrefix(target, "https://"),
		strings.HasPrefix(target, "//"),
		strings.HasPrefix(target, "url("),
		strings.HasPrefix(target, "sass:"):
		return false
	}
	return true
}
