// Package corpus loads seed inputs for the fuzzer from files matched by glob
// patterns. Each matched file contributes one seed, content verbatim.
package corpus

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ErrNoPatterns indicates that resolution was invoked without any glob patterns.
var ErrNoPatterns = errors.New("corpus: no patterns provided")

// PatternError wraps syntax issues reported while evaluating a glob pattern.
type PatternError struct {
	Pattern string
	Err     error
}

// Error implements the error interface.
func (e PatternError) Error() string {
	return fmt.Sprintf("invalid glob pattern %q: %v", e.Pattern, e.Err)
}

// Unwrap returns the underlying error.
func (e PatternError) Unwrap() error { return e.Err }

// NoMatchError describes which patterns failed to yield any seed files.
type NoMatchError struct {
	Patterns []string
}

// Error implements the error interface.
func (e NoMatchError) Error() string {
	return "patterns matched no seed files: " + strings.Join(e.Patterns, ", ")
}

// Loader resolves glob patterns against a filesystem and reads the matched
// files as seeds.
type Loader struct {
	fsys fs.FS
}

// NewLoader constructs a Loader over the provided filesystem. Useful for tests.
func NewLoader(fsys fs.FS) Loader {
	return Loader{fsys: fsys}
}

// NewOSLoader constructs a Loader rooted at base on the host filesystem.
func NewOSLoader(base string) (Loader, error) {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return Loader{}, fmt.Errorf("resolve base %q: %w", base, err)
	}

	info, err := os.Stat(absBase)
	if err != nil {
		return Loader{}, fmt.Errorf("stat base %q: %w", absBase, err)
	}
	if !info.IsDir() {
		return Loader{}, fmt.Errorf("base %q is not a directory", absBase)
	}

	return Loader{fsys: os.DirFS(absBase)}, nil
}

// Resolve evaluates each glob pattern and returns a deterministically sorted,
// de-duplicated list of matched file names.
func (l Loader) Resolve(patterns []string) ([]string, error) {
	if l.fsys == nil {
		return nil, errors.New("corpus: loader has no filesystem")
	}
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}

	combined := make([]string, 0)
	missing := make([]string, 0)

	for _, pattern := range patterns {
		matches, err := fs.Glob(l.fsys, filepath.ToSlash(pattern))
		if err != nil {
			return nil, PatternError{Pattern: pattern, Err: err}
		}
		if len(matches) == 0 {
			missing = append(missing, pattern)
			continue
		}
		combined = append(combined, matches...)
	}

	if len(missing) > 0 {
		return nil, NoMatchError{Patterns: append([]string(nil), missing...)}
	}

	slices.Sort(combined)
	return slices.Compact(combined), nil
}

// Load resolves the patterns and reads every matched file as one seed.
// Empty files are kept: the engine accepts any string, only an empty seed
// list is invalid, and that is the engine's call to make.
func (l Loader) Load(patterns []string) ([]string, error) {
	paths, err := l.Resolve(patterns)
	if err != nil {
		return nil, err
	}
	return l.Read(paths)
}

// Read reads previously resolved file names as seeds, one file per seed.
func (l Loader) Read(paths []string) ([]string, error) {
	seeds := make([]string, 0, len(paths))
	for _, path := range paths {
		data, err := fs.ReadFile(l.fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read seed %s: %w", path, err)
		}
		seeds = append(seeds, string(data))
	}
	return seeds, nil
}
