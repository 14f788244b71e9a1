// Package source expands stylesheet glob patterns and reads the matched
// files.
package source

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel reads when no limit is given
const DefaultConcurrency = 8

// File is one read source file
type File struct {
	Path    string
	Content string
}

// skipped directories, unless a pattern starts inside one
var skipDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
}

// Discover expands patterns into file paths. Files are returned in pattern
// order, lexically within a pattern, each path at most once. A pattern that
// matches nothing is logged and skipped.
func Discover(patterns []string) ([]string, error) {
	files := make([]string, 0)
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		matches, err := expand(pattern)
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			log.Warn().Str("pattern", pattern).Msg("pattern matched no files")
			continue
		}

		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}

	return files, nil
}

func expand(pattern string) ([]string, error) {
	pattern = filepath.ToSlash(pattern)

	if !hasMeta(pattern) {
		info, err := os.Stat(filepath.FromSlash(pattern))
		if err != nil || info.IsDir() {
			return nil, nil
		}
		return []string{filepath.Clean(filepath.FromSlash(pattern))}, nil
	}

	pattern = strings.TrimPrefix(pattern, "./")
	matchers, err := compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	root := baseDir(pattern)
	if _, err := os.Stat(root); err != nil {
		return nil, nil
	}

	var matches []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			if path != root && (skipDirs[name] || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}

		slashed := filepath.ToSlash(path)
		for _, g := range matchers {
			if g.Match(slashed) {
				matches = append(matches, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return matches, nil
}

// compile builds the matchers for a pattern. A "**/" segment also matches
// zero directories.
func compile(pattern string) ([]glob.Glob, error) {
	variants := []string{pattern}
	if collapsed := strings.ReplaceAll(pattern, "/**/", "/"); collapsed != pattern {
		variants = append(variants, collapsed)
	}
	if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
		variants = append(variants, rest)
	}

	matchers := make([]glob.Glob, 0, len(variants))
	for _, v := range variants {
		g, err := glob.Compile(v, '/')
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, g)
	}
	return matchers, nil
}

// baseDir returns the leading path segments of pattern that contain no
// glob syntax
func baseDir(pattern string) string {
	segments := strings.Split(pattern, "/")
	var static []string
	for _, s := range segments[:len(segments)-1] {
		if hasMeta(s) {
			break
		}
		static = append(static, s)
	}

	switch {
	case len(static) == 0:
		return "."
	case len(static) == 1 && static[0] == "":
		return "/"
	}
	return filepath.FromSlash(strings.Join(static, "/"))
}

func hasMeta(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

// Read loads files with at most limit reads in flight. Results keep the
// order of paths regardless of completion order.
func Read(ctx context.Context, paths []string, limit int) ([]File, error) {
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	files := make([]File, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			files[i] = File{Path: path, Content: string(data)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// Load discovers and reads every file matched by patterns
func Load(ctx context.Context, patterns []string, limit int) ([]File, error) {
	paths, err := Discover(patterns)
	if err != nil {
		return nil, err
	}

	log.Debug().Int("files", len(paths)).Msg("discovered source files")
	return Read(ctx, paths, limit)
}
