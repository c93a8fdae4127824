// Package inputs turns the user's input patterns into an ordered list of file
// paths.
package inputs

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Validate checks the syntax of every pattern. A pattern naming an existing
// file is a literal path and is not checked.
func Validate(patterns []string) error {
	if len(patterns) == 0 {
		return fmt.Errorf("no input given")
	}
	for _, p := range patterns {
		if p == "" {
			return fmt.Errorf("empty input pattern")
		}
		if !isLiteral(p) && !doublestar.ValidatePathPattern(p) {
			return fmt.Errorf("invalid input pattern %q: %w", p, doublestar.ErrBadPattern)
		}
	}
	return nil
}

// Expand resolves patterns in order. Matches of a single pattern are sorted
// lexically, "**" crosses directories, and a plain path is kept as given even
// if it does not exist so that the caller can report it. An existing file
// whose name holds glob characters, such as "photo[1].jpg", is taken
// literally. Paths equal to exclude are dropped.
func Expand(patterns []string, exclude string) ([]string, error) {
	skip := func(string) bool { return false }
	if exclude != "" {
		if abs, err := filepath.Abs(exclude); err == nil {
			skip = func(p string) bool {
				pAbs, err := filepath.Abs(p)
				return err == nil && pAbs == abs
			}
		}
	}

	var res []string
	for _, p := range patterns {
		if isLiteral(p) {
			if !skip(p) {
				res = append(res, p)
			}
			continue
		}

		matches, err := doublestar.FilepathGlob(p, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid input pattern %q: %w", p, err)
		}
		if len(matches) == 0 {
			slog.Warn("input pattern matched no files", "pattern", p)
			continue
		}

		slices.Sort(matches)
		for _, m := range matches {
			if skip(m) {
				slog.Debug("skipping output file", "file", m)
				continue
			}
			res = append(res, m)
		}
	}

	return res, nil
}

func isPattern(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}

func isLiteral(p string) bool {
	if !isPattern(p) {
		return true
	}
	_, err := os.Stat(p)
	return err == nil
}
