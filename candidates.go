// SPDX-License-Identifier: EPL-2.0

package sf2pack

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Candidates lists the regular files in dir whose extension is one of
// formats, in lexicographic order. Extensions match exactly and in lower
// case, so "kick.WAV" is not a candidate for "wav". Files smaller than
// minSize bytes are left out.
func Candidates(dir string, formats []string, minSize int64) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidDir, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDir, err)
	}

	exts := make([]string, 0, len(formats))
	for _, f := range formats {
		exts = append(exts, "."+strings.ToLower(strings.TrimPrefix(f, ".")))
	}

	var paths []string
	for _, e := range entries {
		if !slices.Contains(exts, filepath.Ext(e.Name())) {
			continue
		}

		path := filepath.Join(dir, e.Name())

		// Stat follows symlinks, so a link to a sample is accepted.
		fi, err := os.Stat(path)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		if fi.Size() < minSize {
			continue
		}

		paths = append(paths, path)
	}

	slices.Sort(paths)

	return paths, nil
}
