// SPDX-License-Identifier: EPL-2.0

package sf2pack

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/ik5/sf2pack/soundfont"
)

// WriteFile serializes b to path and returns the number of presets
// written. The bank goes to a temporary file in the same directory first;
// path only appears once the whole file is on disk. A new file gets 0666
// minus the process umask; a replaced file keeps its permissions.
func WriteFile(path string, b *soundfont.Bank) (int, error) {
	f, err := createTemp(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrOutputOpen, err)
	}
	tmp := f.Name()

	if err := soundfont.Write(f, b); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return 0, fmt.Errorf("%w: %w", ErrSerialization, err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return 0, fmt.Errorf("%w: %w", ErrSerialization, err)
	}

	if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
		if err := os.Chmod(tmp, fi.Mode().Perm()); err != nil {
			_ = os.Remove(tmp)
			return 0, fmt.Errorf("%w: %w", ErrSerialization, err)
		}
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return 0, fmt.Errorf("%w: %w", ErrOutputOpen, err)
	}

	return len(b.Presets), nil
}

// createTemp opens a new hidden file next to path. Unlike os.CreateTemp
// it asks for 0666, so the umask decides the final mode.
func createTemp(path string) (*os.File, error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	for range 100 {
		name := filepath.Join(dir, "."+base+"."+strconv.FormatUint(rand.Uint64(), 36)+".tmp")

		f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o666)
		if errors.Is(err, fs.ErrExist) {
			continue
		}

		return f, err
	}

	return nil, fmt.Errorf("no free temporary name for %s", path)
}

// Verify reads path back and checks that it holds the presets of b at
// the same bank/program slots.
func Verify(path string, b *soundfont.Bank) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVerify, err)
	}
	defer f.Close()

	sum, err := soundfont.ReadSummary(f)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVerify, err)
	}

	if got, want := len(sum.Presets), len(b.Presets); got != want {
		return fmt.Errorf("%w: %d presets in file, %d assembled", ErrVerify, got, want)
	}

	if !slices.Equal(sum.Slots(), b.Slots()) {
		return fmt.Errorf("%w: preset slots differ", ErrVerify)
	}

	return nil
}
