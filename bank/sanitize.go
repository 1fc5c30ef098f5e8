// SPDX-License-Identifier: EPL-2.0

package bank

import (
	"path/filepath"
	"strings"
)

// MaxNameLength bounds a sanitized preset name.
const MaxNameLength = 128

// Sanitize derives a preset name from a file path: the base name without
// its extension, with every character outside [A-Za-z0-9_-] replaced by '_',
// truncated to MaxNameLength characters. An empty base name yields "".
func Sanitize(path string) string {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))

	var sb strings.Builder
	sb.Grow(min(len(base), MaxNameLength))

	n := 0
	for _, r := range base {
		if n == MaxNameLength {
			break
		}

		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
		n++
	}

	return sb.String()
}
