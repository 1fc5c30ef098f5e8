// SPDX-License-Identifier: EPL-2.0

package aiff_test

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ik5/sf2pack/formats/aiff"
)

// Example_errorNotAIFF shows the error returned for input that is not AIFF.
func Example_errorNotAIFF() {
	decoder := aiff.Decoder{Strict: true}

	_, err := decoder.Decode(strings.NewReader("RIFF....WAVE"))
	if errors.Is(err, aiff.ErrNotAiffFile) {
		fmt.Println("rejected:", err)
	}

	// Output:
	// rejected: not an AIFF file
}
