// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/sf2pack/utils"
)

// ReadAll drains src and collects every sample as 16-bit PCM.
//
// bufferSize is rounded down to a whole number of frames (at least one).
// On a read error the samples collected so far are returned along with the
// error, so callers may choose to keep a best-effort result.
//
// Example:
//
//	src, _ := decoder.Decode(file)
//	pcm16, err := audio.ReadAll(src, 4096)
func ReadAll(src Source, bufferSize int) ([]int16, error) {
	channels := max(src.Channels(), 1)

	frames := max(bufferSize/channels, 1)
	buf := make([]float32, frames*channels)
	pcm16 := make([]int16, 0, len(buf))

	for {
		n, err := src.ReadSamples(buf)
		for i := range n {
			pcm16 = append(pcm16, utils.Float32ToInt16(buf[i]))
		}

		if err == io.EOF {
			return pcm16, nil
		}

		if err != nil {
			return pcm16, fmt.Errorf("%w", err)
		}

		if n == 0 {
			// Sources such as go-mp3 may report (0, nil) at the very end.
			return pcm16, nil
		}
	}
}
