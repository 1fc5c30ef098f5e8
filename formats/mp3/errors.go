// SPDX-License-Identifier: EPL-2.0

package mp3

import "errors"

// ErrNotMP3File wraps the go-mp3 error for input without a decodable frame.
var ErrNotMP3File = errors.New("not an MP3 stream")
