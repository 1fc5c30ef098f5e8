// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

// ErrNotVorbisFile is returned when no Vorbis stream could be opened.
var ErrNotVorbisFile = errors.New("not an Ogg Vorbis stream")
