// SPDX-License-Identifier: EPL-2.0

package soundfont

import "errors"

var (
	ErrNotSoundFont   = errors.New("not a SoundFont 2 file")
	ErrMalformedChunk = errors.New("malformed SoundFont chunk")
	ErrInvalidBank    = errors.New("invalid SoundFont bank")
)
