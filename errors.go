// SPDX-License-Identifier: EPL-2.0

package sf2pack

import "errors"

var (
	ErrInvalidDir    = errors.New("invalid input directory")
	ErrOutputOpen    = errors.New("cannot create output file")
	ErrSerialization = errors.New("cannot write SoundFont bank")
	ErrVerify        = errors.New("written bank does not match")
)
