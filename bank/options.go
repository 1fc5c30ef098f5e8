// SPDX-License-Identifier: EPL-2.0

package bank

import (
	"github.com/ik5/sf2pack/soundfont"
)

// Mode selects how strictly input files are validated.
type Mode string

const (
	// ModeStrict accepts only 16-bit integer PCM and rejects files whose
	// sample count differs from the header.
	ModeStrict Mode = "strict"
	// ModeLenient reads whatever the decoder reports, rescaled to 16 bits.
	ModeLenient Mode = "lenient"
)

// FailurePolicy decides what happens when one candidate cannot be loaded.
type FailurePolicy string

const (
	// OnErrorSkip logs the failed candidate and continues with the next one.
	OnErrorSkip FailurePolicy = "skip"
	// OnErrorAbort stops the run at the first failed candidate.
	OnErrorAbort FailurePolicy = "abort"
)

// LimitPolicy decides how candidate indices map to program numbers.
type LimitPolicy string

const (
	// LimitCap rejects every candidate past the 128th.
	LimitCap LimitPolicy = "cap"
	// LimitWrap assigns program index%128 in bank 0, so slots may repeat.
	LimitWrap LimitPolicy = "wrap"
)

// PresetsPerBank is the number of programs addressable in one bank.
const PresetsPerBank = 128

// LoaderOptions configures how a Loader decodes candidate files.
type LoaderOptions struct {
	Mode Mode

	// Formats lists the accepted file extensions without the dot.
	Formats []string

	// Downmix averages multi-channel input into one channel.
	Downmix bool

	// UseSmplLoops takes loop points from a WAV smpl chunk when present.
	UseSmplLoops bool
}

// ZoneOptions holds the per-sample playback parameters BuildZone writes.
type ZoneOptions struct {
	RootKey         uint8
	PitchCorrection int8

	// SampleRate is written to every sample header regardless of the
	// rate the decoder reported.
	SampleRate int

	// ReverbSend adds a reverbEffectsSend generator when set, in 0.1% units.
	ReverbSend *int16
}

// Options configures an Assembler: bank metadata, zone parameters and the
// failure and limit policies. Empty policies default to skip and cap.
type Options struct {
	Info    soundfont.Info
	Zone    ZoneOptions
	OnError FailurePolicy
	Limit   LimitPolicy
}

// DefaultZoneOptions plays every sample at middle C without correction.
func DefaultZoneOptions() ZoneOptions {
	return ZoneOptions{
		RootKey:    60,
		SampleRate: 44100,
	}
}
