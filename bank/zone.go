// SPDX-License-Identifier: EPL-2.0

package bank

import (
	"fmt"

	"github.com/ik5/sf2pack/audio"
	"github.com/ik5/sf2pack/soundfont"
)

// BuildZone wraps buf in a sample, a one-zone instrument playing it as a
// continuous loop, and a preset zone referencing that instrument.
//
// The loop spans every written data point unless buf carries a loop that
// lies inside it. Multi-channel data is stored interleaved in one record, so
// frame positions are scaled by the channel count.
func BuildZone(name string, buf *audio.Buffer, opts ZoneOptions) (*soundfont.Sample, *soundfont.Instrument, *soundfont.PresetZone, error) {
	frames := buf.Frames()
	if frames == 0 {
		return nil, nil, nil, fmt.Errorf("%w: %s", ErrEmptyAudio, name)
	}

	channels := max(buf.Channels, 1)
	loopStart, loopEnd := 0, len(buf.Data)
	if buf.Loop.Valid(frames) {
		loopStart, loopEnd = buf.Loop.Start*channels, buf.Loop.End*channels
	}

	sample := &soundfont.Sample{
		Name:            name,
		Data:            buf.Data,
		Channels:        buf.Channels,
		SampleRate:      opts.SampleRate,
		LoopStart:       loopStart,
		LoopEnd:         loopEnd,
		RootKey:         opts.RootKey,
		PitchCorrection: opts.PitchCorrection,
	}

	gens := []soundfont.Generator{
		{Type: soundfont.GenSampleModes, Amount: soundfont.ModeLoopContinuous},
		{Type: soundfont.GenStartLoopAddrsOffset, Amount: 0},
		{Type: soundfont.GenEndLoopAddrsOffset, Amount: 0},
	}
	if opts.ReverbSend != nil {
		gens = append(gens, soundfont.Generator{Type: soundfont.GenReverbEffectsSend, Amount: *opts.ReverbSend})
	}

	inst := &soundfont.Instrument{
		Name:  name,
		Zones: []*soundfont.InstrumentZone{{Sample: sample, Generators: gens}},
	}

	return sample, inst, &soundfont.PresetZone{Instrument: inst}, nil
}
