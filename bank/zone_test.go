// SPDX-License-Identifier: EPL-2.0

package bank

import (
	"errors"
	"testing"

	"github.com/ik5/sf2pack/audio"
	"github.com/ik5/sf2pack/soundfont"
)

func TestBuildZone_LoopPoints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		frames    int
		channels  int
		loop      *audio.Loop
		wantStart int
		wantEnd   int
	}{
		{"whole buffer", 1000, 1, nil, 0, 1000},
		{"single frame", 1, 1, nil, 0, 1},
		{"stereo spans interleaved points", 500, 2, nil, 0, 1000},
		{"stereo smpl loop", 1000, 2, &audio.Loop{Start: 100, End: 900}, 200, 1800},
		{"smpl loop", 1000, 1, &audio.Loop{Start: 100, End: 900}, 100, 900},
		{"loop past end ignored", 1000, 1, &audio.Loop{Start: 100, End: 1001}, 0, 1000},
		{"empty loop ignored", 1000, 1, &audio.Loop{Start: 10, End: 10}, 0, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := &audio.Buffer{
				Data:       make([]int16, tt.frames*tt.channels),
				Channels:   tt.channels,
				SampleRate: 22050,
				Loop:       tt.loop,
			}

			sample, inst, pz, err := BuildZone("x", buf, DefaultZoneOptions())
			if err != nil {
				t.Fatalf("BuildZone() error = %v", err)
			}

			if len(inst.Zones) != 1 || inst.Zones[0].Sample != sample {
				t.Fatalf("instrument zones do not wrap the sample")
			}
			if pz.Instrument != inst {
				t.Fatalf("preset zone does not wrap the instrument")
			}

			z := inst.Zones[0]
			if got := z.LoopStart(); got != tt.wantStart {
				t.Errorf("LoopStart() = %d, want %d", got, tt.wantStart)
			}
			if got := z.LoopEnd(); got != tt.wantEnd {
				t.Errorf("LoopEnd() = %d, want %d", got, tt.wantEnd)
			}
			if got := z.Mode(); got != soundfont.ModeLoopContinuous {
				t.Errorf("Mode() = %d, want %d", got, soundfont.ModeLoopContinuous)
			}
		})
	}
}

func TestBuildZone_Parameters(t *testing.T) {
	t.Parallel()

	reverb := int16(618)
	opts := ZoneOptions{RootKey: 60, PitchCorrection: -1, SampleRate: 44100, ReverbSend: &reverb}
	buf := &audio.Buffer{Data: []int16{1, 2, 3}, Channels: 1, SampleRate: 8000}

	sample, inst, _, err := BuildZone("lead", buf, opts)
	if err != nil {
		t.Fatalf("BuildZone() error = %v", err)
	}

	if sample.Name != "lead" || inst.Name != "lead" {
		t.Errorf("names = %q/%q, want lead/lead", sample.Name, inst.Name)
	}
	if sample.RootKey != 60 {
		t.Errorf("RootKey = %d, want 60", sample.RootKey)
	}
	if sample.PitchCorrection != -1 {
		t.Errorf("PitchCorrection = %d, want -1", sample.PitchCorrection)
	}
	// The configured rate wins over the decoded one.
	if sample.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want 44100", sample.SampleRate)
	}

	got, ok := inst.Zones[0].Generator(soundfont.GenReverbEffectsSend)
	if !ok || got != 618 {
		t.Errorf("reverb send = (%d, %v), want (618, true)", got, ok)
	}
}

func TestBuildZone_NoReverbByDefault(t *testing.T) {
	t.Parallel()

	buf := &audio.Buffer{Data: []int16{1}, Channels: 1}

	_, inst, _, err := BuildZone("x", buf, DefaultZoneOptions())
	if err != nil {
		t.Fatalf("BuildZone() error = %v", err)
	}

	if _, ok := inst.Zones[0].Generator(soundfont.GenReverbEffectsSend); ok {
		t.Error("reverb send generator present without configuration")
	}
}

func TestBuildZone_Empty(t *testing.T) {
	t.Parallel()

	for _, buf := range []*audio.Buffer{
		{Channels: 1},
		{Data: []int16{1}, Channels: 2},
		{Data: []int16{1, 2}},
	} {
		_, _, _, err := BuildZone("x", buf, DefaultZoneOptions())
		if !errors.Is(err, ErrEmptyAudio) {
			t.Errorf("BuildZone(%+v) error = %v, want %v", buf, err, ErrEmptyAudio)
		}
	}
}
