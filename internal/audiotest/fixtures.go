// SPDX-License-Identifier: EPL-2.0

// Package audiotest writes audio fixtures and fake sources for tests.
package audiotest

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/sf2pack/audio"
	"github.com/ik5/sf2pack/formats/wav"
)

// SampleRate is the rate used by every generated fixture.
const SampleRate = 44100

// Tone returns frames*channels samples of a 440 Hz sine at half scale.
func Tone(frames, channels int) []int16 {
	out := make([]int16, frames*channels)
	for f := range frames {
		v := int16(16384 * math.Sin(2*math.Pi*440*float64(f)/SampleRate))
		for c := range channels {
			out[f*channels+c] = v
		}
	}

	return out
}

// WriteWAV writes a 16-bit PCM WAV with the given options into dir and
// returns its path.
func WriteWAV(tb testing.TB, dir, name string, opts wav.WriteOptions, samples []int16) string {
	tb.Helper()

	if opts.SampleRate == 0 {
		opts.SampleRate = SampleRate
	}
	if opts.Channels == 0 {
		opts.Channels = 1
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		tb.Fatalf("creating %s: %v", path, err)
	}
	defer f.Close()

	if err := wav.WritePCM16(f, opts, samples); err != nil {
		tb.Fatalf("writing %s: %v", path, err)
	}

	return path
}

// WriteMono writes a mono tone of the given frame count.
func WriteMono(tb testing.TB, dir, name string, frames int) string {
	tb.Helper()

	return WriteWAV(tb, dir, name, wav.WriteOptions{}, Tone(frames, 1))
}

// WriteLooped writes a mono tone whose smpl chunk carries loop.
func WriteLooped(tb testing.TB, dir, name string, frames int, loop audio.Loop) string {
	tb.Helper()

	return WriteWAV(tb, dir, name, wav.WriteOptions{Loop: &loop}, Tone(frames, 1))
}

// WriteTruncated writes a mono tone of frames frames whose data chunk header
// claims frames+missing.
func WriteTruncated(tb testing.TB, dir, name string, frames, missing int) string {
	tb.Helper()

	opts := wav.WriteOptions{DataSize: uint32((frames + missing) * 2)}

	return WriteWAV(tb, dir, name, opts, Tone(frames, 1))
}

// WriteHeaderOnly writes a 44-byte WAV with an empty data chunk.
func WriteHeaderOnly(tb testing.TB, dir, name string) string {
	tb.Helper()

	return WriteWAV(tb, dir, name, wav.WriteOptions{}, nil)
}

// WriteGarbage writes bytes that no decoder accepts.
func WriteGarbage(tb testing.TB, dir, name string) string {
	tb.Helper()

	path := filepath.Join(dir, name)
	data := []byte("this is definitely not a RIFF file, just some text padding it out")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatalf("writing %s: %v", path, err)
	}

	return path
}
