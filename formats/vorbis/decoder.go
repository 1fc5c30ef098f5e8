// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/sf2pack/audio"
	"github.com/ik5/sf2pack/utils"
	"github.com/jfreymuth/oggvorbis"
)

// defaultBufSize is the number of float values pulled from the stream per call.
const defaultBufSize = 4096

// vorbisStream is the part of oggvorbis.Reader used by stream.
type vorbisStream interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

// stream adapts a Vorbis float stream to audio.PCM16Source. Ogg does not
// announce a sample count ahead of the pages, so DeclaredSamples is -1.
type stream struct {
	dec        vorbisStream
	sampleRate int
	channels   int
	scratch    []float32
}

func (s *stream) SampleRate() int      { return s.sampleRate }
func (s *stream) Channels() int        { return s.channels }
func (s *stream) Close() error         { return nil }
func (s *stream) BufSize() int         { return cap(s.scratch) }
func (s *stream) DeclaredSamples() int { return -1 }

// next fills up to n whole frames into scratch. A (0, nil) read from the
// decoder is reported as io.EOF.
func (s *stream) next(n int) ([]float32, error) {
	n = n / s.channels * s.channels
	if n == 0 {
		return nil, nil
	}

	if cap(s.scratch) < n {
		s.scratch = make([]float32, n)
	}

	got, err := s.dec.Read(s.scratch[:n])
	if got == 0 && err == nil {
		err = io.EOF
	}

	return s.scratch[:got], err
}

func (s *stream) ReadSamples(dst []float32) (int, error) {
	vals, err := s.next(len(dst))
	if len(vals) == 0 && err == nil {
		return 0, nil
	}

	return copy(dst, vals), err
}

// ReadPCM16 decodes the rest of the stream to interleaved int16.
func (s *stream) ReadPCM16() ([]int16, error) {
	var out []int16

	for {
		vals, err := s.next(max(cap(s.scratch), defaultBufSize))
		for _, v := range vals {
			out = append(out, utils.Float32ToInt16(v))
		}

		switch {
		case errors.Is(err, io.EOF):
			return out, nil
		case err != nil:
			return out, fmt.Errorf("%w", err)
		}
	}
}

// Decoder reads Ogg Vorbis streams. Channel layout and rate come from the
// identification header; there is no strict mode since Vorbis has no
// integer bit depth to check.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotVorbisFile, err)
	}

	if dec.Channels() < 1 {
		return nil, ErrNotVorbisFile
	}

	return &stream{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
		scratch:    make([]float32, defaultBufSize),
	}, nil
}
