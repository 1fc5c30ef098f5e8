// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/ik5/sf2pack/audio"
	"github.com/ik5/sf2pack/utils"
)

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
	FullPCMBuffer() (*goaudio.IntBuffer, error)
}

// source wraps go-audio aiff.Decoder to implement audio.PCM16Source
type source struct {
	dec        aiffReader
	sampleRate int
	channels   int
	bitDepth   int
	declared   int
	intBuf     *goaudio.IntBuffer
}

func (s *source) SampleRate() int      { return s.sampleRate }
func (s *source) Channels() int        { return s.channels }
func (s *source) Close() error         { return nil }
func (s *source) DeclaredSamples() int { return s.declared }
func (s *source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

func (s *source) ReadPCM16() ([]int16, error) {
	buf, err := s.dec.FullPCMBuffer()
	if buf == nil {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("%w", err)
	}

	out := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		out[i] = utils.IntToInt16(v, s.bitDepth)
	}

	if err != nil {
		return out, fmt.Errorf("%w", err)
	}

	return out, nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:   make([]int, len(dst)),
			Format: s.dec.Format(),
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, io.EOF
	}

	for i := range n {
		dst[i] = float32(utils.IntToInt16(s.intBuf.Data[i], s.bitDepth)) / 32768.0
	}

	// If we got fewer samples than requested and no error, we're at EOF
	if n < len(dst) && err == nil {
		return n, io.EOF
	}

	return n, err
}

// Decoder reads AIFF files through go-audio/aiff.
type Decoder struct {
	// Strict accepts only 16-bit samples; otherwise 8, 24 and 32-bit data is
	// rescaled to 16 bits.
	Strict bool
}

func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()

	bitDepth := int(dec.BitDepth)
	if d.Strict && bitDepth != 16 {
		return nil, ErrOnlyPCM16bitSupported
	}

	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, ErrUnsupportedAiffLayout
	}

	format := dec.Format()
	if format == nil {
		return nil, ErrUnsupportedAiffLayout
	}

	return &source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		bitDepth:   bitDepth,
		declared:   int(dec.NumSampleFrames) * format.NumChannels,
	}, nil
}
