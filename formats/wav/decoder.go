// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/sf2pack/audio"
	"github.com/ik5/sf2pack/utils"
)

// wavFormatPCM is the integer PCM format tag of the fmt chunk.
const wavFormatPCM = 1

// smplLoopForward is the smpl chunk loop type for a plain forward loop.
const smplLoopForward = 0

// pcmReader is the part of go-audio's wav.Decoder used by source, to allow testing
type pcmReader interface {
	FullPCMBuffer() (*goaudio.IntBuffer, error)
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type source struct {
	dec        pcmReader
	sampleRate int
	channels   int
	bitDepth   int
	declared   int
	loop       *audio.Loop
	intBuf     *goaudio.IntBuffer
}

func (s *source) SampleRate() int      { return s.sampleRate }
func (s *source) Channels() int        { return s.channels }
func (s *source) Close() error         { return nil }
func (s *source) DeclaredSamples() int { return s.declared }
func (s *source) Loop() *audio.Loop    { return s.loop }
func (s *source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

func (s *source) toInt16(v int) int16 {
	if s.bitDepth == 8 {
		// 8-bit WAV is unsigned.
		v -= 128
	}
	return utils.IntToInt16(v, s.bitDepth)
}

// ReadPCM16 reads the remaining PCM payload in one pass.
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
		out[i] = s.toInt16(v)
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
			Data: make([]int, len(dst)),
			Format: &goaudio.Format{
				NumChannels: s.channels,
				SampleRate:  s.sampleRate,
			},
			SourceBitDepth: s.bitDepth,
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil && err != io.EOF {
			return 0, fmt.Errorf("%w", err)
		}
		return 0, io.EOF
	}

	for i := range n {
		dst[i] = float32(s.toInt16(s.intBuf.Data[i])) / 32768.0
	}

	return n, nil
}

// Decoder reads RIFF/WAVE files through go-audio/wav.
type Decoder struct {
	// Strict accepts only integer PCM (format tag 1) at 16 bits per sample.
	// Lenient decoding takes whatever bit depth the header reports and
	// rescales it to 16 bits.
	Strict bool

	// Loops reads the first forward loop of the smpl chunk, if any.
	Loops bool
}

func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	var loop *audio.Loop
	if d.Loops {
		loop = readLoop(rs)
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	bitDepth := int(dec.BitDepth)
	if d.Strict && (dec.WavAudioFormat != wavFormatPCM || bitDepth != 16) {
		return nil, ErrOnlyPCM16bitSupported
	}

	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, ErrUnsupportedWavLayout
	}

	if err := dec.FwdToPCM(); err != nil || dec.PCMChunk == nil {
		return nil, ErrUnsupportedWavChunks
	}

	declared := -1
	if bytesPerSample := bitDepth / 8; bytesPerSample > 0 {
		declared = dec.PCMChunk.Size / bytesPerSample
	}

	return &source{
		dec:        dec,
		sampleRate: int(dec.SampleRate),
		channels:   int(dec.NumChans),
		bitDepth:   bitDepth,
		declared:   declared,
		loop:       loop,
	}, nil
}

// readLoop runs a separate metadata pass; a file without a usable smpl
// chunk yields nil.
func readLoop(rs io.ReadSeeker) *audio.Loop {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil
	}

	md := gowav.NewDecoder(rs)
	md.ReadMetadata()
	if md.Metadata == nil || md.Metadata.SamplerInfo == nil {
		return nil
	}

	for _, l := range md.Metadata.SamplerInfo.Loops {
		if l == nil || l.Type != smplLoopForward {
			continue
		}

		// smpl loop ends are inclusive.
		return &audio.Loop{Start: int(l.Start), End: int(l.End) + 1}
	}

	return nil
}
