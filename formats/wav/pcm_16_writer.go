// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/sf2pack/audio"
)

// smplHeaderSize is the fixed part of a smpl chunk; each loop adds smplLoopSize.
const (
	smplHeaderSize = 36
	smplLoopSize   = 24
	smplUnityNote  = 60
)

// WriteOptions describes the stream written by WritePCM16.
type WriteOptions struct {
	SampleRate int
	Channels   int

	// Loop, when set, is stored as a forward loop in a smpl chunk.
	// End is exclusive, like audio.Loop.
	Loop *audio.Loop

	// DataSize overrides the byte count declared in the data chunk header.
	// Zero means the real payload size. Used to produce truncated fixtures.
	DataSize uint32
}

// WriteWAV16 writes a mono 16-bit PCM WAV at sampleRate.  samples must be int16 PCM.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	return WritePCM16(w, WriteOptions{SampleRate: sampleRate, Channels: 1}, samples)
}

// WritePCM16 writes interleaved 16-bit PCM with a canonical 44-byte header,
// followed by an optional smpl chunk.
func WritePCM16(w io.Writer, opts WriteOptions, samples []int16) error {
	if opts.Channels < 1 || opts.Channels > 0xFFFF {
		return ErrInvalidChannelCount
	}

	numChannels := uint16(opts.Channels)
	bitsPerSample := uint16(16)
	byteRate := uint32(opts.SampleRate) * uint32(numChannels) * uint32(bitsPerSample/8)
	blockAlign := numChannels * (bitsPerSample / 8)

	payload := uint32(len(samples) * 2)
	dataSize := payload
	if opts.DataSize != 0 {
		dataSize = opts.DataSize
	}

	var smpl []byte
	if opts.Loop != nil {
		smpl = samplerChunk(opts.SampleRate, opts.Loop)
	}

	riffSize := 36 + payload + uint32(len(smpl))

	header := make([]byte, 44)

	// RIFF header (12 bytes)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], riffSize)
	copy(header[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], wavFormatPCM)
	binary.LittleEndian.PutUint16(header[22:24], numChannels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(opts.SampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	// data chunk header (8 bytes)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}

	const chunkSize = 8192
	buf := make([]byte, min(len(samples), chunkSize)*2)

	for i := 0; i < len(samples); i += chunkSize {
		chunk := samples[i:min(i+chunkSize, len(samples))]
		buf = buf[:len(chunk)*2]

		for j, s := range chunk {
			binary.LittleEndian.PutUint16(buf[j*2:j*2+2], uint16(s))
		}

		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	if len(smpl) > 0 {
		if _, err := w.Write(smpl); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// samplerChunk encodes a smpl chunk holding a single forward loop.
func samplerChunk(sampleRate int, loop *audio.Loop) []byte {
	size := smplHeaderSize + smplLoopSize
	b := make([]byte, 8+size)

	copy(b[0:4], "smpl")
	binary.LittleEndian.PutUint32(b[4:8], uint32(size))

	body := b[8:]
	var period uint32
	if sampleRate > 0 {
		period = uint32(1_000_000_000 / sampleRate)
	}
	binary.LittleEndian.PutUint32(body[8:12], period)
	binary.LittleEndian.PutUint32(body[12:16], smplUnityNote)
	binary.LittleEndian.PutUint32(body[28:32], 1) // loop count

	l := body[smplHeaderSize:]
	binary.LittleEndian.PutUint32(l[4:8], smplLoopForward)
	binary.LittleEndian.PutUint32(l[8:12], uint32(loop.Start))
	// smpl loop ends are inclusive.
	binary.LittleEndian.PutUint32(l[12:16], uint32(loop.End-1))

	return b
}
