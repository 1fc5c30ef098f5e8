// SPDX-License-Identifier: EPL-2.0

package audio

// Loop is a pair of frame offsets. End is exclusive.
type Loop struct {
	Start int
	End   int
}

// Valid reports whether the loop lies inside a buffer of the given frame count.
func (l *Loop) Valid(frames int) bool {
	return l != nil && l.Start >= 0 && l.Start < l.End && l.End <= frames
}

// Buffer holds a fully decoded 16-bit PCM stream.
type Buffer struct {
	// Data is interleaved by channel.
	Data       []int16
	Channels   int
	SampleRate int

	// DeclaredFrames is the frame count announced by the container header,
	// or -1 when unknown.
	DeclaredFrames int

	// Loop comes from the container (e.g. a WAV smpl chunk), nil when absent.
	Loop *Loop
}

// Frames returns the number of complete frames in the buffer.
func (b *Buffer) Frames() int {
	if b == nil || b.Channels <= 0 {
		return 0
	}

	return len(b.Data) / b.Channels
}

// Validate checks the buffer invariants: at least one frame, and a sample
// count that is a whole multiple of the channel count.
func (b *Buffer) Validate() error {
	if b == nil || len(b.Data) == 0 {
		return ErrEmptyBuffer
	}

	if b.Channels <= 0 {
		return ErrInvalidChannels
	}

	if len(b.Data)%b.Channels != 0 {
		return ErrInvalidDstSize
	}

	return nil
}
