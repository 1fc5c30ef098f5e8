// SPDX-License-Identifier: EPL-2.0

// Package audio provides the decoding primitives used to turn audio files
// into 16-bit PCM buffers.
//
// # Source Interface
//
// Every format decoder returns a Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// The WAV, AIFF, MP3 and Vorbis sources also implement
// PCM16Source, which hands over the whole payload as []int16 together with
// the sample count declared by the container header. Sources whose
// container carries loop points implement LoopSource.
//
// # Collecting Samples
//
// ReadAll drains any Source into []int16:
//
//	pcm16, err := audio.ReadAll(src, 4096)
//
// # Channel Mixing
//
// MonoMixer averages all channels of a frame:
//
//	mono := audio.NewMonoMixer(src)
//	pcm16, err := audio.ReadAll(mono, 4096)
//
// # Format Registry
//
// The registry maps file extensions to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{Strict: true})
//	decoder, ok := registry.Get(".WAV") // keys are case insensitive
//
// # Buffers
//
// Buffer is the decoded result: interleaved int16 data, the channel count,
// the source sample rate, the frame count declared by the header and
// optional loop points. Buffer.Validate enforces that the buffer is
// non-empty and that its length is a whole multiple of the channel count.
package audio
