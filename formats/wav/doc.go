// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// Decoding is done with github.com/go-audio/wav, which walks the RIFF
// chunks instead of assuming a canonical 44-byte header.
//
// # Decoding Modes
//
// A strict Decoder accepts only integer PCM at 16 bits per sample and
// returns ErrOnlyPCM16bitSupported for anything else. A lenient Decoder
// accepts 8, 16, 24 and 32-bit integer data and rescales it to 16 bits:
//
//	strict := wav.Decoder{Strict: true}
//	src, err := strict.Decode(file)
//
// The returned source implements audio.PCM16Source, so the whole payload
// can be taken at once, and DeclaredSamples reports the sample count the
// data chunk header announced. Comparing the two detects truncated files.
//
// # Loop Points
//
// With Loops set, the first forward loop of a smpl chunk is exposed through
// audio.LoopSource. smpl loop ends are inclusive; audio.Loop ends are not.
//
// # Writing WAV Files
//
// WriteWAV16 writes mono 16-bit PCM; WritePCM16 adds the channel count, an
// optional smpl loop and an optional override of the declared data size:
//
//	err := wav.WritePCM16(file, wav.WriteOptions{
//	    SampleRate: 44100,
//	    Channels:   1,
//	    Loop:       &audio.Loop{Start: 100, End: 900},
//	}, samples)
package wav
