// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 input with github.com/hajimehoshi/go-mp3.
//
// go-mp3 always emits interleaved 16-bit stereo, so the source reports two
// channels even for mono files. Enable downmixing in the loader to store a
// single channel.
//
// The source implements audio.PCM16Source. DeclaredSamples comes from the
// decoder's Length, which is only known for seekable input.
package mp3
