// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to decode AIFF files. It is an
// optional input format: bank builds only accept it when "aiff" or "aif" is
// listed in the configured formats.
//
// # Decoding AIFF Files
//
//	decoder := aiff.Decoder{Strict: true}
//	file, _ := os.Open("kick.aif")
//	source, err := decoder.Decode(file)
//
// The returned source implements audio.PCM16Source. DeclaredSamples is the
// COMM chunk frame count multiplied by the channel count.
//
// # Error Handling
//
//   - ErrNotAiffFile: the input is not a valid AIFF file
//   - ErrOnlyPCM16bitSupported: a strict decoder met a bit depth other than 16
//   - ErrUnsupportedAiffLayout: unsupported structure or bit depth
package aiff
