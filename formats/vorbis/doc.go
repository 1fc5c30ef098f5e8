// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// Decoding is done with github.com/jfreymuth/oggvorbis. Vorbis decodes to
// float32; the source converts to 16-bit PCM itself and implements
// audio.PCM16Source, so the bank loader takes the whole payload at once.
// Ogg streams do not declare a sample count up front, so DeclaredSamples
// is -1 and truncation cannot be detected from the header.
//
//	decoder := vorbis.Decoder{}
//	src, err := decoder.Decode(file)
//	pcm, err := src.(audio.PCM16Source).ReadPCM16()
package vorbis
