// SPDX-License-Identifier: EPL-2.0

// Package soundfont models a SoundFont 2 bank and reads and writes the SF2
// RIFF container.
//
// A Bank holds samples, instruments and presets. Instruments reference
// samples through their zones and presets reference instruments; Write
// refuses banks where a reference points outside the bank.
//
//	b := soundfont.NewBank(soundfont.Info{Engine: "EMU8000", Name: "Chipsound", VersionMajor: 2, VersionMinor: 4})
//	_ = b.Add(sample, instrument, preset)
//	err := soundfont.Write(f, b)
//
// ReadSummary walks an existing file with go-audio/riff and returns the
// INFO fields together with the preset, instrument and sample headers.
package soundfont
