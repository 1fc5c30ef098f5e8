// SPDX-License-Identifier: EPL-2.0

// Package sf2pack turns a directory of audio samples into a SoundFont 2
// bank, one preset per sample.
//
// # Pipeline
//
// Run scans the directory for candidate files, loads and assembles them
// with the bank package and writes the result:
//
//	cfg := config.DefaultConfig()
//	res, err := sf2pack.Run(ctx, cfg, "samples", logger)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Created %s with %d presets\n", res.Output, res.Presets)
//
// Candidates are taken in lexicographic order, so program numbers are the
// same on every run over the same directory. Loading runs on
// cfg.Assemble.Workers goroutines; committing into the bank happens on the
// calling goroutine in candidate order.
//
// # Supported Formats
//
// WAV is always available. AIFF, MP3 and Ogg Vorbis are enabled through
// cfg.Load.Formats:
//   - WAV (PCM 8/16/24/32-bit, smpl loops) via formats/wav
//   - AIFF via formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//
// # Output
//
// WriteFile writes into a temporary file next to the target and renames it
// on success, so a failed run never leaves a partial bank behind. With
// cfg.Verify set, the written file is read back with soundfont.ReadSummary
// and its preset slots compared to the assembled bank.
package sf2pack
