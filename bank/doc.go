// SPDX-License-Identifier: EPL-2.0

// Package bank assembles decoded samples into a SoundFont bank.
//
// Each candidate file goes through four steps:
//
//   - Sanitize derives the preset name from the file name.
//   - Loader decodes the file into an audio.Buffer, in strict or lenient mode.
//   - BuildZone wraps the buffer in a sample, an instrument and a preset zone.
//   - Assembler assigns the bank/program slot and commits the triple.
//
// An Assembler moves from StateEmpty to StatePopulating on the first
// commit and to StateFinalized on Finalize. Prepare holds the load and
// build work and is safe for concurrent use; Commit is the single writer
// and must see items in index order for program numbers to be stable.
//
//	loader, _ := bank.NewLoader(bank.LoaderOptions{Mode: bank.ModeStrict, Formats: []string{"wav"}}, logger)
//	asm := bank.NewAssembler(bank.Options{Zone: bank.DefaultZoneOptions()}, loader, logger)
//	for i, path := range paths {
//	    if err := asm.AddCandidate(path, i); err != nil {
//	        return err // abort policy
//	    }
//	}
//	b, err := asm.Finalize()
package bank
