// SPDX-License-Identifier: EPL-2.0

package soundfont

import (
	"fmt"
	"math"
)

const (
	maxProgram = 127
	maxBank    = 16383
	maxRecords = math.MaxUint16
)

// Validate checks that the bank can be serialized: every referenced
// instrument and sample is registered, loops lie inside their sample, and
// every table fits its 16-bit indices.
func (b *Bank) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil bank", ErrInvalidBank)
	}

	samples := make(map[*Sample]bool, len(b.Samples))
	for _, s := range b.Samples {
		if s == nil {
			return fmt.Errorf("%w: nil sample", ErrInvalidBank)
		}
		if s.Points() == 0 {
			return fmt.Errorf("%w: sample %q is empty", ErrInvalidBank, s.Name)
		}
		if s.SampleRate <= 0 {
			return fmt.Errorf("%w: sample %q has no sample rate", ErrInvalidBank, s.Name)
		}
		samples[s] = true
	}

	instruments := make(map[*Instrument]bool, len(b.Instruments))
	for _, inst := range b.Instruments {
		if inst == nil {
			return fmt.Errorf("%w: nil instrument", ErrInvalidBank)
		}
		for _, z := range inst.Zones {
			if !samples[z.Sample] {
				return fmt.Errorf("%w: instrument %q references an unregistered sample", ErrInvalidBank, inst.Name)
			}
			if z.LoopStart() < 0 || z.LoopStart() > z.LoopEnd() || z.LoopEnd() > z.Sample.Points() {
				return fmt.Errorf("%w: instrument %q loop %d..%d outside sample of %d points",
					ErrInvalidBank, inst.Name, z.LoopStart(), z.LoopEnd(), z.Sample.Points())
			}
		}
		instruments[inst] = true
	}

	pbags, pgens := 0, 0
	for _, p := range b.Presets {
		if p == nil {
			return fmt.Errorf("%w: nil preset", ErrInvalidBank)
		}
		if p.Program < 0 || p.Program > maxProgram || p.Bank < 0 || p.Bank > maxBank {
			return fmt.Errorf("%w: preset %q has slot %d:%d", ErrInvalidBank, p.Name, p.Bank, p.Program)
		}
		for _, z := range p.Zones {
			if !instruments[z.Instrument] {
				return fmt.Errorf("%w: preset %q references an unregistered instrument", ErrInvalidBank, p.Name)
			}
			pgens += len(z.Generators) + 1
		}
		pbags += len(p.Zones)
	}

	ibags, igens := 0, 0
	for _, inst := range b.Instruments {
		ibags += len(inst.Zones)
		for _, z := range inst.Zones {
			igens += len(z.Generators) + 1
		}
	}

	for name, n := range map[string]int{
		"presets": len(b.Presets), "preset zones": pbags, "preset generators": pgens,
		"instruments": len(b.Instruments), "instrument zones": ibags, "instrument generators": igens,
		"samples": len(b.Samples),
	} {
		if n >= maxRecords {
			return fmt.Errorf("%w: too many %s (%d)", ErrInvalidBank, name, n)
		}
	}

	return nil
}
