// SPDX-License-Identifier: EPL-2.0

package soundfont

// GeneratorType is an SF2 generator operator.
type GeneratorType uint16

const (
	GenStartLoopAddrsOffset GeneratorType = 2
	GenEndLoopAddrsOffset   GeneratorType = 3
	GenReverbEffectsSend    GeneratorType = 16
	GenInstrument           GeneratorType = 41
	GenKeyRange             GeneratorType = 43
	GenSampleID             GeneratorType = 53
	GenSampleModes          GeneratorType = 54
	GenOverridingRootKey    GeneratorType = 58
)

// SampleMode values for GenSampleModes.
const (
	ModeNoLoop         int16 = 0
	ModeLoopContinuous int16 = 1
)

// Sample types for the shdr record.
const (
	SampleTypeMono uint16 = 1
)

// Generator is one (operator, amount) pair of a zone.
type Generator struct {
	Type   GeneratorType
	Amount int16
}

// Sample is the PCM payload of one sample header. Data is interleaved when
// Channels > 1 and is written as a single sample record, so every data point
// counts as one sample point of that record.
type Sample struct {
	Name       string
	Data       []int16
	Channels   int
	SampleRate int

	// Loop points in data points relative to the start of Data. LoopEnd is exclusive.
	LoopStart int
	LoopEnd   int

	RootKey         uint8
	PitchCorrection int8
}

// Points is the number of sample points written for s.
func (s *Sample) Points() int {
	return len(s.Data)
}

// InstrumentZone plays one sample with its generators. The SampleID
// generator is implied by Sample and must not appear in Generators.
type InstrumentZone struct {
	Sample     *Sample
	Generators []Generator
}

// Generator returns the amount of the first generator of type t.
func (z *InstrumentZone) Generator(t GeneratorType) (int16, bool) {
	for _, g := range z.Generators {
		if g.Type == t {
			return g.Amount, true
		}
	}

	return 0, false
}

// LoopStart is the loop start in data points after applying offset generators.
func (z *InstrumentZone) LoopStart() int {
	off, _ := z.Generator(GenStartLoopAddrsOffset)
	return z.Sample.LoopStart + int(off)
}

// LoopEnd is the loop end in data points after applying offset generators.
func (z *InstrumentZone) LoopEnd() int {
	off, _ := z.Generator(GenEndLoopAddrsOffset)
	return z.Sample.LoopEnd + int(off)
}

// Mode is the zone's sample mode; no generator means no loop.
func (z *InstrumentZone) Mode() int16 {
	m, _ := z.Generator(GenSampleModes)
	return m
}

type Instrument struct {
	Name  string
	Zones []*InstrumentZone
}

// PresetZone references one instrument. The Instrument generator is implied
// and must not appear in Generators.
type PresetZone struct {
	Instrument *Instrument
	Generators []Generator
}

type Preset struct {
	Name    string
	Bank    int
	Program int
	Zones   []*PresetZone
}

// Info holds the INFO list of the bank.
type Info struct {
	Engine       string
	Name         string
	ROM          string
	Software     string
	VersionMajor uint16
	VersionMinor uint16
}

// Bank is the in-memory SoundFont. Samples, Instruments and Presets are
// written in slice order.
type Bank struct {
	Info        Info
	Samples     []*Sample
	Instruments []*Instrument
	Presets     []*Preset
}

func NewBank(info Info) *Bank {
	return &Bank{Info: info}
}

// Add registers a sample, the instrument playing it and the preset wrapping
// that instrument. Nothing is added when the triple is inconsistent.
func (b *Bank) Add(s *Sample, inst *Instrument, p *Preset) error {
	if s == nil || inst == nil || p == nil {
		return ErrInvalidBank
	}

	if !zonesUse(inst, s) || !presetUses(p, inst) {
		return ErrInvalidBank
	}

	b.Samples = append(b.Samples, s)
	b.Instruments = append(b.Instruments, inst)
	b.Presets = append(b.Presets, p)

	return nil
}

func zonesUse(inst *Instrument, s *Sample) bool {
	for _, z := range inst.Zones {
		if z.Sample == s {
			return true
		}
	}
	return false
}

func presetUses(p *Preset, inst *Instrument) bool {
	for _, z := range p.Zones {
		if z.Instrument == inst {
			return true
		}
	}
	return false
}

// Slot is a (bank, program) address.
type Slot struct {
	Bank    int
	Program int
}

// Slots lists the address of every preset in order.
func (b *Bank) Slots() []Slot {
	slots := make([]Slot, len(b.Presets))
	for i, p := range b.Presets {
		slots[i] = Slot{Bank: p.Bank, Program: p.Program}
	}
	return slots
}
