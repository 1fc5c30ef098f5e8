// SPDX-License-Identifier: EPL-2.0

package soundfont

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// sampleGuard is the number of zero sample points written after each sample.
const sampleGuard = 46

// nameSize is the fixed length of record names, NUL terminator included.
const nameSize = 20

// Write validates b and serializes it as an SF2 file.
func Write(w io.Writer, b *Bank) error {
	if err := b.Validate(); err != nil {
		return err
	}

	sdta, offsets := sampleData(b)

	var body bytes.Buffer
	body.WriteString("sfbk")
	writeChunk(&body, "LIST", infoList(b.Info))
	writeChunk(&body, "LIST", sdta)
	writeChunk(&body, "LIST", presetData(b, offsets))

	var out bytes.Buffer
	writeChunk(&out, "RIFF", body.Bytes())

	if _, err := out.WriteTo(w); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// writeChunk appends a chunk header, data and the pad byte for odd sizes.
func writeChunk(buf *bytes.Buffer, id string, data []byte) {
	buf.WriteString(id)
	_ = binary.Write(buf, binary.LittleEndian, uint32(len(data)))
	buf.Write(data)
	if len(data)%2 == 1 {
		buf.WriteByte(0)
	}
}

// zstr is a NUL terminated string padded to an even length.
func zstr(s string) []byte {
	b := append([]byte(s), 0)
	if len(b)%2 == 1 {
		b = append(b, 0)
	}
	return b
}

// fixedName truncates s to fit a 20-byte record name.
func fixedName(s string) [nameSize]byte {
	var n [nameSize]byte
	copy(n[:nameSize-1], s)
	return n
}

func version(major, minor uint16) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint16(b[0:2], major)
	binary.LittleEndian.PutUint16(b[2:4], minor)
	return b
}

func infoList(info Info) []byte {
	var buf bytes.Buffer
	buf.WriteString("INFO")

	writeChunk(&buf, "ifil", version(info.VersionMajor, info.VersionMinor))
	writeChunk(&buf, "isng", zstr(info.Engine))
	writeChunk(&buf, "INAM", zstr(info.Name))
	if info.ROM != "" {
		writeChunk(&buf, "irom", zstr(info.ROM))
		writeChunk(&buf, "iver", version(info.VersionMajor, info.VersionMinor))
	}
	if info.Software != "" {
		writeChunk(&buf, "ISFT", zstr(info.Software))
	}

	return buf.Bytes()
}

// sampleData builds the sdta list and returns the start offset, in sample
// points, of every sample.
func sampleData(b *Bank) ([]byte, map[*Sample]uint32) {
	offsets := make(map[*Sample]uint32, len(b.Samples))

	total := 0
	for _, s := range b.Samples {
		total += len(s.Data) + sampleGuard
	}

	smpl := make([]byte, total*2)
	pos := 0
	for _, s := range b.Samples {
		offsets[s] = uint32(pos)
		for i, v := range s.Data {
			binary.LittleEndian.PutUint16(smpl[(pos+i)*2:], uint16(v))
		}
		pos += len(s.Data) + sampleGuard
	}

	var buf bytes.Buffer
	buf.WriteString("sdta")
	writeChunk(&buf, "smpl", smpl)

	return buf.Bytes(), offsets
}

type phdrRecord struct {
	Name       [nameSize]byte
	Preset     uint16
	Bank       uint16
	BagIndex   uint16
	Library    uint32
	Genre      uint32
	Morphology uint32
}

type bagRecord struct {
	GenIndex uint16
	ModIndex uint16
}

type modRecord struct {
	Src       uint16
	Dest      uint16
	Amount    int16
	AmtSrc    uint16
	Transform uint16
}

type genRecord struct {
	Oper   uint16
	Amount int16
}

type instRecord struct {
	Name     [nameSize]byte
	BagIndex uint16
}

type shdrRecord struct {
	Name            [nameSize]byte
	Start           uint32
	End             uint32
	StartLoop       uint32
	EndLoop         uint32
	SampleRate      uint32
	OriginalPitch   uint8
	PitchCorrection int8
	SampleLink      uint16
	SampleType      uint16
}

func presetData(b *Bank, offsets map[*Sample]uint32) []byte {
	sampleIndex := make(map[*Sample]int, len(b.Samples))
	for i, s := range b.Samples {
		sampleIndex[s] = i
	}
	instIndex := make(map[*Instrument]int, len(b.Instruments))
	for i, inst := range b.Instruments {
		instIndex[inst] = i
	}

	var (
		phdr  []phdrRecord
		pbag  []bagRecord
		pgen  []genRecord
		inst  []instRecord
		ibag  []bagRecord
		igen  []genRecord
		shdrs []shdrRecord
	)

	for _, p := range b.Presets {
		phdr = append(phdr, phdrRecord{
			Name:     fixedName(p.Name),
			Preset:   uint16(p.Program),
			Bank:     uint16(p.Bank),
			BagIndex: uint16(len(pbag)),
		})
		for _, z := range p.Zones {
			pbag = append(pbag, bagRecord{GenIndex: uint16(len(pgen))})
			for _, g := range z.Generators {
				pgen = append(pgen, genRecord{Oper: uint16(g.Type), Amount: g.Amount})
			}
			// Instrument must be the last generator of a preset zone.
			pgen = append(pgen, genRecord{Oper: uint16(GenInstrument), Amount: int16(instIndex[z.Instrument])})
		}
	}
	phdr = append(phdr, phdrRecord{Name: fixedName("EOP"), BagIndex: uint16(len(pbag))})
	pbag = append(pbag, bagRecord{GenIndex: uint16(len(pgen))})
	pgen = append(pgen, genRecord{})

	for _, in := range b.Instruments {
		inst = append(inst, instRecord{Name: fixedName(in.Name), BagIndex: uint16(len(ibag))})
		for _, z := range in.Zones {
			ibag = append(ibag, bagRecord{GenIndex: uint16(len(igen))})
			for _, g := range z.Generators {
				igen = append(igen, genRecord{Oper: uint16(g.Type), Amount: g.Amount})
			}
			// SampleID must be the last generator of an instrument zone.
			igen = append(igen, genRecord{Oper: uint16(GenSampleID), Amount: int16(sampleIndex[z.Sample])})
		}
	}
	inst = append(inst, instRecord{Name: fixedName("EOI"), BagIndex: uint16(len(ibag))})
	ibag = append(ibag, bagRecord{GenIndex: uint16(len(igen))})
	igen = append(igen, genRecord{})

	for _, s := range b.Samples {
		start := offsets[s]
		shdrs = append(shdrs, shdrRecord{
			Name:            fixedName(s.Name),
			Start:           start,
			End:             start + uint32(len(s.Data)),
			StartLoop:       start + uint32(s.LoopStart),
			EndLoop:         start + uint32(s.LoopEnd),
			SampleRate:      uint32(s.SampleRate),
			OriginalPitch:   s.RootKey,
			PitchCorrection: s.PitchCorrection,
			SampleType:      SampleTypeMono,
		})
	}
	shdrs = append(shdrs, shdrRecord{Name: fixedName("EOS")})

	var buf bytes.Buffer
	buf.WriteString("pdta")
	writeChunk(&buf, "phdr", records(phdr))
	writeChunk(&buf, "pbag", records(pbag))
	writeChunk(&buf, "pmod", records([]modRecord{{}}))
	writeChunk(&buf, "pgen", records(pgen))
	writeChunk(&buf, "inst", records(inst))
	writeChunk(&buf, "ibag", records(ibag))
	writeChunk(&buf, "imod", records([]modRecord{{}}))
	writeChunk(&buf, "igen", records(igen))
	writeChunk(&buf, "shdr", records(shdrs))

	return buf.Bytes()
}

// records encodes fixed-size records back to back.
func records[T any](rs []T) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, rs)
	return buf.Bytes()
}
