// SPDX-License-Identifier: EPL-2.0

package soundfont

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

// PresetHeader is one phdr record.
type PresetHeader struct {
	Name    string
	Bank    int
	Program int
}

// SampleHeader is one shdr record with absolute offsets in sample points.
type SampleHeader struct {
	Name            string
	Start           int
	End             int
	LoopStart       int
	LoopEnd         int
	SampleRate      int
	OriginalPitch   int
	PitchCorrection int
}

// Summary is the structural content of an SF2 file. Terminal records are
// not included.
type Summary struct {
	Info                 Info
	Presets              []PresetHeader
	Instruments          []string
	InstrumentGenerators []Generator
	Samples              []SampleHeader
	SampleDataPoints     int
}

// Slots lists the address of every preset in file order.
func (s *Summary) Slots() []Slot {
	slots := make([]Slot, len(s.Presets))
	for i, p := range s.Presets {
		slots[i] = Slot{Bank: p.Bank, Program: p.Program}
	}
	return slots
}

// ReadSummary walks the RIFF structure of an SF2 file. Sample data is
// skipped, only its size is recorded.
func ReadSummary(r io.Reader) (*Summary, error) {
	p := riff.New(r)

	top, err := p.NextChunk()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotSoundFont, err)
	}

	var form [4]byte
	if top.ID != [4]byte{'R', 'I', 'F', 'F'} {
		return nil, ErrNotSoundFont
	}
	if _, err := io.ReadFull(top, form[:]); err != nil || string(form[:]) != "sfbk" {
		return nil, ErrNotSoundFont
	}

	sum := &Summary{}
	seen := 0

	for {
		ch, err := p.NextChunk()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedChunk, err)
		}

		if ch.ID != [4]byte{'L', 'I', 'S', 'T'} || ch.Size < 4 {
			if _, err := io.CopyN(io.Discard, ch, int64(ch.Size)); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrMalformedChunk, err)
			}
			continue
		}

		var kind [4]byte
		if _, err := io.ReadFull(ch, kind[:]); err != nil {
			return nil, fmt.Errorf("%w: LIST: %w", ErrMalformedChunk, err)
		}

		body := make([]byte, ch.Size-4)
		if _, err := io.ReadFull(ch, body); err != nil {
			return nil, fmt.Errorf("%w: LIST %s: %w", ErrMalformedChunk, kind[:], err)
		}

		if err := sum.readList(string(kind[:]), body); err != nil {
			return nil, err
		}
		seen++
	}

	if seen == 0 {
		return nil, ErrNotSoundFont
	}

	return sum, nil
}

func (s *Summary) readList(kind string, body []byte) error {
	p := riff.New(bytes.NewReader(body))

	for {
		ch, err := p.NextChunk()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrMalformedChunk, kind, err)
		}

		data := make([]byte, ch.Size)
		if _, err := io.ReadFull(ch, data); err != nil {
			return fmt.Errorf("%w: %s/%s: %w", ErrMalformedChunk, kind, ch.ID[:], err)
		}

		if err := s.readSubChunk(string(ch.ID[:]), data); err != nil {
			return err
		}
	}
}

func (s *Summary) readSubChunk(id string, data []byte) error {
	switch id {
	case "ifil":
		if len(data) < 4 {
			return fmt.Errorf("%w: ifil", ErrMalformedChunk)
		}
		s.Info.VersionMajor = binary.LittleEndian.Uint16(data[0:2])
		s.Info.VersionMinor = binary.LittleEndian.Uint16(data[2:4])
	case "isng":
		s.Info.Engine = cString(data)
	case "INAM":
		s.Info.Name = cString(data)
	case "irom":
		s.Info.ROM = cString(data)
	case "ISFT":
		s.Info.Software = cString(data)
	case "smpl":
		s.SampleDataPoints = len(data) / 2
	case "phdr":
		var rs []phdrRecord
		if err := decodeRecords(id, data, &rs); err != nil {
			return err
		}
		for _, r := range dropTerminal(rs) {
			s.Presets = append(s.Presets, PresetHeader{
				Name:    cString(r.Name[:]),
				Bank:    int(r.Bank),
				Program: int(r.Preset),
			})
		}
	case "inst":
		var rs []instRecord
		if err := decodeRecords(id, data, &rs); err != nil {
			return err
		}
		for _, r := range dropTerminal(rs) {
			s.Instruments = append(s.Instruments, cString(r.Name[:]))
		}
	case "igen":
		var rs []genRecord
		if err := decodeRecords(id, data, &rs); err != nil {
			return err
		}
		for _, r := range dropTerminal(rs) {
			s.InstrumentGenerators = append(s.InstrumentGenerators, Generator{Type: GeneratorType(r.Oper), Amount: r.Amount})
		}
	case "shdr":
		var rs []shdrRecord
		if err := decodeRecords(id, data, &rs); err != nil {
			return err
		}
		for _, r := range dropTerminal(rs) {
			s.Samples = append(s.Samples, SampleHeader{
				Name:            cString(r.Name[:]),
				Start:           int(r.Start),
				End:             int(r.End),
				LoopStart:       int(r.StartLoop),
				LoopEnd:         int(r.EndLoop),
				SampleRate:      int(r.SampleRate),
				OriginalPitch:   int(r.OriginalPitch),
				PitchCorrection: int(r.PitchCorrection),
			})
		}
	}

	return nil
}

// decodeRecords fills dst, a pointer to a slice of fixed-size records.
func decodeRecords[T any](id string, data []byte, dst *[]T) error {
	size := binary.Size(new(T))
	if size <= 0 || len(data)%size != 0 {
		return fmt.Errorf("%w: %s size %d", ErrMalformedChunk, id, len(data))
	}

	*dst = make([]T, len(data)/size)
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, *dst); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformedChunk, id, err)
	}

	return nil
}

func dropTerminal[T any](rs []T) []T {
	if len(rs) == 0 {
		return rs
	}
	return rs[:len(rs)-1]
}

func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
