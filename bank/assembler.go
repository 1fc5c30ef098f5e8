// SPDX-License-Identifier: EPL-2.0

package bank

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ik5/sf2pack/soundfont"
	"go.uber.org/zap"
)

// State of an Assembler.
type State int

const (
	StateEmpty State = iota
	StatePopulating
	StateFinalized
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StatePopulating:
		return "populating"
	case StateFinalized:
		return "finalized"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Item is one prepared candidate. Exactly one of Err and the
// sample/instrument/preset triple is set.
type Item struct {
	Path  string
	Index int
	Slot  soundfont.Slot

	Sample     *soundfont.Sample
	Instrument *soundfont.Instrument
	Preset     *soundfont.Preset

	Err error
}

// Assembler collects candidates into a bank. Prepare may run on many
// goroutines; Commit must be called by a single goroutine in index order.
type Assembler struct {
	opts   Options
	loader *Loader
	logger *zap.Logger

	mu       sync.Mutex
	state    State
	bank     *soundfont.Bank
	slots    map[soundfont.Slot]string
	skipped  []*ItemError
	rejected []*ItemError
}

func NewAssembler(opts Options, loader *Loader, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.OnError == "" {
		opts.OnError = OnErrorSkip
	}
	if opts.Limit == "" {
		opts.Limit = LimitCap
	}

	return &Assembler{
		opts:   opts,
		loader: loader,
		logger: logger,
		bank:   soundfont.NewBank(opts.Info),
		slots:  make(map[soundfont.Slot]string),
	}
}

// SlotFor maps a candidate index to its bank/program slot.
func (a *Assembler) SlotFor(index int) (soundfont.Slot, error) {
	if a.opts.Limit == LimitCap && index >= PresetsPerBank {
		return soundfont.Slot{}, fmt.Errorf("%w: index %d, %d programs per bank", ErrPresetLimit, index, PresetsPerBank)
	}

	return soundfont.Slot{Bank: 0, Program: index % PresetsPerBank}, nil
}

// Prepare loads path and builds its zone graph without touching the bank.
func (a *Assembler) Prepare(path string, index int) *Item {
	it := &Item{Path: path, Index: index}

	slot, err := a.SlotFor(index)
	if err != nil {
		it.Err = err
		return it
	}
	it.Slot = slot

	name := Sanitize(path)

	buf, err := a.loader.Load(path)
	if err != nil {
		it.Err = err
		return it
	}

	sample, inst, zone, err := BuildZone(name, buf, a.opts.Zone)
	if err != nil {
		it.Err = err
		return it
	}

	it.Sample = sample
	it.Instrument = inst
	it.Preset = &soundfont.Preset{
		Name:    name,
		Bank:    slot.Bank,
		Program: slot.Program,
		Zones:   []*soundfont.PresetZone{zone},
	}

	return it
}

// Commit adds a prepared item to the bank. A failed item is recorded and
// logged; under the abort policy its error is returned as *ItemError.
// Items past the preset cap are recorded as rejected and never abort.
func (a *Assembler) Commit(it *Item) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state == StateFinalized {
		return ErrFinalized
	}
	a.state = StatePopulating

	if it.Err != nil {
		return a.fail(it)
	}

	if prev, ok := a.slots[it.Slot]; ok {
		a.logger.Warn("duplicate preset slot",
			zap.String("file", it.Path),
			zap.Int("index", it.Index),
			zap.Int("bank", it.Slot.Bank),
			zap.Int("program", it.Slot.Program),
			zap.String("previous", prev),
			zap.Error(ErrDuplicateSlot),
		)
	}

	if err := a.bank.Add(it.Sample, it.Instrument, it.Preset); err != nil {
		it.Err = err
		return a.fail(it)
	}
	a.slots[it.Slot] = it.Path

	a.logger.Debug("added preset",
		zap.String("file", it.Path),
		zap.String("name", it.Preset.Name),
		zap.Int("bank", it.Slot.Bank),
		zap.Int("program", it.Slot.Program),
	)

	return nil
}

func (a *Assembler) fail(it *Item) error {
	ie := &ItemError{Path: it.Path, Index: it.Index, Err: it.Err}

	if errors.Is(it.Err, ErrPresetLimit) {
		a.rejected = append(a.rejected, ie)
		a.logger.Warn("rejected sample",
			zap.String("file", it.Path),
			zap.Int("index", it.Index),
			zap.Error(it.Err),
		)
		return nil
	}

	if a.opts.OnError == OnErrorAbort {
		return ie
	}

	a.skipped = append(a.skipped, ie)
	a.logger.Warn("skipped sample",
		zap.String("file", it.Path),
		zap.Int("index", it.Index),
		zap.String("reason", it.Err.Error()),
	)

	return nil
}

// AddCandidate prepares and commits path in one step.
func (a *Assembler) AddCandidate(path string, index int) error {
	return a.Commit(a.Prepare(path, index))
}

// Finalize freezes the bank. It fails with ErrEmptyBank when no preset
// was added; the assembler is finalized either way.
func (a *Assembler) Finalize() (*soundfont.Bank, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state == StateFinalized {
		return nil, ErrFinalized
	}
	a.state = StateFinalized

	if len(a.bank.Presets) == 0 {
		return nil, ErrEmptyBank
	}

	return a.bank, nil
}

func (a *Assembler) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.state
}

// PresetCount is the number of presets committed so far.
func (a *Assembler) PresetCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return len(a.bank.Presets)
}

// Skipped lists candidates that failed to load under the skip policy.
func (a *Assembler) Skipped() []*ItemError {
	a.mu.Lock()
	defer a.mu.Unlock()

	return append([]*ItemError(nil), a.skipped...)
}

// Rejected lists candidates refused by the preset cap.
func (a *Assembler) Rejected() []*ItemError {
	a.mu.Lock()
	defer a.mu.Unlock()

	return append([]*ItemError(nil), a.rejected...)
}
