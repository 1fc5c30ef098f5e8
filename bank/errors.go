// SPDX-License-Identifier: EPL-2.0

package bank

import (
	"errors"
	"fmt"
)

var (
	// Per-item failures. Under the skip policy they are logged and the
	// candidate is left out of the bank.
	ErrOpen       = errors.New("cannot open sample")
	ErrFormat     = errors.New("unsupported sample format")
	ErrRead       = errors.New("sample read failed")
	ErrEmptyAudio = errors.New("sample has no audio frames")

	ErrPresetLimit   = errors.New("preset limit reached")
	ErrDuplicateSlot = errors.New("bank/program slot already used")

	ErrEmptyBank = errors.New("no presets were added to the bank")
	ErrFinalized = errors.New("bank is already finalized")
)

// ItemError is the failure of one candidate file.
type ItemError struct {
	Path  string
	Index int
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("candidate %d (%s): %v", e.Index, e.Path, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }
