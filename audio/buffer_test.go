// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"testing"
)

func TestLoop_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		loop   *Loop
		frames int
		want   bool
	}{
		{"nil", nil, 100, false},
		{"whole buffer", &Loop{Start: 0, End: 100}, 100, true},
		{"inner", &Loop{Start: 10, End: 90}, 100, true},
		{"empty", &Loop{Start: 50, End: 50}, 100, false},
		{"reversed", &Loop{Start: 60, End: 40}, 100, false},
		{"past end", &Loop{Start: 0, End: 101}, 100, false},
		{"negative start", &Loop{Start: -1, End: 10}, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.loop.Valid(tt.frames); got != tt.want {
				t.Errorf("Valid(%d) = %v, want %v", tt.frames, got, tt.want)
			}
		})
	}
}

func TestBuffer_Frames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		buf  *Buffer
		want int
	}{
		{"nil", nil, 0},
		{"mono", &Buffer{Data: make([]int16, 10), Channels: 1}, 10},
		{"stereo", &Buffer{Data: make([]int16, 10), Channels: 2}, 5},
		{"no channels", &Buffer{Data: make([]int16, 10)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.buf.Frames(); got != tt.want {
				t.Errorf("Frames() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBuffer_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		buf  *Buffer
		want error
	}{
		{"nil", nil, ErrEmptyBuffer},
		{"empty", &Buffer{Channels: 1}, ErrEmptyBuffer},
		{"zero channels", &Buffer{Data: []int16{1}}, ErrInvalidChannels},
		{"partial frame", &Buffer{Data: []int16{1, 2, 3}, Channels: 2}, ErrInvalidDstSize},
		{"valid", &Buffer{Data: []int16{1, 2}, Channels: 2}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if err := tt.buf.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}
