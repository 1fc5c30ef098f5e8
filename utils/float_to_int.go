// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 maps a normalized sample in [-1, 1] to 16-bit PCM.
// The scale is 32768 so that v/32768 round trips exactly for every int16 v;
// 1.0 and anything above clamps to math.MaxInt16.
func Float32ToInt16(x float32) int16 {
	v := x * 32768.0
	if v >= math.MaxInt16 {
		return math.MaxInt16
	}
	if v <= math.MinInt16 {
		return math.MinInt16
	}

	return int16(v)
}

// IntToInt16 rescales an integer PCM sample of the given bit depth to 16 bits.
// Depths above 16 are truncated toward zero, depths below are shifted up.
// 8-bit samples are expected to be already centered on zero.
func IntToInt16(v int, bitDepth int) int16 {
	switch {
	case bitDepth <= 0 || bitDepth == 16:
	case bitDepth > 16:
		v >>= bitDepth - 16
	default:
		v <<= 16 - bitDepth
	}

	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}

	return int16(v)
}
