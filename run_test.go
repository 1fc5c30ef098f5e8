// SPDX-License-Identifier: EPL-2.0

package sf2pack

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ik5/sf2pack/bank"
	"github.com/ik5/sf2pack/formats/wav"
	"github.com/ik5/sf2pack/internal/audiotest"
	"github.com/ik5/sf2pack/internal/config"
	"github.com/ik5/sf2pack/soundfont"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// testConfig writes the output into its own temporary directory.
func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Output = filepath.Join(t.TempDir(), "out.sf2")

	return cfg
}

func writeValid(t *testing.T, dir string, names ...string) {
	t.Helper()

	for _, name := range names {
		audiotest.WriteMono(t, dir, name, 64)
	}
}

func readSummary(t *testing.T, path string) *soundfont.Summary {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	sum, err := soundfont.ReadSummary(f)
	require.NoError(t, err)

	return sum
}

func TestRun_SkipsCorruptFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeValid(t, dir, "a.wav", "b.wav", "c.wav", "d.wav")
	bad := audiotest.WriteTruncated(t, dir, "bb.wav", 32, 100)

	core, logs := observer.New(zap.WarnLevel)
	cfg := testConfig(t)

	res, err := Run(context.Background(), cfg, dir, zap.New(core))
	require.NoError(t, err)

	assert.Equal(t, 5, res.Candidates)
	assert.Equal(t, 4, res.Presets)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, bad, res.Skipped[0].Path)
	assert.ErrorIs(t, res.Skipped[0], bank.ErrRead)

	skipped := logs.FilterMessage("skipped sample").All()
	require.Len(t, skipped, 1)
	assert.Equal(t, bad, skipped[0].ContextMap()["file"])

	sum := readSummary(t, cfg.Output)
	want := []soundfont.Slot{
		{Bank: 0, Program: 0},
		{Bank: 0, Program: 1},
		{Bank: 0, Program: 3},
		{Bank: 0, Program: 4},
	}
	if diff := cmp.Diff(want, sum.Slots()); diff != "" {
		t.Errorf("slots mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_HeaderOnlyFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode           string
		wantCandidates int
		wantSkipped    int
	}{
		{"strict", 4, 0},
		{"lenient", 5, 1},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeValid(t, dir, "a.wav", "b.wav", "c.wav", "d.wav")
			audiotest.WriteHeaderOnly(t, dir, "e.wav")

			cfg := testConfig(t)
			cfg.Load.Mode = tt.mode

			res, err := Run(context.Background(), cfg, dir, nil)
			require.NoError(t, err)

			assert.Equal(t, tt.wantCandidates, res.Candidates)
			assert.Equal(t, 4, res.Presets)
			assert.Len(t, res.Skipped, tt.wantSkipped)
		})
	}
}

func TestRun_EmptyDirectory(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)

	_, err := Run(context.Background(), cfg, t.TempDir(), nil)
	require.ErrorIs(t, err, bank.ErrEmptyBank)

	_, statErr := os.Stat(cfg.Output)
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "output must not exist")
}

func TestRun_InvalidDirectory(t *testing.T) {
	t.Parallel()

	_, err := Run(context.Background(), testConfig(t), filepath.Join(t.TempDir(), "nope"), nil)
	require.ErrorIs(t, err, ErrInvalidDir)
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Assemble.Workers = 0

	_, err := Run(context.Background(), cfg, t.TempDir(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "workers")
}

func TestRun_AbortLeavesNoOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeValid(t, dir, "a.wav", "c.wav")
	audiotest.WriteGarbage(t, dir, "b.wav")

	cfg := testConfig(t)
	cfg.Assemble.OnError = "abort"

	_, err := Run(context.Background(), cfg, dir, nil)
	require.ErrorIs(t, err, bank.ErrFormat)

	var ie *bank.ItemError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 1, ie.Index)

	entries, err := os.ReadDir(filepath.Dir(cfg.Output))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_WorkersMatchSequential(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for i := range 20 {
		audiotest.WriteMono(t, dir, fmt.Sprintf("s%02d.wav", i), 32+i)
	}
	audiotest.WriteGarbage(t, dir, "s07x.wav")

	outputs := make(map[int][]byte)
	for _, workers := range []int{1, 4} {
		cfg := testConfig(t)
		cfg.Assemble.Workers = workers

		res, err := Run(context.Background(), cfg, dir, nil)
		require.NoError(t, err)
		assert.Equal(t, 20, res.Presets)

		data, err := os.ReadFile(cfg.Output)
		require.NoError(t, err)
		outputs[workers] = data
	}

	assert.True(t, bytes.Equal(outputs[1], outputs[4]), "parallel output differs from sequential")
}

func TestRun_Canceled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeValid(t, dir, "a.wav", "b.wav")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := testConfig(t)
	cfg.Assemble.Workers = 2

	_, err := Run(ctx, cfg, dir, nil)
	require.ErrorIs(t, err, context.Canceled)

	_, statErr := os.Stat(cfg.Output)
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "output must not exist")
}

func TestRun_Verify(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeValid(t, dir, "kick.wav", "snare.wav", "hat.wav")

	cfg := testConfig(t)
	cfg.Verify = true

	res, err := Run(context.Background(), cfg, dir, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Presets)

	sum := readSummary(t, cfg.Output)
	var names []string
	for _, p := range sum.Presets {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"hat", "kick", "snare"}, names)
	assert.Equal(t, "Chipsound", sum.Info.Name)
}

func TestRun_PresetCap(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for i := range 130 {
		audiotest.WriteMono(t, dir, fmt.Sprintf("s%03d.wav", i), 4)
	}

	cfg := testConfig(t)
	cfg.Assemble.Workers = 8
	cfg.Verify = true

	res, err := Run(context.Background(), cfg, dir, nil)
	require.NoError(t, err)

	assert.Equal(t, 128, res.Presets)
	require.Len(t, res.Rejected, 2)
	assert.Equal(t, 128, res.Rejected[0].Index)
	assert.Equal(t, 129, res.Rejected[1].Index)
	assert.Empty(t, res.Skipped)
}

func TestRun_Deterministic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeValid(t, dir, "z.wav", "m.wav", "a.wav")

	var runs [][]soundfont.Slot
	var names [][]string
	for range 2 {
		cfg := testConfig(t)
		_, err := Run(context.Background(), cfg, dir, nil)
		require.NoError(t, err)

		sum := readSummary(t, cfg.Output)
		runs = append(runs, sum.Slots())

		var n []string
		for _, p := range sum.Presets {
			n = append(n, p.Name)
		}
		names = append(names, n)
	}

	assert.Equal(t, runs[0], runs[1])
	assert.Equal(t, names[0], names[1])
	assert.Equal(t, []string{"a", "m", "z"}, names[0])
}

func TestRun_StereoLoopSpansSample(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	audiotest.WriteWAV(t, dir, "pad.wav", wav.WriteOptions{Channels: 2}, audiotest.Tone(500, 2))

	cfg := testConfig(t)
	_, err := Run(context.Background(), cfg, dir, nil)
	require.NoError(t, err)

	sum := readSummary(t, cfg.Output)
	require.Len(t, sum.Samples, 1)

	s := sum.Samples[0]
	assert.Equal(t, 1000, s.End-s.Start)
	assert.Equal(t, s.Start, s.LoopStart)
	assert.Equal(t, s.End, s.LoopEnd)
}
