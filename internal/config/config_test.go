// SPDX-License-Identifier: EPL-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/sf2pack/bank"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "output.sf2", cfg.Output)
	assert.Equal(t, "EMU8000", cfg.Bank.Engine)
	assert.Equal(t, "Chipsound", cfg.Bank.Name)
	assert.Equal(t, "ROM", cfg.Bank.ROM)
	assert.Equal(t, uint16(2), cfg.Bank.VersionMajor)
	assert.Equal(t, uint16(4), cfg.Bank.VersionMinor)
	assert.Equal(t, "strict", cfg.Load.Mode)
	assert.Equal(t, []string{"wav"}, cfg.Load.Formats)
	assert.Equal(t, int64(45), cfg.Load.MinFileSize)
	assert.Equal(t, "skip", cfg.Assemble.OnError)
	assert.Equal(t, "cap", cfg.Assemble.LimitPolicy)
	assert.Equal(t, 1, cfg.Assemble.Workers)
	assert.Equal(t, 60, cfg.Zone.RootKey)
	assert.Equal(t, 0, cfg.Zone.PitchCorrection)
	assert.Equal(t, 44100, cfg.Zone.SampleRate)
	assert.Nil(t, cfg.Zone.ReverbSend)
	assert.False(t, cfg.Verify)

	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sf2pack.yaml")
	data := `
output: drums.sf2
bank:
  name: Drums
load:
  mode: lenient
  formats: [wav, ogg]
  downmix: true
assemble:
  on_error: abort
  limit_policy: wrap
  workers: 4
zone:
  root_key: 48
  reverb_send: 200
verify: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "drums.sf2", cfg.Output)
	assert.Equal(t, "Drums", cfg.Bank.Name)
	// Unset keys keep their defaults.
	assert.Equal(t, "EMU8000", cfg.Bank.Engine)
	assert.Equal(t, 44100, cfg.Zone.SampleRate)

	assert.Equal(t, "lenient", cfg.Load.Mode)
	assert.Equal(t, []string{"wav", "ogg"}, cfg.Load.Formats)
	assert.True(t, cfg.Load.Downmix)
	assert.Equal(t, "abort", cfg.Assemble.OnError)
	assert.Equal(t, "wrap", cfg.Assemble.LimitPolicy)
	assert.Equal(t, 4, cfg.Assemble.Workers)
	assert.Equal(t, 48, cfg.Zone.RootKey)
	require.NotNil(t, cfg.Zone.ReverbSend)
	assert.Equal(t, int16(200), *cfg.Zone.ReverbSend)
	assert.True(t, cfg.Verify)

	require.NoError(t, cfg.Validate())
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: [unclosed"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("SF2PACK_OUTPUT", "env.sf2")
	t.Setenv("SF2PACK_MODE", "lenient")
	t.Setenv("SF2PACK_FORMATS", "wav, aiff ,")
	t.Setenv("SF2PACK_ON_ERROR", "abort")
	t.Setenv("SF2PACK_LIMIT_POLICY", "wrap")
	t.Setenv("SF2PACK_WORKERS", "3")
	t.Setenv("SF2PACK_BANK_NAME", "EnvBank")

	cfg := DefaultConfig()
	require.NoError(t, cfg.applyEnvOverrides())

	assert.Equal(t, "env.sf2", cfg.Output)
	assert.Equal(t, "lenient", cfg.Load.Mode)
	assert.Equal(t, []string{"wav", "aiff"}, cfg.Load.Formats)
	assert.Equal(t, "abort", cfg.Assemble.OnError)
	assert.Equal(t, "wrap", cfg.Assemble.LimitPolicy)
	assert.Equal(t, 3, cfg.Assemble.Workers)
	assert.Equal(t, "EnvBank", cfg.Bank.Name)
}

func TestApplyEnvOverrides_BadWorkers(t *testing.T) {
	t.Setenv("SF2PACK_WORKERS", "many")

	cfg := DefaultConfig()
	err := cfg.applyEnvOverrides()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SF2PACK_WORKERS")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sf2pack.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: file.sf2\n"), 0o644))
	t.Setenv("SF2PACK_OUTPUT", "env.sf2")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env.sf2", cfg.Output)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty output", func(c *Config) { c.Output = "" }, "output"},
		{"bad mode", func(c *Config) { c.Load.Mode = "loose" }, "load.mode"},
		{"no formats", func(c *Config) { c.Load.Formats = nil }, "load.formats"},
		{"bad format", func(c *Config) { c.Load.Formats = []string{"flac"} }, "flac"},
		{"bad on_error", func(c *Config) { c.Assemble.OnError = "retry" }, "on_error"},
		{"bad limit", func(c *Config) { c.Assemble.LimitPolicy = "grow" }, "limit_policy"},
		{"zero workers", func(c *Config) { c.Assemble.Workers = 0 }, "workers"},
		{"root key", func(c *Config) { c.Zone.RootKey = 128 }, "root_key"},
		{"pitch", func(c *Config) { c.Zone.PitchCorrection = -129 }, "pitch_correction"},
		{"sample rate", func(c *Config) { c.Zone.SampleRate = 0 }, "sample_rate"},
		{"min size", func(c *Config) { c.Load.MinFileSize = -1 }, "min_file_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_FormatCase(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Load.Formats = []string{".WAV", "Aiff"}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{"wav", "aiff"}, cfg.LoaderOptions().Formats)
}

func TestAssemblerOptions(t *testing.T) {
	send := int16(150)
	cfg := DefaultConfig()
	cfg.Zone.RootKey = 72
	cfg.Zone.PitchCorrection = -12
	cfg.Zone.ReverbSend = &send
	cfg.Assemble.LimitPolicy = "wrap"

	opts := cfg.AssemblerOptions()
	assert.Equal(t, "Chipsound", opts.Info.Name)
	assert.Equal(t, "EMU8000", opts.Info.Engine)
	assert.Equal(t, uint8(72), opts.Zone.RootKey)
	assert.Equal(t, int8(-12), opts.Zone.PitchCorrection)
	assert.Equal(t, 44100, opts.Zone.SampleRate)
	assert.Equal(t, &send, opts.Zone.ReverbSend)
	assert.Equal(t, bank.OnErrorSkip, opts.OnError)
	assert.Equal(t, bank.LimitWrap, opts.Limit)
}

func TestMinFileSize(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, int64(45), cfg.MinFileSize())

	cfg.Load.Mode = "lenient"
	assert.Equal(t, int64(0), cfg.MinFileSize())
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultConfig()
	cfg.Output = "saved.sf2"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
