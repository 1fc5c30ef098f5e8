// SPDX-License-Identifier: EPL-2.0

// Package config holds sf2pack settings: defaults, a YAML file and
// SF2PACK_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/ik5/sf2pack/bank"
	"github.com/ik5/sf2pack/soundfont"
	"gopkg.in/yaml.v3"
)

// Config is the complete run configuration.
type Config struct {
	// Output is the SF2 file to create.
	Output string `yaml:"output"`

	Bank     BankConfig     `yaml:"bank"`
	Load     LoadConfig     `yaml:"load"`
	Assemble AssembleConfig `yaml:"assemble"`
	Zone     ZoneConfig     `yaml:"zone"`

	// Verify re-reads the written file and compares its preset slots.
	Verify bool `yaml:"verify"`
}

// BankConfig is the INFO metadata of the bank.
type BankConfig struct {
	Engine       string `yaml:"engine"`
	Name         string `yaml:"name"`
	ROM          string `yaml:"rom"`
	Software     string `yaml:"software"`
	VersionMajor uint16 `yaml:"version_major"`
	VersionMinor uint16 `yaml:"version_minor"`
}

type LoadConfig struct {
	Mode    string   `yaml:"mode"`    // strict, lenient
	Formats []string `yaml:"formats"` // wav, aif, aiff, mp3, ogg

	// MinFileSize excludes smaller files from candidacy in strict mode.
	MinFileSize  int64 `yaml:"min_file_size"`
	Downmix      bool  `yaml:"downmix"`
	UseSmplLoops bool  `yaml:"use_smpl_loops"`
}

type AssembleConfig struct {
	OnError     string `yaml:"on_error"`     // skip, abort
	LimitPolicy string `yaml:"limit_policy"` // cap, wrap
	Workers     int    `yaml:"workers"`
}

type ZoneConfig struct {
	RootKey         int    `yaml:"root_key"`
	PitchCorrection int    `yaml:"pitch_correction"` // cents
	SampleRate      int    `yaml:"sample_rate"`
	ReverbSend      *int16 `yaml:"reverb_send"` // 0.1% units, unset = no generator
}

// Formats accepted by load.formats.
var Formats = []string{"wav", "aif", "aiff", "mp3", "ogg"}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Output: "output.sf2",
		Bank: BankConfig{
			Engine:       "EMU8000",
			Name:         "Chipsound",
			ROM:          "ROM",
			Software:     "sf2pack",
			VersionMajor: 2,
			VersionMinor: 4,
		},
		Load: LoadConfig{
			Mode:         string(bank.ModeStrict),
			Formats:      []string{"wav"},
			MinFileSize:  45,
			UseSmplLoops: true,
		},
		Assemble: AssembleConfig{
			OnError:     string(bank.OnErrorSkip),
			LimitPolicy: string(bank.LimitCap),
			Workers:     1,
		},
		Zone: ZoneConfig{
			RootKey:    60,
			SampleRate: 44100,
		},
	}
}

// Load reads a YAML file over the defaults and applies environment
// overrides. A missing file is not an error. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies SF2PACK_* environment variables.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("SF2PACK_OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv("SF2PACK_MODE"); v != "" {
		c.Load.Mode = v
	}
	if v := os.Getenv("SF2PACK_FORMATS"); v != "" {
		c.Load.Formats = splitList(v)
	}
	if v := os.Getenv("SF2PACK_ON_ERROR"); v != "" {
		c.Assemble.OnError = v
	}
	if v := os.Getenv("SF2PACK_LIMIT_POLICY"); v != "" {
		c.Assemble.LimitPolicy = v
	}
	if v := os.Getenv("SF2PACK_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SF2PACK_WORKERS: %w", err)
		}
		c.Assemble.Workers = n
	}
	if v := os.Getenv("SF2PACK_BANK_NAME"); v != "" {
		c.Bank.Name = v
	}

	return nil
}

func splitList(v string) []string {
	var out []string
	for _, f := range strings.Split(v, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Validate checks every enumerated and numeric setting.
func (c *Config) Validate() error {
	var errs []error

	if c.Output == "" {
		errs = append(errs, errors.New("output must not be empty"))
	}

	switch bank.Mode(c.Load.Mode) {
	case bank.ModeStrict, bank.ModeLenient:
	default:
		errs = append(errs, fmt.Errorf("load.mode %q: want strict or lenient", c.Load.Mode))
	}

	if len(c.Load.Formats) == 0 {
		errs = append(errs, errors.New("load.formats must not be empty"))
	}
	for _, f := range c.Load.Formats {
		if !slices.Contains(Formats, strings.ToLower(strings.TrimPrefix(f, "."))) {
			errs = append(errs, fmt.Errorf("load.formats: unsupported format %q", f))
		}
	}

	switch bank.FailurePolicy(c.Assemble.OnError) {
	case bank.OnErrorSkip, bank.OnErrorAbort:
	default:
		errs = append(errs, fmt.Errorf("assemble.on_error %q: want skip or abort", c.Assemble.OnError))
	}

	switch bank.LimitPolicy(c.Assemble.LimitPolicy) {
	case bank.LimitCap, bank.LimitWrap:
	default:
		errs = append(errs, fmt.Errorf("assemble.limit_policy %q: want cap or wrap", c.Assemble.LimitPolicy))
	}

	if c.Assemble.Workers < 1 {
		errs = append(errs, fmt.Errorf("assemble.workers %d: must be at least 1", c.Assemble.Workers))
	}

	if c.Zone.RootKey < 0 || c.Zone.RootKey > 127 {
		errs = append(errs, fmt.Errorf("zone.root_key %d: want 0..127", c.Zone.RootKey))
	}
	if c.Zone.PitchCorrection < -128 || c.Zone.PitchCorrection > 127 {
		errs = append(errs, fmt.Errorf("zone.pitch_correction %d: want -128..127", c.Zone.PitchCorrection))
	}
	if c.Zone.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("zone.sample_rate %d: must be positive", c.Zone.SampleRate))
	}
	if c.Load.MinFileSize < 0 {
		errs = append(errs, fmt.Errorf("load.min_file_size %d: must not be negative", c.Load.MinFileSize))
	}

	return errors.Join(errs...)
}

// LoaderOptions converts the load section for bank.NewLoader.
func (c *Config) LoaderOptions() bank.LoaderOptions {
	formats := make([]string, 0, len(c.Load.Formats))
	for _, f := range c.Load.Formats {
		formats = append(formats, strings.ToLower(strings.TrimPrefix(f, ".")))
	}

	return bank.LoaderOptions{
		Mode:         bank.Mode(c.Load.Mode),
		Formats:      formats,
		Downmix:      c.Load.Downmix,
		UseSmplLoops: c.Load.UseSmplLoops,
	}
}

// AssemblerOptions converts the bank, zone and assemble sections.
func (c *Config) AssemblerOptions() bank.Options {
	return bank.Options{
		Info: soundfont.Info{
			Engine:       c.Bank.Engine,
			Name:         c.Bank.Name,
			ROM:          c.Bank.ROM,
			Software:     c.Bank.Software,
			VersionMajor: c.Bank.VersionMajor,
			VersionMinor: c.Bank.VersionMinor,
		},
		Zone: bank.ZoneOptions{
			RootKey:         uint8(c.Zone.RootKey),
			PitchCorrection: int8(c.Zone.PitchCorrection),
			SampleRate:      c.Zone.SampleRate,
			ReverbSend:      c.Zone.ReverbSend,
		},
		OnError: bank.FailurePolicy(c.Assemble.OnError),
		Limit:   bank.LimitPolicy(c.Assemble.LimitPolicy),
	}
}

// MinFileSize is the candidate size threshold in effect; lenient mode
// accepts files of any size.
func (c *Config) MinFileSize() int64 {
	if bank.Mode(c.Load.Mode) == bank.ModeLenient {
		return 0
	}
	return c.Load.MinFileSize
}
