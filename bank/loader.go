// SPDX-License-Identifier: EPL-2.0

package bank

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/sf2pack/audio"
	"github.com/ik5/sf2pack/formats/aiff"
	"github.com/ik5/sf2pack/formats/mp3"
	"github.com/ik5/sf2pack/formats/vorbis"
	"github.com/ik5/sf2pack/formats/wav"
	"go.uber.org/zap"
)

// readBufferSize is the float buffer used for sources without a PCM16 path.
const readBufferSize = 4096

// Loader turns a file path into a validated audio.Buffer.
type Loader struct {
	registry *audio.Registry
	opts     LoaderOptions
	logger   *zap.Logger
}

// NewRegistry builds a decoder registry for the given formats.
func NewRegistry(opts LoaderOptions) (*audio.Registry, error) {
	strict := opts.Mode != ModeLenient
	registry := audio.NewRegistry()

	for _, f := range opts.Formats {
		switch f {
		case "wav":
			registry.Register(f, wav.Decoder{Strict: strict, Loops: opts.UseSmplLoops})
		case "aif", "aiff":
			registry.Register(f, aiff.Decoder{Strict: strict})
		case "mp3":
			registry.Register(f, mp3.Decoder{})
		case "ogg":
			registry.Register(f, vorbis.Decoder{})
		default:
			return nil, fmt.Errorf("%w: no decoder for %q", ErrFormat, f)
		}
	}

	return registry, nil
}

// NewLoader creates a loader for opts.Formats.
func NewLoader(opts LoaderOptions, logger *zap.Logger) (*Loader, error) {
	registry, err := NewRegistry(opts)
	if err != nil {
		return nil, err
	}

	return NewLoaderWithRegistry(registry, opts, logger), nil
}

// NewLoaderWithRegistry creates a loader over an existing registry;
// opts.Formats is ignored.
func NewLoaderWithRegistry(registry *audio.Registry, opts LoaderOptions, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Loader{
		registry: registry,
		opts:     opts,
		logger:   logger,
	}
}

// Load opens, decodes and validates path. Errors match ErrOpen, ErrFormat,
// ErrRead or ErrEmptyAudio.
func (l *Loader) Load(path string) (*audio.Buffer, error) {
	dec, ok := l.registry.Get(filepath.Ext(path))
	if !ok {
		return nil, fmt.Errorf("%w: %s: no decoder for extension %q", ErrFormat, path, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFormat, path, err)
	}
	defer src.Close()

	channels := src.Channels()
	if channels < 1 {
		return nil, fmt.Errorf("%w: %s: %d channels", ErrFormat, path, channels)
	}

	buf := &audio.Buffer{
		Channels:       channels,
		SampleRate:     src.SampleRate(),
		DeclaredFrames: -1,
	}

	if ls, ok := src.(audio.LoopSource); ok && l.opts.UseSmplLoops {
		buf.Loop = ls.Loop()
	}

	if ps, ok := src.(audio.PCM16Source); ok {
		buf.Data, err = l.readPCM16(path, ps)
		if declared := ps.DeclaredSamples(); declared >= 0 {
			buf.DeclaredFrames = declared / channels
		}
	} else {
		if l.opts.Downmix && channels > 1 {
			src = audio.NewMonoMixer(src)
			buf.Channels = 1
		}
		buf.Data, err = l.readFloat(path, src)
	}
	if err != nil {
		return nil, err
	}

	if l.opts.Downmix && buf.Channels > 1 {
		buf.Data = audio.DownmixPCM16(buf.Data, buf.Channels)
		buf.Channels = 1
	}

	// A trailing partial frame can only come from a truncated payload.
	buf.Data = buf.Data[:buf.Frames()*buf.Channels]

	if err := buf.Validate(); err != nil {
		if errors.Is(err, audio.ErrEmptyBuffer) {
			return nil, fmt.Errorf("%w: %s", ErrEmptyAudio, path)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrFormat, path, err)
	}

	return buf, nil
}

func (l *Loader) readPCM16(path string, src audio.PCM16Source) ([]int16, error) {
	data, err := src.ReadPCM16()
	if err != nil {
		if l.opts.Mode != ModeLenient || len(data) == 0 {
			return nil, fmt.Errorf("%w: %s: %w", ErrRead, path, err)
		}
		l.logger.Debug("keeping partial read", zap.String("file", path), zap.Int("samples", len(data)), zap.Error(err))
	}

	declared := src.DeclaredSamples()
	if l.opts.Mode != ModeLenient && declared >= 0 && len(data) != declared {
		return nil, fmt.Errorf("%w: %s: read %d of %d declared samples", ErrRead, path, len(data), declared)
	}

	return data, nil
}

func (l *Loader) readFloat(path string, src audio.Source) ([]int16, error) {
	data, err := audio.ReadAll(src, readBufferSize)
	if err != nil {
		if l.opts.Mode != ModeLenient || len(data) == 0 {
			return nil, fmt.Errorf("%w: %s: %w", ErrRead, path, err)
		}
		l.logger.Debug("keeping partial read", zap.String("file", path), zap.Int("samples", len(data)), zap.Error(err))
	}

	return data, nil
}
