// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// MonoMixer averages every frame of src into a single channel.
type MonoMixer struct {
	src Source
	tmp []float32
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{
		src: src,
		tmp: make([]float32, 4096),
	}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }
func (m *MonoMixer) BufSize() int    { return m.src.BufSize() }
func (m *MonoMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// Loop forwards the loop points of the wrapped source. Loop offsets are in
// frames, so they survive the channel reduction unchanged.
func (m *MonoMixer) Loop() *Loop {
	if ls, ok := m.src.(LoopSource); ok {
		return ls.Loop()
	}

	return nil
}

// ReadSamples writes at most len(dst) mono frames.
func (m *MonoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	channels := m.src.Channels()
	if channels <= 1 {
		return m.src.ReadSamples(dst)
	}

	needed := len(dst) * channels
	if cap(m.tmp) < needed {
		m.tmp = make([]float32, max(needed, 8192))
	}
	m.tmp = m.tmp[:needed]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}

	// A trailing partial frame is dropped.
	frames := n / channels
	inv := float32(1.0) / float32(channels)

	for f := range frames {
		sum := float32(0)
		base := f * channels
		for c := range channels {
			sum += m.tmp[base+c]
		}
		dst[f] = sum * inv
	}

	return frames, err
}

// DownmixPCM16 averages each frame of interleaved 16-bit data into one
// sample. A trailing partial frame is dropped.
func DownmixPCM16(data []int16, channels int) []int16 {
	if channels <= 1 {
		return data
	}

	out := make([]int16, len(data)/channels)
	for f := range out {
		sum := 0
		for _, v := range data[f*channels : (f+1)*channels] {
			sum += int(v)
		}
		out[f] = int16(sum / channels)
	}

	return out
}
