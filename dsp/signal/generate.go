// Package signal generates deterministic test signals. The tuner test
// suite leans on it for pure tones, harmonic-rich instrument stand-ins
// and reproducible noise.
package signal

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-tuner/dsp/core"
)

// Generator creates deterministic signals from a shared configuration.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a configured signal generator.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return &Generator{
		cfg:  core.ApplyProcessorOptions(opts...),
		seed: 1,
	}
}

// NewGeneratorWithOptions creates a signal generator with generator-specific options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := NewGenerator(coreOpts...)
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// Sine generates a pure sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("sine sample rate must be > 0: %f", g.cfg.SampleRate)
	}

	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// Harmonic generates a tone with the given fundamental and relative
// partial amplitudes. partials[0] scales the fundamental, partials[1]
// the second harmonic, and so on. Real instrument tones carry strong
// partials, which is exactly what trips up naive spectral-peak pitch
// detection, so tests exercise the estimator with these.
func (g *Generator) Harmonic(freqHz, amplitude float64, partials []float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("harmonic samples must be > 0: %d", samples)
	}
	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("harmonic sample rate must be > 0: %f", g.cfg.SampleRate)
	}
	if len(partials) == 0 {
		return nil, fmt.Errorf("harmonic requires at least one partial")
	}

	nyquist := g.cfg.SampleRate / 2

	out := make([]float64, samples)
	for k, p := range partials {
		if p == 0 {
			continue
		}

		f := freqHz * float64(k+1)
		if f >= nyquist {
			break
		}

		step := 2 * math.Pi * f / g.cfg.SampleRate
		for i := range out {
			out[i] += amplitude * p * math.Sin(step*float64(i))
		}
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}

	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}
