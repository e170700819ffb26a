package signal

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-tuner/dsp/core"
)

func TestSine(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(1000))

	out, err := g.Sine(250, 1, 8)
	if err != nil {
		t.Fatalf("Sine: %v", err)
	}

	// 250 Hz at 1 kHz sample rate: 0, 1, 0, -1 repeating.
	want := []float64{0, 1, 0, -1, 0, 1, 0, -1}
	for i := range want {
		if !core.NearlyEqual(out[i], want[i], 1e-9) {
			t.Fatalf("sample[%d]=%v, want %v", i, out[i], want[i])
		}
	}
}

func TestSineRejectsBadInput(t *testing.T) {
	g := NewGenerator()
	if _, err := g.Sine(440, 1, 0); err == nil {
		t.Fatal("expected error for zero samples")
	}
}

func TestHarmonicContainsPartials(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(16000))

	out, err := g.Harmonic(200, 0.5, []float64{1, 0.5, 0.25}, 4096)
	if err != nil {
		t.Fatalf("Harmonic: %v", err)
	}

	// Peak amplitude must exceed the fundamental alone but remain bounded
	// by the sum of partial amplitudes.
	peak := 0.0
	for _, v := range out {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}

	if peak <= 0.5 || peak > 0.5*(1+0.5+0.25)+1e-9 {
		t.Fatalf("peak=%v outside expected bounds", peak)
	}
}

func TestHarmonicSkipsAboveNyquist(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(1000))

	// Second harmonic at 800 Hz exceeds the 500 Hz Nyquist limit and
	// must be dropped rather than aliased.
	withAlias, err := g.Harmonic(400, 1, []float64{1, 1}, 64)
	if err != nil {
		t.Fatalf("Harmonic: %v", err)
	}

	pure, err := g.Sine(400, 1, 64)
	if err != nil {
		t.Fatalf("Sine: %v", err)
	}

	for i := range pure {
		if !core.NearlyEqual(withAlias[i], pure[i], 1e-9) {
			t.Fatalf("sample[%d]=%v, want %v (no aliased partial)", i, withAlias[i], pure[i])
		}
	}
}

func TestHarmonicRequiresPartials(t *testing.T) {
	g := NewGenerator()
	if _, err := g.Harmonic(440, 1, nil, 64); err == nil {
		t.Fatal("expected error for empty partials")
	}
}

func TestWhiteNoiseDeterministic(t *testing.T) {
	a := NewGeneratorWithOptions(nil, WithSeed(7))
	b := NewGeneratorWithOptions(nil, WithSeed(7))

	na, err := a.WhiteNoise(0.5, 256)
	if err != nil {
		t.Fatalf("WhiteNoise: %v", err)
	}

	nb, err := b.WhiteNoise(0.5, 256)
	if err != nil {
		t.Fatalf("WhiteNoise: %v", err)
	}

	for i := range na {
		if na[i] != nb[i] {
			t.Fatalf("same seed diverged at %d: %v != %v", i, na[i], nb[i])
		}

		if math.Abs(na[i]) > 0.5 {
			t.Fatalf("sample[%d]=%v exceeds amplitude", i, na[i])
		}
	}
}
