// Package window provides analysis window functions for spectral
// processing. A tuner re-windows identically sized frames on every
// cycle, so the package centers on Window values with precomputed
// coefficients rather than per-call generation.
package window

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeFlatTop
)

// cosine-sum coefficients per type; w(x) = sum c[k]*cos(k*2*pi*x).
var (
	hannCoeffs     = []float64{0.5, -0.5}
	hammingCoeffs  = []float64{0.54, -0.46}
	blackmanCoeffs = []float64{0.42, -0.5, 0.08}
	flatTopCoeffs  = []float64{0.21557895, -0.41663158, 0.277263158, -0.083578947, 0.006947368}
)

// Name returns the human-readable window name.
func (t Type) Name() string {
	switch t {
	case TypeRectangular:
		return "Rectangular"
	case TypeHann:
		return "Hann"
	case TypeHamming:
		return "Hamming"
	case TypeBlackman:
		return "Blackman"
	case TypeFlatTop:
		return "Flat Top"
	default:
		return "Unknown"
	}
}

// Window holds precomputed coefficients for a fixed frame length.
type Window struct {
	typ    Type
	coeffs []float64
}

// New builds a symmetric window of the given length.
func New(t Type, length int) (*Window, error) {
	if length <= 0 {
		return nil, fmt.Errorf("window length must be > 0: %d", length)
	}

	coeffs, err := Generate(t, length)
	if err != nil {
		return nil, err
	}

	return &Window{typ: t, coeffs: coeffs}, nil
}

// Type returns the window type.
func (w *Window) Type() Type { return w.typ }

// Len returns the window length.
func (w *Window) Len() int { return len(w.coeffs) }

// Coefficients returns the underlying coefficient slice. Callers must
// not mutate it.
func (w *Window) Coefficients() []float64 { return w.coeffs }

// CoherentGain returns sum(w[n])/N, the window's DC response.
func (w *Window) CoherentGain() float64 {
	sum := 0.0
	for _, c := range w.coeffs {
		sum += c
	}
	return sum / float64(len(w.coeffs))
}

// Apply multiplies src by the window into dst. dst and src must both
// match the window length.
func (w *Window) Apply(dst, src []float64) error {
	if len(src) != len(w.coeffs) || len(dst) != len(w.coeffs) {
		return fmt.Errorf("window apply length mismatch: dst=%d src=%d window=%d",
			len(dst), len(src), len(w.coeffs))
	}

	vecmath.MulBlock(dst, src, w.coeffs)
	return nil
}

// ApplyInPlace multiplies buf in place by the window.
func (w *Window) ApplyInPlace(buf []float64) error {
	if len(buf) != len(w.coeffs) {
		return fmt.Errorf("window apply length mismatch: buf=%d window=%d", len(buf), len(w.coeffs))
	}

	vecmath.MulBlockInPlace(buf, w.coeffs)
	return nil
}

// Generate returns symmetric window coefficients of the given length.
func Generate(t Type, length int) ([]float64, error) {
	if length <= 0 {
		return nil, fmt.Errorf("window length must be > 0: %d", length)
	}

	coeffs, ok := sumCoeffs(t)
	if !ok {
		return nil, fmt.Errorf("unknown window type: %d", t)
	}

	out := make([]float64, length)
	if length == 1 {
		out[0] = evalCosineSum(0, coeffs)
		return out, nil
	}

	den := float64(length - 1)
	for i := range out {
		out[i] = evalCosineSum(float64(i)/den, coeffs)
	}

	return out, nil
}

func sumCoeffs(t Type) ([]float64, bool) {
	switch t {
	case TypeRectangular:
		return []float64{1}, true
	case TypeHann:
		return hannCoeffs, true
	case TypeHamming:
		return hammingCoeffs, true
	case TypeBlackman:
		return blackmanCoeffs, true
	case TypeFlatTop:
		return flatTopCoeffs, true
	default:
		return nil, false
	}
}

func evalCosineSum(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}
