package pitch

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-tuner/dsp/core"
	"github.com/cwbudde/algo-tuner/dsp/window"
)

const (
	defaultMinHz               = 50.0
	defaultMaxHz               = 2000.0
	defaultSilenceRMS          = 0.05
	defaultConfidenceThreshold = 0.6
)

// Config holds pitch estimation parameters.
type Config struct {
	// SampleRate in Hz; must match the frames handed to Estimate.
	SampleRate float64
	// FrameSize is the fixed analysis frame length in samples.
	FrameSize int
	// MinHz and MaxHz bound the plausible fundamental range. Peaks
	// outside the band are rejected as artifacts.
	MinHz float64
	MaxHz float64
	// SilenceRMS gates frames whose root-mean-square amplitude falls
	// below it; such frames report no pitch instead of a noisy guess.
	SilenceRMS float64
	// ConfidenceThreshold gates weakly periodic frames. Confidence is
	// the normalized autocorrelation peak in [0, 1].
	ConfidenceThreshold float64
	// WindowType selects the analysis window.
	WindowType window.Type
}

// DefaultConfig returns estimation defaults for the shared processor
// configuration: instrument band 50-2000 Hz, Hann window.
func DefaultConfig() Config {
	proc := core.DefaultProcessorConfig()
	return Config{
		SampleRate:          proc.SampleRate,
		FrameSize:           proc.BlockSize,
		MinHz:               defaultMinHz,
		MaxHz:               defaultMaxHz,
		SilenceRMS:          defaultSilenceRMS,
		ConfidenceThreshold: defaultConfidenceThreshold,
		WindowType:          window.TypeHann,
	}
}

// Estimate is the outcome of analyzing one frame. Voiced reports
// whether a fundamental was found; Frequency and Confidence are only
// meaningful when it is true. An unvoiced estimate is a normal,
// frequent outcome, not an error.
type Estimate struct {
	Frequency  float64
	Confidence float64
	Voiced     bool
}

// Estimator extracts the fundamental frequency from fixed-size audio
// frames using windowed FFT autocorrelation. It is deterministic: the
// same frame and configuration always produce the same estimate.
//
// An Estimator owns preallocated scratch buffers and is not safe for
// concurrent use.
type Estimator struct {
	cfg     Config
	win     *window.Window
	plan    *algofft.Plan[complex128]
	fftSize int
	minLag  int
	maxLag  int

	windowed []float64
	squared  []float64
	timeBuf  []complex128
	freqBuf  []complex128
}

// NewEstimator validates cfg and builds an estimator with its FFT plan
// and scratch buffers.
func NewEstimator(cfg Config) (*Estimator, error) {
	if cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("pitch: sample rate must be > 0: %v", cfg.SampleRate)
	}

	if cfg.FrameSize <= 0 {
		return nil, fmt.Errorf("pitch: frame size must be > 0: %d", cfg.FrameSize)
	}

	if cfg.MinHz <= 0 || cfg.MaxHz <= cfg.MinHz {
		return nil, fmt.Errorf("pitch: invalid frequency band %v..%v Hz", cfg.MinHz, cfg.MaxHz)
	}

	if cfg.MaxHz > cfg.SampleRate/2 {
		return nil, fmt.Errorf("pitch: band upper bound %v Hz exceeds Nyquist %v Hz",
			cfg.MaxHz, cfg.SampleRate/2)
	}

	if cfg.SilenceRMS < 0 {
		return nil, fmt.Errorf("pitch: silence threshold must be >= 0: %v", cfg.SilenceRMS)
	}

	if cfg.ConfidenceThreshold < 0 || cfg.ConfidenceThreshold > 1 {
		return nil, fmt.Errorf("pitch: confidence threshold must be in [0,1]: %v", cfg.ConfidenceThreshold)
	}

	win, err := window.New(cfg.WindowType, cfg.FrameSize)
	if err != nil {
		return nil, fmt.Errorf("pitch: %w", err)
	}

	// Zero-pad to twice the frame so circular autocorrelation equals
	// linear autocorrelation for all lags up to the frame length.
	fftSize := nextPowerOf2(2 * cfg.FrameSize)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("pitch: failed to create FFT plan: %w", err)
	}

	minLag := int(math.Ceil(cfg.SampleRate / cfg.MaxHz))
	if minLag < 2 {
		minLag = 2
	}

	maxLag := int(math.Floor(cfg.SampleRate / cfg.MinHz))
	if maxLag > cfg.FrameSize-1 {
		maxLag = cfg.FrameSize - 1
	}

	if minLag >= maxLag {
		return nil, fmt.Errorf("pitch: frame of %d samples too short for band %v..%v Hz at %v Hz",
			cfg.FrameSize, cfg.MinHz, cfg.MaxHz, cfg.SampleRate)
	}

	return &Estimator{
		cfg:      cfg,
		win:      win,
		plan:     plan,
		fftSize:  fftSize,
		minLag:   minLag,
		maxLag:   maxLag,
		windowed: make([]float64, cfg.FrameSize),
		squared:  make([]float64, cfg.FrameSize),
		timeBuf:  make([]complex128, fftSize),
		freqBuf:  make([]complex128, fftSize),
	}, nil
}

// Config returns the estimator configuration.
func (e *Estimator) Config() Config { return e.cfg }

// Estimate analyzes one frame and returns the fundamental frequency
// estimate, or an unvoiced result for silent or aperiodic input.
//
// The frame must carry exactly the configured frame size and sample
// rate; anything else is malformed input and fails immediately rather
// than being silently truncated or padded.
func (e *Estimator) Estimate(frame core.Frame) (Estimate, error) {
	if len(frame.Samples) != e.cfg.FrameSize {
		return Estimate{}, fmt.Errorf("%w: frame length %d, want %d",
			ErrInvalidInput, len(frame.Samples), e.cfg.FrameSize)
	}

	if frame.SampleRate != e.cfg.SampleRate {
		return Estimate{}, fmt.Errorf("%w: frame sample rate %v Hz, want %v Hz",
			ErrInvalidInput, frame.SampleRate, e.cfg.SampleRate)
	}

	if rms(e.squared, frame.Samples) < e.cfg.SilenceRMS {
		return Estimate{}, nil
	}

	// Remove DC before windowing: a constant offset correlates
	// perfectly at every lag and would fake a confident pitch.
	mean := 0.0
	for _, v := range frame.Samples {
		mean += v
	}
	mean /= float64(len(frame.Samples))

	for i, v := range frame.Samples {
		e.windowed[i] = v - mean
	}

	if err := e.win.ApplyInPlace(e.windowed); err != nil {
		return Estimate{}, fmt.Errorf("pitch: %w", err)
	}

	corr, err := e.autocorrelate()
	if err != nil {
		return Estimate{}, err
	}

	r0 := real(corr[0])
	if r0 <= 0 {
		return Estimate{}, nil
	}

	// Peak picking starts past the lag-0 main lobe: its tail stays
	// positive well into the lag band and would win the search for
	// long-period fundamentals. The first non-positive lag marks the
	// end of the lobe.
	start := e.minLag
	if cross := firstZeroCrossing(corr, e.maxLag); cross > start {
		start = cross
	}

	bestLag := -1
	bestVal := 0.0
	for lag := start; lag <= e.maxLag; lag++ {
		if v := real(corr[lag]); v > bestVal {
			bestVal = v
			bestLag = lag
		}
	}

	if bestLag < 0 {
		return Estimate{}, nil
	}

	confidence := bestVal / r0
	if confidence < e.cfg.ConfidenceThreshold {
		return Estimate{Confidence: confidence}, nil
	}

	freq := e.cfg.SampleRate / e.refineLag(corr, bestLag, bestVal)
	if freq < e.cfg.MinHz || freq > e.cfg.MaxHz {
		return Estimate{Confidence: confidence}, nil
	}

	return Estimate{Frequency: freq, Confidence: confidence, Voiced: true}, nil
}

// autocorrelate computes the autocorrelation of the windowed frame via
// IFFT(FFT(x) * conj(FFT(x))). The result lives in e.timeBuf.
func (e *Estimator) autocorrelate() ([]complex128, error) {
	for i := range e.timeBuf {
		if i < len(e.windowed) {
			e.timeBuf[i] = complex(e.windowed[i], 0)
		} else {
			e.timeBuf[i] = 0
		}
	}

	if err := e.plan.Forward(e.freqBuf, e.timeBuf); err != nil {
		return nil, fmt.Errorf("pitch: forward FFT failed: %w", err)
	}

	for i, v := range e.freqBuf {
		re := real(v)
		im := imag(v)
		e.freqBuf[i] = complex(re*re+im*im, 0)
	}

	if err := e.plan.Inverse(e.timeBuf, e.freqBuf); err != nil {
		return nil, fmt.Errorf("pitch: inverse FFT failed: %w", err)
	}

	return e.timeBuf, nil
}

// refineLag interpolates the true correlation peak between integer lags
// by fitting a parabola through the peak and its neighbors. The shift
// is limited to half a sample; a larger value means the peak was not a
// local maximum and the integer lag is kept.
func (e *Estimator) refineLag(corr []complex128, lag int, peak float64) float64 {
	if lag <= 0 || lag+1 >= len(corr) {
		return float64(lag)
	}

	left := real(corr[lag-1])
	right := real(corr[lag+1])

	denom := 2*peak - left - right
	if denom == 0 {
		return float64(lag)
	}

	shift := core.Clamp((right-left)/(2*denom), -0.5, 0.5)

	return float64(lag) + shift
}

// firstZeroCrossing returns the first lag in [1, limit] where the
// autocorrelation turns non-positive, or limit+1 when it never does
// (no periodicity inside the band).
func firstZeroCrossing(corr []complex128, limit int) int {
	for lag := 1; lag <= limit; lag++ {
		if real(corr[lag]) <= 0 {
			return lag
		}
	}

	return limit + 1
}

// rms computes the root-mean-square amplitude of samples, using
// scratch for the squared block.
func rms(scratch, samples []float64) float64 {
	vecmath.MulBlock(scratch, samples, samples)

	sum := 0.0
	for _, v := range scratch {
		sum += v
	}

	return math.Sqrt(sum / float64(len(samples)))
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
