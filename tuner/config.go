package tuner

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-tuner/temperament"
)

// Config is the full configuration surface of a tuner loop. All fields
// are read at construction; Loop.SetTemperament and Loop.SetReference
// update the two hot-swappable ones while running.
type Config struct {
	// Temperament names the tuning system (see temperament.ParseType).
	Temperament string
	// ReferenceHz anchors A4.
	ReferenceHz float64
	// OctaveLow and OctaveHigh bound the generated target set.
	OctaveLow  int
	OctaveHigh int

	// SampleRate and FrameSize describe the capture format negotiated
	// with the capture source.
	SampleRate float64
	FrameSize  int

	// MinHz and MaxHz bound the detectable fundamental.
	MinHz float64
	MaxHz float64

	// SilenceThreshold is the RMS amplitude below which a frame counts
	// as silence.
	SilenceThreshold float64
	// ConfidenceThreshold is the minimum normalized correlation
	// strength for a pitch to be accepted.
	ConfidenceThreshold float64

	// HysteresisFrames is the number of consecutive agreeing frames
	// required before the displayed note switches.
	HysteresisFrames int
	// HysteresisCents is the agreement tolerance between those frames.
	HysteresisCents float64

	// QueueDepth bounds the capture-to-analysis frame queue. A full
	// queue drops the oldest frame; stale audio is useless for a live
	// tuner.
	QueueDepth int
}

// DefaultConfig mirrors the classic prototype setup: just intonation
// around A4 = 440 Hz, octaves 4-6, 16 kHz capture in 2048-sample
// frames.
func DefaultConfig() Config {
	return Config{
		Temperament:         "just",
		ReferenceHz:         440,
		OctaveLow:           4,
		OctaveHigh:          6,
		SampleRate:          16000,
		FrameSize:           2048,
		MinHz:               50,
		MaxHz:               2000,
		SilenceThreshold:    0.05,
		ConfidenceThreshold: 0.6,
		HysteresisFrames:    3,
		HysteresisCents:     50,
		QueueDepth:          8,
	}
}

// Validate checks the configuration and resolves the temperament name.
// Every violation is reported as ErrInvalidConfiguration.
func (c Config) Validate() (temperament.Type, error) {
	sys, err := temperament.ParseType(c.Temperament)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	if c.ReferenceHz <= 0 || math.IsNaN(c.ReferenceHz) || math.IsInf(c.ReferenceHz, 0) {
		return 0, fmt.Errorf("%w: reference pitch must be > 0 Hz: %v", ErrInvalidConfiguration, c.ReferenceHz)
	}

	if c.OctaveLow > c.OctaveHigh {
		return 0, fmt.Errorf("%w: empty octave range %d..%d", ErrInvalidConfiguration, c.OctaveLow, c.OctaveHigh)
	}

	if c.OctaveLow < temperament.MinOctave || c.OctaveHigh > temperament.MaxOctave {
		return 0, fmt.Errorf("%w: octave range %d..%d outside %d..%d", ErrInvalidConfiguration,
			c.OctaveLow, c.OctaveHigh, temperament.MinOctave, temperament.MaxOctave)
	}

	if c.SampleRate <= 0 {
		return 0, fmt.Errorf("%w: sample rate must be > 0: %v", ErrInvalidConfiguration, c.SampleRate)
	}

	if c.FrameSize <= 0 {
		return 0, fmt.Errorf("%w: frame size must be > 0: %d", ErrInvalidConfiguration, c.FrameSize)
	}

	if c.MinHz <= 0 || c.MaxHz <= c.MinHz {
		return 0, fmt.Errorf("%w: invalid frequency band %v..%v Hz", ErrInvalidConfiguration, c.MinHz, c.MaxHz)
	}

	if c.SilenceThreshold < 0 {
		return 0, fmt.Errorf("%w: silence threshold must be >= 0: %v", ErrInvalidConfiguration, c.SilenceThreshold)
	}

	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return 0, fmt.Errorf("%w: confidence threshold must be in [0,1]: %v", ErrInvalidConfiguration, c.ConfidenceThreshold)
	}

	if c.HysteresisFrames < 1 {
		return 0, fmt.Errorf("%w: hysteresis frames must be >= 1: %d", ErrInvalidConfiguration, c.HysteresisFrames)
	}

	if c.HysteresisCents <= 0 {
		return 0, fmt.Errorf("%w: hysteresis tolerance must be > 0 cents: %v", ErrInvalidConfiguration, c.HysteresisCents)
	}

	if c.QueueDepth < 1 {
		return 0, fmt.Errorf("%w: queue depth must be >= 1: %d", ErrInvalidConfiguration, c.QueueDepth)
	}

	return sys, nil
}
