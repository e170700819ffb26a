// Package config loads tuner settings from a TOML file layered over
// the built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/cwbudde/algo-tuner/tuner"
)

// File mirrors the on-disk TOML layout. Sections map onto the tuner
// configuration surface; omitted keys keep their defaults.
type File struct {
	Tuning    TuningConfig    `toml:"tuning"`
	Capture   CaptureConfig   `toml:"capture"`
	Detection DetectionConfig `toml:"detection"`
	Display   DisplayConfig   `toml:"display"`
}

type TuningConfig struct {
	Temperament string  `toml:"temperament"`
	ReferenceHz float64 `toml:"reference_hz"`
	OctaveLow   int     `toml:"octave_low"`
	OctaveHigh  int     `toml:"octave_high"`
}

type CaptureConfig struct {
	SampleRate float64 `toml:"sample_rate"`
	FrameSize  int     `toml:"frame_size"`
	QueueDepth int     `toml:"queue_depth"`
}

type DetectionConfig struct {
	MinHz               float64 `toml:"min_hz"`
	MaxHz               float64 `toml:"max_hz"`
	SilenceThreshold    float64 `toml:"silence_threshold"`
	ConfidenceThreshold float64 `toml:"confidence_threshold"`
}

type DisplayConfig struct {
	HysteresisFrames int     `toml:"hysteresis_frames"`
	HysteresisCents  float64 `toml:"hysteresis_cents"`
}

// Load reads the given file, or the first standard path when path is
// empty, and returns the resulting tuner configuration. A missing
// standard file is not an error; a missing explicit path is.
func Load(path string) (tuner.Config, error) {
	file := fromTuner(tuner.DefaultConfig())

	if path == "" {
		for _, p := range configPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
		if path == "" {
			return file.toTuner(), nil
		}
	}

	if _, err := toml.DecodeFile(path, &file); err != nil {
		return tuner.Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	return file.toTuner(), nil
}

func configPaths() []string {
	var paths []string

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "algo-tuner", "config.toml"))
	}

	home, _ := os.UserHomeDir()
	if home != "" {
		paths = append(paths, filepath.Join(home, ".config", "algo-tuner", "config.toml"))
	}

	return paths
}

func fromTuner(c tuner.Config) File {
	return File{
		Tuning: TuningConfig{
			Temperament: c.Temperament,
			ReferenceHz: c.ReferenceHz,
			OctaveLow:   c.OctaveLow,
			OctaveHigh:  c.OctaveHigh,
		},
		Capture: CaptureConfig{
			SampleRate: c.SampleRate,
			FrameSize:  c.FrameSize,
			QueueDepth: c.QueueDepth,
		},
		Detection: DetectionConfig{
			MinHz:               c.MinHz,
			MaxHz:               c.MaxHz,
			SilenceThreshold:    c.SilenceThreshold,
			ConfidenceThreshold: c.ConfidenceThreshold,
		},
		Display: DisplayConfig{
			HysteresisFrames: c.HysteresisFrames,
			HysteresisCents:  c.HysteresisCents,
		},
	}
}

func (f File) toTuner() tuner.Config {
	return tuner.Config{
		Temperament:         f.Tuning.Temperament,
		ReferenceHz:         f.Tuning.ReferenceHz,
		OctaveLow:           f.Tuning.OctaveLow,
		OctaveHigh:          f.Tuning.OctaveHigh,
		SampleRate:          f.Capture.SampleRate,
		FrameSize:           f.Capture.FrameSize,
		QueueDepth:          f.Capture.QueueDepth,
		MinHz:               f.Detection.MinHz,
		MaxHz:               f.Detection.MaxHz,
		SilenceThreshold:    f.Detection.SilenceThreshold,
		ConfidenceThreshold: f.Detection.ConfidenceThreshold,
		HysteresisFrames:    f.Display.HysteresisFrames,
		HysteresisCents:     f.Display.HysteresisCents,
	}
}
