package tuner

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-tuner/temperament"
)

func TestDefaultConfigValidates(t *testing.T) {
	sys, err := DefaultConfig().Validate()
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if sys != temperament.Just {
		t.Errorf("temperament = %v, want Just", sys)
	}
}

func TestConfigValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown temperament", func(c *Config) { c.Temperament = "quarter-comma-nonsense" }},
		{"zero reference", func(c *Config) { c.ReferenceHz = 0 }},
		{"negative reference", func(c *Config) { c.ReferenceHz = -440 }},
		{"empty octave range", func(c *Config) { c.OctaveLow = 6; c.OctaveHigh = 4 }},
		{"octave out of range", func(c *Config) { c.OctaveHigh = 11 }},
		{"zero sample rate", func(c *Config) { c.SampleRate = 0 }},
		{"zero frame size", func(c *Config) { c.FrameSize = 0 }},
		{"inverted band", func(c *Config) { c.MinHz = 2000; c.MaxHz = 50 }},
		{"negative silence threshold", func(c *Config) { c.SilenceThreshold = -0.1 }},
		{"confidence above one", func(c *Config) { c.ConfidenceThreshold = 1.5 }},
		{"zero hysteresis frames", func(c *Config) { c.HysteresisFrames = 0 }},
		{"zero hysteresis cents", func(c *Config) { c.HysteresisCents = 0 }},
		{"zero queue depth", func(c *Config) { c.QueueDepth = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			if _, err := cfg.Validate(); !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestFeedbackString(t *testing.T) {
	targets, err := temperament.Generate(temperament.Equal, 440, 4, 4)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	f := Feedback{Matched: true, Note: targets[0], Cents: 12.4}
	if got := f.String(); got != "A4 +12" {
		t.Errorf("String() = %q, want %q", got, "A4 +12")
	}

	if got := (Feedback{}).String(); got != "---" {
		t.Errorf("unmatched String() = %q, want %q", got, "---")
	}
}
