package core

import "time"

// Frame is one fixed-length block of mono audio handed from a capture
// source to the analysis pipeline.
//
// Ownership transfers with the frame: the producer must not reuse the
// Samples slice after handing the frame off, and consumers only read it
// for the duration of a single call.
type Frame struct {
	Samples    []float64
	SampleRate float64
	Timestamp  time.Time
}

// Duration returns the time span covered by the frame's samples.
func (f Frame) Duration() time.Duration {
	if f.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(f.Samples)) / f.SampleRate * float64(time.Second))
}
