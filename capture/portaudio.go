// Package capture provides microphone input for the tuner loop via
// PortAudio.
package capture

import (
	"context"
	"fmt"
	"time"

	"github.com/gordonklaus/portaudio"

	"github.com/cwbudde/algo-tuner/dsp/core"
)

// Microphone reads mono frames from the default input device using
// blocking PortAudio reads. It implements tuner.CaptureSource.
//
// A Microphone is not safe for concurrent ReadFrame calls; the tuner
// loop owns it from a single producer goroutine.
type Microphone struct {
	stream     *portaudio.Stream
	buf        []float32
	sampleRate float64
}

// OpenMicrophone initializes PortAudio and opens the default input
// stream at the given capture format. Close releases both.
func OpenMicrophone(sampleRate float64, frameSize int) (*Microphone, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("capture: sample rate must be > 0: %v", sampleRate)
	}
	if frameSize <= 0 {
		return nil, fmt.Errorf("capture: frame size must be > 0: %d", frameSize)
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("capture: initialize: %w", err)
	}

	buf := make([]float32, frameSize)

	stream, err := portaudio.OpenDefaultStream(1, 0, sampleRate, frameSize, buf)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("capture: open stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("capture: start stream: %w", err)
	}

	return &Microphone{stream: stream, buf: buf, sampleRate: sampleRate}, nil
}

// ReadFrame blocks until a full frame has been captured. The returned
// frame owns its samples; the internal buffer is reused across calls.
func (m *Microphone) ReadFrame(ctx context.Context) (core.Frame, error) {
	if err := ctx.Err(); err != nil {
		return core.Frame{}, err
	}

	// PortAudio's blocking read has no cancellation hook; one frame of
	// latency on shutdown is the accepted cost.
	if err := m.stream.Read(); err != nil {
		return core.Frame{}, fmt.Errorf("capture: read: %w", err)
	}

	samples := make([]float64, len(m.buf))
	for i, v := range m.buf {
		samples[i] = float64(v)
	}

	return core.Frame{
		Samples:    samples,
		SampleRate: m.sampleRate,
		Timestamp:  time.Now(),
	}, nil
}

// Close stops the stream and terminates PortAudio.
func (m *Microphone) Close() error {
	err := m.stream.Stop()
	if cerr := m.stream.Close(); err == nil {
		err = cerr
	}
	if terr := portaudio.Terminate(); err == nil {
		err = terr
	}
	return err
}
