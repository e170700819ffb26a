package tuner

import (
	"context"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-tuner/dsp/core"
	"github.com/cwbudde/algo-tuner/dsp/pitch"
	"github.com/cwbudde/algo-tuner/dsp/window"
	"github.com/cwbudde/algo-tuner/temperament"
)

// State is the lifecycle state of a Loop.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StatePaused
	StateStopped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// CaptureSource supplies audio frames at the negotiated sample rate and
// frame size. ReadFrame blocks until a frame is available and must
// honor ctx cancellation within roughly one frame duration.
type CaptureSource interface {
	ReadFrame(ctx context.Context) (core.Frame, error)
}

// targetSet is an immutable snapshot of the generated note targets.
// Swapped atomically so an in-flight match never observes a partially
// regenerated set.
type targetSet struct {
	sys     temperament.Type
	refHz   float64
	targets []temperament.NoteTarget
}

// Loop drives the capture -> estimate -> match -> feedback cycle.
//
// Frames flow from the capture source through a bounded drop-oldest
// queue into a single analysis goroutine; Feedback fans out through a
// non-blocking channel so a slow display can never stall analysis.
type Loop struct {
	cfg       Config
	estimator *pitch.Estimator
	source    CaptureSource

	queue    *frameQueue
	feedback chan Feedback
	errs     chan error

	targets atomic.Pointer[targetSet]

	mu     sync.Mutex
	smooth *smoother
	state  State
	resume *sync.Cond
	cancel context.CancelFunc
}

// New validates cfg, generates the initial target set and builds an
// idle loop around the given capture source.
func New(cfg Config, source CaptureSource) (*Loop, error) {
	sys, err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	if source == nil {
		return nil, fmt.Errorf("%w: capture source must not be nil", ErrInvalidConfiguration)
	}

	targets, err := temperament.Generate(sys, cfg.ReferenceHz, cfg.OctaveLow, cfg.OctaveHigh)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	estimator, err := pitch.NewEstimator(pitch.Config{
		SampleRate:          cfg.SampleRate,
		FrameSize:           cfg.FrameSize,
		MinHz:               cfg.MinHz,
		MaxHz:               cfg.MaxHz,
		SilenceRMS:          cfg.SilenceThreshold,
		ConfidenceThreshold: cfg.ConfidenceThreshold,
		WindowType:          window.TypeHann,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	l := &Loop{
		cfg:       cfg,
		estimator: estimator,
		source:    source,
		queue:     newFrameQueue(cfg.QueueDepth),
		feedback:  make(chan Feedback, cfg.QueueDepth),
		errs:      make(chan error, 1),
		smooth:    newSmoother(cfg.HysteresisFrames, cfg.HysteresisCents),
	}
	l.resume = sync.NewCond(&l.mu)
	l.targets.Store(&targetSet{sys: sys, refHz: cfg.ReferenceHz, targets: targets})

	return l, nil
}

// Config returns the loop configuration.
func (l *Loop) Config() Config { return l.cfg }

// State returns the current lifecycle state.
func (l *Loop) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Feedback returns the channel carrying one Feedback per processed
// frame. Entries are dropped, not queued indefinitely, when the
// consumer falls behind.
func (l *Loop) Feedback() <-chan Feedback { return l.feedback }

// Errors returns the channel reporting recoverable capture failures.
func (l *Loop) Errors() <-chan error { return l.errs }

// DroppedFrames reports how many frames were evicted under
// backpressure.
func (l *Loop) DroppedFrames() uint64 { return l.queue.droppedCount() }

// Targets returns the current target-set snapshot.
func (l *Loop) Targets() []temperament.NoteTarget {
	return l.targets.Load().targets
}

// Run starts the capture producer and processes frames until ctx is
// canceled, Stop is called, or a fatal input error occurs. It may only
// be called once, from the idle state.
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.state != StateIdle {
		state := l.state
		l.mu.Unlock()
		return fmt.Errorf("run from state %s: %w", state, ErrNotRunning)
	}

	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.state = StateRunning
	l.mu.Unlock()

	defer cancel()

	go l.produce(ctx)

	for {
		frame, ok := l.queue.pop()
		if !ok {
			l.setState(StateStopped)
			return ctx.Err()
		}

		if err := l.processFrame(frame); err != nil {
			l.setState(StateStopped)
			cancel()
			return err
		}
	}
}

// produce pulls frames from the capture source into the queue. A
// capture failure pauses the loop and reports upward; Resume retries
// with the same source.
func (l *Loop) produce(ctx context.Context) {
	defer l.queue.close()

	for {
		if !l.waitWhilePaused(ctx) {
			return
		}

		frame, err := l.source.ReadFrame(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}

			l.setState(StatePaused)
			l.reportError(fmt.Errorf("%w: %v", ErrCaptureFailure, err))
			continue
		}

		if ctx.Err() != nil {
			return
		}

		l.queue.push(frame)
	}
}

// waitWhilePaused blocks while the loop is paused. It returns false
// once ctx is done.
func (l *Loop) waitWhilePaused(ctx context.Context) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for l.state == StatePaused && ctx.Err() == nil {
		l.resume.Wait()
	}

	return ctx.Err() == nil && l.state == StateRunning
}

func (l *Loop) processFrame(frame core.Frame) error {
	est, err := l.estimator.Estimate(frame)
	if err != nil {
		// Malformed input would corrupt every later estimate; surface
		// it instead of running on.
		return fmt.Errorf("tuner: %w", err)
	}

	if !est.Voiced {
		l.mu.Lock()
		l.smooth.observeNone()
		l.mu.Unlock()

		l.emit(Feedback{Confidence: est.Confidence, Timestamp: frame.Timestamp})
		return nil
	}

	snap := l.targets.Load()

	note, cents, err := temperament.Match(est.Frequency, snap.targets)
	if err != nil {
		return fmt.Errorf("tuner: %w", err)
	}

	l.mu.Lock()
	display, displayCents := l.smooth.observe(note, cents, est.Frequency)
	l.mu.Unlock()

	l.emit(Feedback{
		Matched:    true,
		Note:       display,
		Cents:      displayCents,
		Frequency:  est.Frequency,
		Confidence: est.Confidence,
		Timestamp:  frame.Timestamp,
	})

	return nil
}

func (l *Loop) emit(f Feedback) {
	select {
	case l.feedback <- f:
	default:
		// Display too slow; drop rather than stall the analysis path.
	}
}

func (l *Loop) reportError(err error) {
	select {
	case l.errs <- err:
	default:
	}
}

func (l *Loop) setState(s State) {
	l.mu.Lock()
	l.state = s
	l.mu.Unlock()
}

// Pause suspends frame production. Queued frames are still analyzed.
func (l *Loop) Pause() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != StateRunning {
		return fmt.Errorf("pause from state %s: %w", l.state, ErrNotRunning)
	}

	l.state = StatePaused
	return nil
}

// Resume restarts frame production after a Pause or a capture failure.
func (l *Loop) Resume() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state != StatePaused {
		return fmt.Errorf("resume from state %s: %w", l.state, ErrNotRunning)
	}

	l.state = StateRunning
	l.resume.Broadcast()
	return nil
}

// Stop shuts the loop down. It is observable within one frame
// duration: the producer honors context cancellation and the queue
// wakes the analysis goroutine.
func (l *Loop) Stop() {
	l.mu.Lock()
	cancel := l.cancel
	l.state = StateStopped
	l.resume.Broadcast()
	l.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	l.queue.close()
}

// SetTemperament regenerates the target set for a new tuning system
// and resets the smoothing state. The swap is atomic with respect to
// in-flight matches.
func (l *Loop) SetTemperament(sys temperament.Type) error {
	old := l.targets.Load()
	return l.swapTargets(sys, old.refHz)
}

// SetReference regenerates the target set for a new reference pitch
// and resets the smoothing state.
func (l *Loop) SetReference(refHz float64) error {
	if refHz <= 0 || math.IsNaN(refHz) || math.IsInf(refHz, 0) {
		return fmt.Errorf("%w: reference pitch must be > 0 Hz: %v", ErrInvalidConfiguration, refHz)
	}

	old := l.targets.Load()
	return l.swapTargets(old.sys, refHz)
}

func (l *Loop) swapTargets(sys temperament.Type, refHz float64) error {
	targets, err := temperament.Generate(sys, refHz, l.cfg.OctaveLow, l.cfg.OctaveHigh)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}

	l.targets.Store(&targetSet{sys: sys, refHz: refHz, targets: targets})

	l.mu.Lock()
	l.smooth.reset()
	l.mu.Unlock()

	return nil
}
