package tuner

import "errors"

var (
	// ErrInvalidConfiguration marks a bad tuner configuration. It is
	// fatal at construction or update time and never silently
	// defaulted.
	ErrInvalidConfiguration = errors.New("invalid tuner configuration")

	// ErrCaptureFailure marks a failed capture read. It is recoverable:
	// the loop pauses and can be resumed without rebuilding the model.
	ErrCaptureFailure = errors.New("capture read failed")

	// ErrNotRunning is returned by lifecycle calls that require an
	// active loop.
	ErrNotRunning = errors.New("tuner loop is not running")
)
