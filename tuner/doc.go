// Package tuner wires audio capture, pitch estimation and note
// matching into a real-time tuning loop.
//
// A Loop owns a capture producer goroutine and a single analysis
// goroutine connected by a bounded drop-oldest frame queue. Each frame
// is pitch-estimated, matched against the active temperament's note
// targets and emitted as a Feedback value; note hysteresis keeps the
// displayed note stable near target boundaries. The temperament and
// reference pitch can be swapped while running.
package tuner
