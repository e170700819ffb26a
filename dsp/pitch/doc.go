// Package pitch estimates the fundamental frequency of monophonic
// audio frames.
//
// The estimator windows each frame, computes its autocorrelation
// through a zero-padded FFT, and searches the lag range corresponding
// to a configurable frequency band for the strongest periodicity.
// Parabolic interpolation around the correlation peak recovers
// sub-sample lag resolution. Silent and weakly periodic frames report
// "no pitch" rather than a noisy guess.
package pitch
