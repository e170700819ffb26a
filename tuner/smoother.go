package tuner

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-tuner/temperament"
)

// smoother is the loop's SmoothingState: it applies note hysteresis so
// the displayed note does not flicker between neighbors on vibrato or
// noise, and median-smooths the deviation shown for the current note.
//
// The first matched note is adopted immediately. After that, a
// different note must be matched for `need` consecutive voiced frames,
// each agreeing with the previous candidate observation within `tol`
// cents, before the display switches. An unvoiced frame breaks the
// streak.
type smoother struct {
	need int
	tol  float64

	hasCurrent bool
	current    temperament.NoteTarget
	window     []float64 // recent deviations from current, newest last
	scratch    []float64

	candidate temperament.NoteTarget
	candCents float64
	streak    int
}

func newSmoother(need int, tolCents float64) *smoother {
	return &smoother{
		need:    need,
		tol:     tolCents,
		window:  make([]float64, 0, need),
		scratch: make([]float64, 0, need),
	}
}

// observe feeds one voiced match and returns the note to display with
// its smoothed deviation in cents.
func (s *smoother) observe(note temperament.NoteTarget, cents, freqHz float64) (temperament.NoteTarget, float64) {
	switch {
	case !s.hasCurrent:
		s.hasCurrent = true
		s.current = note
		s.window = s.window[:0]
		s.clearCandidate()

	case note == s.current:
		s.clearCandidate()

	default:
		if s.streak > 0 && note == s.candidate && math.Abs(cents-s.candCents) <= s.tol {
			s.streak++
		} else {
			s.candidate = note
			s.streak = 1
		}
		s.candCents = cents

		if s.streak >= s.need {
			s.current = note
			s.window = s.window[:0]
			s.clearCandidate()
		}
	}

	deviation := temperament.CentsBetween(freqHz, s.current.Frequency)
	if len(s.window) == s.need {
		copy(s.window, s.window[1:])
		s.window = s.window[:len(s.window)-1]
	}
	s.window = append(s.window, deviation)

	return s.current, s.median()
}

// observeNone feeds an unvoiced frame: the candidate streak breaks so
// silence in between never counts toward a note switch.
func (s *smoother) observeNone() {
	s.clearCandidate()
	s.window = s.window[:0]
}

// reset drops all state; called when temperament or reference changes.
func (s *smoother) reset() {
	s.hasCurrent = false
	s.current = temperament.NoteTarget{}
	s.window = s.window[:0]
	s.clearCandidate()
}

func (s *smoother) clearCandidate() {
	s.candidate = temperament.NoteTarget{}
	s.candCents = 0
	s.streak = 0
}

func (s *smoother) median() float64 {
	if len(s.window) == 0 {
		return 0
	}

	s.scratch = append(s.scratch[:0], s.window...)
	sort.Float64s(s.scratch)

	return stat.Quantile(0.5, stat.Empirical, s.scratch, nil)
}
