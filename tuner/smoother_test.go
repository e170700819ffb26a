package tuner

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-tuner/temperament"
)

func equalTargets(t *testing.T) []temperament.NoteTarget {
	t.Helper()

	targets, err := temperament.Generate(temperament.Equal, 440, 4, 5)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return targets
}

func findTarget(t *testing.T, targets []temperament.NoteTarget, name string) temperament.NoteTarget {
	t.Helper()

	for _, nt := range targets {
		if nt.Name() == name {
			return nt
		}
	}
	t.Fatalf("no target named %s", name)
	return temperament.NoteTarget{}
}

func TestSmootherAdoptsFirstNoteImmediately(t *testing.T) {
	targets := equalTargets(t)
	a4 := findTarget(t, targets, "A4")

	s := newSmoother(3, 50)

	got, cents := s.observe(a4, 0, a4.Frequency)
	if got != a4 {
		t.Errorf("first observe displayed %s, want A4", got.Name())
	}
	if math.Abs(cents) > 1e-9 {
		t.Errorf("deviation = %v cents, want 0", cents)
	}
}

func TestSmootherRequiresConsecutiveFramesToSwitch(t *testing.T) {
	targets := equalTargets(t)
	a4 := findTarget(t, targets, "A4")
	b4 := findTarget(t, targets, "B4")

	s := newSmoother(3, 50)

	s.observe(a4, 0, a4.Frequency)

	// Two frames of B4 are not enough.
	for i := 0; i < 2; i++ {
		got, _ := s.observe(b4, 0, b4.Frequency)
		if got != a4 {
			t.Fatalf("frame %d: displayed %s, want A4 to persist", i, got.Name())
		}
	}

	// The third consecutive frame flips the display.
	got, cents := s.observe(b4, 0, b4.Frequency)
	if got != b4 {
		t.Errorf("after 3 frames displayed %s, want B4", got.Name())
	}
	if math.Abs(cents) > 1e-9 {
		t.Errorf("deviation after switch = %v cents, want 0", cents)
	}
}

func TestSmootherAlternatingNotesNeverSwitch(t *testing.T) {
	targets := equalTargets(t)
	a4 := findTarget(t, targets, "A4")
	b4 := findTarget(t, targets, "B4")

	s := newSmoother(3, 50)

	s.observe(a4, 0, a4.Frequency)

	// A and B alternate; B never accumulates 3 consecutive frames, so
	// the display must stay on A throughout.
	for i := 0; i < 20; i++ {
		if got, _ := s.observe(b4, 0, b4.Frequency); got != a4 {
			t.Fatalf("iteration %d: B frame switched display to %s", i, got.Name())
		}
		if got, _ := s.observe(a4, 0, a4.Frequency); got != a4 {
			t.Fatalf("iteration %d: A frame displayed %s", i, got.Name())
		}
	}
}

func TestSmootherUnvoicedBreaksStreak(t *testing.T) {
	targets := equalTargets(t)
	a4 := findTarget(t, targets, "A4")
	b4 := findTarget(t, targets, "B4")

	s := newSmoother(3, 50)

	s.observe(a4, 0, a4.Frequency)
	s.observe(b4, 0, b4.Frequency)
	s.observe(b4, 0, b4.Frequency)
	s.observeNone()
	// Streak restarts: two more B frames still not enough.
	s.observe(b4, 0, b4.Frequency)
	got, _ := s.observe(b4, 0, b4.Frequency)
	if got != a4 {
		t.Errorf("displayed %s after silence-interrupted streak, want A4", got.Name())
	}
}

func TestSmootherDisagreeingCentsBreakStreak(t *testing.T) {
	targets := equalTargets(t)
	a4 := findTarget(t, targets, "A4")
	b4 := findTarget(t, targets, "B4")

	s := newSmoother(2, 10)

	s.observe(a4, 0, a4.Frequency)
	s.observe(b4, -40, b4.Frequency)
	// 45 cents away from the previous candidate observation, beyond the
	// 10-cent tolerance: the streak restarts at 1.
	got, _ := s.observe(b4, 5, b4.Frequency)
	if got != a4 {
		t.Errorf("displayed %s, want A4 (disagreeing frames must not switch)", got.Name())
	}
	// Now an agreeing frame completes the streak of 2.
	got, _ = s.observe(b4, 6, b4.Frequency)
	if got != b4 {
		t.Errorf("displayed %s, want B4 after agreeing streak", got.Name())
	}
}

func TestSmootherMedianDeviation(t *testing.T) {
	targets := equalTargets(t)
	a4 := findTarget(t, targets, "A4")

	s := newSmoother(3, 50)

	// Frequencies at -10, +30 and +10 cents around A4; the median of the
	// three deviations is +10.
	for _, cents := range []float64{-10, 30, 10} {
		freq := a4.Frequency * math.Exp2(cents/1200)
		s.observe(a4, cents, freq)
	}

	_, got := s.observe(a4, 10, a4.Frequency*math.Exp2(10.0/1200))
	if math.Abs(got-10) > 1e-6 {
		t.Errorf("median deviation = %v cents, want 10", got)
	}
}

func TestSmootherResetForgetsCurrentNote(t *testing.T) {
	targets := equalTargets(t)
	a4 := findTarget(t, targets, "A4")
	b4 := findTarget(t, targets, "B4")

	s := newSmoother(3, 50)

	s.observe(a4, 0, a4.Frequency)
	s.reset()

	// After a reset the next note is adopted immediately, as if first.
	got, _ := s.observe(b4, 0, b4.Frequency)
	if got != b4 {
		t.Errorf("displayed %s after reset, want B4 adopted immediately", got.Name())
	}
}
