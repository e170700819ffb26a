package temperament

import (
	"math"
	"testing"
)

func equalTargets(t *testing.T) []NoteTarget {
	t.Helper()

	targets, err := Generate(Equal, 440, 3, 5)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return targets
}

func TestMatchExactTarget(t *testing.T) {
	targets := equalTargets(t)

	for _, probe := range []int{0, 7, len(targets) - 1} {
		got, cents, err := Match(targets[probe].Frequency, targets)
		if err != nil {
			t.Fatalf("Match: %v", err)
		}

		if got != targets[probe] {
			t.Fatalf("matched %s, want %s", got.Name(), targets[probe].Name())
		}

		if cents != 0 {
			t.Fatalf("deviation = %v cents, want exactly 0", cents)
		}
	}
}

func TestMatchTieBreaksToLowerTarget(t *testing.T) {
	targets := equalTargets(t)

	// A4 = 440 and A#4 = 466.1638; the geometric mean sits exactly 50
	// cents from each and must resolve to the lower note.
	var a4, aSharp4 NoteTarget
	for _, tgt := range targets {
		if tgt.Name() == "A4" {
			a4 = tgt
		}
		if tgt.Name() == "A#4" {
			aSharp4 = tgt
		}
	}

	probe := math.Sqrt(a4.Frequency * aSharp4.Frequency)

	got, cents, err := Match(probe, targets)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}

	if got.Name() != "A4" {
		t.Fatalf("tie resolved to %s, want A4", got.Name())
	}

	if math.Abs(cents-50) > 1e-9 {
		t.Fatalf("deviation = %v cents, want +50", cents)
	}
}

func TestMatchNearestNeighbor(t *testing.T) {
	targets := equalTargets(t)

	// 445 Hz is ~19.6 cents above A4, well under half a semitone.
	got, cents, err := Match(445, targets)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}

	if got.Name() != "A4" {
		t.Fatalf("matched %s, want A4", got.Name())
	}

	if cents <= 0 || cents >= 25 {
		t.Fatalf("deviation = %v cents, want small positive", cents)
	}
}

func TestMatchClampsOutOfRange(t *testing.T) {
	targets := equalTargets(t)
	lowest := targets[0]
	highest := targets[len(targets)-1]

	got, cents, err := Match(lowest.Frequency/4, targets)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}

	if got != lowest {
		t.Fatalf("below-range matched %s, want %s", got.Name(), lowest.Name())
	}

	if math.Abs(cents+2400) > 1e-9 {
		t.Fatalf("deviation = %v cents, want -2400", cents)
	}

	got, cents, err = Match(highest.Frequency*2, targets)
	if err != nil {
		t.Fatalf("Match: %v", err)
	}

	if got != highest {
		t.Fatalf("above-range matched %s, want %s", got.Name(), highest.Name())
	}

	if math.Abs(cents-1200) > 1e-9 {
		t.Fatalf("deviation = %v cents, want +1200", cents)
	}
}

func TestMatchRejectsBadInput(t *testing.T) {
	targets := equalTargets(t)

	if _, _, err := Match(440, nil); err == nil {
		t.Fatal("expected error for empty target set")
	}

	for _, freq := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, _, err := Match(freq, targets); err == nil {
			t.Fatalf("expected error for frequency %v", freq)
		}
	}
}

func TestCentsBetween(t *testing.T) {
	if got := CentsBetween(880, 440); math.Abs(got-1200) > 1e-9 {
		t.Fatalf("octave = %v cents, want 1200", got)
	}

	if got := CentsBetween(440, 880); math.Abs(got+1200) > 1e-9 {
		t.Fatalf("inverse octave = %v cents, want -1200", got)
	}

	if got := CentsBetween(440, 440); got != 0 {
		t.Fatalf("unison = %v cents, want 0", got)
	}
}
