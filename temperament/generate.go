package temperament

import (
	"fmt"
	"math"
)

// Chromatic tone names. Accidentals are spelled sharp.
var tones = [DegreesPerOctave]string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B",
}

// referenceToneIndex is the chromatic index of the reference tone A,
// which anchors the reference pitch (A4 = 440 Hz by convention).
const referenceToneIndex = 9

// Octave bounds accepted by Generate. Octave 0 starts below the lowest
// piano key; octave 10 ends above audibility.
const (
	MinOctave = 0
	MaxOctave = 10
)

// NoteTarget is one entry of the generated target set: a named note
// with its exact frequency under a given temperament and reference.
type NoteTarget struct {
	// Tone is the chromatic tone name ("C", "C#", ... "B").
	Tone string
	// Octave is the conventional octave number, incrementing at C.
	Octave int
	// Degree is the scale degree relative to the reference tone, 0..11.
	Degree int
	// Frequency is the target frequency in Hz.
	Frequency float64
}

// Name returns the scientific notation name, e.g. "A4".
func (n NoteTarget) Name() string {
	return fmt.Sprintf("%s%d", n.Tone, n.Octave)
}

// Generate builds the full target set for a tuning system: one
// NoteTarget per scale degree and octave, sorted ascending by
// frequency.
//
// Degree 0 of each octave anchors the reference tone (A), so with
// refHz = 440 the target set for octave 4 starts at A4 = 440 Hz and
// runs through G#5. The conventional octave number still increments at
// C. Frequencies follow
//
//	freq = refHz * 2^(octave - 4) * ratio(degree)
//
// where the ratio table comes from the tuning system. The set is
// regenerated in full on every call; callers swap it atomically rather
// than patching entries.
func Generate(sys Type, refHz float64, octaveLow, octaveHigh int) ([]NoteTarget, error) {
	if refHz <= 0 || math.IsNaN(refHz) || math.IsInf(refHz, 0) {
		return nil, fmt.Errorf("%w: reference pitch must be > 0 Hz: %v", ErrInvalidConfiguration, refHz)
	}

	if octaveLow > octaveHigh {
		return nil, fmt.Errorf("%w: empty octave range %d..%d", ErrInvalidConfiguration, octaveLow, octaveHigh)
	}

	if octaveLow < MinOctave || octaveHigh > MaxOctave {
		return nil, fmt.Errorf("%w: octave range %d..%d outside %d..%d",
			ErrInvalidConfiguration, octaveLow, octaveHigh, MinOctave, MaxOctave)
	}

	ratios, ok := ratioTable(sys)
	if !ok {
		return nil, fmt.Errorf("%w: unknown temperament %d", ErrInvalidConfiguration, sys)
	}

	const referenceOctave = 4

	targets := make([]NoteTarget, 0, len(ratios)*(octaveHigh-octaveLow+1))
	for octave := octaveLow; octave <= octaveHigh; octave++ {
		base := refHz * math.Exp2(float64(octave-referenceOctave))
		for degree, ratio := range ratios {
			chromatic := referenceToneIndex + degree
			targets = append(targets, NoteTarget{
				Tone:      tones[chromatic%DegreesPerOctave],
				Octave:    octave + chromatic/DegreesPerOctave,
				Degree:    degree,
				Frequency: base * ratio,
			})
		}
	}

	return targets, nil
}
