// Package temperament models historical tuning systems and generates
// the note targets a tuner matches detected pitches against.
package temperament

import (
	"fmt"
	"strings"
)

// Type identifies a tuning system. The set is closed: adding a
// temperament means adding a variant and its ratio table.
type Type int

const (
	Equal Type = iota
	Just
	Pythagorean
	Meantone
	Well
	Rameau
	WerckmeisterI
	KirnbergerIII
	VallottiYoung
)

// DegreesPerOctave is the number of scale degrees every supported
// tuning system defines per octave.
const DegreesPerOctave = 12

// Name returns the human-readable temperament name.
func (t Type) Name() string {
	switch t {
	case Equal:
		return "Equal"
	case Just:
		return "Just"
	case Pythagorean:
		return "Pythagorean"
	case Meantone:
		return "Meantone"
	case Well:
		return "Well-Tempered"
	case Rameau:
		return "Rameau"
	case WerckmeisterI:
		return "Werckmeister I (III)"
	case KirnbergerIII:
		return "Kirnberger III"
	case VallottiYoung:
		return "Vallotti & Young"
	default:
		return "Unknown"
	}
}

// Ratios returns the twelve frequency ratios between each scale degree
// and the tonic, strictly ascending within [1, 2).
func (t Type) Ratios() ([]float64, error) {
	r, ok := ratioTable(t)
	if !ok {
		return nil, fmt.Errorf("%w: unknown temperament %d", ErrInvalidConfiguration, t)
	}

	out := make([]float64, len(r))
	copy(out, r)
	return out, nil
}

// Cents returns the interval between each scale degree and the tonic
// in cents (1200 cents per octave).
func (t Type) Cents() ([]float64, error) {
	r, ok := ratioTable(t)
	if !ok {
		return nil, fmt.Errorf("%w: unknown temperament %d", ErrInvalidConfiguration, t)
	}

	return ratiosToCents(r), nil
}

// Types returns all supported temperaments in declaration order.
func Types() []Type {
	return []Type{
		Equal,
		Just,
		Pythagorean,
		Meantone,
		Well,
		Rameau,
		WerckmeisterI,
		KirnbergerIII,
		VallottiYoung,
	}
}

// ParseType resolves a configuration string to a temperament. Matching
// is case-insensitive on the short names used in config files:
// equal, just, pythagorean, meantone, well, rameau, werckmeister,
// kirnberger, vallotti.
func ParseType(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "equal":
		return Equal, nil
	case "just":
		return Just, nil
	case "pythagorean":
		return Pythagorean, nil
	case "meantone":
		return Meantone, nil
	case "well", "well-tempered":
		return Well, nil
	case "rameau":
		return Rameau, nil
	case "werckmeister", "werckmeister-i":
		return WerckmeisterI, nil
	case "kirnberger", "kirnberger-iii":
		return KirnbergerIII, nil
	case "vallotti", "vallotti-young":
		return VallottiYoung, nil
	default:
		return 0, fmt.Errorf("%w: unknown temperament %q", ErrInvalidConfiguration, name)
	}
}
