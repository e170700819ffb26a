package temperament

import (
	"fmt"
	"math"
	"sort"
)

// Match finds the target closest to freqHz in cents distance and
// returns it together with the signed deviation in cents (positive is
// sharp, negative is flat).
//
// targets must be the ascending sequence produced by Generate. The
// search bisects to the bracketing pair, then picks the candidate with
// the smaller absolute cents distance; an exact log-frequency midpoint
// resolves to the lower-frequency target. Frequencies outside the
// target span match the boundary target with the correspondingly large
// deviation rather than failing, so the feedback still shows how far
// out of range the pitch is.
func Match(freqHz float64, targets []NoteTarget) (NoteTarget, float64, error) {
	if len(targets) == 0 {
		return NoteTarget{}, 0, fmt.Errorf("%w: empty target set", ErrInvalidConfiguration)
	}

	if freqHz <= 0 || math.IsNaN(freqHz) || math.IsInf(freqHz, 0) {
		return NoteTarget{}, 0, fmt.Errorf("match frequency must be > 0 Hz: %v", freqHz)
	}

	i := sort.Search(len(targets), func(k int) bool {
		return targets[k].Frequency >= freqHz
	})

	switch i {
	case 0:
		return targets[0], CentsBetween(freqHz, targets[0].Frequency), nil
	case len(targets):
		last := targets[len(targets)-1]
		return last, CentsBetween(freqHz, last.Frequency), nil
	}

	lower, upper := targets[i-1], targets[i]
	centsLower := CentsBetween(freqHz, lower.Frequency)
	centsUpper := CentsBetween(freqHz, upper.Frequency)

	// tieEpsilon absorbs log/sqrt rounding so a probe at the exact
	// log-frequency midpoint resolves to the lower target on every
	// platform. A nanocent is far below any musical significance.
	const tieEpsilon = 1e-9

	if math.Abs(centsLower) <= math.Abs(centsUpper)+tieEpsilon {
		return lower, centsLower, nil
	}

	return upper, centsUpper, nil
}

// CentsBetween returns the signed interval from target to freq in
// cents: 1200 * log2(freq / target).
func CentsBetween(freqHz, targetHz float64) float64 {
	return 1200 * math.Log2(freqHz/targetHz)
}
