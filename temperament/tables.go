package temperament

import "math"

// Historical interval tables. Rational systems are stored as exact
// ratios, the irregular circulating systems as cents offsets measured
// from the tonic; both forms normalize to ratios at init time.
//
// Just intonation uses 5-limit tuning for the accidentals. The minor
// seventh is 16/9, keeping the table strictly ascending below the 15/8
// major seventh.
var (
	justRatios = []float64{
		1, 16.0 / 15, 9.0 / 8, 6.0 / 5, 5.0 / 4, 4.0 / 3,
		64.0 / 45, 3.0 / 2, 8.0 / 5, 5.0 / 3, 16.0 / 9, 15.0 / 8,
	}

	pythagoreanRatios = []float64{
		1, 256.0 / 243, 9.0 / 8, 32.0 / 27, 81.0 / 64, 4.0 / 3,
		729.0 / 512, 3.0 / 2, 128.0 / 81, 27.0 / 16, 16.0 / 9, 243.0 / 128,
	}

	meantoneCents = []float64{
		0, 81.427, 194.135, 306.842, 388.270, 502.933,
		583.383, 697.067, 780.450, 891.202, 1004.888, 1085.338,
	}

	wellCents = []float64{
		0, 90.225, 193.484, 294.135, 386.968, 498.045,
		588.270, 696.742, 792.180, 890.226, 996.090, 1088.923,
	}

	rameauCents = []float64{
		0, 84.360, 192.180, 288.270, 384.360, 503.910,
		582.405, 696.090, 786.315, 888.270, 996.090, 1080.450,
	}

	werckmeisterCents = []float64{
		0, 90.225, 192.180, 294.135, 390.225, 498.045,
		588.270, 696.090, 792.180, 888.270, 996.090, 1092.180,
	}

	kirnbergerCents = []float64{
		0, 90.225, 203.910, 294.135, 386.315, 498.045,
		590.225, 701.955, 792.180, 884.360, 996.090, 1088.270,
	}

	vallottiCents = []float64{
		0, 94, 196, 278, 392, 475, 588, 696, 790, 894, 975, 1090,
	}
)

var (
	equalRatios      = equalTemperedRatios()
	meantoneRatios   = centsToRatios(meantoneCents)
	wellRatios       = centsToRatios(wellCents)
	rameauRatios     = centsToRatios(rameauCents)
	werckmeisterRats = centsToRatios(werckmeisterCents)
	kirnbergerRatios = centsToRatios(kirnbergerCents)
	vallottiRatios   = centsToRatios(vallottiCents)
)

func ratioTable(t Type) ([]float64, bool) {
	switch t {
	case Equal:
		return equalRatios, true
	case Just:
		return justRatios, true
	case Pythagorean:
		return pythagoreanRatios, true
	case Meantone:
		return meantoneRatios, true
	case Well:
		return wellRatios, true
	case Rameau:
		return rameauRatios, true
	case WerckmeisterI:
		return werckmeisterRats, true
	case KirnbergerIII:
		return kirnbergerRatios, true
	case VallottiYoung:
		return vallottiRatios, true
	default:
		return nil, false
	}
}

// equalTemperedRatios computes 2^(d/12) for d in 0..11.
func equalTemperedRatios() []float64 {
	out := make([]float64, DegreesPerOctave)
	for d := range out {
		out[d] = math.Exp2(float64(d) / DegreesPerOctave)
	}
	return out
}

func centsToRatios(cents []float64) []float64 {
	out := make([]float64, len(cents))
	for i, c := range cents {
		out[i] = math.Exp2(c / 1200)
	}
	return out
}

func ratiosToCents(ratios []float64) []float64 {
	out := make([]float64, len(ratios))
	for i, r := range ratios {
		out[i] = 1200 * math.Log2(r)
	}
	return out
}
