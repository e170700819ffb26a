package temperament

import "errors"

// ErrInvalidConfiguration marks construction-time failures: a bad
// reference pitch, an empty or out-of-range octave span, or an unknown
// temperament name. Callers match it with errors.Is.
var ErrInvalidConfiguration = errors.New("invalid temperament configuration")
