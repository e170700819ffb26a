package pitch

import "errors"

// ErrInvalidInput marks a malformed audio frame: wrong length or
// sample rate. The call fails immediately instead of analyzing
// truncated or padded data.
var ErrInvalidInput = errors.New("invalid audio frame")
