package tuner

import (
	"fmt"
	"time"

	"github.com/cwbudde/algo-tuner/temperament"
)

// Feedback is the per-frame result handed to the display side.
//
// When Matched is false no reliable pitch was present; Note and Cents
// are undefined and must not be rendered as a stale or zero deviation.
type Feedback struct {
	Matched    bool
	Note       temperament.NoteTarget
	Cents      float64
	Frequency  float64
	Confidence float64
	Timestamp  time.Time
}

// String renders the feedback in the prototype's "A4 +12" form, or
// "---" when no pitch is present.
func (f Feedback) String() string {
	if !f.Matched {
		return "---"
	}

	return fmt.Sprintf("%s %+.0f", f.Note.Name(), f.Cents)
}
