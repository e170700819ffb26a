// Package temperament models musical tuning systems.
//
// A temperament assigns a frequency ratio to each of the twelve
// chromatic scale degrees relative to a tonic. Nine historical systems
// are built in, from modern equal temperament through the circulating
// well-temperaments of the Baroque era. Generate expands a system, a
// reference pitch and an octave range into the full ordered target set,
// and Match resolves a detected frequency to the nearest target with
// its deviation in cents.
package temperament
