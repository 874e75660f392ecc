package model

import "math"

// OnsetPrecision is the number of fractional digits kept on every onset.
const OnsetPrecision = 3

var onsetScale = math.Pow(10, OnsetPrecision)

// Note is a single (onset, pitch) event. Two notes are the same note iff both
// fields match, so Note works directly as a map key.
type Note struct {
	Onset float64
	Pitch int
}

// NewNote is the only place onsets get rounded. Pitch is truncated, not
// rounded, so "64.9" becomes 64.
func NewNote(onset float64, pitch float64) Note {
	return Note{Onset: RoundOnset(onset), Pitch: int(pitch)}
}

func RoundOnset(onset float64) float64 {
	r := math.Round(onset*onsetScale) / onsetScale
	// keep -0 and 0 from being two different map keys
	if r == 0 {
		return 0
	}
	return r
}

// Sub returns the translation taking other onto n.
func (n Note) Sub(other Note) Vector {
	return Vector{Onset: RoundOnset(n.Onset - other.Onset), Pitch: n.Pitch - other.Pitch}
}

// Vector is a translation in (onset, pitch) space.
type Vector struct {
	Onset float64 `json:"onset"`
	Pitch int     `json:"pitch"`
}

type NoteSet = map[Note]struct{}

// Piece is the reference material, in file order.
type Piece []Note

func (p Piece) Len() int {
	return len(p)
}

func (p Piece) Set() NoteSet {
	return toSet(p)
}

func toSet(notes []Note) NoteSet {
	res := make(NoteSet, len(notes))
	for _, n := range notes {
		res[n] = struct{}{}
	}
	return res
}
