package metrics

import "errors"

var (
	// ErrEmptyPiece means there is no piece length to normalize by.
	ErrEmptyPiece = errors.New("metrics: piece has no notes")
	// ErrZeroEncodingCost means neither patterns nor uncovered notes cost anything.
	ErrZeroEncodingCost = errors.New("metrics: total encoding cost is zero")
	// ErrEmptyPattern means a pattern has no occurrences to anchor on.
	ErrEmptyPattern = errors.New("metrics: pattern has no occurrences")
	// ErrEmptyOccurrence means an occurrence has no anchor note.
	ErrEmptyOccurrence = errors.New("metrics: occurrence has no notes")
	// ErrRaggedPattern means occurrences of one pattern differ in length.
	ErrRaggedPattern = errors.New("metrics: occurrences of a pattern differ in length")
)
