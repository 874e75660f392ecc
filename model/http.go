package model

import "time"

// NotePair is the wire form of a note: [onset, pitch].
type NotePair = [2]float64

type EvaluateRequestBody struct {
	Piece    []NotePair     `json:"piece"`
	Patterns [][][]NotePair `json:"patterns"`
	Strict   bool           `json:"strict"`
}

type EvaluateResponse struct {
	ID     string `json:"id"`
	Report Report `json:"report"`
}

type StoredReport struct {
	ID           string    `json:"id"`
	PiecePath    string    `json:"piece_path"`
	PatternsPath string    `json:"patterns_path"`
	CreatedAt    time.Time `json:"created_at"`
	Report       Report    `json:"report"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}

func PieceFromPairs(pairs []NotePair) Piece {
	res := make(Piece, 0, len(pairs))
	for _, p := range pairs {
		res = append(res, NewNote(p[0], p[1]))
	}
	return res
}

func PatternsFromPairs(raw [][][]NotePair) PatternCollection {
	res := make(PatternCollection, 0, len(raw))
	for _, rp := range raw {
		var p Pattern
		for _, ro := range rp {
			p = append(p, Occurrence(PieceFromPairs(ro)))
		}
		res = append(res, p)
	}
	return res
}
