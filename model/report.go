package model

// PatternReport is the encoding breakdown of a single pattern.
type PatternReport struct {
	Index       int      `json:"index"`
	Occurrences int      `json:"occurrences"`
	MotifLength int      `json:"motif_length"`
	Vectors     []Vector `json:"vectors"`
	Cost        int      `json:"cost"`
}

type Report struct {
	PieceLength         int             `json:"piece_length"`
	NumPatterns         int             `json:"num_patterns"`
	Coverage            float64         `json:"coverage"`
	UncoveredNotes      int             `json:"uncovered_notes"`
	EncodingCost        int             `json:"encoding_cost"`
	LosslessCompression float64         `json:"lossless_compression"`
	Patterns            []PatternReport `json:"patterns"`
}
