package metrics

import (
	"fmt"

	"github.com/jsphweid/patternmetrics/model"
	"github.com/jsphweid/patternmetrics/util"
)

// Coverage is the number of distinct piece notes found in any occurrence,
// divided by the piece's note count (duplicates included).
func Coverage(patterns model.PatternCollection, piece model.Piece) (float64, error) {
	if piece.Len() == 0 {
		return 0, ErrEmptyPiece
	}
	inPatterns := patterns.Set()
	var covered int
	for n := range piece.Set() {
		if _, ok := inPatterns[n]; ok {
			covered++
		}
	}
	return float64(covered) / float64(piece.Len()), nil
}

// CountUncoveredNotes counts distinct piece notes that no occurrence
// contains. A value repeated in the piece counts once.
func CountUncoveredNotes(patterns model.PatternCollection, piece model.Piece) int {
	inPatterns := patterns.Set()
	var uncovered int
	for n := range piece.Set() {
		if _, ok := inPatterns[n]; !ok {
			uncovered++
		}
	}
	return uncovered
}

// TranslationVectors returns, for every occurrence after the first, the
// vector from the first occurrence's anchor to its own anchor.
func TranslationVectors(p model.Pattern) ([]model.Vector, error) {
	if len(p) == 0 {
		return nil, ErrEmptyPattern
	}
	first, ok := p[0].Anchor()
	if !ok {
		return nil, fmt.Errorf("occurrence 0: %w", ErrEmptyOccurrence)
	}
	vectors := make([]model.Vector, 0, len(p)-1)
	for i, oc := range p[1:] {
		anchor, ok := oc.Anchor()
		if !ok {
			return nil, fmt.Errorf("occurrence %d: %w", i+1, ErrEmptyOccurrence)
		}
		vectors = append(vectors, anchor.Sub(first))
	}
	return vectors, nil
}

// PatternCost is the TEC cost: the first occurrence verbatim plus one vector
// per further occurrence.
func PatternCost(p model.Pattern) (int, error) {
	vectors, err := TranslationVectors(p)
	if err != nil {
		return 0, err
	}
	return len(p[0]) + len(vectors), nil
}

func patternReports(patterns model.PatternCollection) ([]model.PatternReport, error) {
	res := make([]model.PatternReport, 0, len(patterns))
	for i, p := range patterns {
		vectors, err := TranslationVectors(p)
		if err != nil {
			return nil, fmt.Errorf("pattern %d: %w", i, err)
		}
		res = append(res, model.PatternReport{
			Index:       i,
			Occurrences: len(p),
			MotifLength: len(p[0]),
			Vectors:     vectors,
			Cost:        len(p[0]) + len(vectors),
		})
	}
	return res, nil
}

func encodingCost(reports []model.PatternReport, uncovered int) int {
	costs := make([]int, 0, len(reports))
	for _, r := range reports {
		costs = append(costs, r.Cost)
	}
	return util.Sum(costs) + uncovered
}

// LosslessCompression divides the piece length by the cost of encoding the
// piece as TEC patterns plus every uncovered note verbatim.
func LosslessCompression(patterns model.PatternCollection, piece model.Piece) (float64, error) {
	reports, err := patternReports(patterns)
	if err != nil {
		return 0, err
	}
	cost := encodingCost(reports, CountUncoveredNotes(patterns, piece))
	if cost == 0 {
		return 0, ErrZeroEncodingCost
	}
	return float64(piece.Len()) / float64(cost), nil
}

// Evaluate computes every metric along with the per-pattern breakdown.
func Evaluate(patterns model.PatternCollection, piece model.Piece) (model.Report, error) {
	var report model.Report
	coverage, err := Coverage(patterns, piece)
	if err != nil {
		return report, err
	}
	reports, err := patternReports(patterns)
	if err != nil {
		return report, err
	}
	uncovered := CountUncoveredNotes(patterns, piece)
	cost := encodingCost(reports, uncovered)
	if cost == 0 {
		return report, ErrZeroEncodingCost
	}

	report.PieceLength = piece.Len()
	report.NumPatterns = len(patterns)
	report.Coverage = coverage
	report.UncoveredNotes = uncovered
	report.EncodingCost = cost
	report.LosslessCompression = float64(piece.Len()) / float64(cost)
	report.Patterns = reports
	return report, nil
}
