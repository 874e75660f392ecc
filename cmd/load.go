package cmd

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/jsphweid/patternmetrics/constants"
	"github.com/jsphweid/patternmetrics/logger"
	"github.com/jsphweid/patternmetrics/metrics"
	"github.com/jsphweid/patternmetrics/midi"
	"github.com/jsphweid/patternmetrics/model"
	"github.com/jsphweid/patternmetrics/parse"
)

func isMidi(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, v := range constants.MidiExtensions {
		if ext == v {
			return true
		}
	}
	return false
}

// loadPiece reads a .mid/.midi file or falls back to onset,pitch csv.
func loadPiece(path string) (model.Piece, error) {
	if isMidi(path) {
		return midi.ReadPiece(path)
	}
	return parse.ReadPieceFile(path)
}

// score validates patterns before evaluating. Outside strict mode only ragged
// patterns are tolerated, with a warning, since their cost is still defined.
func score(patterns model.PatternCollection, piece model.Piece, strict bool) (model.Report, error) {
	if err := metrics.Validate(patterns); err != nil {
		if strict || !errors.Is(err, metrics.ErrRaggedPattern) {
			return model.Report{}, err
		}
		logger.Warnf("%v", err)
	}
	return metrics.Evaluate(patterns, piece)
}
