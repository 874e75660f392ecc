package parse

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jsphweid/patternmetrics/model"
)

func parseNote(onset string, pitch string) (model.Note, error) {
	o, err := strconv.ParseFloat(strings.TrimSpace(onset), 64)
	if err != nil {
		return model.Note{}, fmt.Errorf("%w: onset %q", ErrMalformedNote, onset)
	}
	p, err := strconv.ParseFloat(strings.TrimSpace(pitch), 64)
	if err != nil {
		return model.Note{}, fmt.Errorf("%w: pitch %q", ErrMalformedNote, pitch)
	}
	return model.NewNote(o, p), nil
}

// ReadPiece reads onset,pitch rows. Columns past the second are ignored.
func ReadPiece(r io.Reader) (model.Piece, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var piece model.Piece
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading piece: %w", err)
		}
		line, _ := reader.FieldPos(0)
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		if len(row) < 2 {
			return nil, fmt.Errorf("row %d: %w: expected onset,pitch", line, ErrMalformedNote)
		}
		note, err := parseNote(row[0], row[1])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		piece = append(piece, note)
	}
	return piece, nil
}

func ReadPieceFile(path string) (model.Piece, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't read piece file: %w", err)
	}
	defer f.Close()
	return ReadPiece(f)
}
