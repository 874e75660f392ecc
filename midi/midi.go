package midi

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/jsphweid/patternmetrics/model"
	"gitlab.com/gomidi/midi/v2/smf"
)

// ErrUnsupportedTimeFormat is returned for SMPTE-timed files, which have no
// notion of beats.
var ErrUnsupportedTimeFormat = errors.New("midi: only metric (ticks per quarter) time formats are supported")

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = fmt.Errorf("panic parsing midi file: %v", r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("error reading midi file: %w", err)
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("error parsing midi file: %w", err)
	}

	return res, nil
}

// PieceFromSMF turns every sounding note-on into a Note whose onset is
// measured in quarter notes. Notes are ordered by onset, then pitch.
func PieceFromSMF(s *smf.SMF) (model.Piece, error) {
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok || ticks.Resolution() == 0 {
		return nil, ErrUnsupportedTimeFormat
	}
	resolution := float64(ticks.Resolution())

	var piece model.Piece
	for _, track := range s.Tracks {
		var absTicks int64
		for _, event := range track {
			absTicks += int64(event.Delta)
			var channel, key, velocity uint8
			// a note-on with velocity 0 is a note-off
			if event.Message.GetNoteOn(&channel, &key, &velocity) && velocity > 0 {
				piece = append(piece, model.NewNote(float64(absTicks)/resolution, float64(key)))
			}
		}
	}

	sort.SliceStable(piece, func(i, j int) bool {
		if piece[i].Onset != piece[j].Onset {
			return piece[i].Onset < piece[j].Onset
		}
		return piece[i].Pitch < piece[j].Pitch
	})
	return piece, nil
}

func ReadPiece(path string) (model.Piece, error) {
	s, err := ReadMidiFile(path)
	if err != nil {
		return nil, err
	}
	return PieceFromSMF(s)
}
