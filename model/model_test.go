package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewNoteRoundsOnsetAndTruncatesPitch(t *testing.T) {
	n := NewNote(1.23456, 64.9)

	assert := assert.New(t)
	assert.Equal(1.235, n.Onset)
	assert.Equal(64, n.Pitch)
}

func TestNotesEqualAfterRounding(t *testing.T) {
	a := NewNote(0.3333, 60)
	b := NewNote(0.33349, 60.5)

	assert := assert.New(t)
	assert.Equal(a, b)
	assert.Len(Piece{a, b}.Set(), 1)
}

func TestNegativeZeroOnsetIsZero(t *testing.T) {
	assert.Equal(t, NewNote(0, 60), NewNote(-0.0001, 60))
}

func TestSubIsRelativeTranslation(t *testing.T) {
	v := NewNote(8.5, 65).Sub(NewNote(0.25, 62))
	assert.Equal(t, Vector{Onset: 8.25, Pitch: 3}, v)
}

func TestAnchor(t *testing.T) {
	assert := assert.New(t)

	n, ok := Occurrence{NewNote(2, 60), NewNote(3, 62)}.Anchor()
	assert.True(ok)
	assert.Equal(NewNote(2, 60), n)

	_, ok = Occurrence{}.Anchor()
	assert.False(ok)
}

func TestNotesKeepsDuplicates(t *testing.T) {
	shared := NewNote(1, 64)
	pc := PatternCollection{
		{{NewNote(0, 62), shared}},
		{{shared, NewNote(2, 65)}, {NewNote(10, 62)}},
	}

	assert := assert.New(t)
	assert.Equal([]Note{NewNote(0, 62), shared, shared, NewNote(2, 65), NewNote(10, 62)}, pc.Notes())
	assert.Len(pc.Set(), 4)
}

func TestFromPairs(t *testing.T) {
	piece := PieceFromPairs([]NotePair{{0, 60}, {0.5004, 62.7}})
	assert.Equal(t, Piece{{Onset: 0, Pitch: 60}, {Onset: 0.5, Pitch: 62}}, piece)

	pc := PatternsFromPairs([][][]NotePair{{{{0, 62}, {1, 64}}, {{20, 62}, {21, 64}}}})
	assert.Equal(t, PatternCollection{{
		{NewNote(0, 62), NewNote(1, 64)},
		{NewNote(20, 62), NewNote(21, 64)},
	}}, pc)
}
