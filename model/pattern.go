package model

// Occurrence is one instance of a pattern. Its first note is the anchor.
type Occurrence []Note

// Anchor returns the first note and false when the occurrence is empty.
func (o Occurrence) Anchor() (Note, bool) {
	if len(o) == 0 {
		return Note{}, false
	}
	return o[0], true
}

// Pattern holds every occurrence of one motif. Occurrences are expected to
// be translations of each other and so to share a length, but nothing here
// checks that.
type Pattern []Occurrence

type PatternCollection []Pattern

// Notes flattens the collection. Notes shared by overlapping occurrences
// show up once per occurrence.
func (pc PatternCollection) Notes() []Note {
	var res []Note
	for _, p := range pc {
		for _, oc := range p {
			res = append(res, oc...)
		}
	}
	return res
}

func (pc PatternCollection) Set() NoteSet {
	return toSet(pc.Notes())
}
