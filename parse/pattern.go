package parse

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jsphweid/patternmetrics/model"
)

const (
	patternMarker    = "pattern"
	occurrenceMarker = "occurrence"
)

type patternBuilder struct {
	res        model.PatternCollection
	pattern    model.Pattern
	occurrence model.Occurrence
}

func (b *patternBuilder) flushOccurrence() {
	if len(b.occurrence) > 0 {
		b.pattern = append(b.pattern, b.occurrence)
	}
	b.occurrence = nil
}

func (b *patternBuilder) flushPattern() {
	b.flushOccurrence()
	if len(b.pattern) > 0 {
		b.res = append(b.res, b.pattern)
	}
	b.pattern = nil
}

// ReadPatterns reads the line format written by pattern discovery tools:
//
//	pattern
//	occurrence
//	0.0, 62
//	1.0, 64
//	occurrence
//	20.0, 62
//	21.0, 64
//
// Empty occurrences and patterns are dropped rather than kept as
// zero-length entries.
func ReadPatterns(r io.Reader) (model.PatternCollection, error) {
	var b patternBuilder
	scanner := bufio.NewScanner(r)
	var line int
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		switch {
		case text == "":
			continue
		case strings.HasPrefix(text, patternMarker):
			b.flushPattern()
		case strings.HasPrefix(text, occurrenceMarker):
			b.flushOccurrence()
		default:
			fields := strings.Split(text, ",")
			if len(fields) != 2 {
				return nil, fmt.Errorf("line %d: %w: expected \"onset, pitch\", got %q", line, ErrMalformedNote, text)
			}
			note, err := parseNote(fields[0], fields[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			b.occurrence = append(b.occurrence, note)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading patterns: %w", err)
	}
	b.flushPattern()
	return b.res, nil
}

func ReadPatternsFile(path string) (model.PatternCollection, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't read pattern file: %w", err)
	}
	defer f.Close()
	return ReadPatterns(f)
}
