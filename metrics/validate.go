package metrics

import (
	"fmt"

	"github.com/jsphweid/patternmetrics/model"
)

// Validate checks the shape TEC costing assumes: every pattern has at least
// one occurrence, and all its occurrences are non-empty and the same length.
// Nothing else in this package calls it.
func Validate(patterns model.PatternCollection) error {
	for i, p := range patterns {
		if len(p) == 0 {
			return fmt.Errorf("pattern %d: %w", i, ErrEmptyPattern)
		}
		want := len(p[0])
		for j, oc := range p {
			if len(oc) == 0 {
				return fmt.Errorf("pattern %d, occurrence %d: %w", i, j, ErrEmptyOccurrence)
			}
			if len(oc) != want {
				return fmt.Errorf("pattern %d, occurrence %d has %d notes, occurrence 0 has %d: %w",
					i, j, len(oc), want, ErrRaggedPattern)
			}
		}
	}
	return nil
}
