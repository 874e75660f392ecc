package midi

import (
	"math"
	"sort"

	"github.com/jsphweid/patternmetrics/model"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	exportResolution = 480
	exportVelocity   = 100
)

// OccurrenceToSMF renders an occurrence as a single-track file, each note
// sounding until the next onset (or one beat for the last one). Onsets are
// shifted so the anchor starts at tick 0.
func OccurrenceToSMF(oc model.Occurrence) *smf.SMF {
	res := smf.New()
	res.TimeFormat = smf.MetricTicks(exportResolution)

	notes := append(model.Occurrence(nil), oc...)
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Onset < notes[j].Onset
	})

	type event struct {
		tick uint32
		on   bool
		key  uint8
	}
	var events []event
	for i, n := range notes {
		start := toTicks(n.Onset - notes[0].Onset)
		end := start + exportResolution
		if i+1 < len(notes) {
			if next := toTicks(notes[i+1].Onset - notes[0].Onset); next > start {
				end = next
			}
		}
		key := clampKey(n.Pitch)
		events = append(events, event{start, true, key}, event{end, false, key})
	}
	// note offs before note ons at the same tick
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return !events[i].on && events[j].on
	})

	var track smf.Track
	var last uint32
	for _, evt := range events {
		if evt.on {
			track.Add(evt.tick-last, gomidi.NoteOn(0, evt.key, exportVelocity))
		} else {
			track.Add(evt.tick-last, gomidi.NoteOff(0, evt.key))
		}
		last = evt.tick
	}
	track.Close(0)
	res.Add(track)
	return res
}

func WriteOccurrence(path string, oc model.Occurrence) error {
	return OccurrenceToSMF(oc).WriteFile(path)
}

func toTicks(beats float64) uint32 {
	if beats <= 0 {
		return 0
	}
	return uint32(math.Round(beats * exportResolution))
}

// clampKey clamps a pitch into the MIDI key range.
func clampKey(pitch int) uint8 {
	if pitch < 0 {
		return 0
	}
	if pitch > 127 {
		return 127
	}
	return uint8(pitch)
}
