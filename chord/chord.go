package chord

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jsphweid/fretwork/model"
	"github.com/jsphweid/fretwork/pitch"
	"gitlab.com/gomidi/midi/v2/smf"
)

// CreateChordKey joins notes in ascending order with "-". notes is not
// modified.
func CreateChordKey(notes model.Notes) string {
	sorted := make([]int, len(notes))
	copy(sorted, notes)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, note := range sorted {
		parts[i] = fmt.Sprintf("%v", note)
	}
	return strings.Join(parts, "-")
}

// Pitches returns the distinct sounding pitches of markers, lowest first.
// Markers on unknown strings are skipped.
func Pitches(t pitch.Tuning, markers []model.Marker) model.Notes {
	seen := make(map[int]bool)
	res := model.Notes{}
	for _, m := range markers {
		p, ok := t.PitchOf(m.String, m.Fret)
		if !ok || seen[p] {
			continue
		}
		seen[p] = true
		res = append(res, p)
	}
	sort.Ints(res)
	return res
}

func Voicing(t pitch.Tuning, markers []model.Marker) model.Voicing {
	notes := Pitches(t, markers)
	return model.Voicing{Pitches: notes, Key: CreateChordKey(notes)}
}

type event struct {
	offset    int64
	isNoteOff bool
	note      uint8
}

// Timed is a voicing sounding from Offset microseconds into a file.
type Timed struct {
	Offset int64 `json:"offset"`
	model.Voicing
}

func toVoicing(pressed map[uint8]bool) model.Voicing {
	var notes model.Notes
	for note := range pressed {
		notes = append(notes, int(note))
	}
	sort.Ints(notes)
	return model.Voicing{Pitches: notes, Key: CreateChordKey(notes)}
}

// GetChords reduces every track of s to the sets of notes held at each
// instant a note starts or stops, in time order. Instants where nothing is
// held are left out.
func GetChords(s *smf.SMF) []Timed {
	var events []event
	for _, track := range s.Tracks {
		var absTicks int64
		for _, ev := range track {
			absTicks += int64(ev.Delta)
			absTime := s.TimeAt(absTicks)
			var channel, key, velocity uint8
			switch {
			case ev.Message.GetNoteOn(&channel, &key, &velocity):
				events = append(events, event{offset: absTime, note: key})
			case ev.Message.GetNoteOff(&channel, &key, &velocity):
				events = append(events, event{offset: absTime, isNoteOff: true, note: key})
			}
		}
	}

	// smaller offsets first, then note offs
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].offset != events[j].offset {
			return events[i].offset < events[j].offset
		}
		return events[i].isNoteOff && !events[j].isNoteOff
	})

	var res []Timed
	pressed := make(map[uint8]bool)
	for i, ev := range events {
		if ev.isNoteOff {
			delete(pressed, ev.note)
		} else {
			pressed[ev.note] = true
		}
		if i+1 < len(events) && events[i+1].offset == ev.offset {
			continue
		}
		if len(pressed) > 0 {
			res = append(res, Timed{Offset: ev.offset, Voicing: toVoicing(pressed)})
		}
	}
	return res
}
