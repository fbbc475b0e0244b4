// Package pitch maps string/fret cells of a six-string neck to pitches.
//
// Pitches are MIDI note numbers. A Tuning is immutable once built and safe to
// share between goroutines.
package pitch

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/jsphweid/fretwork/constants"
	"github.com/jsphweid/fretwork/model"
	"github.com/jsphweid/fretwork/util"
)

var ErrInvalidTuning = errors.New("invalid tuning")

type Tuning struct {
	// indexed by string id - 1
	strings [constants.NumStrings]model.OpenString
}

// Standard is E4 B3 G3 D3 A2 E2.
var Standard = func() Tuning {
	var t Tuning
	for i := 0; i < constants.NumStrings; i++ {
		t.strings[i] = model.OpenString{
			ID:        model.StringID(i + 1),
			Name:      constants.StandardStringNames[i],
			OpenPitch: constants.StandardOpenPitches[i],
		}
	}
	return t
}()

// NewTuning builds a tuning from exactly six strings carrying the ids 1..6 in
// any order.
func NewTuning(strs []model.OpenString) (Tuning, error) {
	var t Tuning
	if len(strs) != constants.NumStrings {
		return t, fmt.Errorf("%w: want %d strings, got %d", ErrInvalidTuning, constants.NumStrings, len(strs))
	}
	var seen [constants.NumStrings]bool
	for _, s := range strs {
		if s.ID < 1 || s.ID > constants.NumStrings {
			return t, fmt.Errorf("%w: string id %d out of range", ErrInvalidTuning, s.ID)
		}
		if seen[s.ID-1] {
			return t, fmt.Errorf("%w: duplicate string id %d", ErrInvalidTuning, s.ID)
		}
		seen[s.ID-1] = true
		t.strings[s.ID-1] = s
	}
	return t, nil
}

// Strings returns the open strings ordered by id, highest-pitched first.
func (t Tuning) Strings() []model.OpenString {
	res := make([]model.OpenString, constants.NumStrings)
	copy(res, t.strings[:])
	return res
}

func (t Tuning) OpenPitch(id model.StringID) (int, bool) {
	if id < 1 || id > constants.NumStrings {
		return 0, false
	}
	return t.strings[id-1].OpenPitch, true
}

// PitchOf returns the pitch sounded at fret on string id. The bool is false
// when id is not a string of this tuning; frets are not range checked.
func (t Tuning) PitchOf(id model.StringID, fret int) (int, bool) {
	open, ok := t.OpenPitch(id)
	if !ok {
		return 0, false
	}
	return open + fret, true
}

// LowestString is the string with the lowest open pitch.
func (t Tuning) LowestString() model.StringID {
	lowest := t.strings[0]
	for _, s := range t.strings[1:] {
		if s.OpenPitch < lowest.OpenPitch {
			lowest = s
		}
	}
	return lowest.ID
}

// Positions lists every cell within [0, maxFret] that sounds p, ordered by
// fret then string id.
func (t Tuning) Positions(p int, maxFret int) []model.Position {
	res := []model.Position{}
	for _, s := range t.strings {
		f := p - s.OpenPitch
		if f >= 0 && f <= maxFret {
			res = append(res, model.Position{String: s.ID, Fret: f})
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Fret != res[j].Fret {
			return res[i].Fret < res[j].Fret
		}
		return res[i].String < res[j].String
	})
	return res
}

// ClassOf returns the pitch class of p in [0, 11], also for negative p.
func ClassOf(p int) int {
	return util.Mod(p, 12)
}

func NoteName(p int) string {
	return constants.NotesSharp[ClassOf(p)]
}

func NoteNameFlat(p int) string {
	return constants.NotesFlat[ClassOf(p)]
}

// NoteNameOctave renders p with its scientific octave, e.g. 60 -> "C4".
func NoteNameOctave(p int) string {
	return fmt.Sprintf("%s%d", NoteName(p), floorDiv(p, 12)-1)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

var rootPitches = map[string]int{
	"E": 40, "F": 41, "F#": 42, "Gb": 42, "G": 43, "G#": 44, "Ab": 44,
	"A": 45, "A#": 46, "Bb": 46, "B": 47,
	"C": 48, "C#": 49, "Db": 49, "D": 50, "D#": 51, "Eb": 51,
}

// RootPitch resolves a note name such as "A" or "Bb" to a pitch in the
// E2..D#3 range. Unknown names resolve to constants.DefaultRootPitch.
func RootPitch(name string) int {
	if p, ok := rootPitches[normalizeName(name)]; ok {
		return p
	}
	return constants.DefaultRootPitch
}

// ParseNote accepts a bare note name ("A"), a name with octave ("A4") or a
// pitch number ("57").
func ParseNote(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty note")
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	i := 1
	if len(s) > 1 && (s[1] == '#' || s[1] == 'b') {
		i = 2
	}
	name := normalizeName(s[:i])
	pc := -1
	for idx := range constants.NotesSharp {
		if constants.NotesSharp[idx] == name || constants.NotesFlat[idx] == name {
			pc = idx
			break
		}
	}
	if pc < 0 {
		return 0, fmt.Errorf("unknown note name %q", s)
	}
	if i == len(s) {
		return RootPitch(name), nil
	}
	octave, err := strconv.Atoi(s[i:])
	if err != nil {
		return 0, fmt.Errorf("bad octave in %q: %w", s, err)
	}
	return (octave+1)*12 + pc, nil
}

func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// Frequency is the equal-tempered frequency of p with A4 = 440Hz.
func Frequency(p int) float64 {
	return 440 * math.Pow(2, float64(p-69)/12)
}
