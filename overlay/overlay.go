// Package overlay anchors fixed shape templates onto a root and emits hollow
// markers drawn over a primary fretboard view.
package overlay

import (
	"strconv"

	"github.com/jsphweid/fretwork/constants"
	"github.com/jsphweid/fretwork/interval"
	"github.com/jsphweid/fretwork/model"
	"github.com/jsphweid/fretwork/pitch"
)

type Options struct {
	MaxFret int

	// PreferMinFret is the lowest anchor fret accepted on the first pass of
	// the anchor search.
	PreferMinFret int
}

func DefaultOptions() Options {
	return Options{MaxFret: constants.MaxFret, PreferMinFret: constants.PreferMinFret}
}

// FindAnchorFret scans frets 0..opts.MaxFret on string id for the first fret
// whose pitch class is pc and is at least opts.PreferMinFret. Without such a
// fret it returns the first match at any fret. The bool is false when the
// string has no match in range.
func FindAnchorFret(t pitch.Tuning, id model.StringID, pc int, opts Options) (int, bool) {
	open, ok := t.OpenPitch(id)
	if !ok {
		return -1, false
	}
	pc = pitch.ClassOf(pc)
	first := -1
	for f := 0; f <= opts.MaxFret; f++ {
		if pitch.ClassOf(open+f) != pc {
			continue
		}
		if f >= opts.PreferMinFret {
			return f, true
		}
		if first < 0 {
			first = f
		}
	}
	return first, first >= 0
}

// Shape places def so that its anchor tone sounds rootPitch's pitch class on
// def.AnchorString. Tones landing outside [0, opts.MaxFret] are dropped.
func Shape(t pitch.Tuning, rootPitch int, def model.ShapeDefinition, opts Options) []model.Marker {
	markers := []model.Marker{}
	anchor, ok := FindAnchorFret(t, def.AnchorString, pitch.ClassOf(rootPitch), opts)
	if !ok {
		return markers
	}
	for _, tone := range def.Tones {
		fret := anchor + tone.FretOffset
		if fret < 0 || fret > opts.MaxFret {
			continue
		}
		if _, ok := t.OpenPitch(tone.String); !ok {
			continue
		}
		markers = append(markers, model.Marker{
			String:  tone.String,
			Fret:    fret,
			Label:   tone.Label,
			Color:   interval.Color(tone.Label),
			Shape:   shapeFor(tone.Label),
			Variant: model.Hollow,
			Opacity: constants.ShapeOverlayOpacity,
		})
	}
	return markers
}

// CAGED places one of the five CAGED forms. Unknown forms yield no markers.
func CAGED(t pitch.Tuning, rootPitch int, form string, opts Options) []model.Marker {
	def, ok := CAGEDForms[form]
	if !ok {
		return []model.Marker{}
	}
	return Shape(t, rootPitch, def, opts)
}

// ScalePosition marks the scale tones inside a fixed window of
// constants.ScalePositionWindow frets. The window starts where the position's
// starting degree (position 1 is the root) falls on the lowest string, found
// with the same search as FindAnchorFret. This approximates an N-notes-per-
// string box; it does not reproduce a per-string fingering.
func ScalePosition(t pitch.Tuning, rootPitch int, scaleOffsets []int, position int, opts Options) []model.Marker {
	markers := []model.Marker{}
	if position < 1 || position > len(scaleOffsets) {
		return markers
	}
	rootPC := pitch.ClassOf(rootPitch)
	target := pitch.ClassOf(rootPC + scaleOffsets[position-1])
	start, ok := FindAnchorFret(t, t.LowestString(), target, opts)
	if !ok {
		return markers
	}

	degrees := make(map[int]int, len(scaleOffsets))
	for i := len(scaleOffsets) - 1; i >= 0; i-- {
		degrees[pitch.ClassOf(rootPC+scaleOffsets[i])] = i + 1
	}

	end := start + constants.ScalePositionWindow - 1
	if end > opts.MaxFret {
		end = opts.MaxFret
	}
	for _, s := range t.Strings() {
		for f := start; f <= end; f++ {
			degree, ok := degrees[pitch.ClassOf(s.OpenPitch+f)]
			if !ok {
				continue
			}
			label := strconv.Itoa(degree)
			markers = append(markers, model.Marker{
				String:  s.ID,
				Fret:    f,
				Label:   label,
				Color:   interval.Color(label),
				Shape:   shapeFor(label),
				Variant: model.Hollow,
				Opacity: constants.ScalePositionOverlayOpacity,
			})
		}
	}
	return markers
}

func shapeFor(label string) model.Shape {
	if interval.IsRoot(label) {
		return model.Square
	}
	return model.Circle
}
