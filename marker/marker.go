// Package marker turns interval sets and played sequences into fretboard
// markers.
package marker

import (
	"github.com/jsphweid/fretwork/interval"
	"github.com/jsphweid/fretwork/model"
	"github.com/jsphweid/fretwork/pitch"
)

// Generate scans every string from fret 0 to maxFret and marks each cell
// whose pitch class belongs to the interval set built on rootPitch. Output is
// ordered by string id, then fret.
func Generate(t pitch.Tuning, rootPitch int, offsets []int, labels []string, maxFret int) []model.Marker {
	classes := interval.Classify(pitch.ClassOf(rootPitch), offsets, labels)
	markers := []model.Marker{}
	for _, s := range t.Strings() {
		for fret := 0; fret <= maxFret; fret++ {
			d, ok := classes.Lookup(s.OpenPitch + fret)
			if !ok {
				continue
			}
			markers = append(markers, model.Marker{
				String:  s.ID,
				Fret:    fret,
				Label:   d.Label,
				Color:   d.Color,
				Shape:   shapeFor(d.Label),
				Variant: model.Filled,
				Opacity: model.Filled.Opacity(),
			})
		}
	}
	return markers
}

// ForDrill marks the drill's formula over the whole neck.
func ForDrill(t pitch.Tuning, rootPitch int, drill model.DrillDefinition, maxFret int) []model.Marker {
	return Generate(t, rootPitch, drill.Intervals, drill.Formula, maxFret)
}

// FromSequence marks a sequence being played back: the note at current
// pulses, the following note is a hollow hint and the rest are small context
// markers. Colors are relative to the first note of the sequence. With loop
// set, the note after the last one is the first.
func FromSequence(seq []model.SequenceNote, current int, loop bool) []model.Marker {
	markers := []model.Marker{}
	if len(seq) == 0 {
		return markers
	}
	if current < 0 || current >= len(seq) {
		current = 0
	}
	next := current + 1
	if next >= len(seq) {
		next = -1
		if loop && len(seq) > 1 {
			next = 0
		}
	}
	root := seq[0].Pitch
	color := func(n model.SequenceNote) string {
		return interval.Color(interval.RelativeLabel(root, n.Pitch))
	}

	cur := seq[current]
	markers = append(markers, model.Marker{
		String:  cur.String,
		Fret:    cur.Fret,
		Label:   interval.RelativeLabel(root, cur.Pitch),
		Color:   color(cur),
		Shape:   model.Circle,
		Variant: model.Filled,
		Opacity: model.Filled.Opacity(),
		Finger:  cur.Finger,
		IsPulse: true,
	})
	if next >= 0 {
		n := seq[next]
		markers = append(markers, model.Marker{
			String:  n.String,
			Fret:    n.Fret,
			Color:   color(n),
			Shape:   model.Circle,
			Variant: model.Hollow,
			Opacity: 1,
			Finger:  n.Finger,
		})
	}
	for i, n := range seq {
		if i == current || i == next {
			continue
		}
		markers = append(markers, model.Marker{
			String:  n.String,
			Fret:    n.Fret,
			Color:   color(n),
			Shape:   model.Circle,
			Variant: model.Small,
			Opacity: model.Small.Opacity(),
		})
	}
	return markers
}

func shapeFor(label string) model.Shape {
	if interval.IsRoot(label) {
		return model.Square
	}
	return model.Circle
}
