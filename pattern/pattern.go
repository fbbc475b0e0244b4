// Package pattern instantiates relative finger-movement patterns at a
// concrete neck position.
package pattern

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/jsphweid/fretwork/constants"
	"github.com/jsphweid/fretwork/model"
	"github.com/jsphweid/fretwork/pitch"
	"github.com/jsphweid/fretwork/util"
)

type Config struct {
	AnchorString model.StringID
	BaseFret     int

	// MaxFret bounds the clamp applied to absolute frets. Zero or less means
	// constants.MaxFret.
	MaxFret int

	// Repeat plays the step list this many times in a row. Shift event
	// indexes address the repeated list, so shifts authored past the end of
	// a single pass fire on later passes. Values below 1 mean one pass.
	Repeat int
}

// DefaultConfig starts p at its authored anchor string and base fret.
func DefaultConfig(p model.PatternDefinition) Config {
	return Config{
		AnchorString: p.Default.AnchorString,
		BaseFret:     p.Default.FrameBaseFret,
		MaxFret:      constants.MaxFret,
		Repeat:       1,
	}
}

// Instantiate walks p's steps from the position in cfg and returns the
// absolute notes together with the hand frames they are played in.
//
// Before the step at a shift's AtStepIndex the base fret moves by DeltaFrets
// and the anchor string by DeltaStrings toward higher pitch, and a new frame
// begins. Shifts indexed past the last step are applied after the walk so
// every shift has a frame. Absolute strings are clamped to [1, 6] and frets
// to [0, MaxFret]; frames are not clamped.
func Instantiate(t pitch.Tuning, p model.PatternDefinition, cfg Config) model.Instantiation {
	maxFret := cfg.MaxFret
	if maxFret <= 0 {
		maxFret = constants.MaxFret
	}
	steps := Expand(p.Steps, cfg.Repeat)
	shifts := orderedShifts(p.ShiftEvents)
	span := p.Default.FrameSpanFrets

	anchor := cfg.AnchorString
	base := cfg.BaseFret
	res := model.Instantiation{
		Sequence: make([]model.SequenceNote, 0, len(steps)),
		Frames: []model.HandFrame{{
			String:    anchor,
			Fret:      base,
			Span:      span,
			Label:     fmt.Sprintf("Pos %d", base),
			StartStep: 0,
		}},
	}

	next := 0
	shift := func() {
		ev := shifts[next]
		next++
		base += ev.DeltaFrets
		anchor -= model.StringID(ev.DeltaStrings)
		res.Frames = append(res.Frames, model.HandFrame{
			String:    anchor,
			Fret:      base,
			Span:      span,
			Label:     ev.Label,
			StartStep: util.Max(ev.AtStepIndex, 0),
		})
	}

	for i, step := range steps {
		for next < len(shifts) && shifts[next].AtStepIndex <= i {
			shift()
		}

		s := util.Clamp(step.StringRel.Resolve(anchor), 1, constants.NumStrings)
		fret := util.Clamp(base+step.FretRel, 0, maxFret)
		sounding, _ := t.PitchOf(s, fret)

		res.Sequence = append(res.Sequence, model.SequenceNote{
			String:        s,
			Fret:          fret,
			Finger:        step.Finger,
			DurationBeats: float64(step.Dur16) * constants.BeatsPer16th,
			Label:         strconv.Itoa(step.FretRel),
			Pitch:         sounding,
			Picking:       step.Picking,
			Tech:          step.Tech,
		})
	}
	for next < len(shifts) {
		shift()
	}
	return res
}

// Expand returns steps repeated n times. n below 1 is treated as 1.
func Expand(steps []model.PatternStep, n int) []model.PatternStep {
	if n <= 1 {
		return steps
	}
	res := make([]model.PatternStep, 0, len(steps)*n)
	for i := 0; i < n; i++ {
		res = append(res, steps...)
	}
	return res
}

func orderedShifts(events []model.ShiftEvent) []model.ShiftEvent {
	res := make([]model.ShiftEvent, len(events))
	copy(res, events)
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].AtStepIndex < res[j].AtStepIndex
	})
	return res
}

// FrameIndexAt returns the index of the frame in effect at step: the last
// frame whose StartStep is not after step. It returns -1 for an empty list.
func FrameIndexAt(frames []model.HandFrame, step int) int {
	idx := -1
	for i, f := range frames {
		if f.StartStep > step {
			break
		}
		idx = i
	}
	if idx < 0 && len(frames) > 0 {
		return 0
	}
	return idx
}

func FrameAt(frames []model.HandFrame, step int) (model.HandFrame, bool) {
	idx := FrameIndexAt(frames, step)
	if idx < 0 {
		return model.HandFrame{}, false
	}
	return frames[idx], true
}

// TotalBeats sums the durations of seq.
func TotalBeats(seq []model.SequenceNote) float64 {
	var total float64
	for _, n := range seq {
		total += n.DurationBeats
	}
	return total
}
