package model

import (
	"fmt"
	"strings"
)

type Picking string

const (
	PickDown        Picking = "D"
	PickUp          Picking = "U"
	PickEconomy     Picking = "ECO"
	PickUnspecified Picking = "N"
)

func (p *Picking) UnmarshalText(b []byte) error {
	switch v := Picking(strings.ToUpper(string(b))); v {
	case PickDown, PickUp, PickEconomy, PickUnspecified:
		*p = v
	case "":
		*p = PickUnspecified
	default:
		return fmt.Errorf("unknown picking direction %q", b)
	}
	return nil
}

// Technique is free text in authored patterns; the named values are the ones
// the playback side understands.
type Technique string

const (
	TechNone   Technique = "none"
	TechSlide  Technique = "slide"
	TechHammer Technique = "hammer"
	TechPull   Technique = "pull"
)

type PatternStep struct {
	StringRel AnchorOffset `json:"stringRel" yaml:"string_rel"`
	FretRel   int          `json:"fretRel" yaml:"fret_rel"`
	Finger    int          `json:"finger" yaml:"finger"`
	Dur16     int          `json:"dur16" yaml:"dur16"`
	Picking   Picking      `json:"picking" yaml:"picking"`
	Tech      Technique    `json:"tech,omitempty" yaml:"tech,omitempty"`
}

// ShiftEvent moves the hand frame immediately before the step at AtStepIndex.
// DeltaStrings > 0 moves the anchor toward higher-pitched strings.
type ShiftEvent struct {
	AtStepIndex  int    `json:"atStepIndex" yaml:"at_step_index"`
	DeltaFrets   int    `json:"deltaFrets" yaml:"delta_frets"`
	DeltaStrings int    `json:"deltaStrings" yaml:"delta_strings"`
	Label        string `json:"label" yaml:"label"`
}

type PatternDefaults struct {
	TimeSig        []int    `json:"timeSig" yaml:"time_sig"`
	Subdivision    string   `json:"subdivision" yaml:"subdivision"`
	DefaultBPM     int      `json:"defaultBpm" yaml:"default_bpm"`
	FrameSpanFrets int      `json:"frameSpanFrets" yaml:"frame_span_frets"`
	AnchorString   StringID `json:"anchorString" yaml:"anchor_string"`
	FrameBaseFret  int      `json:"frameBaseFret" yaml:"frame_base_fret"`
	LoopBars       int      `json:"loopBars" yaml:"loop_bars"`
}

type PatternDefinition struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Category    string          `json:"category" yaml:"category"`
	Tags        []string        `json:"tags,omitempty" yaml:"tags"`
	Default     PatternDefaults `json:"default" yaml:"default"`
	Steps       []PatternStep   `json:"steps" yaml:"steps"`
	ShiftEvents []ShiftEvent    `json:"shiftEvents,omitempty" yaml:"shift_events,omitempty"`
}

type SequenceNote struct {
	String        StringID  `json:"string"`
	Fret          int       `json:"fret"`
	Finger        int       `json:"finger"`
	DurationBeats float64   `json:"durationBeats"`
	Label         string    `json:"label"`
	Pitch         int       `json:"pitch"`
	Picking       Picking   `json:"picking,omitempty"`
	Tech          Technique `json:"tech,omitempty"`
}

// HandFrame is the fret box the fretting hand covers. StartStep is the step
// index at which the frame takes effect.
type HandFrame struct {
	String    StringID `json:"string"`
	Fret      int      `json:"fret"`
	Span      int      `json:"span"`
	Label     string   `json:"label,omitempty"`
	StartStep int      `json:"startStep"`
}

type Instantiation struct {
	Sequence []SequenceNote `json:"sequence"`
	Frames   []HandFrame    `json:"frames"`
}
