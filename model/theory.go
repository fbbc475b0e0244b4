package model

type ScaleDefinition struct {
	ID      string   `json:"id" yaml:"id"`
	Name    string   `json:"name" yaml:"name"`
	Offsets []int    `json:"offsets" yaml:"offsets"`
	Labels  []string `json:"labels" yaml:"labels"`
}

type DrillDefinition struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Category    string   `json:"category" yaml:"category"`
	Description string   `json:"description,omitempty" yaml:"description"`
	Formula     []string `json:"formula" yaml:"formula"`
	Intervals   []int    `json:"intervals" yaml:"intervals"`
	Tips        []string `json:"tips,omitempty" yaml:"tips"`
	Exercises   []string `json:"exercises,omitempty" yaml:"exercises"`
}

// ShapeTone is one note of a fixed chord form. String is absolute, unlike
// PatternStep.StringRel; FretOffset is relative to the form's anchor fret.
type ShapeTone struct {
	String     StringID `json:"string" yaml:"string"`
	FretOffset int      `json:"fretOffset" yaml:"fret_offset"`
	Label      string   `json:"label" yaml:"label"`
}

type ShapeDefinition struct {
	Name         string      `json:"name" yaml:"name"`
	AnchorString StringID    `json:"anchorString" yaml:"anchor_string"`
	Tones        []ShapeTone `json:"tones" yaml:"tones"`
}
