package model

import (
	"fmt"
	"strings"

	"github.com/jsphweid/fretwork/constants"
)

type Shape uint8

const (
	Circle Shape = iota
	Square
)

func (s Shape) String() string {
	if s == Square {
		return "square"
	}
	return "circle"
}

func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Shape) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "square":
		*s = Square
	case "circle", "":
		*s = Circle
	default:
		return fmt.Errorf("unknown marker shape %q", b)
	}
	return nil
}

// Variant is the visual weight of a marker: Filled for primary notes,
// Hollow for overlays and "next up" hints, Small for surrounding context.
type Variant uint8

const (
	Filled Variant = iota
	Hollow
	Small
)

var variantNames = [...]string{"filled", "hollow", "small"}

func (v Variant) String() string {
	if int(v) < len(variantNames) {
		return variantNames[v]
	}
	return "filled"
}

// Opacity is the default opacity for markers drawn in this variant.
func (v Variant) Opacity() float64 {
	switch v {
	case Hollow:
		return constants.ShapeOverlayOpacity
	case Small:
		return constants.ContextMarkerOpacity
	default:
		return 1
	}
}

func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Variant) UnmarshalText(b []byte) error {
	for i, name := range variantNames {
		if strings.EqualFold(name, string(b)) {
			*v = Variant(i)
			return nil
		}
	}
	if len(b) == 0 {
		*v = Filled
		return nil
	}
	return fmt.Errorf("unknown marker variant %q", b)
}

type Marker struct {
	String  StringID `json:"string"`
	Fret    int      `json:"fret"`
	Label   string   `json:"label,omitempty"`
	Color   string   `json:"color,omitempty"`
	Shape   Shape    `json:"shape"`
	Variant Variant  `json:"variant"`
	Opacity float64  `json:"opacity"`

	// 0 means no finger hint. 1=index .. 4=pinky.
	Finger  int  `json:"finger,omitempty"`
	IsPulse bool `json:"isPulse,omitempty"`
}
