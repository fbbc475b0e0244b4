package model

// StringID is an absolute string number: 1 is the highest-pitched string,
// 6 the lowest.
type StringID int

// AnchorOffset counts strings away from a pattern's anchor string toward
// higher pitch. An offset of 1 from anchor 6 is string 5.
type AnchorOffset int

// Resolve applies the offset to an anchor and returns the absolute string.
// The result is not clamped.
func (o AnchorOffset) Resolve(anchor StringID) StringID {
	return anchor - StringID(o)
}

type OpenString struct {
	ID        StringID `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	OpenPitch int      `json:"openPitch" yaml:"open_pitch"`
}

type Position struct {
	String StringID `json:"string"`
	Fret   int      `json:"fret"`
}
