package interval

import (
	"github.com/jsphweid/fretwork/constants"
	"github.com/jsphweid/fretwork/pitch"
	"github.com/jsphweid/fretwork/util"
)

type Degree struct {
	Label string
	Color string
}

// Classification maps a pitch class to the degree it plays against a root.
type Classification map[int]Degree

func (c Classification) Lookup(p int) (Degree, bool) {
	d, ok := c[pitch.ClassOf(p)]
	return d, ok
}

// Classify pairs offsets with labels positionally and keys each pair by the
// pitch class it lands on above rootPC. If two offsets land on the same class
// the later pair wins. Extra offsets or labels beyond the shorter list are
// ignored.
func Classify(rootPC int, offsets []int, labels []string) Classification {
	res := make(Classification, len(offsets))
	n := util.Min(len(offsets), len(labels))
	for i := 0; i < n; i++ {
		pc := pitch.ClassOf(rootPC + offsets[i])
		res[pc] = Degree{Label: labels[i], Color: Color(labels[i])}
	}
	return res
}

// Color returns the display color for a degree label. It never fails:
// unknown labels get constants.DefaultIntervalColor.
func Color(label string) string {
	key := label
	if alias, ok := constants.IntervalColorAliases[label]; ok {
		key = alias
	}
	if c, ok := constants.IntervalColors[key]; ok {
		return c
	}
	return constants.DefaultIntervalColor
}

func IsRoot(label string) bool {
	return label == "1" || label == "R"
}

// RelativeLabel names the interval class of p above root, "R" through "7".
func RelativeLabel(root, p int) string {
	return constants.SemitoneLabels[pitch.ClassOf(p-root)]
}
