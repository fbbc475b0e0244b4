package overlay

import "github.com/jsphweid/fretwork/model"

// CAGEDForms are the five open-chord forms. Tone strings are absolute string
// ids; fret offsets are relative to the root on AnchorString.
var CAGEDForms = map[string]model.ShapeDefinition{
	"C": {
		Name:         "C",
		AnchorString: 5,
		Tones: []model.ShapeTone{
			{String: 5, FretOffset: 0, Label: "1"},
			{String: 4, FretOffset: -1, Label: "3"},
			{String: 3, FretOffset: -3, Label: "5"},
			{String: 2, FretOffset: -2, Label: "1"},
			{String: 1, FretOffset: -3, Label: "3"},
			{String: 6, FretOffset: 0, Label: "5"},
			{String: 6, FretOffset: -3, Label: "3"},
		},
	},
	"A": {
		Name:         "A",
		AnchorString: 5,
		Tones: []model.ShapeTone{
			{String: 5, FretOffset: 0, Label: "1"},
			{String: 4, FretOffset: 2, Label: "5"},
			{String: 3, FretOffset: 2, Label: "1"},
			{String: 2, FretOffset: 2, Label: "3"},
			{String: 1, FretOffset: 0, Label: "5"},
			{String: 6, FretOffset: 0, Label: "5"},
		},
	},
	"G": {
		Name:         "G",
		AnchorString: 6,
		Tones: []model.ShapeTone{
			{String: 6, FretOffset: 0, Label: "1"},
			{String: 5, FretOffset: -1, Label: "3"},
			{String: 4, FretOffset: -3, Label: "5"},
			{String: 3, FretOffset: -3, Label: "1"},
			{String: 2, FretOffset: -3, Label: "3"},
			{String: 1, FretOffset: 0, Label: "1"},
		},
	},
	"E": {
		Name:         "E",
		AnchorString: 6,
		Tones: []model.ShapeTone{
			{String: 6, FretOffset: 0, Label: "1"},
			{String: 5, FretOffset: 2, Label: "5"},
			{String: 4, FretOffset: 2, Label: "1"},
			{String: 3, FretOffset: 1, Label: "3"},
			{String: 2, FretOffset: 0, Label: "5"},
			{String: 1, FretOffset: 0, Label: "1"},
		},
	},
	"D": {
		Name:         "D",
		AnchorString: 4,
		Tones: []model.ShapeTone{
			{String: 4, FretOffset: 0, Label: "1"},
			{String: 3, FretOffset: 2, Label: "5"},
			{String: 2, FretOffset: 3, Label: "1"},
			{String: 1, FretOffset: 2, Label: "3"},
			{String: 5, FretOffset: 0, Label: "5"},
		},
	},
}

// CAGEDOrder is the conventional order of the forms up the neck.
var CAGEDOrder = []string{"C", "A", "G", "E", "D"}
