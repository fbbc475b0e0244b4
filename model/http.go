package model

type MarkersRequestBody struct {
	Root    string   `json:"root"`
	Offsets []int    `json:"offsets"`
	Labels  []string `json:"labels"`
	MaxFret int      `json:"maxFret"`
}

type InstantiateRequestBody struct {
	AnchorString StringID `json:"anchorString"`
	BaseFret     *int     `json:"baseFret"`
	Repeat       int      `json:"repeat"`
}

type OverlayResponse struct {
	Markers []Marker `json:"markers"`
	Voicing
}

type PatternSummary struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Tags     []string `json:"tags,omitempty"`
	Steps    int      `json:"steps"`
	Shifts   int      `json:"shifts"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}

// Playhead is a pattern instantiation seen at one step: the hand frame in
// effect and the markers for the note being played.
type Playhead struct {
	Step       int       `json:"step"`
	Frame      HandFrame `json:"frame"`
	Markers    []Marker  `json:"markers"`
	TotalBeats float64   `json:"totalBeats"`
}
