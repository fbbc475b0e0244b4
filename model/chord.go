package model

type Notes = []int

// Voicing summarises the pitches sounded by a set of markers.
type Voicing struct {
	Pitches Notes  `json:"pitches"`
	Key     string `json:"key"`
}
