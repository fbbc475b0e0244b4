package midi

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF

	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			s = &blank
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return &blank, fmt.Errorf("reading midi file: %w", err)
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return &blank, fmt.Errorf("parsing midi file: %w", err)
	}
	return res, nil
}

// ExportName returns a fresh file name for an exported sequence.
func ExportName() string {
	return uuid.New().String() + ".mid"
}

func isNote(msg smf.Message) bool {
	return msg.Is(gomidi.NoteOnMsg) || msg.Is(gomidi.NoteOffMsg)
}

// Excerpt copies mf starting at ticksOffset and keeps at most maxNoteEvents
// note on/off events per track. Other events before the offset are kept at
// the start of the excerpt so tempo and meter survive. maxNoteEvents of 0
// means no limit.
func Excerpt(mf *smf.SMF, ticksOffset uint64, maxNoteEvents int) *smf.SMF {
	var res smf.SMF
	res.TimeFormat = mf.TimeFormat

	for _, track := range mf.Tracks {
		var newTrack smf.Track
		var absTicks, lastTicks uint64 = 0, ticksOffset
		var numNoteOnOff int
	TrackEventLoop:
		for _, evt := range track {
			absTicks += uint64(evt.Delta)
			if isEndOfTrack(evt.Message) {
				break
			}
			if absTicks < ticksOffset {
				if !isNote(evt.Message) {
					newTrack = append(newTrack, smf.Event{Delta: 0, Message: evt.Message})
				}
				continue
			}
			evt.Delta = uint32(absTicks - lastTicks)
			lastTicks = absTicks
			newTrack = append(newTrack, evt)
			if isNote(evt.Message) {
				numNoteOnOff++
				if maxNoteEvents > 0 && numNoteOnOff >= maxNoteEvents {
					break TrackEventLoop
				}
			}
		}
		newTrack.Close(0)
		res.Tracks = append(res.Tracks, newTrack)
	}
	return &res
}

// FF 2F 00
func isEndOfTrack(msg smf.Message) bool {
	return len(msg) >= 2 && msg[0] == 0xFF && msg[1] == 0x2F
}
