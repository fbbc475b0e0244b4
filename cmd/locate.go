package cmd

import (
	"errors"

	"github.com/jsphweid/fretwork/chord"
	"github.com/jsphweid/fretwork/midi"
	"github.com/jsphweid/fretwork/model"
	"github.com/jsphweid/fretwork/pitch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	locateNote  string
	locatePitch int
	locateMidi  string
	locateFrom  uint64
	locateLimit int
)

func init() {
	rootCmd.AddCommand(locateCmd)
	locateCmd.Flags().StringVar(&locateNote, "note", "", "note name with optional octave, e.g. A4 or C#3")
	locateCmd.Flags().IntVar(&locatePitch, "pitch", -1, "MIDI pitch number")
	locateCmd.Flags().StringVar(&locateMidi, "midi", "", "MIDI file whose chords to locate")
	locateCmd.Flags().Uint64Var(&locateFrom, "from", 0, "with --midi, start at this tick")
	locateCmd.Flags().IntVar(&locateLimit, "limit", 0, "with --midi, stop after this many note events per track")
}

type location struct {
	Pitch     int              `json:"pitch"`
	Name      string           `json:"name"`
	Frequency float64          `json:"frequency"`
	Positions []model.Position `json:"positions"`
}

type timedLocations struct {
	Offset int64      `json:"offset"`
	Key    string     `json:"key"`
	Notes  []location `json:"notes"`
}

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Finds where a pitch can be played",
	RunE: func(cmd *cobra.Command, args []string) error {
		switch {
		case locateMidi != "":
			res, err := locateFile(locateMidi, locateFrom, locateLimit)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		case locateNote != "":
			p, err := pitch.ParseNote(locateNote)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), locate(p))
		case locatePitch >= 0:
			return printJSON(cmd.OutOrStdout(), locate(locatePitch))
		}
		return errors.New("one of --note, --pitch or --midi is required")
	},
}

func locate(p int) location {
	return location{
		Pitch:     p,
		Name:      pitch.NoteNameOctave(p),
		Frequency: pitch.Frequency(p),
		Positions: state.tuning.Positions(p, state.cfg.MaxFret),
	}
}

func locateFile(path string, from uint64, limit int) ([]timedLocations, error) {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return nil, err
	}
	if from > 0 || limit > 0 {
		s = midi.Excerpt(s, from, limit)
	}
	chords := chord.GetChords(s)
	state.logger.Debug("read midi", zap.String("path", path), zap.Int("chords", len(chords)))

	res := make([]timedLocations, 0, len(chords))
	for _, c := range chords {
		tl := timedLocations{Offset: c.Offset, Key: c.Key}
		for _, p := range c.Pitches {
			tl.Notes = append(tl.Notes, locate(p))
		}
		res = append(res, tl)
	}
	return res, nil
}
