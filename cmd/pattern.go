package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jsphweid/fretwork/marker"
	"github.com/jsphweid/fretwork/midi"
	"github.com/jsphweid/fretwork/model"
	"github.com/jsphweid/fretwork/pattern"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	patternID     string
	patternAnchor int
	patternFret   int
	patternRepeat int
	patternMidi   string
	patternBPM    float64
	patternAtStep int
)

func init() {
	rootCmd.AddCommand(patternCmd)
	patternCmd.Flags().StringVar(&patternID, "id", "", "pattern id (unknown ids use the first pattern)")
	patternCmd.Flags().IntVar(&patternAnchor, "anchor", 0, "anchor string 1-6 (0 keeps the pattern default)")
	patternCmd.Flags().IntVar(&patternFret, "fret", -1, "base fret (-1 keeps the pattern default)")
	patternCmd.Flags().IntVar(&patternRepeat, "repeat", 1, "times to play the steps in a row")
	patternCmd.Flags().StringVar(&patternMidi, "midi", "", "also write the sequence as a MIDI file; a directory gets a generated name")
	patternCmd.Flags().Float64Var(&patternBPM, "bpm", 0, "tempo for --midi (0 uses the pattern default)")
	patternCmd.Flags().IntVar(&patternAtStep, "at-step", -1, "print the hand frame and markers at this step instead of the sequence")
}

var patternCmd = &cobra.Command{
	Use:   "pattern",
	Short: "Instantiates a finger pattern at a neck position",
	RunE: func(cmd *cobra.Command, args []string) error {
		var base *int
		if patternFret >= 0 {
			base = &patternFret
		}
		p, res, err := instantiate(patternID, model.InstantiateRequestBody{
			AnchorString: model.StringID(patternAnchor),
			BaseFret:     base,
			Repeat:       patternRepeat,
		})
		if err != nil {
			return err
		}
		if patternMidi != "" {
			if err := writeMidiFile(patternMidi, p, res.Sequence, patternBPM); err != nil {
				return err
			}
		}
		if patternAtStep >= 0 {
			ph, err := playhead(res, patternAtStep)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), ph)
		}
		return printJSON(cmd.OutOrStdout(), res)
	},
}

func instantiate(id string, req model.InstantiateRequestBody) (model.PatternDefinition, model.Instantiation, error) {
	p, ok := state.library().FindPattern(id)
	if !ok {
		state.logger.Warn("unknown pattern, using first", zap.String("pattern", id), zap.String("using", p.ID))
	}
	cfg := pattern.DefaultConfig(p)
	cfg.MaxFret = state.cfg.MaxFret
	if req.AnchorString != 0 {
		if req.AnchorString < 1 || req.AnchorString > 6 {
			return p, model.Instantiation{}, fmt.Errorf("anchor string %d outside 1..6", req.AnchorString)
		}
		cfg.AnchorString = req.AnchorString
	}
	if req.BaseFret != nil {
		if *req.BaseFret < 0 || *req.BaseFret > state.cfg.MaxFret {
			return p, model.Instantiation{}, fmt.Errorf("base fret %d outside 0..%d", *req.BaseFret, state.cfg.MaxFret)
		}
		cfg.BaseFret = *req.BaseFret
	}
	if req.Repeat > 0 {
		cfg.Repeat = req.Repeat
	}
	return p, pattern.Instantiate(state.tuning, p, cfg), nil
}

// playhead looks at res as it plays the given step. The sequence loops, so
// the last step hints at the first.
func playhead(res model.Instantiation, step int) (model.Playhead, error) {
	if step < 0 || step >= len(res.Sequence) {
		return model.Playhead{}, fmt.Errorf("step %d outside 0..%d", step, len(res.Sequence)-1)
	}
	frame, _ := pattern.FrameAt(res.Frames, step)
	return model.Playhead{
		Step:       step,
		Frame:      frame,
		Markers:    marker.FromSequence(res.Sequence, step, true),
		TotalBeats: pattern.TotalBeats(res.Sequence),
	}, nil
}

func bpmFor(p model.PatternDefinition, bpm float64) float64 {
	if bpm > 0 {
		return bpm
	}
	if p.Default.DefaultBPM > 0 {
		return float64(p.Default.DefaultBPM)
	}
	return midi.DefaultBPM
}

func writeMidiFile(path string, p model.PatternDefinition, seq []model.SequenceNote, bpm float64) error {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, midi.ExportName())
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := midi.NewWriter(midi.WithBPM(bpmFor(p, bpm)), midi.WithLogger(state.logger))
	if err := w.Write(f, seq); err != nil {
		return err
	}
	state.logger.Info("wrote midi", zap.String("pattern", p.ID), zap.String("path", path))
	return f.Close()
}
