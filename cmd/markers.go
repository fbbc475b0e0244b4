package cmd

import (
	"errors"

	"github.com/jsphweid/fretwork/marker"
	"github.com/jsphweid/fretwork/model"
	"github.com/jsphweid/fretwork/pitch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	markersRoot    string
	markersDrill   string
	markersScale   string
	markersOffsets []int
	markersLabels  []string
	markersMaxFret int
)

func init() {
	rootCmd.AddCommand(markersCmd)
	markersCmd.Flags().StringVar(&markersRoot, "root", "E", "root note name")
	markersCmd.Flags().StringVar(&markersDrill, "drill", "", "drill id whose intervals to mark")
	markersCmd.Flags().StringVar(&markersScale, "scale", "", "scale id whose degrees to mark")
	markersCmd.Flags().IntSliceVar(&markersOffsets, "offsets", nil, "semitone offsets from the root")
	markersCmd.Flags().StringSliceVar(&markersLabels, "labels", nil, "labels paired with --offsets")
	markersCmd.Flags().IntVar(&markersMaxFret, "max-fret", 0, "highest fret to mark (0 means the configured maximum)")
}

var markersCmd = &cobra.Command{
	Use:   "markers",
	Short: "Lists the cells holding a root's intervals",
	Long: `Lists every string/fret cell whose pitch class belongs to an interval set
built on --root. The set comes from a drill, a scale, or explicit
--offsets and --labels.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		offsets, labels, err := intervalSet(markersDrill, markersScale, markersOffsets, markersLabels)
		if err != nil {
			return err
		}
		markers := marker.Generate(state.tuning, pitch.RootPitch(markersRoot), offsets, labels, maxFretOr(markersMaxFret))
		return printJSON(cmd.OutOrStdout(), markers)
	},
}

// intervalSet resolves the offsets and labels for a marker request. Unknown
// drill or scale ids fall back to the first catalog entry.
func intervalSet(drillID, scaleID string, offsets []int, labels []string) ([]int, []string, error) {
	lib := state.library()
	switch {
	case drillID != "":
		d, ok := lib.FindDrill(drillID)
		if !ok {
			state.logger.Warn("unknown drill, using first", zap.String("drill", drillID), zap.String("using", d.ID))
		}
		return d.Intervals, d.Formula, nil
	case scaleID != "":
		s, ok := lib.FindScale(scaleID)
		if !ok {
			state.logger.Warn("unknown scale, using first", zap.String("scale", scaleID), zap.String("using", s.ID))
		}
		return s.Offsets, s.Labels, nil
	case len(offsets) > 0:
		return offsets, labels, nil
	}
	return nil, nil, errors.New("one of --drill, --scale or --offsets is required")
}

func drillMarkers(root, drillID string, maxFret int) []model.Marker {
	d, ok := state.library().FindDrill(drillID)
	if !ok {
		state.logger.Warn("unknown drill, using first", zap.String("drill", drillID), zap.String("using", d.ID))
	}
	return marker.ForDrill(state.tuning, pitch.RootPitch(root), d, maxFretOr(maxFret))
}
