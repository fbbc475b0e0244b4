package cmd

import (
	"fmt"
	"strings"

	"github.com/jsphweid/fretwork/chord"
	"github.com/jsphweid/fretwork/model"
	"github.com/jsphweid/fretwork/overlay"
	"github.com/jsphweid/fretwork/pitch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	overlayRoot     string
	cagedForm       string
	overlayPosition int
	overlayScale    string
)

func init() {
	rootCmd.AddCommand(cagedCmd)
	cagedCmd.Flags().StringVar(&overlayRoot, "root", "C", "root note name")
	cagedCmd.Flags().StringVar(&cagedForm, "form", "E", "CAGED form (C, A, G, E or D)")

	rootCmd.AddCommand(scalePositionCmd)
	scalePositionCmd.Flags().StringVar(&overlayRoot, "root", "C", "root note name")
	scalePositionCmd.Flags().IntVar(&overlayPosition, "position", 1, "scale degree the box starts on")
	scalePositionCmd.Flags().StringVar(&overlayScale, "scale", "major", "scale id")
}

var cagedCmd = &cobra.Command{
	Use:   "caged",
	Short: "Places a CAGED chord form on a root",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printJSON(cmd.OutOrStdout(), cagedOverlay(overlayRoot, cagedForm))
	},
}

var scalePositionCmd = &cobra.Command{
	Use:   "scale-position",
	Short: "Marks one box of a scale",
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := scalePositionOverlay(overlayRoot, overlayScale, overlayPosition)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), res)
	},
}

func withVoicing(markers []model.Marker) model.OverlayResponse {
	return model.OverlayResponse{
		Markers: markers,
		Voicing: chord.Voicing(state.tuning, markers),
	}
}

func cagedOverlay(root, form string) model.OverlayResponse {
	form = strings.ToUpper(form)
	if _, ok := overlay.CAGEDForms[form]; !ok {
		state.logger.Debug("unknown CAGED form", zap.String("form", form))
	}
	markers := overlay.CAGED(state.tuning, pitch.RootPitch(root), form, state.cfg.OverlayOptions())
	return withVoicing(markers)
}

func scalePositionOverlay(root, scaleID string, position int) (model.OverlayResponse, error) {
	s, ok := state.library().FindScale(scaleID)
	if !ok {
		state.logger.Warn("unknown scale, using first", zap.String("scale", scaleID), zap.String("using", s.ID))
	}
	if position < 1 || position > len(s.Offsets) {
		return model.OverlayResponse{}, fmt.Errorf("position %d outside 1..%d for scale %s", position, len(s.Offsets), s.ID)
	}
	markers := overlay.ScalePosition(state.tuning, pitch.RootPitch(root), s.Offsets, position, state.cfg.OverlayOptions())
	return withVoicing(markers), nil
}
