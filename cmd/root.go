package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jsphweid/fretwork/config"
	"github.com/jsphweid/fretwork/library"
	"github.com/jsphweid/fretwork/logger"
	"github.com/jsphweid/fretwork/pitch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgPath  string
	logLevel string
)

// app is what every command works against once the root pre-run has
// loaded configuration.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	tuning  pitch.Tuning
	library func() *library.Library
}

var state = app{
	cfg:    config.Default(),
	logger: logger.Nop(),
	tuning: pitch.Standard,
}

var rootCmd = &cobra.Command{
	Use:   "fretwork",
	Short: "Fretboard theory and pattern engine",
	Long: `fretwork computes which string/fret cells to light up for a root and a set
of intervals, places CAGED and scale-position overlays, and turns relative
finger patterns into absolute note sequences with hand-position frames.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = state.logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "fretwork.yaml", "config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func setup() error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	l, err := logger.New(cfg.Logging.Level)
	if err != nil {
		return err
	}
	tuning, err := cfg.BuildTuning()
	if err != nil {
		return err
	}
	lib, err := library.Load(cfg.Library.Dir)
	if err != nil {
		return fmt.Errorf("loading library: %w", err)
	}

	state = app{
		cfg:     cfg,
		logger:  l,
		tuning:  tuning,
		library: func() *library.Library { return lib },
	}
	l.Debug("configured",
		zap.String("config", cfgPath),
		zap.String("library", cfg.Library.Dir),
		zap.Int("patterns", len(lib.Patterns)),
		zap.Int("maxFret", cfg.MaxFret))
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// maxFretOr returns n when it is set and within the configured neck,
// otherwise the configured maximum.
func maxFretOr(n int) int {
	if n <= 0 || n > state.cfg.MaxFret {
		return state.cfg.MaxFret
	}
	return n
}
