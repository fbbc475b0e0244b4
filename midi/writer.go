package midi

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/jsphweid/fretwork/model"
	"github.com/jsphweid/fretwork/util"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
	"go.uber.org/zap"
)

var ErrEmptySequence = errors.New("sequence has no notes")

const (
	DefaultBPM        = 100
	DefaultVelocity   = 100
	DefaultResolution = 960
)

// Writer turns instantiated sequences into standard MIDI files. Each Writer
// carries its own settings; there is no shared output state.
type Writer struct {
	channel    uint8
	velocity   uint8
	bpm        float64
	resolution smf.MetricTicks
	logger     *zap.Logger
}

type Option func(*Writer)

// WithChannel sets the zero-based MIDI channel. Values above 15 are clamped.
func WithChannel(ch uint8) Option {
	return func(w *Writer) {
		w.channel = util.Min(ch, 15)
	}
}

func WithVelocity(v uint8) Option {
	return func(w *Writer) {
		w.velocity = util.Clamp(v, 1, 127)
	}
}

// WithBPM sets the tempo written at the start of the track. Non-positive
// values are ignored.
func WithBPM(bpm float64) Option {
	return func(w *Writer) {
		if bpm > 0 {
			w.bpm = bpm
		}
	}
}

// WithResolution sets ticks per quarter note.
func WithResolution(ticks uint16) Option {
	return func(w *Writer) {
		if ticks > 0 {
			w.resolution = smf.MetricTicks(ticks)
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(w *Writer) {
		w.logger = l
	}
}

func NewWriter(opts ...Option) *Writer {
	w := &Writer{
		velocity:   DefaultVelocity,
		bpm:        DefaultBPM,
		resolution: smf.MetricTicks(DefaultResolution),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Writer) ticks(beats float64) uint32 {
	if beats <= 0 {
		return 0
	}
	return uint32(math.Round(beats * float64(w.resolution.Ticks4th())))
}

// Track renders seq as one monophonic track: every note starts when the
// previous one ends and lasts DurationBeats quarter notes.
func (w *Writer) Track(seq []model.SequenceNote) (smf.Track, error) {
	var tr smf.Track
	if len(seq) == 0 {
		return tr, ErrEmptySequence
	}
	tr.Add(0, smf.MetaTempo(w.bpm))
	for _, n := range seq {
		key := uint8(util.Clamp(n.Pitch, 0, 127))
		tr.Add(0, gomidi.NoteOn(w.channel, key, w.velocity))
		tr.Add(w.ticks(n.DurationBeats), gomidi.NoteOff(w.channel, key))
	}
	tr.Close(0)
	return tr, nil
}

// Write encodes seq as a single-track SMF to out.
func (w *Writer) Write(out io.Writer, seq []model.SequenceNote) error {
	tr, err := w.Track(seq)
	if err != nil {
		return err
	}
	s := smf.New()
	s.TimeFormat = w.resolution
	if err := s.Add(tr); err != nil {
		return fmt.Errorf("adding track: %w", err)
	}
	n, err := s.WriteTo(out)
	if err != nil {
		return fmt.Errorf("writing smf: %w", err)
	}
	w.logger.Debug("wrote smf",
		zap.Int("notes", len(seq)),
		zap.Float64("bpm", w.bpm),
		zap.Int64("bytes", n))
	return nil
}
