package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/fretwork/config"
	"github.com/jsphweid/fretwork/library"
	"github.com/jsphweid/fretwork/logger"
	"github.com/jsphweid/fretwork/marker"
	"github.com/jsphweid/fretwork/midi"
	"github.com/jsphweid/fretwork/model"
	"github.com/jsphweid/fretwork/pitch"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the engine over HTTP",
	Long: `Serves markers, overlays, pattern instantiations and MIDI exports as JSON
over HTTP. With library.watch set, edits to the library directory are picked
up without a restart.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

// LoadServeFiles prepares the handlers with the default configuration and
// the built-in library, for use without the root command.
func LoadServeFiles() error {
	lib, err := library.Default()
	if err != nil {
		return err
	}
	state = app{
		cfg:     config.Default(),
		logger:  logger.Nop(),
		tuning:  pitch.Standard,
		library: func() *library.Library { return lib },
	}
	return nil
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(requestLogger)
	router.HandleFunc("/markers", HandleMarkers).Methods(http.MethodPost)
	router.HandleFunc("/drills", HandleListDrills).Methods(http.MethodGet)
	router.HandleFunc("/drills/{id}/markers", HandleDrillMarkers).Methods(http.MethodGet)
	router.HandleFunc("/scales", HandleListScales).Methods(http.MethodGet)
	router.HandleFunc("/overlay/caged", HandleCAGED).Methods(http.MethodGet)
	router.HandleFunc("/overlay/scale-position", HandleScalePosition).Methods(http.MethodGet)
	router.HandleFunc("/patterns", HandleListPatterns).Methods(http.MethodGet)
	router.HandleFunc("/patterns/{id}/instantiate", HandleInstantiate).Methods(http.MethodPost)
	router.HandleFunc("/patterns/{id}/midi", HandlePatternMidi).Methods(http.MethodGet)
	router.HandleFunc("/patterns/{id}/playhead", HandlePlayhead).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: state.cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})
	return c.Handler(router)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set("X-Request-Id", id)
		start := time.Now()
		next.ServeHTTP(w, r)
		state.logger.Debug("request",
			zap.String("id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)))
	})
}

func serve(ctx context.Context) error {
	if state.cfg.Library.Watch && state.cfg.Library.Dir != "" {
		w, err := library.NewWatcher(state.cfg.Library.Dir, library.WithLogger(state.logger))
		if err != nil {
			return err
		}
		state.library = w.Current

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return w.Run(gctx) })
		g.Go(func() error { return listen(gctx) })
		return g.Wait()
	}
	return listen(ctx)
}

func listen(ctx context.Context) error {
	srv := &http.Server{
		Addr:              state.cfg.Server.Addr,
		Handler:           NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		state.logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		state.logger.Error("encoding response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

// queryInt reads an optional integer query parameter.
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, raw)
	}
	return v, nil
}

func queryMaxFret(r *http.Request) (int, error) {
	n, err := queryInt(r, "maxFret", 0)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > state.cfg.MaxFret {
		return 0, fmt.Errorf("maxFret %d outside 0..%d", n, state.cfg.MaxFret)
	}
	return maxFretOr(n), nil
}

func HandleMarkers(w http.ResponseWriter, r *http.Request) {
	var input model.MarkersRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("could not decode request body: %w", err))
		return
	}
	if input.MaxFret < 0 || input.MaxFret > state.cfg.MaxFret {
		writeError(w, http.StatusBadRequest, fmt.Errorf("maxFret %d outside 0..%d", input.MaxFret, state.cfg.MaxFret))
		return
	}
	markers := marker.Generate(state.tuning, pitch.RootPitch(input.Root), input.Offsets, input.Labels, maxFretOr(input.MaxFret))
	writeJSON(w, http.StatusOK, markers)
}

func HandleDrillMarkers(w http.ResponseWriter, r *http.Request) {
	maxFret, err := queryMaxFret(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	id := mux.Vars(r)["id"]
	writeJSON(w, http.StatusOK, drillMarkers(r.URL.Query().Get("root"), id, maxFret))
}

func HandleCAGED(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, cagedOverlay(q.Get("root"), q.Get("form")))
}

func HandleScalePosition(w http.ResponseWriter, r *http.Request) {
	position, err := queryInt(r, "position", 1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	q := r.URL.Query()
	scale := q.Get("scale")
	if scale == "" {
		scale = "major"
	}
	res, err := scalePositionOverlay(q.Get("root"), scale, position)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func HandleInstantiate(w http.ResponseWriter, r *http.Request) {
	var input model.InstantiateRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("could not decode request body: %w", err))
		return
	}
	_, res, err := instantiate(mux.Vars(r)["id"], input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// queryInstantiate reads anchorString, baseFret and repeat from the query.
func queryInstantiate(r *http.Request) (model.InstantiateRequestBody, error) {
	var input model.InstantiateRequestBody
	anchor, err := queryInt(r, "anchorString", 0)
	if err != nil {
		return input, err
	}
	input.AnchorString = model.StringID(anchor)
	if r.URL.Query().Has("baseFret") {
		base, err := queryInt(r, "baseFret", 0)
		if err != nil {
			return input, err
		}
		input.BaseFret = &base
	}
	input.Repeat, err = queryInt(r, "repeat", 1)
	return input, err
}

func HandlePatternMidi(w http.ResponseWriter, r *http.Request) {
	input, err := queryInstantiate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	bpm, err := queryInt(r, "bpm", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	p, res, err := instantiate(mux.Vars(r)["id"], input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var buf bytes.Buffer
	writer := midi.NewWriter(midi.WithBPM(bpmFor(p, float64(bpm))), midi.WithLogger(state.logger))
	if err := writer.Write(&buf, res.Sequence); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, midi.ErrEmptySequence) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}
	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", midi.ExportName()))
	if _, err := buf.WriteTo(w); err != nil {
		state.logger.Warn("sending midi", zap.String("pattern", p.ID), zap.Error(err))
	}
}

func HandlePlayhead(w http.ResponseWriter, r *http.Request) {
	input, err := queryInstantiate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	step, err := queryInt(r, "step", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	_, res, err := instantiate(mux.Vars(r)["id"], input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	ph, err := playhead(res, step)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, ph)
}

func HandleListPatterns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, state.library().Summaries())
}

func HandleListDrills(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, state.library().Drills)
}

func HandleListScales(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, state.library().Scales)
}
