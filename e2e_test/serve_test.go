//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/jsphweid/fretwork/cmd"
	"github.com/jsphweid/fretwork/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/smf"
)

var router http.Handler

func TestMain(m *testing.M) {
	if err := cmd.LoadServeFiles(); err != nil {
		panic(err)
	}
	router = cmd.NewRouter()

	exitVal := m.Run()

	os.Exit(exitVal)
}

func do(t *testing.T, method, target string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, r)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Result()
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestAMinorTriadMarkersE2E(t *testing.T) {
	resp := do(t, http.MethodPost, "/markers", model.MarkersRequestBody{
		Root:    "A",
		Offsets: []int{0, 3, 7},
		Labels:  []string{"1", "b3", "5"},
		MaxFret: 12,
	})

	assert := assert.New(t)
	assert.Equal(200, resp.StatusCode)
	assert.NotEmpty(resp.Header.Get("X-Request-Id"))

	var markers []model.Marker
	decode(t, resp, &markers)

	var low []model.Marker
	for _, m := range markers {
		if m.String == 6 {
			low = append(low, m)
		}
	}
	require.Len(t, low, 4)
	assert.Equal([]int{0, 5, 8, 12}, []int{low[0].Fret, low[1].Fret, low[2].Fret, low[3].Fret})
	assert.Equal(model.Square, low[1].Shape)
	assert.Equal(model.Filled, low[1].Variant)
}

func TestMarkersRejectsBadBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/markers", bytes.NewReader([]byte("{")))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := w.Result()
	assert.Equal(t, 400, resp.StatusCode)
	var e model.ErrorResponse
	decode(t, resp, &e)
	assert.NotEmpty(t, e.Error)

	resp = do(t, http.MethodPost, "/markers", model.MarkersRequestBody{Root: "A", MaxFret: 99})
	assert.Equal(t, 400, resp.StatusCode)
}

func TestDrillMarkersE2E(t *testing.T) {
	resp := do(t, http.MethodGet, "/drills/root_map/markers?root=A&maxFret=12", nil)
	assert.Equal(t, 200, resp.StatusCode)
	var markers []model.Marker
	decode(t, resp, &markers)
	assert.Len(t, markers, 7)

	resp = do(t, http.MethodGet, "/drills/root_map/markers?maxFret=twelve", nil)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestUnknownDrillFallsBackE2E(t *testing.T) {
	resp := do(t, http.MethodGet, "/drills/nope/markers?root=A&maxFret=12", nil)
	assert.Equal(t, 200, resp.StatusCode)
	var markers []model.Marker
	decode(t, resp, &markers)
	assert.Len(t, markers, 7)
}

func TestCAGEDE2E(t *testing.T) {
	resp := do(t, http.MethodGet, "/overlay/caged?root=A&form=e", nil)
	assert.Equal(t, 200, resp.StatusCode)

	var res model.OverlayResponse
	decode(t, resp, &res)

	assert := assert.New(t)
	assert.Len(res.Markers, 6)
	assert.Equal("45-52-57-61-64-69", res.Key)
	for _, m := range res.Markers {
		assert.Equal(model.Hollow, m.Variant)
		assert.InDelta(0.3, m.Opacity, 1e-9)
	}
}

func TestScalePositionE2E(t *testing.T) {
	resp := do(t, http.MethodGet, "/overlay/scale-position?root=C&position=1&scale=major", nil)
	assert.Equal(t, 200, resp.StatusCode)
	var res model.OverlayResponse
	decode(t, resp, &res)
	for _, m := range res.Markers {
		assert.GreaterOrEqual(t, m.Fret, 8)
		assert.LessOrEqual(t, m.Fret, 14)
	}

	resp = do(t, http.MethodGet, "/overlay/scale-position?root=C&position=9", nil)
	assert.Equal(t, 400, resp.StatusCode)
	resp = do(t, http.MethodGet, "/overlay/scale-position?root=C&position=x", nil)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestInstantiateE2E(t *testing.T) {
	base := 5
	resp := do(t, http.MethodPost, "/patterns/shift_chromatic_crawler/instantiate", model.InstantiateRequestBody{
		AnchorString: 6,
		BaseFret:     &base,
	})
	assert.Equal(t, 200, resp.StatusCode)

	var res model.Instantiation
	decode(t, resp, &res)

	assert := assert.New(t)
	assert.Len(res.Sequence, 12)
	require.Len(t, res.Frames, 3)
	assert.Equal("Pos 5", res.Frames[0].Label)
	assert.Equal(6, res.Frames[1].Fret)
	assert.Equal(4, res.Frames[1].StartStep)
	assert.Equal(45, res.Sequence[0].Pitch)
}

func TestInstantiateWithoutBodyUsesDefaultsE2E(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/patterns/p004_spider_1324/instantiate", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := w.Result()
	assert.Equal(t, 200, resp.StatusCode)
	var res model.Instantiation
	decode(t, resp, &res)
	require.Len(t, res.Sequence, 4)
	assert.Equal(t, model.StringID(5), res.Sequence[1].String)
	assert.Equal(t, 7, res.Sequence[1].Fret)
}

func TestInstantiateRejectsBadAnchorE2E(t *testing.T) {
	resp := do(t, http.MethodPost, "/patterns/p004_spider_1324/instantiate", model.InstantiateRequestBody{AnchorString: 7})
	assert.Equal(t, 400, resp.StatusCode)
}

func TestPatternMidiE2E(t *testing.T) {
	resp := do(t, http.MethodGet, "/patterns/p001_3nps_124_single_string/midi?bpm=120&repeat=2", nil)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "audio/midi", resp.Header.Get("Content-Type"))

	defer resp.Body.Close()
	s, err := smf.ReadFrom(resp.Body)
	require.NoError(t, err)

	var ons int
	for _, ev := range s.Tracks[0] {
		var ch, key, vel uint8
		if ev.Message.GetNoteOn(&ch, &key, &vel) {
			ons++
		}
	}
	assert.Equal(t, 8, ons)
}

func TestListsE2E(t *testing.T) {
	resp := do(t, http.MethodGet, "/patterns", nil)
	assert.Equal(t, 200, resp.StatusCode)
	var patterns []model.PatternSummary
	decode(t, resp, &patterns)
	assert.NotEmpty(t, patterns)

	resp = do(t, http.MethodGet, "/scales", nil)
	var scales []model.ScaleDefinition
	decode(t, resp, &scales)
	assert.Equal(t, "major", scales[0].ID)

	resp = do(t, http.MethodGet, "/drills", nil)
	var drills []model.DrillDefinition
	decode(t, resp, &drills)
	assert.NotEmpty(t, drills)
}

func TestPlayheadE2E(t *testing.T) {
	resp := do(t, http.MethodGet, "/patterns/shift_chromatic_crawler/playhead?step=11", nil)
	assert.Equal(t, 200, resp.StatusCode)

	var ph model.Playhead
	decode(t, resp, &ph)

	assert := assert.New(t)
	assert.Equal(3, ph.Frame.Fret)
	assert.Equal(8, ph.Frame.StartStep)
	require.Len(t, ph.Markers, 12)
	assert.Equal(7, ph.Markers[0].Fret)
	assert.Equal(1, ph.Markers[1].Fret)

	resp = do(t, http.MethodGet, "/patterns/shift_chromatic_crawler/playhead?step=12", nil)
	assert.Equal(400, resp.StatusCode)
}
