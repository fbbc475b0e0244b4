package library

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jsphweid/fretwork/model"
	"github.com/jsphweid/fretwork/pattern"
	"github.com/jsphweid/fretwork/pitch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestDefault(t *testing.T) {
	l, err := Default()
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Len(l.Scales, 6)
	assert.Len(l.Drills, 9)
	assert.Len(l.Patterns, 11)

	major, err := l.Scale("major")
	require.NoError(t, err)
	assert.Equal([]int{0, 2, 4, 5, 7, 9, 11}, major.Offsets)
	assert.Len(major.Labels, len(major.Offsets))

	p, err := l.Pattern("p004_spider_1324")
	require.NoError(t, err)
	assert.Equal(model.AnchorOffset(1), p.Steps[1].StringRel)
	assert.Equal(model.PickUp, p.Steps[1].Picking)
	assert.Equal(model.StringID(6), p.Default.AnchorString)

	crawler, err := l.Pattern("shift_chromatic_crawler")
	require.NoError(t, err)
	assert.Len(crawler.ShiftEvents, 2)
	assert.Equal("Shift +1", crawler.ShiftEvents[0].Label)
}

func TestDefaultScalesAndDrillsArePaired(t *testing.T) {
	l, err := Default()
	require.NoError(t, err)
	for _, s := range l.Scales {
		assert.Len(t, s.Labels, len(s.Offsets), s.ID)
	}
	for _, d := range l.Drills {
		assert.Len(t, d.Formula, len(d.Intervals), d.ID)
	}
}

func TestDefaultPatternsInstantiate(t *testing.T) {
	l, err := Default()
	require.NoError(t, err)
	for _, p := range l.Patterns {
		t.Run(p.ID, func(t *testing.T) {
			res := pattern.Instantiate(pitch.Standard, p, pattern.DefaultConfig(p))
			assert.Len(t, res.Sequence, len(p.Steps))
			assert.Len(t, res.Frames, 1+len(p.ShiftEvents))
			for _, n := range res.Sequence {
				assert.Positive(t, n.DurationBeats)
			}
		})
	}
}

func TestLookupMisses(t *testing.T) {
	l, err := Default()
	require.NoError(t, err)

	_, err = l.Pattern("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = l.Drill("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = l.Scale("nope")
	assert.ErrorIs(t, err, ErrNotFound)

	p, ok := l.FindPattern("nope")
	assert.False(t, ok)
	assert.Equal(t, l.Patterns[0].ID, p.ID)

	d, ok := l.FindDrill("guide_tones")
	assert.True(t, ok)
	assert.Equal(t, []int{4, 11}, d.Intervals)

	s, ok := l.FindScale("")
	assert.False(t, ok)
	assert.Equal(t, "major", s.ID)
}

func TestFindOnEmptyLibrary(t *testing.T) {
	l := newLibrary()
	p, ok := l.FindPattern("x")
	assert.False(t, ok)
	assert.Empty(t, p.ID)
}

func TestLoadMergesDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", `
scales:
  - id: major
    name: Ionian
    offsets: [0, 2, 4, 5, 7, 9, 11]
    labels: ["1", "2", "3", "4", "5", "6", "7"]
  - id: lydian
    name: Lydian
    offsets: [0, 2, 4, 6, 7, 9, 11]
    labels: ["1", "2", "3", "#4", "5", "6", "7"]
`)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "more"), 0o755))
	writeFile(t, filepath.Join(dir, "more"), "p.yml", `
patterns:
  - id: two_step
    name: Two step
    default: {frame_span_frets: 4, anchor_string: 5, frame_base_fret: 7}
    steps:
      - {string_rel: 0, fret_rel: 0, finger: 1, dur16: 2, picking: d}
      - {string_rel: 1, fret_rel: 2, finger: 3, dur16: 2}
`)
	writeFile(t, dir, "notes.txt", "not yaml: [")

	l, err := Load(dir)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Len(l.Scales, 7)
	major, _ := l.Scale("major")
	assert.Equal("Ionian", major.Name)
	assert.Equal("major", l.Scales[0].ID)
	assert.Equal("lydian", l.Scales[6].ID)

	p, err := l.Pattern("two_step")
	require.NoError(t, err)
	assert.Equal(model.PickDown, p.Steps[0].Picking)
	assert.Equal(model.PickUnspecified, p.Steps[1].Picking)
	assert.Len(l.Summaries(), 12)
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"bad yaml", "scales: [", "bad.yaml"},
		{"unknown field", "scales:\n  - id: x\n    colour: red\n", "colour"},
		{"missing id", "drills:\n  - name: Nameless\n", "no id"},
		{"bad picking", "patterns:\n  - id: p\n    steps:\n      - {picking: sideways}\n", "sideways"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "bad.yaml", c.body)
			_, err := Load(dir)
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), c.want), err.Error())
		})
	}
}

func TestLoadMissingDir(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "gone"))
	assert.Error(t, err)
}

func TestLoadEmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.yaml", "")
	l, err := Load(dir)
	require.NoError(t, err)
	assert.Len(t, l.Patterns, 11)
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	reloaded := make(chan *Library, 8)
	w, err := NewWatcher(dir, WithDebounce(10*time.Millisecond), OnReload(func(l *Library) {
		reloaded <- l
	}))
	require.NoError(t, err)
	_, err = w.Current().Scale("lydian")
	require.ErrorIs(t, err, ErrNotFound)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- w.Run(ctx) }()

	// give the watch a moment to register before writing
	time.Sleep(50 * time.Millisecond)
	writeFile(t, dir, "extra.yaml", `
scales:
  - id: lydian
    name: Lydian
    offsets: [0, 2, 4, 6, 7, 9, 11]
    labels: ["1", "2", "3", "#4", "5", "6", "7"]
`)

	require.Eventually(t, func() bool {
		_, err := w.Current().Scale("lydian")
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
	assert.NotEmpty(t, reloaded)

	// a broken edit keeps the last good catalog
	writeFile(t, dir, "extra.yaml", "scales: [")
	time.Sleep(100 * time.Millisecond)
	_, err = w.Current().Scale("lydian")
	assert.NoError(t, err)

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "gone"))
	assert.Error(t, err)
}
