package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/fretwork/pitch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Setenv("FRETWORK_LIBRARY_DIR", "")
	t.Setenv("FRETWORK_ADDR", "")
	t.Setenv("FRETWORK_LOG_LEVEL", "")
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fretwork.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
max_fret: 22
prefer_min_fret: 0
server:
  addr: ":9000"
  allowed_origins: ["http://localhost:5173"]
library:
  dir: /srv/library
  watch: true
logging:
  level: debug
tuning:
  - {id: 1, name: D, open_pitch: 62}
  - {id: 2, name: A, open_pitch: 57}
  - {id: 3, name: F, open_pitch: 53}
  - {id: 4, name: C, open_pitch: 48}
  - {id: 5, name: G, open_pitch: 43}
  - {id: 6, name: C, open_pitch: 36}
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(22, cfg.MaxFret)
	assert.Equal(0, cfg.PreferMinFret)
	assert.Equal(":9000", cfg.Server.Addr)
	assert.Equal([]string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.Equal("/srv/library", cfg.Library.Dir)
	assert.True(cfg.Library.Watch)
	assert.Equal("debug", cfg.Logging.Level)

	tuning, err := cfg.BuildTuning()
	require.NoError(t, err)
	p, _ := tuning.PitchOf(6, 0)
	assert.Equal(36, p)

	opts := cfg.OverlayOptions()
	assert.Equal(22, opts.MaxFret)
	assert.Equal(0, opts.PreferMinFret)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FRETWORK_LIBRARY_DIR", "/env/library")
	t.Setenv("FRETWORK_ADDR", ":7000")
	t.Setenv("FRETWORK_LOG_LEVEL", "warn")

	path := writeConfig(t, "server:\n  addr: \":9000\"\n")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("/env/library", cfg.Library.Dir)
	assert.Equal(":7000", cfg.Server.Addr)
	assert.Equal("warn", cfg.Logging.Level)
}

func TestLoadInvalid(t *testing.T) {
	clearEnv(t)
	cases := []struct {
		name string
		body string
	}{
		{"bad yaml", "max_fret: ["},
		{"max fret too high", "max_fret: 30"},
		{"negative preference", "prefer_min_fret: -1"},
		{"short tuning", "tuning:\n  - {id: 1, name: E, open_pitch: 64}\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, c.body))
			assert.Error(t, err)
		})
	}
}

func TestInvalidTuningIsWrapped(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeConfig(t, "tuning:\n  - {id: 9, name: E, open_pitch: 64}\n"))
	assert.ErrorIs(t, err, pitch.ErrInvalidTuning)
}

func TestDefaultTuningIsStandard(t *testing.T) {
	tuning, err := Default().BuildTuning()
	require.NoError(t, err)
	assert.Equal(t, pitch.Standard, tuning)
}
