package config

import (
	"fmt"
	"os"

	"github.com/jsphweid/fretwork/constants"
	"github.com/jsphweid/fretwork/model"
	"github.com/jsphweid/fretwork/overlay"
	"github.com/jsphweid/fretwork/pitch"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Tuning lists the six open strings. Empty means standard tuning.
	Tuning        []model.OpenString `yaml:"tuning,omitempty"`
	MaxFret       int                `yaml:"max_fret"`
	PreferMinFret int                `yaml:"prefer_min_fret"`
	Server        ServerConfig       `yaml:"server"`
	Library       LibraryConfig      `yaml:"library"`
	Logging       LoggingConfig      `yaml:"logging"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type LibraryConfig struct {
	Dir   string `yaml:"dir"`
	Watch bool   `yaml:"watch"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

func Default() *Config {
	return &Config{
		MaxFret:       constants.MaxFret,
		PreferMinFret: constants.PreferMinFret,
		Server: ServerConfig{
			Addr:           constants.DefaultAddr,
			AllowedOrigins: []string{"*"},
		},
		Logging: LoggingConfig{Level: constants.DefaultLogLevel},
	}
}

// Load reads path over the defaults and applies environment overrides. A
// missing file, or an empty path, yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if dir := constants.GetLibraryDir(); dir != "" {
		c.Library.Dir = dir
	}
	if addr := constants.GetAddr(); addr != "" {
		c.Server.Addr = addr
	}
	if level := constants.GetLogLevel(); level != "" {
		c.Logging.Level = level
	}
}

func (c *Config) Validate() error {
	if c.MaxFret < 0 || c.MaxFret > constants.MaxFret {
		return fmt.Errorf("max_fret %d outside [0, %d]", c.MaxFret, constants.MaxFret)
	}
	if c.PreferMinFret < 0 {
		return fmt.Errorf("prefer_min_fret %d is negative", c.PreferMinFret)
	}
	if _, err := c.BuildTuning(); err != nil {
		return err
	}
	return nil
}

func (c *Config) BuildTuning() (pitch.Tuning, error) {
	if len(c.Tuning) == 0 {
		return pitch.Standard, nil
	}
	return pitch.NewTuning(c.Tuning)
}

func (c *Config) OverlayOptions() overlay.Options {
	return overlay.Options{MaxFret: c.MaxFret, PreferMinFret: c.PreferMinFret}
}
