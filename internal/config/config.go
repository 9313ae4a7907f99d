package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/san-kum/gravscroll/internal/gravity"
	"github.com/san-kum/gravscroll/internal/session"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS            = 60
	DefaultContentHeight  = 6000.0
	DefaultViewportHeight = 800.0
	DefaultDataDir        = ".gravscroll"
	DefaultDBFile         = "params.db"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Params         gravity.Params `yaml:"params"`
	StartMode      string         `yaml:"start_mode"`
	FPS            int            `yaml:"fps"`
	ContentHeight  float64        `yaml:"content_height"`
	ViewportHeight float64        `yaml:"viewport_height"`
	DataDir        string         `yaml:"data_dir"`
	DBPath         string         `yaml:"db_path"`
}

func DefaultConfig() *Config {
	return &Config{
		Params:         gravity.DefaultParams(),
		StartMode:      "top",
		FPS:            DefaultFPS,
		ContentHeight:  DefaultContentHeight,
		ViewportHeight: DefaultViewportHeight,
		DataDir:        DefaultDataDir,
	}
}

// Load reads a yaml file over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the host settings. Physics parameters are deliberately
// not range checked.
func (c *Config) Validate() error {
	if _, err := session.ParseStartMode(c.StartMode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.FPS)
	}
	if c.ViewportHeight <= 0 {
		return fmt.Errorf("%w: viewport_height must be positive, got %f", ErrInvalidConfig, c.ViewportHeight)
	}
	if c.ContentHeight < 0 {
		return fmt.Errorf("%w: content_height must not be negative, got %f", ErrInvalidConfig, c.ContentHeight)
	}
	return nil
}

func (c *Config) Mode() session.StartMode {
	m, _ := session.ParseStartMode(c.StartMode)
	return m
}

// ParamsDB is the sqlite path, defaulting to a file inside DataDir.
func (c *Config) ParamsDB() string {
	if c.DBPath != "" {
		return c.DBPath
	}
	return filepath.Join(c.DataDir, DefaultDBFile)
}
