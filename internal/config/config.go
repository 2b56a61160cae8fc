package config

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/jaminalder/codex-minesweeper/internal/app"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Board   BoardConfig   `yaml:"board"`
	Log     LogConfig     `yaml:"log"`
	Desktop DesktopConfig `yaml:"desktop"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Mines  int `yaml:"mines"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type DesktopConfig struct {
	TileSize int `yaml:"tileSize"` // pixels per tile edge
	Scale    int `yaml:"scale"`    // window scale factor
}

// Default returns the reference field from app.DefaultSettings.
func Default() Config {
	s := app.DefaultSettings()
	return Config{
		Server:  ServerConfig{Addr: "127.0.0.1:8080"},
		Board:   BoardConfig{Width: s.Width, Height: s.Height, Mines: s.Mines},
		Log:     LogConfig{Level: "info"},
		Desktop: DesktopConfig{TileSize: 16, Scale: 2},
	}
}

// Load reads a YAML config file. An empty path yields Default(); fields
// missing from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Settings converts the board section into service settings.
func (c Config) Settings() app.Settings {
	s := app.DefaultSettings()
	s.Width, s.Height, s.Mines = c.Board.Width, c.Board.Height, c.Board.Mines
	return s
}

// Validate checks that the board is playable and the log level is known.
// The desktop block is checked by the desktop frontend only.
func (c Config) Validate() error {
	if err := c.Settings().Validate(); err != nil {
		return fmt.Errorf("board: %w", err)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

// Validate checks the window geometry.
func (d DesktopConfig) Validate() error {
	if d.TileSize <= 0 || d.Scale <= 0 {
		return fmt.Errorf("desktop: tile size and scale must be positive, got %d and %d", d.TileSize, d.Scale)
	}
	return nil
}

// NewLogger builds a JSON logger at the configured level.
func (l LogConfig) NewLogger(w io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(l.Level)
	if err != nil {
		return nil, fmt.Errorf("log: %w", err)
	}
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(level)
	return logger, nil
}
