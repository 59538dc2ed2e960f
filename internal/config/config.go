// Package config loads strandview settings files. TOML and YAML are both
// accepted; the format is chosen by file extension.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/strand"
)

// Config holds strandview configuration.
type Config struct {
	Display DisplayConfig `toml:"display" yaml:"display"`
	Links   LinksConfig   `toml:"links" yaml:"links"`
	Zoom    ZoomConfig    `toml:"zoom" yaml:"zoom"`
	Window  WindowConfig  `toml:"window" yaml:"window"`
}

// DisplayConfig controls how nodes are drawn.
type DisplayConfig struct {
	NodeThickness  float64 `toml:"node_thickness" yaml:"node_thickness"`
	RandomColors   bool    `toml:"random_colors" yaml:"random_colors"`
	ShowNodeLabels bool    `toml:"show_node_labels" yaml:"show_node_labels"`
	ShowFPS        bool    `toml:"show_fps" yaml:"show_fps"`
	Background     string  `toml:"background" yaml:"background"` // "#rrggbb"
}

// LinksConfig controls link inference and anchoring.
type LinksConfig struct {
	Threshold  float64 `toml:"threshold" yaml:"threshold"`
	AnchorMode string  `toml:"anchor_mode" yaml:"anchor_mode"` // "closest", "centroid"
}

// ZoomConfig controls the viewport.
type ZoomConfig struct {
	Level    float64 `toml:"level" yaml:"level"`
	Min      float64 `toml:"min" yaml:"min"`
	Max      float64 `toml:"max" yaml:"max"`
	Duration float64 `toml:"duration" yaml:"duration"` // seconds
}

// WindowConfig controls the viewer window.
type WindowConfig struct {
	Title  string `toml:"title" yaml:"title"`
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
}

// Default returns the default configuration.
func Default() *Config {
	s := strand.DefaultSettings()
	return &Config{
		Display: DisplayConfig{
			NodeThickness: s.NodeThickness,
			Background:    strand.ColorBackground.Hex(),
		},
		Links: LinksConfig{
			Threshold:  s.LinkThreshold,
			AnchorMode: s.AnchorMode.String(),
		},
		Zoom: ZoomConfig{
			Level:    s.ZoomLevel,
			Min:      s.MinScale,
			Max:      s.MaxScale,
			Duration: float64(s.ZoomDuration),
		},
		Window: WindowConfig{Title: "strandview", Width: 1024, Height: 768},
	}
}

// Load reads a settings file over the defaults. Keys absent from the file
// keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("config %s: unsupported format %q", path, ext)
	}
	if _, err := cfg.Settings(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as TOML or YAML, by extension.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		b, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		data = b
	default:
		var sb strings.Builder
		if err := toml.NewEncoder(&sb).Encode(cfg); err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		data = []byte(sb.String())
	}
	return os.WriteFile(path, data, 0o644)
}

// Settings converts the file values into diagram settings.
func (c *Config) Settings() (strand.Settings, error) {
	mode, err := strand.ParseAnchorMode(c.Links.AnchorMode)
	if err != nil {
		return strand.Settings{}, err
	}
	return strand.Settings{
		ZoomLevel:      c.Zoom.Level,
		NodeThickness:  c.Display.NodeThickness,
		RandomColors:   c.Display.RandomColors,
		ShowNodeLabels: c.Display.ShowNodeLabels,
		ShowFPS:        c.Display.ShowFPS,
		LinkThreshold:  c.Links.Threshold,
		AnchorMode:     mode,
		MinScale:       c.Zoom.Min,
		MaxScale:       c.Zoom.Max,
		ZoomDuration:   float32(c.Zoom.Duration),
	}, nil
}

// BackgroundColor parses Display.Background, falling back to the stock
// background when unset.
func (c *Config) BackgroundColor() (strand.Color, error) {
	if strings.TrimSpace(c.Display.Background) == "" {
		return strand.ColorBackground, nil
	}
	return strand.ParseHexColor(c.Display.Background)
}
