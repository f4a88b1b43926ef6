package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/ha1tch/subwaymap/pkg/mapfile"
	"github.com/ha1tch/subwaymap/pkg/subway"
)

// Config holds persistent settings read from config.toml.
type Config struct {
	Output         string  `toml:"output"`
	DPI            int     `toml:"dpi"`
	Width          float64 `toml:"width"`  // figure inches
	Height         float64 `toml:"height"` // figure inches
	PageBackground string  `toml:"page_background"`
	PlotBackground string  `toml:"plot_background"`
	Show           bool    `toml:"show"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	opts := subway.DefaultOptions()
	return Config{
		Output:         defaultOutput,
		DPI:            mapfile.DefaultDPI,
		Width:          opts.Width,
		Height:         opts.Height,
		PageBackground: subway.Hex(opts.PageColor),
		PlotBackground: subway.Hex(opts.PlotColor),
	}
}

// ConfigPath returns the default config file location.
func ConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "subwaymap", "config.toml")
}

// LoadConfig reads path over the defaults. A missing file is only an error
// when the path was given explicitly.
func LoadConfig(path string, explicit bool) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Output == "" {
		return errors.New("output must not be empty")
	}
	if c.DPI <= 0 {
		return fmt.Errorf("dpi must be positive, got %d", c.DPI)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("figure size must be positive, got %gx%g", c.Width, c.Height)
	}
	if _, err := subway.ParseColor(c.PageBackground); err != nil {
		return fmt.Errorf("page_background: %w", err)
	}
	if _, err := subway.ParseColor(c.PlotBackground); err != nil {
		return fmt.Errorf("plot_background: %w", err)
	}
	return nil
}

// RendererOptions converts the config to map renderer options.
func (c Config) RendererOptions() (subway.Options, error) {
	page, err := subway.ParseColor(c.PageBackground)
	if err != nil {
		return subway.Options{}, err
	}
	plot, err := subway.ParseColor(c.PlotBackground)
	if err != nil {
		return subway.Options{}, err
	}
	return subway.Options{Width: c.Width, Height: c.Height, PageColor: page, PlotColor: plot}, nil
}
