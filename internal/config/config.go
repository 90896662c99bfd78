// Package config loads LocalSketch settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"LocalSketch/internal/export"
	"LocalSketch/internal/input"
	"LocalSketch/internal/state"
)

// DefaultFile is the config file looked up when none is given.
const DefaultFile = "localsketch.toml"

type Config struct {
	Canvas Canvas `toml:"canvas"`
	Pen    Pen    `toml:"pen"`
	Zoom   Zoom   `toml:"zoom"`
	Export Export `toml:"export"`
	Log    Log    `toml:"log"`
}

// Canvas sizes the initial window and drawing surface, in device units.
type Canvas struct {
	Width      int     `toml:"width"`
	Height     int     `toml:"height"`
	PixelRatio float64 `toml:"pixel_ratio,omitempty"`
	// Background is a hex colour painted behind strokes; empty or
	// "transparent" leaves the surface transparent.
	Background string `toml:"background,omitempty"`
}

type Pen struct {
	Tool    string   `toml:"tool"`
	Color   string   `toml:"color"`
	Width   float64  `toml:"width"`
	Palette []string `toml:"palette"`
}

type Zoom struct {
	Min  float64 `toml:"min"`
	Max  float64 `toml:"max"`
	Step float64 `toml:"step"`
}

type Export struct {
	Format string `toml:"format"`
	// Background fills exported images. "transparent" or an empty value
	// keeps transparency, which JPEG can't store.
	Background  string `toml:"background"`
	Filename    string `toml:"filename"`
	JPEGQuality int    `toml:"jpeg_quality"`
}

type Log struct {
	Level string `toml:"level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Canvas: Canvas{Width: 1024, Height: 700, PixelRatio: 1},
		Pen: Pen{
			Tool:    string(state.KindFreehand),
			Color:   "#000000",
			Width:   3,
			Palette: []string{"#000000", "#ff0000", "#00ff00", "#0000ff", "#ffff00"},
		},
		Zoom:   Zoom{Min: 0.5, Max: 5, Step: 1.2},
		Export: Export{Format: string(export.PNG), Background: "#ffffff", Filename: "drawing", JPEGQuality: 90},
		Log:    Log{Level: "info"},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r over the defaults and validates the result.
// Unknown keys are rejected.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("decode config: %s", strict.String())
		}
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Write encodes cfg as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate checks every setting and reports all problems at once.
func (c Config) Validate() error {
	var errs []error
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas: size %dx%d must be positive", c.Canvas.Width, c.Canvas.Height))
	}
	if c.Canvas.PixelRatio < 0 {
		errs = append(errs, fmt.Errorf("canvas: pixel_ratio %g is negative", c.Canvas.PixelRatio))
	}
	if _, err := optionalColor(c.Canvas.Background); err != nil {
		errs = append(errs, fmt.Errorf("canvas: background: %w", err))
	}
	if _, err := state.ParseKind(c.Pen.Tool); err != nil {
		errs = append(errs, fmt.Errorf("pen: %w", err))
	}
	if _, err := state.ParseColor(c.Pen.Color); err != nil {
		errs = append(errs, fmt.Errorf("pen: color: %w", err))
	}
	for _, p := range c.Pen.Palette {
		if _, err := state.ParseColor(p); err != nil {
			errs = append(errs, fmt.Errorf("pen: palette: %w", err))
		}
	}
	if c.Pen.Width <= 0 {
		errs = append(errs, fmt.Errorf("pen: width %g must be positive", c.Pen.Width))
	}
	if c.Zoom.Min <= 0 || c.Zoom.Max < c.Zoom.Min {
		errs = append(errs, fmt.Errorf("zoom: range [%g, %g] is invalid", c.Zoom.Min, c.Zoom.Max))
	}
	if c.Zoom.Step <= 1 {
		errs = append(errs, fmt.Errorf("zoom: step %g must be greater than 1", c.Zoom.Step))
	}
	if _, err := export.ParseFormat(c.Export.Format); err != nil {
		errs = append(errs, fmt.Errorf("export: %w", err))
	}
	if _, err := optionalColor(c.Export.Background); err != nil {
		errs = append(errs, fmt.Errorf("export: background: %w", err))
	}
	if strings.TrimSpace(c.Export.Filename) == "" {
		errs = append(errs, errors.New("export: filename is empty"))
	}
	if c.Export.JPEGQuality < 1 || c.Export.JPEGQuality > 100 {
		errs = append(errs, fmt.Errorf("export: jpeg_quality %d is outside 1..100", c.Export.JPEGQuality))
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}
	return errors.Join(errs...)
}

// InputSettings converts the pen and zoom sections for the gesture
// controller. c must have passed Validate.
func (c Config) InputSettings() input.Settings {
	col, _ := state.ParseColor(c.Pen.Color)
	tool, _ := state.ParseKind(c.Pen.Tool)
	return input.Settings{
		Tool:     tool,
		Color:    col,
		Width:    c.Pen.Width,
		MinZoom:  c.Zoom.Min,
		MaxZoom:  c.Zoom.Max,
		ZoomStep: c.Zoom.Step,
	}
}

// Palette returns the toolbar colours.
func (c Config) Palette() []color.Color {
	out := make([]color.Color, 0, len(c.Pen.Palette))
	for _, p := range c.Pen.Palette {
		if col, err := state.ParseColor(p); err == nil {
			out = append(out, col)
		}
	}
	return out
}

// CanvasBackground returns the visible surface background, or nil.
func (c Config) CanvasBackground() color.Color {
	col, _ := optionalColor(c.Canvas.Background)
	return col
}

// ExportBackground returns the export background, or nil when transparency
// was asked for.
func (c Config) ExportBackground() color.Color {
	col, _ := optionalColor(c.Export.Background)
	return col
}

// ExportFormat returns the default export format.
func (c Config) ExportFormat() export.Format {
	f, err := export.ParseFormat(c.Export.Format)
	if err != nil {
		return export.PNG
	}
	return f
}

// LogLevel returns the configured slog level, info if unset.
func (c Config) LogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Transparent is the background value that disables filling.
const Transparent = "transparent"

func optionalColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, Transparent) {
		return nil, nil
	}
	c, err := state.ParseColor(s)
	if err != nil {
		return nil, err
	}
	return c, nil
}
