package config

// asciimage configuration

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v2"

	"github.com/kevin-cantwell/asciimage"
)

// Output modes.
const (
	ModeTerminal = "terminal"
	ModeText     = "text"
	ModeImage    = "image"
)

type Config struct {
	Mode      string  `toml:"mode" yaml:"mode"`
	Output    string  `toml:"output" yaml:"output"`
	Divisor   int     `toml:"divisor" yaml:"divisor"`
	Fit       string  `toml:"fit" yaml:"fit"`
	Filter    string  `toml:"filter" yaml:"filter"`
	Palette   string  `toml:"palette" yaml:"palette"`
	PointSize float64 `toml:"point_size" yaml:"point_size"`
	LogLevel  string  `toml:"log_level" yaml:"log_level"`
	NoColor   bool    `toml:"no_color" yaml:"no_color"`

	Adjust ConfigAdjust `toml:"adjust" yaml:"adjust"`
}

type ConfigAdjust struct {
	Gamma           float64 `toml:"gamma" yaml:"gamma"`
	Brightness      float64 `toml:"brightness" yaml:"brightness"`
	Contrast        float64 `toml:"contrast" yaml:"contrast"`
	Sharpen         float64 `toml:"sharpen" yaml:"sharpen"`
	SigmoidMidpoint float64 `toml:"sigmoid_midpoint" yaml:"sigmoid_midpoint"`
	SigmoidFactor   float64 `toml:"sigmoid_factor" yaml:"sigmoid_factor"`
	Invert          bool    `toml:"invert" yaml:"invert"`
}

// Default returns the configuration used when nothing else is given.
func Default() Config {
	return Config{
		Mode:      ModeTerminal,
		Divisor:   asciimage.DefaultDivisor,
		Filter:    asciimage.Box.String(),
		Palette:   asciimage.DefaultPalette.String(),
		PointSize: asciimage.DefaultPointSize,
		LogLevel:  "warn",
		Adjust: ConfigAdjust{
			Gamma:           1.0,
			SigmoidMidpoint: 0.5,
		},
	}
}

var errUnknownFormat = errors.New("config file must end in .toml, .yaml or .yml")

// Load reads a TOML or YAML file, chosen by extension, over the defaults.
// Keys missing from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
		if err := yaml.UnmarshalStrict(b, &cfg); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("config %s: %w", path, errUnknownFormat)
	}
	return cfg, nil
}

// Validate checks every field that can be wrong.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeTerminal, ModeText, ModeImage:
	default:
		return fmt.Errorf("mode must be %s, %s or %s, not %q", ModeTerminal, ModeText, ModeImage, c.Mode)
	}
	if c.Divisor <= 0 {
		return fmt.Errorf("divisor must be positive, not %d", c.Divisor)
	}
	if c.PointSize <= 0 {
		return fmt.Errorf("point size must be positive, not %g", c.PointSize)
	}
	if _, err := c.FitBox(); err != nil {
		return err
	}
	if _, err := asciimage.ParseFilter(c.Filter); err != nil {
		return err
	}
	if _, err := asciimage.ParsePalette(c.Palette); err != nil {
		return err
	}
	return nil
}

// FitBox parses Fit, "COLS,LINES". An empty Fit gives the zero box.
func (c Config) FitBox() (image.Point, error) {
	if c.Fit == "" {
		return image.Point{}, nil
	}
	parts := strings.Split(c.Fit, ",")
	if len(parts) != 2 {
		return image.Point{}, fmt.Errorf("fit %q must be comma separated COLS,LINES", c.Fit)
	}
	cols, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || cols < 0 {
		return image.Point{}, fmt.Errorf("fit %q: bad column count", c.Fit)
	}
	lines, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || lines < 0 {
		return image.Point{}, fmt.Errorf("fit %q: bad line count", c.Fit)
	}
	return image.Pt(cols, lines), nil
}

// Options translates a validated config into converter options.
func (c Config) Options() ([]asciimage.Option, error) {
	box, err := c.FitBox()
	if err != nil {
		return nil, err
	}
	filter, err := asciimage.ParseFilter(c.Filter)
	if err != nil {
		return nil, err
	}
	palette, err := asciimage.ParsePalette(c.Palette)
	if err != nil {
		return nil, err
	}
	opts := []asciimage.Option{
		asciimage.WithPalette(palette),
		asciimage.WithFilter(filter),
		asciimage.WithDivisor(c.Divisor),
		asciimage.WithAdjustments(asciimage.Adjustments{
			Gamma:           c.Adjust.Gamma,
			Brightness:      c.Adjust.Brightness,
			Contrast:        c.Adjust.Contrast,
			Sharpen:         c.Adjust.Sharpen,
			SigmoidMidpoint: c.Adjust.SigmoidMidpoint,
			SigmoidFactor:   c.Adjust.SigmoidFactor,
			Invert:          c.Adjust.Invert,
		}),
	}
	if box != (image.Point{}) {
		opts = append(opts, asciimage.WithFit(box.X, box.Y))
	}
	return opts, nil
}
