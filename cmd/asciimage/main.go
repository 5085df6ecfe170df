package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/gif"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/codegangsta/cli"
	"github.com/kevin-cantwell/asciimage"
	"github.com/kevin-cantwell/asciimage/internal/config"
	. "github.com/kevin-cantwell/asciimage/internal/logx"
)

var (
	errNoInput        = errors.New("missing image path or url (use - for standard input)")
	errOverwriteInput = errors.New("refusing to overwrite the input image")
)

func main() {
	err := newApp(os.Stdout, os.Stderr).Run(os.Args)
	if _, reported := err.(cli.ExitCoder); err != nil && !reported {
		exit(diagnose(err), 1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()
	app.Version = "0.1.0"
	app.Name = "asciimage"
	app.Usage = "A command-line tool for turning images into text art."
	app.UsageText = "asciimage [options] [file|url|-]"
	app.Author = "Kevin Cantwell"
	app.Email = "kevin.cantwell@gmail.com"
	app.Writer = stdout
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "mode,m",
			Usage: "`MODE` is one of terminal, text or image.",
			Value: config.ModeTerminal,
		},
		cli.StringFlag{
			Name:  "out,o",
			Usage: "`FILE` to write in text or image mode. Defaults to the input name with a .txt or .png extension.",
		},
		cli.StringFlag{
			Name:  "config,c",
			Usage: "`FILE` with settings, in TOML or YAML. Flags given on the command line win.",
		},
		cli.IntFlag{
			Name:  "divisor,d",
			Usage: "`DIVISOR` = 7 turns every 7 source columns into one character.",
			Value: asciimage.DefaultDivisor,
		},
		cli.StringFlag{
			Name:  "fit,f",
			Usage: "`FIT` = 80,25 scales down the image to fit 80 columns and 25 lines. Overrides the divisor.",
		},
		cli.StringFlag{
			Name:  "filter",
			Usage: "`FILTER` used to shrink the image: box, lanczos or lanczos3.",
			Value: asciimage.Box.String(),
		},
		cli.StringFlag{
			Name:  "palette",
			Usage: "`GLYPHS` from lightest to densest.",
			Value: asciimage.DefaultPalette.String(),
		},
		cli.Float64Flag{
			Name:  "point-size",
			Usage: "`SIZE` of the glyphs drawn in image mode.",
			Value: asciimage.DefaultPointSize,
		},
		cli.Float64Flag{
			Name:  "gamma,g",
			Usage: "`GAMMA` = 1.0 gives the original image. GAMMA less than 1.0 darkens the image and GAMMA greater than 1.0 lightens it.",
			Value: 1.0,
		},
		cli.Float64Flag{
			Name:  "brightness,b",
			Usage: "`BRIGHTNESS` = 0 gives the original image. BRIGHTNESS = -100 gives solid black image. BRIGHTNESS = 100 gives solid white image.",
			Value: 0.0,
		},
		cli.Float64Flag{
			Name:  "contrast",
			Usage: "`CONTRAST` = 0 gives the original image. CONTRAST = -100 gives solid grey image. CONTRAST = 100 gives maximum contrast.",
			Value: 0.0,
		},
		cli.Float64Flag{
			Name:  "sharpen,s",
			Usage: "`SHARPEN` = 0 gives the original image. SHARPEN greater than 0 sharpens the image.",
			Value: 0.0,
		},
		cli.BoolFlag{
			Name:  "invert,i",
			Usage: "Inverts the image. --invert=false undoes a config file setting.",
		},
		cli.Float64Flag{
			Name:  "sigmoid-midpoint",
			Usage: "`MIDPOINT` of contrast that must be between 0 and 1.",
			Value: 0.5,
		},
		cli.Float64Flag{
			Name:  "sigmoid-factor",
			Usage: "`FACTOR` = 0 gives the original image. FACTOR greater than 0 increases contrast. FACTOR less than 0 decreases contrast.",
			Value: 0.0,
		},
		cli.BoolFlag{
			Name:  "play,p",
			Usage: "Animates gifs in the terminal. CTRL-C to quit.",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "`LEVEL` of messages printed to stderr: debug, info, warn or error.",
			Value: "warn",
		},
		cli.BoolFlag{
			Name:  "no-color",
			Usage: "Never color log output. --no-color=false undoes a config file setting.",
		},
	}
	// cli reports ExitCoder errors itself and exits with their code.
	app.Action = func(c *cli.Context) error {
		if err := run(c, stdout, stderr); err != nil {
			return cli.NewExitError(diagnose(err), 1)
		}
		return nil
	}
	return app
}

// loadConfig layers the config file, if any, and then every flag set on
// the command line over the defaults.
func loadConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}

	strs := map[string]*string{
		"mode":      &cfg.Mode,
		"out":       &cfg.Output,
		"fit":       &cfg.Fit,
		"filter":    &cfg.Filter,
		"palette":   &cfg.Palette,
		"log-level": &cfg.LogLevel,
	}
	for name, dst := range strs {
		if c.IsSet(name) {
			*dst = c.String(name)
		}
	}
	floats := map[string]*float64{
		"point-size":       &cfg.PointSize,
		"gamma":            &cfg.Adjust.Gamma,
		"brightness":       &cfg.Adjust.Brightness,
		"contrast":         &cfg.Adjust.Contrast,
		"sharpen":          &cfg.Adjust.Sharpen,
		"sigmoid-midpoint": &cfg.Adjust.SigmoidMidpoint,
		"sigmoid-factor":   &cfg.Adjust.SigmoidFactor,
	}
	for name, dst := range floats {
		if c.IsSet(name) {
			*dst = c.Float64(name)
		}
	}
	if c.IsSet("divisor") {
		cfg.Divisor = c.Int("divisor")
	}
	if c.IsSet("invert") {
		cfg.Adjust.Invert = c.Bool("invert")
	}
	if c.IsSet("no-color") {
		cfg.NoColor = c.Bool("no-color")
	}
	return cfg, cfg.Validate()
}

func newLogger(cfg config.Config, stderr io.Writer) (*Logger, error) {
	lvl, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	f, ok := stderr.(*os.File)
	if !ok {
		return NewWriter(stderr, lvl), nil
	}
	color := ColorAuto
	if cfg.NoColor {
		color = ColorOff
	}
	return New(f, lvl, color), nil
}

func run(c *cli.Context, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, stderr)
	if err != nil {
		return err
	}
	log := logger.Section("asciimage")

	input := c.Args().First()
	if input == "" {
		return errNoInput
	}

	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	conv := asciimage.NewConverter(opts...)

	if c.Bool("play") {
		if cfg.Mode != config.ModeTerminal {
			log.LogPrintf(WARN, "--play only animates in terminal mode; ignoring mode %q", cfg.Mode)
		}
		return play(input, stdout, conv)
	}

	if cfg.Mode != config.ModeTerminal {
		if err := checkDistinct(input, outputPath(cfg, input)); err != nil {
			return err
		}
	}

	// The input is fully decoded before any output file is created.
	img, err := asciimage.Open(input)
	if err != nil {
		return err
	}
	log.LogPrintf(DEBUG, "decoded %s: %dx%d", input, img.Bounds().Dx(), img.Bounds().Dy())

	grid := conv.Convert(img)
	log.LogPrintf(DEBUG, "grid is %d columns by %d lines", grid.Width, grid.Height)

	renderer, err := newRenderer(cfg, input, stdout)
	if err != nil {
		return err
	}
	if err := renderer.Render(grid); err != nil {
		return err
	}
	if cfg.Mode != config.ModeTerminal {
		log.LogPrintf(INFO, "wrote %s", outputPath(cfg, input))
	}
	return nil
}

func outputPath(cfg config.Config, input string) string {
	if cfg.Output != "" {
		return cfg.Output
	}
	if cfg.Mode == config.ModeImage {
		return asciimage.OutputName(input, ".png", asciimage.DefaultImageName)
	}
	return asciimage.OutputName(input, ".txt", asciimage.DefaultTextName)
}

// checkDistinct fails if out names the same file as input.
func checkDistinct(input, out string) error {
	in, err := os.Stat(input)
	if err != nil {
		return nil
	}
	if o, err := os.Stat(out); err == nil && os.SameFile(in, o) {
		return &asciimage.ResourceError{Path: out, Err: errOverwriteInput}
	}
	return nil
}

func newRenderer(cfg config.Config, input string, stdout io.Writer) (asciimage.Renderer, error) {
	switch cfg.Mode {
	case config.ModeText:
		return asciimage.FileRenderer{Path: outputPath(cfg, input)}, nil
	case config.ModeImage:
		raster, err := asciimage.NewRasterizer(cfg.PointSize)
		if err != nil {
			return nil, err
		}
		return asciimage.ImageRenderer{Path: outputPath(cfg, input), Raster: raster}, nil
	default:
		return asciimage.TextRenderer{W: stdout}, nil
	}
}

func play(input string, stdout io.Writer, conv *asciimage.Converter) error {
	b, err := asciimage.ReadInput(input)
	if err != nil {
		return err
	}
	giff, err := gif.DecodeAll(bytes.NewReader(b))
	if err != nil {
		return &asciimage.InputError{Path: input, Err: err}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = asciimage.PlayGIF(ctx, stdout, giff, conv, nil)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func diagnose(err error) string {
	var in *asciimage.InputError
	var out *asciimage.ResourceError
	switch {
	case errors.As(err, &in):
		return fmt.Sprintf("asciimage: cannot read image: %v", err)
	case errors.As(err, &out):
		return fmt.Sprintf("asciimage: cannot write output: %v", err)
	}
	return fmt.Sprintf("asciimage: %v", err)
}

func exit(msg string, code int) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(code)
}
