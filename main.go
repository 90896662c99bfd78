package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"

	"LocalSketch/internal/board"
	"LocalSketch/internal/config"
	"LocalSketch/internal/export"
	"LocalSketch/internal/state"
	"LocalSketch/internal/ui"
)

const usage = `usage:
  localsketch [-config file]                       open the drawing window
  localsketch export [-config file] -in drawing.json -out drawing.png [-format png|jpeg|pdf] [-bg #ffffff]
  localsketch config [-config file]                print the effective configuration
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "localsketch:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cmd := ""
	if len(args) > 0 && (args[0] == "export" || args[0] == "config") {
		cmd, args = args[0], args[1:]
	}

	fs := flag.NewFlagSet("localsketch", flag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(fs.Output(), usage) }
	cfgPath := fs.String("config", config.DefaultFile, "configuration file")
	in := fs.String("in", "", "drawing to export")
	out := fs.String("out", "", "output image")
	format := fs.String("format", "", "output format, taken from -out's extension by default")
	bg := fs.String("bg", "", "background colour, e.g. #ffffff")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	slog.SetDefault(log)
	gg.SetLogger(log.With("component", "gg"))

	switch cmd {
	case "export":
		return runExport(cfg, log, *in, *out, *format, *bg)
	case "config":
		return cfg.Write(os.Stdout)
	}
	log.Info("starting", "config", *cfgPath)
	return ui.RunApp(cfg, log)
}

// runExport replays a saved drawing without opening a window.
func runExport(cfg config.Config, log *slog.Logger, in, out, format, bg string) error {
	if in == "" || out == "" {
		return errors.New("export needs -in and -out")
	}
	if format == "" {
		format = filepath.Ext(out)
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	var background color.Color = cfg.ExportBackground()
	if bg != "" {
		c, err := state.ParseColor(bg)
		if err != nil {
			return fmt.Errorf("-bg: %w", err)
		}
		background = c
	}

	file, err := os.Open(in)
	if err != nil {
		return err
	}
	doc, err := state.ReadDocument(file)
	file.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	if doc.Width <= 0 || doc.Height <= 0 {
		doc.Width, doc.Height = cfg.Canvas.Width, cfg.Canvas.Height
	}

	data, err := board.Encode(doc, board.ExportOptions{
		Format:      f,
		Background:  background,
		PixelRatio:  cfg.Canvas.PixelRatio,
		JPEGQuality: cfg.Export.JPEGQuality,
		Log:         log,
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}
	log.Info("exported", "in", in, "out", out, "format", f, "strokes", len(doc.Strokes), "bytes", len(data))
	return nil
}
