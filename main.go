package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/gommon/log"
	"github.com/sixarne/raytracer/pkg/config"
	"github.com/sixarne/raytracer/pkg/renderer"
	"github.com/sixarne/raytracer/pkg/scene"
)

const defaultConfigPath = "raytracer.yaml"

// options are the parsed command line arguments
type options struct {
	configPath string
	list       bool
	time       float64
	set        map[string]bool // flags given explicitly on the command line

	scene        string
	meshPath     string
	width        int
	height       int
	workers      int
	mode         string
	shadows      bool
	shadowFactor float64
	output       string
	format       string
	logLevel     string
}

func parseOptions(args []string, stderr io.Writer) (*options, error) {
	opts := &options{set: map[string]bool{}}
	defaults := config.DefaultConfig()

	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", defaultConfigPath, "YAML configuration file (defaults are used when missing)")
	fs.BoolVar(&opts.list, "list", false, "List available scenes and exit")
	fs.Float64Var(&opts.time, "time", 0, "Animation time in seconds to render at")
	fs.StringVar(&opts.scene, "scene", defaults.Render.Scene, "Scene ID (see -list)")
	fs.StringVar(&opts.meshPath, "mesh", "", "OBJ file for the mesh scene")
	fs.IntVar(&opts.width, "width", defaults.Render.Width, "Image width in pixels")
	fs.IntVar(&opts.height, "height", defaults.Render.Height, "Image height in pixels")
	fs.IntVar(&opts.workers, "workers", defaults.Render.NumWorkers, "Worker count (0 = logical CPU count)")
	fs.StringVar(&opts.mode, "mode", defaults.Render.LightingMode, "Lighting mode: observed-area, radiance, brdf, combined")
	fs.BoolVar(&opts.shadows, "shadows", defaults.Render.ShadowsEnabled, "Cast shadow rays")
	fs.Float64Var(&opts.shadowFactor, "shadow-factor", defaults.Render.ShadowFactor, "Fraction of light kept in shadow")
	fs.StringVar(&opts.output, "output", defaults.Output.Path, "Output image path")
	fs.StringVar(&opts.format, "format", "", "Output format: bmp or png (default from extension)")
	fs.StringVar(&opts.logLevel, "log-level", defaults.Log.Level, "Log level: debug, info, warn, error, off")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})
	return opts, nil
}

// loadConfig reads the config file and applies explicitly set flags on top
func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil && (opts.set["config"] || !errors.Is(err, os.ErrNotExist)) {
		return nil, err
	}

	if opts.set["scene"] {
		cfg.Render.Scene = opts.scene
	}
	if opts.set["mesh"] {
		cfg.Render.MeshPath = opts.meshPath
	}
	if opts.set["width"] {
		cfg.Render.Width = opts.width
	}
	if opts.set["height"] {
		cfg.Render.Height = opts.height
	}
	if opts.set["workers"] {
		cfg.Render.NumWorkers = opts.workers
	}
	if opts.set["mode"] {
		cfg.Render.LightingMode = opts.mode
	}
	if opts.set["shadows"] {
		cfg.Render.ShadowsEnabled = opts.shadows
	}
	if opts.set["shadow-factor"] {
		cfg.Render.ShadowFactor = opts.shadowFactor
	}
	if opts.set["output"] {
		cfg.Output.Path = opts.output
		if ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(opts.output)), "."); ext == "png" || ext == "bmp" {
			cfg.Output.Format = ext
		}
	}
	if opts.set["format"] {
		cfg.Output.Format = opts.format
	}
	if opts.set["log-level"] {
		cfg.Log.Level = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func createScene(cfg *config.Config, seconds float64) (*scene.Scene, error) {
	s, err := scene.Create(cfg.Render.Scene, scene.Options{MeshPath: cfg.Render.MeshPath})
	if err != nil {
		return nil, err
	}
	if seconds > 0 {
		s.Update(seconds, seconds)
	}
	return s, nil
}

func printScenes(w io.Writer) {
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.List() {
		fmt.Fprintf(w, "  %-16s %s\n", info.ID, info.Description)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		return err
	}
	if opts.list {
		printScenes(stdout)
		return nil
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger := cfg.NewLogger("raytracer")
	logger.SetOutput(stderr)

	s, err := createScene(cfg, opts.time)
	if err != nil {
		return fmt.Errorf("failed to create scene: %w", err)
	}

	settings, err := cfg.RenderSettings()
	if err != nil {
		return err
	}

	logger.Infof("Rendering %q at %dx%d (%s, shadows %t)",
		s.Name, cfg.Render.Width, cfg.Render.Height, settings.LightingMode, settings.ShadowsEnabled)

	fb := renderer.NewFramebuffer(cfg.Render.Width, cfg.Render.Height)
	stats, err := renderer.NewRenderer(settings, logger).Render(s, fb)
	if err != nil {
		return err
	}
	logger.Infof("Render completed: %s, %d primitives", stats, s.GetPrimitiveCount())

	switch strings.ToLower(cfg.Output.Format) {
	case "png":
		err = fb.SavePNG(cfg.Output.Path)
	default:
		err = fb.SaveBMP(cfg.Output.Path)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Render saved as %s\n", cfg.Output.Path)
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Errorf("%v", err)
		os.Exit(1)
	}
}
