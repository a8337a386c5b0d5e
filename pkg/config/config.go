package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/labstack/gommon/log"
	"github.com/sixarne/raytracer/pkg/core"
	"github.com/sixarne/raytracer/pkg/renderer"
	"gopkg.in/yaml.v2"
)

// Config represents the main configuration
type Config struct {
	Render RenderConfig `yaml:"render"`
	Output OutputConfig `yaml:"output"`
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
}

// RenderConfig contains frame and shading configuration
type RenderConfig struct {
	Scene          string     `yaml:"scene"`
	MeshPath       string     `yaml:"mesh_path"` // OBJ file used by the mesh scene
	Width          int        `yaml:"width"`
	Height         int        `yaml:"height"`
	NumWorkers     int        `yaml:"num_workers"` // 0 uses every logical CPU
	ShadowsEnabled bool       `yaml:"shadows_enabled"`
	ShadowFactor   float64    `yaml:"shadow_factor"`
	LightingMode   string     `yaml:"lighting_mode"` // observed-area, radiance, brdf, combined
	Background     [3]float64 `yaml:"background"`
}

// OutputConfig controls where rendered frames are written
type OutputConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // bmp, png
}

// ServerConfig contains preview server configuration
type ServerConfig struct {
	Port         int `yaml:"port"`
	MaxWidth     int `yaml:"max_width"`
	MaxHeight    int `yaml:"max_height"`
	RenderTimeout int `yaml:"render_timeout_seconds"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error, off
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			Scene:          "reference",
			Width:          640,
			Height:         480,
			NumWorkers:     0,
			ShadowsEnabled: true,
			ShadowFactor:   0,
			LightingMode:   renderer.Combined.String(),
			Background:     [3]float64{1, 1, 1},
		},
		Output: OutputConfig{
			Path:   renderer.DefaultScreenshotName,
			Format: "bmp",
		},
		Server: ServerConfig{
			Port:         8080,
			MaxWidth:     1920,
			MaxHeight:    1080,
			RenderTimeout: 30,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads the configuration from a file. The defaults are returned
// alongside any error so callers may continue with them.
func LoadConfig(filePath string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return config, fmt.Errorf("config file not found, using defaults: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), fmt.Errorf("error parsing config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("invalid config %s: %w", filePath, err)
	}

	return config, nil
}

// SaveConfig saves the configuration to a file
func SaveConfig(config *Config, filePath string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("error serializing config: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	r := c.Render
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("render size must be positive, got %dx%d", r.Width, r.Height)
	}
	if r.NumWorkers < 0 {
		return fmt.Errorf("num_workers must not be negative, got %d", r.NumWorkers)
	}
	if r.ShadowFactor < 0 || r.ShadowFactor > 1 {
		return fmt.Errorf("shadow_factor must be in [0, 1], got %g", r.ShadowFactor)
	}
	if _, err := renderer.ParseLightingMode(r.LightingMode); err != nil {
		return err
	}
	for _, channel := range r.Background {
		if channel < 0 {
			return fmt.Errorf("background channels must not be negative, got %v", r.Background)
		}
	}

	switch strings.ToLower(c.Output.Format) {
	case "bmp", "png":
	default:
		return fmt.Errorf("unsupported output format %q", c.Output.Format)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", c.Server.Port)
	}
	if c.Server.MaxWidth <= 0 || c.Server.MaxHeight <= 0 {
		return fmt.Errorf("server size limits must be positive")
	}

	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// RenderSettings converts the render section into renderer settings
func (c *Config) RenderSettings() (renderer.Settings, error) {
	mode, err := renderer.ParseLightingMode(c.Render.LightingMode)
	if err != nil {
		return renderer.Settings{}, err
	}

	bg := c.Render.Background
	return renderer.Settings{
		LightingMode:   mode,
		ShadowsEnabled: c.Render.ShadowsEnabled,
		ShadowFactor:   c.Render.ShadowFactor,
		Background:     core.NewVec3(bg[0], bg[1], bg[2]),
		NumWorkers:     c.Render.NumWorkers,
	}, nil
}

// ParseLogLevel maps a level name onto a gommon log level
func ParseLogLevel(level string) (log.Lvl, error) {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG, nil
	case "info", "":
		return log.INFO, nil
	case "warn", "warning":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	case "off":
		return log.OFF, nil
	}
	return log.INFO, fmt.Errorf("unknown log level %q", level)
}

// NewLogger creates the process logger at the configured level
func (c *Config) NewLogger(prefix string) *log.Logger {
	logger := log.New(prefix)
	level, _ := ParseLogLevel(c.Log.Level)
	logger.SetLevel(level)
	return logger
}
