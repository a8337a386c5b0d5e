package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/sixarne/raytracer/pkg/config"
	"github.com/sixarne/raytracer/pkg/renderer"
	"github.com/sixarne/raytracer/pkg/scene"
)

// Server serves rendered frames and renderer controls over HTTP
type Server struct {
	echo     *echo.Echo
	config   *config.Config
	renderer *renderer.Renderer
	console  *ConsoleLog
	logger   *log.Logger

	mu     sync.RWMutex
	camera *CameraPose // nil keeps each scene's own camera
}

// NewServer creates a new web server
func NewServer(cfg *config.Config, logger *log.Logger) (*Server, error) {
	if logger == nil {
		logger = cfg.NewLogger("server")
	}

	settings, err := cfg.RenderSettings()
	if err != nil {
		return nil, fmt.Errorf("invalid render settings: %w", err)
	}

	console := NewConsoleLog(DefaultConsoleSize, logger)
	s := &Server{
		echo:     echo.New(),
		config:   cfg,
		renderer: renderer.NewRenderer(settings, console),
		console:  console,
		logger:   logger,
	}

	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.Logger = logger
	timeout := time.Duration(cfg.Server.RenderTimeout) * time.Second
	s.echo.Server.ReadTimeout = timeout
	s.echo.Server.WriteTimeout = timeout

	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORS())
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Debugf("%s %s %d %v", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	api := s.echo.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/scenes", s.handleScenes)
	api.GET("/settings", s.handleSettings)
	api.GET("/console", s.handleConsole)
	api.POST("/lighting-mode/cycle", s.handleCycleLightingMode)
	api.POST("/lighting-mode", s.handleSetLightingMode)
	api.POST("/shadows/toggle", s.handleToggleShadows)
	api.POST("/camera", s.handleCamera)
	api.GET("/render", s.handleRender)
	api.GET("/inspect", s.handleInspect)
}

// Handler exposes the router for embedding and tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start listens on the configured port until Shutdown is called
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Server.Port)
	s.logger.Infof("Starting web server on http://localhost%s", addr)
	return s.echo.Start(addr)
}

// Shutdown stops the server, waiting for in-flight renders
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// SettingsResponse describes the shared renderer state
type SettingsResponse struct {
	Settings renderer.Settings `json:"settings"`
	Camera   *CameraPose       `json:"camera,omitempty"`
	Limits   map[string]int    `json:"limits"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScenes(c echo.Context) error {
	return c.JSON(http.StatusOK, scene.List())
}

func (s *Server) handleSettings(c echo.Context) error {
	return c.JSON(http.StatusOK, s.settingsResponse())
}

func (s *Server) handleConsole(c echo.Context) error {
	return c.JSON(http.StatusOK, s.console.Messages())
}

func (s *Server) handleCycleLightingMode(c echo.Context) error {
	s.renderer.CycleLightingMode()
	return c.JSON(http.StatusOK, s.settingsResponse())
}

// LightingModeRequest selects a lighting mode by name
type LightingModeRequest struct {
	LightingMode renderer.LightingMode `json:"lightingMode"`
}

func (s *Server) handleSetLightingMode(c echo.Context) error {
	var req LightingModeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid lighting mode: "+err.Error())
	}
	s.renderer.SetLightingMode(req.LightingMode)
	return c.JSON(http.StatusOK, s.settingsResponse())
}

func (s *Server) handleToggleShadows(c echo.Context) error {
	enabled := s.renderer.ToggleShadows()
	s.logger.Infof("Shadows enabled: %t", enabled)
	return c.JSON(http.StatusOK, s.settingsResponse())
}

func (s *Server) settingsResponse() SettingsResponse {
	s.mu.RLock()
	var camera *CameraPose
	if s.camera != nil {
		pose := *s.camera
		camera = &pose
	}
	s.mu.RUnlock()

	return SettingsResponse{
		Settings: s.renderer.Settings(),
		Camera:   camera,
		Limits: map[string]int{
			"maxWidth":  s.config.Server.MaxWidth,
			"maxHeight": s.config.Server.MaxHeight,
		},
	}
}

// createScene builds a scene by ID and applies the shared camera pose
func (s *Server) createScene(id string, seconds float64) (*scene.Scene, error) {
	sceneObj, err := scene.Create(id, scene.Options{MeshPath: s.config.Render.MeshPath})
	if err != nil {
		return nil, err
	}
	if seconds > 0 {
		sceneObj.Update(seconds, seconds)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.camera != nil {
		s.camera.Apply(sceneObj.Camera)
	}
	return sceneObj, nil
}
