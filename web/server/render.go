package server

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sixarne/raytracer/pkg/renderer"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene  string  // Scene ID (see /api/scenes)
	Width  int     // Image width
	Height int     // Image height
	Format string  // png or bmp
	Time   float64 // Animation time in seconds
}

func (s *Server) handleRender(c echo.Context) error {
	req, err := s.parseRenderRequest(c.QueryParams())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request: "+err.Error())
	}

	sceneObj, err := s.createScene(req.Scene, req.Time)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	fb := renderer.NewFramebuffer(req.Width, req.Height)
	stats, err := s.renderer.Render(sceneObj, fb)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "Render error: "+err.Error())
	}
	s.console.Printf("Rendered %s: %s\n", req.Scene, stats)

	var buf bytes.Buffer
	contentType := "image/png"
	if req.Format == "bmp" {
		contentType = "image/bmp"
		err = fb.EncodeBMP(&buf)
	} else {
		err = fb.EncodePNG(&buf)
	}
	if err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}

	header := c.Response().Header()
	header.Set("X-Render-Duration-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	header.Set("X-Render-Hit-Pixels", strconv.Itoa(stats.HitPixels))
	header.Set("X-Render-Workers", strconv.Itoa(stats.Workers))
	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}

// parseRenderRequest parses request parameters, falling back to the configured defaults
func (s *Server) parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = s.config.Render.Scene
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", s.config.Render.Width, 1, s.config.Server.MaxWidth); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", s.config.Render.Height, 1, s.config.Server.MaxHeight); err != nil {
		return nil, err
	}
	if req.Time, err = parseFloatParam(values, "time", 0, 0, 3600); err != nil {
		return nil, err
	}

	switch format := values.Get("format"); format {
	case "", "png":
		req.Format = "png"
	case "bmp":
		req.Format = "bmp"
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
