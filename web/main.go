package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/sixarne/raytracer/pkg/config"
	"github.com/sixarne/raytracer/web/server"
)

func main() {
	configPath := flag.String("config", "raytracer.yaml", "YAML configuration file (defaults are used when missing)")
	port := flag.Int("port", 0, "Port to serve on (overrides config)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Warnf("%v", err)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := cfg.NewLogger("server")
	webServer, err := server.NewServer(cfg, logger)
	if err != nil {
		logger.Fatalf("Error creating server: %v", err)
	}

	logger.Infof("Direct lighting ray tracer preview server")
	logger.Infof("Visit http://localhost:%d/api/render to render the %s scene", cfg.Server.Port, cfg.Render.Scene)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := webServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("Error starting server: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := webServer.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during shutdown: %v", err)
	}
}
