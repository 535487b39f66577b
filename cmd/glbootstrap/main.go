package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/fosdem/glbootstrap/lib/api"
	"github.com/fosdem/glbootstrap/lib/bootstrap"
	"github.com/fosdem/glbootstrap/lib/config"
	"github.com/fosdem/glbootstrap/lib/log"
	"github.com/fosdem/glbootstrap/lib/rendering"
	"github.com/fosdem/glbootstrap/lib/rendering/glapi/gogl"
	"github.com/fosdem/glbootstrap/lib/window"
)

func init() {
	// The OpenGL stuff must be in one thread
	runtime.LockOSThread()
}

func main() {
	cfgPath := flag.String("config", "", "YAML config file (optional)")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(log.NewHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Parse(*cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Config invalid: %s\n", err)
			os.Exit(-1)
		}
	}

	win, err := window.New(&cfg.Window, log.Module(logger, "window"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to create GLFW window")
		logger.Debug(err.Error())
		os.Exit(-1)
	}

	glAPI := gogl.New()
	if err := rendering.Init(glAPI, log.Module(logger, "rendering")); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize GLAD")
		logger.Debug(err.Error())
		os.Exit(-1)
	}

	b, err := bootstrap.New(cfg, glAPI, win, os.Stderr, logger)
	if err != nil {
		logger.Error(err.Error())
		win.Terminate()
		os.Exit(-1)
	}

	server := api.ServeInBackground(b, cfg.Api, log.Module(logger, "api"))

	b.Run()

	if server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Warn(fmt.Sprintf("could not stop web server: %s", err))
		}
	}
}
