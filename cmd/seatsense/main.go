// Command seatsense runs the thermal seat-occupancy monitor: it reads
// MLX90640 frames from a serial link, pulses a vibration motor when a warm
// seat is detected and renders a color-mapped thermal view.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/banshee-data/seatsense/internal/alert"
	"github.com/banshee-data/seatsense/internal/config"
	"github.com/banshee-data/seatsense/internal/mlx90640"
	"github.com/banshee-data/seatsense/internal/monitoring"
	"github.com/banshee-data/seatsense/internal/render"
	"github.com/banshee-data/seatsense/internal/seatfinder"
	"github.com/banshee-data/seatsense/internal/timeutil"
)

var (
	devMode    = flag.Bool("dev", false, "Run against a simulated sensor and a logging actuator")
	configPath = flag.String("config", "", "Path to a JSON tuning file")
	port       = flag.String("port", "", "Serial port to use (overrides config; ignored in dev mode)")
	out        = flag.String("out", "", "Frame output path (overrides config)")
	verbose    = flag.Bool("verbose", false, "Log per-frame diagnostics")
)

func main() {
	flag.Parse()

	cfg := config.Empty()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}
	portPath := cfg.GetSerialPort()
	if *port != "" {
		portPath = *port
	}
	framePath := cfg.GetFrameOutput()
	if *out != "" {
		framePath = *out
	}

	var link mlx90640.Link
	var actuator alert.Actuator
	if *devMode {
		link = mlx90640.NewSimulatedLink(100 * time.Millisecond)
		actuator = alert.LogActuator{}
	} else {
		var err error
		link, err = mlx90640.OpenSerialLink(portPath, cfg.GetBaudRate())
		if err != nil {
			log.Fatalf("failed to open sensor link: %v", err)
		}
		actuator, err = alert.NewGPIOActuator(cfg.GetVibrationPin())
		if err != nil {
			log.Fatalf("failed to open vibration motor: %v", err)
		}
	}
	defer link.Close()

	renderer, err := render.NewRenderer(cfg.GetDisplayWidth(), cfg.GetDisplayHeight())
	if err != nil {
		log.Fatalf("failed to create renderer: %v", err)
	}

	monitor := seatfinder.New(seatfinder.Options{
		Link:      link,
		Actuator:  actuator,
		Display:   &render.FileDisplay{Path: framePath},
		Clock:     timeutil.RealClock{},
		Renderer:  renderer,
		Threshold: cfg.GetPersonThreshold(),
		Cooldown:  cfg.GetVibrationCooldown(),
		Pulse:     cfg.GetVibrationPulse(),
		Verbose:   *verbose,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	monitoring.Logf("monitoring %s, frames to %s", portPath, framePath)
	if err := monitor.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("monitor stopped: %v", err)
	}
	monitoring.Logf("shutdown complete")
}
