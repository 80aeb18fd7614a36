// Package main provides the entry point for the colortrack control loop.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"colortrack/internal/capture"
	"colortrack/internal/config"
	"colortrack/internal/detect"
	"colortrack/internal/engine"
	"colortrack/internal/input"

	"github.com/rs/zerolog"
)

const (
	appName    = "colortrack"
	appVersion = "0.1.0"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
	if os.Getenv("COLORTRACK_DEBUG") != "" {
		log = log.Level(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.InfoLevel)
	}
	log.Info().Str("version", appVersion).Msg(appName + " starting")

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = "."
	}
	settings, err := config.Load(configDir)
	if err != nil {
		log.Warn().Err(err).Msg("config load failed, using defaults")
		settings = config.Default()
	}
	store := config.NewStore(settings)

	injector, err := input.NewInjector()
	if err != nil {
		if errors.Is(err, input.ErrUnsupported) {
			log.Warn().Msg("input injection unsupported on this platform; movement disabled")
		} else {
			log.Error().Err(err).Msg("input injector init failed")
		}
	}
	actuator := input.NewActuator(injector, log)

	sampler := capture.NewSampler(log)
	pipeline := detect.NewPipeline(sampler, log)

	binds := input.NewBinds()

	eng := engine.New(store, binds, pipeline, actuator, capture.PrimaryCenter, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng.Run(ctx, settings.TickInterval)

	if err := config.Save(configDir, store.Snapshot()); err != nil {
		log.Warn().Err(err).Msg("config save failed")
	}
	log.Info().Msg(appName + " stopped")
}
