package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/denwilliams/go-wakeuplight/internal/config"
	"github.com/denwilliams/go-wakeuplight/internal/effect"
	"github.com/denwilliams/go-wakeuplight/internal/lifx"
	"github.com/denwilliams/go-wakeuplight/internal/logging"
	"github.com/denwilliams/go-wakeuplight/internal/mqtt"
	"github.com/denwilliams/go-wakeuplight/internal/runner"
	"github.com/denwilliams/go-wakeuplight/internal/web"
)

func main() {
	envFile := flag.String("env", ".env", "Path to .env file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		logging.Init("info", false)
		logging.Error("Failed to load configuration: %s", err)
		os.Exit(1)
	}
	logging.Init(cfg.LogLevel, cfg.LogJSON)

	if err := run(cfg); err != nil {
		logging.Error("%s", err)
		os.Exit(1)
	}
	logging.Info("Terminating")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mu, err := cfg.BrokerURL()
	if err != nil {
		return fmt.Errorf("parse MQTT_URI: %w", err)
	}
	mc := mqtt.NewMQTTClient(mu, cfg.MQTTClientID, mqtt.Topics{
		Set:   cfg.MQTTSetTopic,
		State: cfg.MQTTStateTopic,
		Debug: cfg.MQTTDebugTopic,
	})

	renderers := []runner.Renderer{&runner.LogRenderer{}}
	if cfg.LIFXMirrorAddr != "" {
		mirror, err := lifx.NewMirror(cfg.LIFXMirrorAddr, cfg.LIFXMirrorTarget, cfg.TickInterval)
		if err != nil {
			return err
		}
		renderers = append(renderers, mirror)
		go func() {
			if err := mirror.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logging.Warn("LIFX mirror stopped: %s", err)
			}
		}()
	}

	r := runner.New(runner.Options{
		NumLEDs:           cfg.NumLEDs,
		TickInterval:      cfg.TickInterval,
		References:        cfg.References,
		StartupEffect:     cfg.StartupEffect,
		StartupBrightness: effect.Clamp8(cfg.StartupBrightness),
		Renderers:         renderers,
		Emitter:           mqtt.NewMqttStateEmitter(mc),
	})

	if err := mc.Connect(r); err != nil {
		return err
	}
	defer mc.Disconnect()

	if cfg.Port > 0 {
		go startServer(ctx, cfg.Port, r)
	}

	logging.Info("Ready")

	return r.Run(ctx)
}

func startServer(ctx context.Context, port int, r *runner.Runner) {
	logging.Info("Creating HTTP server")
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           web.CreateHandler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	logging.Info("Starting HTTP server on port %d", port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Error("error running http server: %s", err)
	}
}
