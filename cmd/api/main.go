package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"bookingslots/internal/auth"
	"bookingslots/internal/booking"
	"bookingslots/internal/config"
	"bookingslots/internal/gate"
	httpx "bookingslots/internal/http"
	"bookingslots/internal/notify"
	"bookingslots/internal/observability"
	"bookingslots/internal/repo"
	"bookingslots/internal/store"
)

func main() {
	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	if cfg.TracingEnabled {
		shutdownTracer, err := observability.InitTracer(context.Background(), "bookingslots", cfg.OTLPEndpoint)
		if err != nil {
			log.Error("tracer init failed", "err", err)
			os.Exit(1)
		}
		defer func() {
			ctx, cancel := config.WithTimeout(5 * time.Second)
			defer cancel()
			_ = shutdownTracer(ctx)
		}()
	}

	// notifications first, the metrics gauge watches the queue depth
	queue := notify.NewQueue(cfg.NotificationTTL)
	defer queue.Close()

	registry := prometheus.NewRegistry()
	prom := observability.NewProm(registry, func() float64 {
		return float64(len(queue.List()))
	})

	backend, err := openBackend(cfg)
	if err != nil {
		log.Error("could not open slot backend", "backend", cfg.StoreBackend, "path", cfg.StorePath, "err", err)
		os.Exit(1)
	}
	defer backend.Close()

	slot := store.New(backend, log)

	events, err := repo.New(slot, prom, log)
	if err != nil {
		log.Error("could not load events", "err", err)
		os.Exit(1)
	}

	engine := booking.NewEngine(events, log)

	sessionSecret := cfg.SessionSecret
	if sessionSecret == "" {
		// per-process secret; a restart logs the admin out, which is fine
		// for a demo gate
		sessionSecret = uuid.NewString()
	}
	tokens := auth.NewManager(sessionSecret, cfg.SessionTTL)

	g, err := gate.New(cfg.AdminSecret, tokens, queue, log)
	if err != nil {
		log.Error("could not set up admin gate", "err", err)
		os.Exit(1)
	}

	router := httpx.NewRouter(httpx.RouterDeps{
		Cfg:      cfg,
		Log:      log,
		Events:   events,
		Engine:   engine,
		Queue:    queue,
		Gate:     g,
		Tokens:   tokens,
		Prom:     prom,
		Registry: registry,
		Ping: func() error {
			_, _, err := backend.Read()
			return err
		},
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.StoreBackend)
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
			return
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")
	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}

func openBackend(cfg config.Config) (store.Backend, error) {
	switch cfg.StoreBackend {
	case "sqlite":
		return store.NewSQLiteBackend(cfg.StorePath)
	case "file", "":
		return store.NewFileBackend(cfg.StorePath)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
