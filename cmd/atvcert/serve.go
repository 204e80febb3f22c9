package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"atvcert/config"
	"atvcert/internal/certstore"
	"atvcert/internal/handlers"
	"atvcert/internal/logger"
	"atvcert/internal/metrics"
	"atvcert/internal/selfsigned"
	"atvcert/middleware"
)

// certKeeper holds the currently served certificate so a renewal can
// swap it without restarting the listener.
type certKeeper struct {
	current atomic.Pointer[tls.Certificate]
}

func (k *certKeeper) get(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	cert := k.current.Load()
	if cert == nil {
		return nil, errors.New("no certificate loaded")
	}
	return cert, nil
}

func (k *certKeeper) reload(store certstore.Store) error {
	pair, _, err := store.Load()
	if err != nil {
		return err
	}
	k.current.Store(pair)
	return nil
}

// serve runs the local TLS endpoint the pair is generated for: health,
// status and metrics over the self-signed certificate, with a daily
// renewal check.
func serve(cfg config.Config, opts selfsigned.Options, store certstore.Store) error {
	log := logger.Get()

	if store.NeedsRenewal(cfg.RenewalWindow) {
		if err := generate(opts, store); err != nil {
			return err
		}
	}

	keeper := &certKeeper{}
	if err := keeper.reload(store); err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(metrics.NewCertificateCollector(store, cfg.RenewalWindow))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecurityHeaders)

	r.Get("/healthz", handlers.HealthCheck)
	r.Get("/api/status", handlers.Status(store))
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@daily", func() {
		if !store.NeedsRenewal(cfg.RenewalWindow) {
			log.Debug().Msg("renewal check: pair still valid")
			return
		}
		log.Info().Msg("renewal check: regenerating pair")
		if err := generate(opts, store); err != nil {
			log.Error().Err(err).Msg("renewal failed")
			return
		}
		if err := keeper.reload(store); err != nil {
			log.Error().Err(err).Msg("could not reload renewed pair")
		}
	}); err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              cfg.ServeAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		TLSConfig: &tls.Config{
			MinVersion:     tls.VersionTLS12,
			GetCertificate: keeper.get,
		},
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.ServeAddr).
			Str("hostname", opts.Hostname).
			Msg("TLS server listening")
		if err := server.ListenAndServeTLS("", ""); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	notify := make(chan os.Signal, 1)
	signal.Notify(notify, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-notify:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
