// Package app assembles the planning service from its parts: storage,
// the HTTP API and the metrics exporter.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sitecast/stopend/api"
	"github.com/sitecast/stopend/config"
	coremetrics "github.com/sitecast/stopend/core/metrics"
	"github.com/sitecast/stopend/infra/logger"
	"github.com/sitecast/stopend/infra/metrics"
	"github.com/sitecast/stopend/storage"
)

// Service orchestrates the HTTP API and its backing store.
type Service struct {
	server      *api.Server
	store       storage.Store
	log         logger.Logger
	addr        string
	promEnabled bool
	promPort    string
}

// New creates a Service from the configuration. Without a database DSN
// the service runs on an in-memory store.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var store storage.Store
	if cfg.Database.DSN != "" {
		pg, err := storage.NewPostgresStore(cfg.Database.DSN, cfg.Database.AutoMigrate)
		if err != nil {
			return nil, fmt.Errorf("postgres store: %w", err)
		}
		store = pg
	} else {
		logg.Warnf("no database configured, using in-memory store")
		store = storage.NewMemoryStore()
	}

	var sink coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		s, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sink = s
	}

	server := api.NewServer(store, sink, logger.New("api"), cfg.Server.BaseURL, cfg.Planner)
	return &Service{
		server:      server,
		store:       store,
		log:         logg,
		addr:        cfg.Server.Addr,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
	}, nil
}

// Run starts the HTTP servers and blocks until the context is
// cancelled or the API server fails.
func (s *Service) Run(ctx context.Context) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("api listening on %s", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error { return s.store.Close() }
