// Package app wires configuration, storage, messaging, services and the two
// HTTP listeners (API and ops) into a running process with graceful shutdown.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/aoyamagallery/backend/internal/config"
	"github.com/aoyamagallery/backend/internal/domain"
	"github.com/aoyamagallery/backend/internal/health"
	"github.com/aoyamagallery/backend/internal/messaging/kafka"
	"github.com/aoyamagallery/backend/internal/metrics"
	"github.com/aoyamagallery/backend/internal/service/catalog"
	"github.com/aoyamagallery/backend/internal/service/order"
	"github.com/aoyamagallery/backend/internal/storage/postgres"
	httpapi "github.com/aoyamagallery/backend/internal/transport/http"
	"github.com/aoyamagallery/backend/internal/version"
)

const shutdownTimeout = 5 * time.Second

// Config carries process-level settings that come from the environment, not
// from the config file.
type Config struct {
	ConfigPath   string
	SecretsPath  string
	OpsAddr      string
	KafkaBrokers []string
}

// DefaultConfig returns the paths and addresses used when nothing overrides
// them.
func DefaultConfig() Config {
	return Config{
		ConfigPath:  "config/config.yaml",
		SecretsPath: "config/secrets.yaml.encrypted",
		OpsAddr:     ":9090",
	}
}

// Run starts the service and blocks until ctx is cancelled or a listener
// fails.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")
	logger.Infof("starting gallery service, %s", version.String())

	fileCfg, err := config.Load(cfg.ConfigPath, cfg.SecretsPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	store, err := postgres.Open(ctx, fileCfg.DSN())
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.WithError(err).Warn("failed to close postgres store")
		}
	}()

	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	var publisher domain.EventPublisher
	var producer *kafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err = kafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			// The broker is optional; orders must not depend on it.
			logger.WithError(err).Warn("kafka unavailable, continuing without event publishing")
		} else {
			publisher = producer
			logger.WithField("brokers", cfg.KafkaBrokers).Info("kafka producer connected")
		}
	}
	defer func() {
		if producer != nil {
			if err := producer.Close(); err != nil {
				logger.WithError(err).Warn("failed to close kafka producer")
			}
		}
	}()

	m := metrics.New()

	artworkRepo := postgres.NewArtworkRepository(store)
	orderRepo := postgres.NewOrderRepository(store)

	catalogSvc := catalog.NewService(artworkRepo, publisher, m, log.WithField("component", "catalog-service"))
	orderSvc := order.NewService(orderRepo, artworkRepo, publisher, m, log.WithField("component", "order-service"))

	var origins []string
	if fileCfg.Frontend.URL != "" {
		origins = []string{fileCfg.Frontend.URL}
	}
	router := httpapi.NewRouter(catalogSvc, orderSvc, m, log.WithField("component", "http"), httpapi.RouterConfig{
		AllowedOrigins: origins,
	})

	apiSrv := &http.Server{
		Addr:              fileCfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	opsSrv := newOpsServer(cfg.OpsAddr, store)

	errCh := make(chan error, 2)
	go func() {
		logger.Infof("API server listening on %s", apiSrv.Addr)
		errCh <- apiSrv.ListenAndServe()
	}()
	go func() {
		logger.Infof("ops server listening on %s", opsSrv.Addr)
		errCh <- opsSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownServer(apiSrv, logger)
		shutdownServer(opsSrv, logger)
		return nil
	case err := <-errCh:
		shutdownServer(apiSrv, logger)
		shutdownServer(opsSrv, logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	}
}

// newOpsServer builds the internal listener carrying metrics and probes.
func newOpsServer(addr string, store *postgres.Store) *http.Server {
	readiness := health.NewHandler(version.String())
	readiness.RegisterChecker(health.NewSimpleChecker("postgres", func() error {
		return store.Ping(context.Background())
	}))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", readiness)
	mux.Handle("/readyz", readiness)
	mux.Handle("/livez", health.LivenessHandler())

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func shutdownServer(srv *http.Server, logger *log.Entry) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Warnf("failed to shut down server on %s", srv.Addr)
	}
}
