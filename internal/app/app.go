// Package app wires the service dependencies together and runs the HTTP
// server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/katakonsumen/review-service/internal/config"
	"github.com/katakonsumen/review-service/internal/event"
	handlerhttp "github.com/katakonsumen/review-service/internal/handler/http"
	"github.com/katakonsumen/review-service/internal/image"
	mongorepo "github.com/katakonsumen/review-service/internal/repository/mongo"
	"github.com/katakonsumen/review-service/internal/service"
	"github.com/katakonsumen/review-service/internal/storage"
	storagememory "github.com/katakonsumen/review-service/internal/storage/memory"
	storageminio "github.com/katakonsumen/review-service/internal/storage/minio"
	"github.com/katakonsumen/review-service/pkg/health"
	"github.com/katakonsumen/review-service/pkg/kafka"
)

// App holds the wired service and its owned connections.
type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	server   *http.Server
	mongo    *mongo.Client
	producer *kafka.Producer
}

// New connects to the backing services and assembles the application.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	mongoClient, err := mongorepo.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}
	db := mongoClient.Database(cfg.MongoDatabase)

	store, err := newStorage(ctx, cfg, logger)
	if err != nil {
		_ = mongoClient.Disconnect(context.Background())
		return nil, err
	}

	var producer *kafka.Producer
	if cfg.KafkaEnabled() {
		producer = kafka.NewProducer(kafka.DefaultProducerConfig(cfg.KafkaBrokers), logger)
	} else {
		logger.Info("kafka brokers not configured, event publishing disabled")
	}
	events := event.NewPublisher(producer, logger)

	relocator := image.NewRelocator(store, logger,
		image.WithWorkers(cfg.ImageWorkers),
		image.WithMaxBytes(cfg.ImageMaxBytes),
	)

	reviewSvc := service.NewReviewService(mongorepo.NewReviewRepository(db), relocator, events, logger)
	wishlistSvc := service.NewWishlistService(mongorepo.NewWishlistRepository(db), events, logger)

	healthHandler := health.NewHandler()
	healthHandler.Register("mongodb", func(ctx context.Context) error {
		return mongoClient.Ping(ctx, readpref.Primary())
	})
	if producer != nil {
		healthHandler.Register("kafka", producer.Ping)
	}

	router := handlerhttp.NewRouter(
		handlerhttp.RouterConfig{
			ServiceName:    cfg.ServiceName,
			RateLimitRPS:   cfg.RateLimitRPS,
			RateLimitBurst: cfg.RateLimitBurst,
		},
		handlerhttp.NewReviewHandler(reviewSvc, logger),
		handlerhttp.NewWishlistHandler(wishlistSvc, logger),
		healthHandler,
		logger,
	)

	server := &http.Server{
		Addr:         cfg.HTTPAddr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:      cfg,
		logger:   logger,
		server:   server,
		mongo:    mongoClient,
		producer: producer,
	}, nil
}

// newStorage picks the object-storage backend: MinIO when configured, the
// in-memory store otherwise.
func newStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
	if !cfg.MinioEnabled() {
		logger.Warn("minio not configured, using in-memory image storage")
		return storagememory.New(), nil
	}

	store, err := storageminio.New(ctx, storageminio.Config{
		Endpoint:      cfg.MinioEndpoint,
		AccessKey:     cfg.MinioAccessKey,
		SecretKey:     cfg.MinioSecretKey,
		Bucket:        cfg.MinioBucket,
		UseSSL:        cfg.MinioUseSSL,
		PublicBaseURL: cfg.MinioPublicBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing minio storage: %w", err)
	}
	return store, nil
}

// Run serves HTTP until the context is cancelled, then shuts down
// gracefully within the configured timeout.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", slog.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http shutdown", slog.String("error", err.Error()))
	}
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Error("kafka producer close", slog.String("error", err.Error()))
		}
	}
	if err := a.mongo.Disconnect(shutdownCtx); err != nil {
		a.logger.Error("mongodb disconnect", slog.String("error", err.Error()))
	}

	a.logger.Info("shutdown complete")
	return nil
}
