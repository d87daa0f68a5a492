// Package config defines the service configuration, loaded from the
// environment.
package config

import (
	"fmt"
	"time"

	"github.com/katakonsumen/review-service/pkg/config"
)

// Config holds all runtime settings for the review service.
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"review-service"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	MongoURI      string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGO_DATABASE" envDefault:"katakonsumen"`

	// Object storage. When MinioEndpoint is empty the service falls back to
	// the in-memory store, which keeps local runs working without MinIO.
	MinioEndpoint      string `env:"MINIO_ENDPOINT"`
	MinioAccessKey     string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey     string `env:"MINIO_SECRET_KEY"`
	MinioBucket        string `env:"MINIO_BUCKET" envDefault:"review-images"`
	MinioUseSSL        bool   `env:"MINIO_USE_SSL" envDefault:"false"`
	MinioPublicBaseURL string `env:"MINIO_PUBLIC_BASE_URL"`

	// Kafka. When no brokers are configured event publishing is disabled.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`

	ImageWorkers  int   `env:"IMAGE_WORKERS" envDefault:"4"`
	ImageMaxBytes int64 `env:"IMAGE_MAX_BYTES" envDefault:"10485760"`

	RateLimitRPS   int `env:"RATE_LIMIT_RPS" envDefault:"50"`
	RateLimitBurst int `env:"RATE_LIMIT_BURST" envDefault:"100"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}

// HTTPAddr returns the listen address for the HTTP server.
func (c *Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// MinioEnabled reports whether a MinIO backend is configured.
func (c *Config) MinioEnabled() bool {
	return c.MinioEndpoint != ""
}

// KafkaEnabled reports whether event publishing is configured.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}
