package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type (
	Config struct {
		HTTP      HTTP
		Log       Log
		PG        PG
		S3        S3
		Upload    Upload
		Retention Retention
		Kafka     Kafka
		Swagger   Swagger
	}

	HTTP struct {
		Port           string `env:"HTTP_PORT,required"`
		UsePreforkMode bool   `env:"HTTP_USE_PREFORK_MODE" envDefault:"false"`
	}

	Log struct {
		Level string `env:"LOG_LEVEL,required"`
	}

	PG struct {
		PoolMax int    `env:"PG_POOL_MAX,required"`
		URL     string `env:"PG_URL,required"`
	}

	S3 struct {
		Endpoint       string        `env:"S3_ENDPOINT,required"`
		AccessKey      string        `env:"S3_ACCESS_KEY,required"`
		SecretKey      string        `env:"S3_SECRET_KEY,required"`
		CfgLoadTimeout time.Duration `env:"S3_LOAD_CFG_TIMEOUT" envDefault:"10s"`
		PresignTTL     time.Duration `env:"S3_PRESIGN_TTL" envDefault:"15m"`
	}

	Upload struct {
		BatchChunkSize  int  `env:"UPLOAD_BATCH_CHUNK_SIZE" envDefault:"3"`
		StrictSignature bool `env:"UPLOAD_STRICT_SIGNATURE" envDefault:"false"`
	}

	Retention struct {
		Enabled         bool          `env:"RETENTION_ENABLED" envDefault:"true"`
		SweepInterval   time.Duration `env:"RETENTION_SWEEP_INTERVAL" envDefault:"1h"`
		SweepTimeout    time.Duration `env:"RETENTION_SWEEP_TIMEOUT" envDefault:"5m"`
		ShutdownTimeout time.Duration `env:"RETENTION_SHUTDOWN_TIMEOUT" envDefault:"5s"`
		BatchSize       int           `env:"RETENTION_BATCH_SIZE" envDefault:"100"`
	}

	Kafka struct {
		Enabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
		Brokers []string `env:"KAFKA_BROKERS" envDefault:""`
		Topic   string   `env:"KAFKA_TOPIC" envDefault:"asset-events"`
	}

	Swagger struct {
		Enabled bool `env:"SWAGGER_ENABLED" envDefault:"false"`
	}
)

func New() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	return cfg, nil
}
