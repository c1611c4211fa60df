package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// StorageMode selects the canonical image residency for this deployment.
// There is no silent dual-mode fallback: "local" keeps images on disk and
// serves them under /uploads, "remote" pushes them to object storage.
const (
	StorageModeLocal  = "local"
	StorageModeRemote = "remote"
)

type Config struct {
	Port      string `env:"PORT,      default=4000"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Storage StorageConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=blog"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type StorageConfig struct {
	Mode          string `env:"STORAGE_MODE,            default=local"`
	UploadDir     string `env:"UPLOAD_DIR,              default=uploads"`
	Bucket        string `env:"STORAGE_BUCKET"`
	PublicBaseURL string `env:"STORAGE_PUBLIC_BASE_URL"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Storage.Mode != StorageModeLocal && cfg.Storage.Mode != StorageModeRemote {
		return nil, fmt.Errorf("config: STORAGE_MODE must be %q or %q", StorageModeLocal, StorageModeRemote)
	}
	if cfg.Storage.Mode == StorageModeRemote && cfg.Storage.Bucket == "" {
		return nil, fmt.Errorf("config: STORAGE_BUCKET is required in remote mode")
	}
	return &cfg, nil
}
