package config

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=5000"`
	Env       string `env:"ENV,        default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Evidence EvidenceConfig
	Pipeline PipelineConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=echallan"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// EvidenceConfig selects where uploaded evidence images are kept. The
// filesystem backend serves files from LocalDir under /uploads; the s3
// backend pushes them to Bucket instead.
type EvidenceConfig struct {
	Backend   string `env:"EVIDENCE_BACKEND,    default=filesystem"` // filesystem or s3
	LocalDir  string `env:"EVIDENCE_DIR,        default=uploads"`
	Bucket    string `env:"EVIDENCE_S3_BUCKET"`
	KeyPrefix string `env:"EVIDENCE_S3_PREFIX,  default=evidence"`
	Region    string `env:"EVIDENCE_S3_REGION,  default=ap-south-1"`
	Endpoint  string `env:"EVIDENCE_S3_ENDPOINT"`
}

type PipelineConfig struct {
	Workers int `env:"DETECTION_WORKERS, default=8"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
