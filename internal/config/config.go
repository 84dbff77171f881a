package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	pkgRetry "github.com/botbee/botbee-backend/internal/pkg/retry"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	// Database configuration
	DatabaseURL         string               `env:"DATABASE_URL,notEmpty"`
	DBMaxConns          int                  `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns          int                  `env:"DB_MIN_CONNS" envDefault:"5"`
	DBMaxConnLifetime   time.Duration        `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	DBMaxConnIdleTime   time.Duration        `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	DBHealthCheckPeriod time.Duration        `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`
	DBConnectRetry      pkgRetry.RetryConfig `envPrefix:"DB_CONNECT_RETRY_"`

	// External service configurations
	GeminiCfg  GeminiConfig           `envPrefix:"GEMINI_"`
	ScraperCfg ScraperConnectorConfig `envPrefix:"SCRAPER_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// File upload configuration
	FileUploadCfg FileUploadConfig `envPrefix:"FILE_UPLOAD_"`

	// Chat streaming configuration
	ChatCfg ChatConfig `envPrefix:"CHAT_"`

	// Ingestion configuration
	IngestionCfg IngestionConfig `envPrefix:"INGESTION_"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

// GeminiConfig holds model provider settings. The embedding model must stay
// fixed for the lifetime of a knowledge base: switching it invalidates every
// stored chunk vector for similarity comparison.
type GeminiConfig struct {
	APIKey             string `env:"API_KEY,notEmpty"`
	ChatModel          string `env:"CHAT_MODEL" envDefault:"gemini-2.0-flash"`
	EmbeddingModel     string `env:"EMBEDDING_MODEL" envDefault:"text-embedding-004"`
	TranscriptionModel string `env:"TRANSCRIPTION_MODEL" envDefault:"gemini-2.0-flash"`
	EmbeddingDimension int    `env:"EMBEDDING_DIMENSION" envDefault:"768"`
}

// ScraperConnectorConfig configures the web scraping service client.
type ScraperConnectorConfig struct {
	HTTPClientConfig
	ScrapeEndpoint string `env:"SCRAPE_ENDPOINT" envDefault:"/v1/scrape"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"30s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL,notEmpty"`
}

// FileUploadConfig holds file upload limits
type FileUploadConfig struct {
	MaxFileSize      int64 `env:"MAX_FILE_SIZE" envDefault:"5242880"`        // 5 MiB
	MaxAudioFileSize int64 `env:"MAX_AUDIO_FILE_SIZE" envDefault:"26214400"` // 25 MiB
	MaxUploadSize    int64 `env:"MAX_UPLOAD_SIZE" envDefault:"33554432"`     // 32 MiB
}

// ChatConfig bounds the streaming answer loop.
type ChatConfig struct {
	MaxDuration  time.Duration `env:"MAX_DURATION" envDefault:"30s"`
	MaxToolSteps int           `env:"MAX_TOOL_STEPS" envDefault:"5"`
	BotCacheTTL  time.Duration `env:"BOT_CACHE_TTL" envDefault:"1m"`
}

// IngestionConfig bounds the chunking step.
type IngestionConfig struct {
	MaxChunkChars int `env:"MAX_CHUNK_CHARS" envDefault:"1000"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.DBMaxConns < 1 || cfg.DBMaxConns > 200 {
		return fmt.Errorf("DB_MAX_CONNS must be between 1 and 200, got %d", cfg.DBMaxConns)
	}
	if cfg.DBMinConns < 0 || cfg.DBMinConns > cfg.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS(%d), got %d", cfg.DBMaxConns, cfg.DBMinConns)
	}
	if cfg.GeminiCfg.EmbeddingDimension < 1 {
		return fmt.Errorf("GEMINI_EMBEDDING_DIMENSION must be positive, got %d", cfg.GeminiCfg.EmbeddingDimension)
	}
	if cfg.ChatCfg.MaxToolSteps < 1 || cfg.ChatCfg.MaxToolSteps > 10 {
		return fmt.Errorf("CHAT_MAX_TOOL_STEPS must be between 1 and 10, got %d", cfg.ChatCfg.MaxToolSteps)
	}
	if cfg.IngestionCfg.MaxChunkChars < 100 {
		return fmt.Errorf("INGESTION_MAX_CHUNK_CHARS must be at least 100, got %d", cfg.IngestionCfg.MaxChunkChars)
	}
	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
