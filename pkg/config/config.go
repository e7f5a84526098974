// Package config loads service configuration from YAML, .env and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"scan-qa/pkg/structure"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the scanner service
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Structure  structure.Config `yaml:"structure"`
	Preprocess PreprocessConfig `yaml:"preprocess"`
	OCR        OCRConfig        `yaml:"ocr"`
	LLM        LLMConfig        `yaml:"llm"`
	Cache      CacheConfig      `yaml:"cache"`
	Artifacts  ArtifactsConfig  `yaml:"artifacts"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           int           `yaml:"port"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes"`
}

// DatabaseConfig selects and configures the document store
type DatabaseConfig struct {
	Driver string `yaml:"driver"` // postgres or sqlite
	DSN    string `yaml:"dsn"`
}

// PreprocessConfig tunes image conditioning before OCR
type PreprocessConfig struct {
	MaxWidth       int     `yaml:"max_width"`
	BlurSigma      float64 `yaml:"blur_sigma"`
	BlockSize      int     `yaml:"block_size"`
	Offset         int     `yaml:"offset"`
	CloseSize      int     `yaml:"close_size"`
	ThumbnailWidth int     `yaml:"thumbnail_width"`
}

// OCRConfig selects the recognition engine
type OCRConfig struct {
	Engine        string   `yaml:"engine"` // tesseract or azure
	Languages     []string `yaml:"languages"`
	PageSegMode   int      `yaml:"page_seg_mode"`
	AzureEndpoint string   `yaml:"azure_endpoint"`
	AzureKey      string   `yaml:"azure_key"`
}

// LLMConfig configures the question answering model
type LLMConfig struct {
	Provider   string        `yaml:"provider"` // ollama or openai
	Model      string        `yaml:"model"`
	ServerURL  string        `yaml:"server_url"`
	APIKey     string        `yaml:"api_key"`
	MaxRetries int           `yaml:"max_retries"`
	Timeout    time.Duration `yaml:"timeout"`
}

// CacheConfig configures the answer cache
type CacheConfig struct {
	Driver     string        `yaml:"driver"` // memory or redis
	TTL        time.Duration `yaml:"ttl"`
	MaxEntries int           `yaml:"max_entries"`
	Redis      RedisConfig   `yaml:"redis"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// ArtifactsConfig sets where intermediate files are written
type ArtifactsConfig struct {
	Dir string `yaml:"dir"`
}

// LogConfig configures the logger
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or console
}

// Default returns a configuration suitable for local development
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8080,
			RequestTimeout: 2 * time.Minute,
			MaxUploadBytes: 20 << 20,
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "scan-qa.db",
		},
		Structure: structure.DefaultConfig(),
		Preprocess: PreprocessConfig{
			MaxWidth:       1800,
			BlurSigma:      1.1,
			BlockSize:      15,
			Offset:         4,
			CloseSize:      3,
			ThumbnailWidth: 1000,
		},
		OCR: OCRConfig{
			Engine:      "tesseract",
			Languages:   []string{"eng"},
			PageSegMode: 3,
		},
		LLM: LLMConfig{
			Provider:   "ollama",
			Model:      "mistral",
			MaxRetries: 2,
			Timeout:    90 * time.Second,
		},
		Cache: CacheConfig{
			Driver:     "memory",
			TTL:        time.Hour,
			MaxEntries: 1000,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "scanqa:",
			},
		},
		Artifacts: ArtifactsConfig{Dir: "outputs"},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads .env, the optional YAML file at path, and environment overrides
func Load(path string) (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return fmt.Errorf("invalid database driver: %s", c.Database.Driver)
	}
	if c.OCR.Engine != "tesseract" && c.OCR.Engine != "azure" {
		return fmt.Errorf("invalid ocr engine: %s", c.OCR.Engine)
	}
	if c.OCR.Engine == "azure" && (c.OCR.AzureEndpoint == "" || c.OCR.AzureKey == "") {
		return fmt.Errorf("azure ocr requires endpoint and key")
	}
	if c.LLM.Provider != "ollama" && c.LLM.Provider != "openai" {
		return fmt.Errorf("invalid llm provider: %s", c.LLM.Provider)
	}
	if c.Cache.Driver != "memory" && c.Cache.Driver != "redis" {
		return fmt.Errorf("invalid cache driver: %s", c.Cache.Driver)
	}
	if c.Preprocess.MaxWidth <= 0 {
		return fmt.Errorf("preprocess max_width must be positive")
	}
	if err := c.Structure.Validate(); err != nil {
		return fmt.Errorf("structure: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		if strings.HasPrefix(v, "sqlite:") {
			cfg.Database.Driver = "sqlite"
			cfg.Database.DSN = strings.TrimPrefix(v, "sqlite:")
		} else {
			cfg.Database.Driver = "postgres"
			cfg.Database.DSN = v
		}
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}

	if v := os.Getenv("OCR_ENGINE"); v != "" {
		cfg.OCR.Engine = v
	}
	if v := os.Getenv("AZURE_VISION_ENDPOINT"); v != "" {
		cfg.OCR.AzureEndpoint = v
	}
	if v := os.Getenv("AZURE_VISION_KEY"); v != "" {
		cfg.OCR.AzureKey = v
	}

	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("OLLAMA_URL"); v != "" {
		cfg.LLM.ServerURL = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}

	if v := os.Getenv("REDIS_URL"); v != "" {
		if opts, err := redis.ParseURL(v); err == nil {
			cfg.Cache.Driver = "redis"
			cfg.Cache.Redis.Addr = opts.Addr
			cfg.Cache.Redis.Password = opts.Password
			cfg.Cache.Redis.DB = opts.DB
		}
	}

	if v := os.Getenv("ARTIFACTS_DIR"); v != "" {
		cfg.Artifacts.Dir = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}
