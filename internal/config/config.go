package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Env string

const (
	EnvProd Env = "prod"
	EnvDev  Env = "dev"
)

func (e Env) IsValid() bool {
	switch e {
	case EnvProd, EnvDev:
		return true
	}
	return false
}

// Config is the full process configuration, loaded from the environment.
// Fields with no value leave their feature in demo mode rather than failing
// startup; only structurally invalid values are load errors.
type Config struct {
	Env Env `env:"ENV" envDefault:"dev"`

	// Backend API the remote client funnels all traffic through.
	APIBaseURL     string        `env:"API_BASE_URL" envDefault:"https://api.trekmate.app/v1"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	RateLimitRPS   float64       `env:"RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst int           `env:"RATE_LIMIT_BURST" envDefault:"20"`

	// Chat advice. ChatAPIURL selects proxy mode, OpenAIAPIKey selects
	// direct mode, neither selects demo mode.
	ChatAPIURL   string `env:"CHAT_API_URL"`
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`

	// Real-time conditions. Same mode selection as chat.
	GeminiAPIURL string `env:"GEMINI_API_URL"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`

	// Durable cache backends. RedisAddr wins when both are set; with
	// neither the cache falls back to process memory only.
	RedisAddr string `env:"REDIS_ADDR"`
	CacheFile string `env:"CACHE_FILE"`
}

func New() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if !cfg.Env.IsValid() {
		return nil, fmt.Errorf("invalid env variable (must be 'prod' or 'dev')")
	}
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL must not be empty")
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	return &cfg, nil
}
