package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"blogsmith/pkg/errors"
)

type Config struct {
	App           AppConfig
	Server        ServerConfig
	AI            AIConfig
	Search        SearchConfig
	Cache         CacheConfig
	ErrorTracking ErrorTrackingConfig
	Workflow      WorkflowConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"blogsmith"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

type ServerConfig struct {
	Host string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port int    `envconfig:"SERVER_PORT" default:"8080"`

	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"10m"`
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type AIConfig struct {
	GroqAPIKey string `envconfig:"GROQ_API_KEY"`
	Model      string `envconfig:"GROQ_MODEL" default:"llama-3.3-70b-versatile"`

	RequestTimeout   time.Duration `envconfig:"AI_REQUEST_TIMEOUT" default:"2m"`
	RequestsPerMin   float64       `envconfig:"AI_REQUESTS_PER_MINUTE" default:"30"`
	RequestBurst     int           `envconfig:"AI_REQUEST_BURST" default:"5"`
	MaxTokens        int           `envconfig:"AI_MAX_TOKENS" default:"4096"`
	Temperature      float64       `envconfig:"AI_TEMPERATURE" default:"0.7"`
}

type SearchConfig struct {
	TavilyAPIKey string `envconfig:"TAVILY_API_KEY"`
	BaseURL      string `envconfig:"TAVILY_BASE_URL" default:"https://api.tavily.com"`

	RequestTimeout time.Duration `envconfig:"SEARCH_REQUEST_TIMEOUT" default:"30s"`
	RequestsPerMin float64       `envconfig:"SEARCH_REQUESTS_PER_MINUTE" default:"60"`
	MaxResults     int           `envconfig:"SEARCH_MAX_RESULTS" default:"5"`
}

type CacheConfig struct {
	// Article cache is disabled unless a redis host is configured.
	RedisHost     string        `envconfig:"REDIS_HOST"`
	RedisPort     int           `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	ArticleTTL    time.Duration `envconfig:"CACHE_ARTICLE_TTL" default:"24h"`
}

func (c CacheConfig) Enabled() bool {
	return c.RedisHost != ""
}

func (c CacheConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"false"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"development"`
}

type WorkflowConfig struct {
	RunTimeout time.Duration `envconfig:"WORKFLOW_RUN_TIMEOUT" default:"5m"`
}

// Load reads configuration from environment variables.
// It first tries to load a .env file (useful for local development).
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}

	return &cfg, nil
}

// Validate checks that required provider credentials are present so the
// failure surfaces at startup instead of as an unauthenticated call later.
func (c *Config) Validate() error {
	if c.AI.GroqAPIKey == "" {
		return errors.Wrap(errors.ErrInvalidInput, "GROQ_API_KEY is required")
	}
	if c.Search.TavilyAPIKey == "" {
		return errors.Wrap(errors.ErrInvalidInput, "TAVILY_API_KEY is required")
	}
	return nil
}
