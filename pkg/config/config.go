package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App        AppConfig
	Completion CompletionConfig
	Answers    AnswersConfig
	Retail     RetailConfig
	Geo        GeoConfig
	Redis      RedisConfig
	Search     SearchConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHOPSMART_APP_ENV" default:"development"`
	Port         string `envconfig:"SHOPSMART_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SHOPSMART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHOPSMART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// CompletionConfig wires the optional text-completion collaborator. An empty
// API key disables the client and every caller falls back to local heuristics.
type CompletionConfig struct {
	APIKey  string        `envconfig:"SHOPSMART_COMPLETION_API_KEY"`
	BaseURL string        `envconfig:"SHOPSMART_COMPLETION_BASE_URL"`
	Model   string        `envconfig:"SHOPSMART_COMPLETION_MODEL" default:"gpt-4o-mini"`
	Timeout time.Duration `envconfig:"SHOPSMART_COMPLETION_TIMEOUT" default:"10s"`
}

func (c CompletionConfig) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// AnswersConfig wires the optional answer/suggestion collaborator.
type AnswersConfig struct {
	APIKey  string        `envconfig:"SHOPSMART_ANSWERS_API_KEY"`
	BaseURL string        `envconfig:"SHOPSMART_ANSWERS_BASE_URL"`
	Timeout time.Duration `envconfig:"SHOPSMART_ANSWERS_TIMEOUT" default:"10s"`
}

func (c AnswersConfig) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// RetailConfig wires the optional retail product-search collaborator.
type RetailConfig struct {
	APIKey      string        `envconfig:"SHOPSMART_RETAIL_API_KEY"`
	BaseURL     string        `envconfig:"SHOPSMART_RETAIL_BASE_URL"`
	Timeout     time.Duration `envconfig:"SHOPSMART_RETAIL_TIMEOUT" default:"10s"`
	ResultCount int           `envconfig:"SHOPSMART_RETAIL_RESULT_COUNT" default:"10"`
	// CallDelay is the pause between consecutive search-variant calls so the
	// upstream's rate limits are respected.
	CallDelay time.Duration `envconfig:"SHOPSMART_RETAIL_CALL_DELAY" default:"500ms"`
}

func (c RetailConfig) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// GeoConfig wires the optional geocoding collaborator used to resolve
// destination addresses for delivery optimization.
type GeoConfig struct {
	APIKey  string        `envconfig:"SHOPSMART_GEO_API_KEY"`
	BaseURL string        `envconfig:"SHOPSMART_GEO_BASE_URL"`
	Timeout time.Duration `envconfig:"SHOPSMART_GEO_TIMEOUT" default:"10s"`
}

func (c GeoConfig) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// RedisConfig wires the optional search-result cache. An empty URL disables it.
type RedisConfig struct {
	URL          string        `envconfig:"SHOPSMART_REDIS_URL"`
	DialTimeout  time.Duration `envconfig:"SHOPSMART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHOPSMART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHOPSMART_REDIS_WRITE_TIMEOUT" default:"5s"`
	PoolSize     int           `envconfig:"SHOPSMART_REDIS_POOL_SIZE" default:"10"`
	CacheTTL     time.Duration `envconfig:"SHOPSMART_REDIS_CACHE_TTL" default:"5m"`
}

func (c RedisConfig) Enabled() bool {
	return strings.TrimSpace(c.URL) != ""
}

// SearchConfig holds pipeline-level search knobs.
type SearchConfig struct {
	MaxCandidates  int `envconfig:"SHOPSMART_SEARCH_MAX_CANDIDATES" default:"6"`
	MaxSuggestions int `envconfig:"SHOPSMART_SEARCH_MAX_SUGGESTIONS" default:"5"`
}
