package model

import "time"

// Config is the complete runtime configuration for rigor.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	LLM         LLMConfig         `yaml:"llm"`
	Cache       CacheConfig       `yaml:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Output      OutputConfig      `yaml:"output"`
}

// HTTPConfig controls document fetching from URLs.
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout"`
	UserAgent     string        `yaml:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes"`
	RespectRobots bool          `yaml:"respect_robots"`
	RatePerSecond float64       `yaml:"rate_per_second"` // per-host fetch rate
	RateBurst     int           `yaml:"rate_burst"`
}

// LLMConfig configures the external classification/assessment oracle.
type LLMConfig struct {
	Provider  string `yaml:"provider"` // openai, anthropic, ollama, "" (disabled)
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"` // from environment only, never written to disk
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`

	HTTPProxy  string `yaml:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy"`
	NoProxy    string `yaml:"no_proxy"`
}

// CacheConfig controls caching of raw oracle responses.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"` // empty: memory only
	TTL     time.Duration `yaml:"ttl"`
}

// ConcurrencyConfig controls batch processing.
type ConcurrencyConfig struct {
	BatchWorkers int `yaml:"batch_workers"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:       30 * time.Second,
			UserAgent:     "Rigor/0.1 (+https://github.com/pkarpov/rigor)",
			MaxBodyBytes:  2_000_000,
			RespectRobots: true,
			RatePerSecond: 2,
			RateBurst:     5,
		},
		LLM: LLMConfig{
			Provider:  "", // disabled by default; deterministic core still runs
			Timeout:   30,
			MaxTokens: 1000,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers: 4,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
