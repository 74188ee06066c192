// Package config handles configuration loading for the trip planning
// service: an optional YAML file with environment variable overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wayplan/tripmcp/pkg/upstream"
)

// RateLimit configures one upstream politeness limiter.
type RateLimit struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// Config is the root configuration.
type Config struct {
	// HTTPAddr enables the HTTP API when non-empty, e.g. ":8080".
	HTTPAddr string `yaml:"http_addr,omitempty"`

	LogLevel  string `yaml:"log_level,omitempty"`
	UserAgent string `yaml:"user_agent,omitempty"`

	// ORSAPIKey authenticates route requests against OpenRouteService.
	ORSAPIKey string `yaml:"ors_api_key,omitempty"`

	// Endpoint overrides, for self-hosted mirrors. Empty means the public
	// instance.
	NominatimURL string `yaml:"nominatim_url,omitempty"`
	OverpassURL  string `yaml:"overpass_url,omitempty"`
	ORSURL       string `yaml:"ors_url,omitempty"`

	// Politeness limiter overrides. Zero values keep the built-in limits.
	NominatimLimit RateLimit `yaml:"nominatim_limit,omitempty"`
	OverpassLimit  RateLimit `yaml:"overpass_limit,omitempty"`
	ORSLimit       RateLimit `yaml:"ors_limit,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		LogLevel:  "info",
		UserAgent: upstream.DefaultUserAgent,
	}
}

// Load reads and parses the YAML configuration file at path, starting from
// the defaults. An empty path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = upstream.DefaultUserAgent
	}
	return cfg, nil
}

// ApplyEnv overlays environment variables onto cfg. Environment values win
// over the file so deployments can keep secrets out of it.
func ApplyEnv(cfg Config) Config {
	cfg.ORSAPIKey = getenv("ORS_API_KEY", cfg.ORSAPIKey)
	cfg.HTTPAddr = getenv("TRIPMCP_HTTP_ADDR", cfg.HTTPAddr)
	cfg.LogLevel = getenv("TRIPMCP_LOG_LEVEL", cfg.LogLevel)
	cfg.UserAgent = getenv("TRIPMCP_USER_AGENT", cfg.UserAgent)
	cfg.NominatimURL = getenv("TRIPMCP_NOMINATIM_URL", cfg.NominatimURL)
	cfg.OverpassURL = getenv("TRIPMCP_OVERPASS_URL", cfg.OverpassURL)
	cfg.ORSURL = getenv("TRIPMCP_ORS_URL", cfg.ORSURL)
	return cfg
}

// Apply pushes the configured user agent and limiter overrides into the
// shared upstream client.
func (c Config) Apply() {
	if c.UserAgent != "" {
		upstream.SetUserAgent(c.UserAgent)
	}
	if c.NominatimLimit.RPS > 0 {
		upstream.UpdateNominatimRateLimits(c.NominatimLimit.RPS, max(c.NominatimLimit.Burst, 1))
	}
	if c.OverpassLimit.RPS > 0 {
		upstream.UpdateOverpassRateLimits(c.OverpassLimit.RPS, max(c.OverpassLimit.Burst, 1))
	}
	if c.ORSLimit.RPS > 0 {
		upstream.UpdateORSRateLimits(c.ORSLimit.RPS, max(c.ORSLimit.Burst, 1))
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
