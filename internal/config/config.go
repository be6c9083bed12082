package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. It is constructed once at
// startup and never mutated afterwards.
type Config struct {
	Server     ServerConfig    `yaml:"server"`
	Extractor  ExtractorConfig `yaml:"extractor"`
	Proxy      ProxyConfig     `yaml:"proxy"`
	Thumbnails ThumbnailConfig `yaml:"thumbnails"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host           string        `yaml:"host" envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port           int           `yaml:"port" envconfig:"PORT" default:"5001"`
	ReadTimeout    time.Duration `yaml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT" default:"5m"`
	AllowedOrigins []string      `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000,https://fxtcher.com,https://www.fxtcher.com"`
}

// Extraction backend names.
const (
	BackendYtDlp       = "ytdlp"
	BackendSyndication = "syndication"
	BackendScrape      = "scrape"
)

// ExtractorConfig selects and tunes the extraction backend.
type ExtractorConfig struct {
	Backend   string        `yaml:"backend" envconfig:"EXTRACTOR_BACKEND" default:"ytdlp"`
	YtDlpPath string        `yaml:"ytdlp_path" envconfig:"YTDLP_PATH" default:"yt-dlp"`
	Timeout   time.Duration `yaml:"timeout" envconfig:"EXTRACT_TIMEOUT" default:"60s"`
}

// ProxyConfig tunes the streaming proxy's upstream client.
type ProxyConfig struct {
	UserAgent     string        `yaml:"user_agent" envconfig:"PROXY_USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"`
	HeaderTimeout time.Duration `yaml:"header_timeout" envconfig:"PROXY_HEADER_TIMEOUT" default:"30s"`
}

// ThumbnailConfig controls the optional frame-capture thumbnail feature.
type ThumbnailConfig struct {
	Enabled    bool          `yaml:"enabled" envconfig:"THUMBNAILS_ENABLED" default:"false"`
	Path       string        `yaml:"path" envconfig:"THUMBNAILS_PATH" default:"./thumbnails"`
	FFmpegPath string        `yaml:"ffmpeg_path" envconfig:"FFMPEG_PATH" default:"ffmpeg"`
	Timeout    time.Duration `yaml:"timeout" envconfig:"THUMBNAIL_TIMEOUT" default:"30s"`
}

// Load reads configuration from file and environment variables.
// Environment variables override file values.
func Load(configPath string) (*Config, error) {
	cfg := &Config{}

	// Load from YAML file if provided
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	// Override with environment variables
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	switch c.Extractor.Backend {
	case BackendYtDlp, BackendSyndication, BackendScrape:
	default:
		return fmt.Errorf("unknown extractor backend: %q", c.Extractor.Backend)
	}
	if c.Thumbnails.Enabled && c.Thumbnails.Path == "" {
		return fmt.Errorf("THUMBNAILS_PATH is required when thumbnails are enabled")
	}
	return nil
}

// Address returns the server address in host:port format.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
