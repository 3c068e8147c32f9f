package server

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/dealforge/dealdesk/internal/config"
	"github.com/dealforge/dealdesk/pkg/constants"
	"gopkg.in/yaml.v3"
)

// CacheConfig defines the optional Redis quote cache. An empty address
// selects the in-memory cache.
type CacheConfig struct {
	RedisAddr     string `yaml:"redisAddr"`
	RedisPassword string `yaml:"redisPassword"`
	RedisDB       int    `yaml:"redisDB"`
	TTL           string `yaml:"ttl"`
}

// Config defines runtime parameters for the HTTP server.
type Config struct {
	Address        string               `yaml:"address"`
	MaxRequestSize string               `yaml:"maxRequestSize"`
	Logging        config.LoggingConfig `yaml:"logging"`
	Cache          CacheConfig          `yaml:"cache"`

	requestSizeBytes int64
}

// LoadConfig loads the server configuration from YAML. If the file does
// not exist, defaults are returned without error. Environment variables
// (DEALDESK_REDIS_ADDR, DEALDESK_REDIS_PASSWORD, DEALDESK_REDIS_DB)
// override the cache settings either way.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Address:          constants.DefaultServerAddress,
		MaxRequestSize:   fmt.Sprintf("%d", constants.DefaultMaxRequestBytes),
		requestSizeBytes: constants.DefaultMaxRequestBytes,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read server config: %w", err)
			}
		} else {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse server config: %w", err)
			}
			size, err := parseSize(cfg.MaxRequestSize)
			if err != nil {
				return nil, fmt.Errorf("invalid maxRequestSize: %w", err)
			}
			cfg.requestSizeBytes = size
		}
	}

	if addr := os.Getenv("DEALDESK_REDIS_ADDR"); addr != "" {
		cfg.Cache.RedisAddr = addr
	}
	if password := os.Getenv("DEALDESK_REDIS_PASSWORD"); password != "" {
		cfg.Cache.RedisPassword = password
	}
	if db := os.Getenv("DEALDESK_REDIS_DB"); db != "" {
		parsed, err := strconv.Atoi(db)
		if err != nil {
			return nil, fmt.Errorf("invalid DEALDESK_REDIS_DB: %w", err)
		}
		cfg.Cache.RedisDB = parsed
	}

	return cfg, nil
}

// RequestSizeBytes returns the maximum request body size in bytes.
func (c *Config) RequestSizeBytes() int64 {
	if c.requestSizeBytes <= 0 {
		return constants.DefaultMaxRequestBytes
	}
	return c.requestSizeBytes
}

// CacheTTL resolves the configured cache TTL, defaulting when unset or
// unparsable.
func (c *Config) CacheTTL() time.Duration {
	if c.Cache.TTL == "" {
		return 0
	}
	ttl, err := time.ParseDuration(c.Cache.TTL)
	if err != nil || ttl <= 0 {
		return 0
	}
	return ttl
}

// parseSize parses a size string such as "262144", "256KB", or "1MB".
func parseSize(value string) (int64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return constants.DefaultMaxRequestBytes, nil
	}

	split := len(trimmed)
	for i, r := range trimmed {
		if !unicode.IsDigit(r) {
			split = i
			break
		}
	}
	if split == 0 {
		return 0, fmt.Errorf("expected a number, got %q", value)
	}

	number, err := strconv.ParseInt(trimmed[:split], 10, 64)
	if err != nil {
		return 0, err
	}

	switch strings.ToUpper(strings.TrimSpace(trimmed[split:])) {
	case "", "B":
		return number, nil
	case "KB":
		return number * 1024, nil
	case "MB":
		return number * 1024 * 1024, nil
	default:
		return 0, fmt.Errorf("unsupported size suffix in %q", value)
	}
}
