package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"shift-scheduler/logger"
	"shift-scheduler/scheduler"
	"shift-scheduler/store"
)

// EnvPrefix prefixes environment overrides, e.g. SHIFT_SERVER__ADDR.
const EnvPrefix = "SHIFT_"

type Config struct {
	Server  ServerConfig     `json:"server"`
	Engine  scheduler.Config `json:"engine"`
	Metrics MetricsConfig    `json:"metrics"`
	Store   store.Config     `json:"store"`
	Log     logger.Config    `json:"log"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr         string        `json:"addr"`
	ReadTimeout  time.Duration `json:"readTimeout"`
	WriteTimeout time.Duration `json:"writeTimeout"`
	// MaxConcurrent bounds in-flight requests.
	MaxConcurrent int `json:"maxConcurrent"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 5 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.MaxConcurrent == 0 {
		c.MaxConcurrent = 64
	}
}

// Validate checks mandatory fields.
func (c ServerConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("server addr is required")
	}
	if c.MaxConcurrent < 1 {
		return fmt.Errorf("server maxConcurrent must be positive")
	}
	return nil
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *MetricsConfig) SetDefaults() {
	if c.Path == "" {
		c.Path = "/metrics"
	}
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{Metrics: MetricsConfig{Enabled: true}}
	cfg.setDefaults()
	return cfg
}

// Load reads the file at path (YAML or JSON by extension), applies
// environment overrides and defaults, and validates the result. An empty
// path loads defaults plus environment only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Set("metrics.enabled", true); err != nil {
		return nil, err
	}
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	// Optional environment overrides
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		return strings.ReplaceAll(envKey(s), "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) setDefaults() {
	c.Server.SetDefaults()
	c.Engine.SetDefaults()
	c.Metrics.SetDefaults()
	c.Store.SetDefaults()
	c.Log.SetDefaults()
}

func (c *Config) validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	if err := c.Store.Validate(); err != nil {
		return err
	}
	return c.Log.Validate()
}

// envKey maps SERVER__MAX_CONCURRENT onto server__maxConcurrent so that env
// names reach the camelCase json keys.
func envKey(s string) string {
	parts := strings.Split(s, "__")
	for i, p := range parts {
		words := strings.Split(strings.ToLower(p), "_")
		for j := 1; j < len(words); j++ {
			if words[j] != "" {
				words[j] = strings.ToUpper(words[j][:1]) + words[j][1:]
			}
		}
		parts[i] = strings.Join(words, "")
	}
	return strings.Join(parts, "__")
}
