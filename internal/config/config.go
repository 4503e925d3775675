package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv        = "TELESHOP_NEWS_CONFIG"
	serverAddrEnv        = "SERVER_ADDR"
	storePathEnv         = "STORE_PATH"
	translateEndpointEnv = "TRANSLATE_ENDPOINT"
	cooldownMinutesEnv   = "COOLDOWN_MINUTES"
	logLevelEnv          = "LOG_LEVEL"
)

// Config holds high-level settings required across the application.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Source    SourceConfig    `yaml:"source"`
	Translate TranslateConfig `yaml:"translate"`
	Store     StoreConfig     `yaml:"store"`
	API       APIConfig       `yaml:"api"`
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SourceConfig describes the news site with its scanner strategy.
type SourceConfig struct {
	Name          string            `yaml:"name"`
	Scanner       string            `yaml:"scanner"`
	ListURL       string            `yaml:"listUrl"`
	BaseURL       string            `yaml:"baseUrl"`
	MaxCandidates int               `yaml:"maxCandidates"`
	DelayMS       int               `yaml:"delayMs"`
	TimeoutSec    int               `yaml:"timeoutSec"`
	Options       map[string]string `yaml:"options"`
}

// FetchTimeout resolves the per-request timeout for listing and article fetches.
func (s SourceConfig) FetchTimeout() time.Duration {
	if s.TimeoutSec <= 0 {
		return 15 * time.Second
	}
	return time.Duration(s.TimeoutSec) * time.Second
}

// Delay resolves the politeness delay between article fetches.
func (s SourceConfig) Delay() time.Duration {
	if s.DelayMS <= 0 {
		return time.Second
	}
	return time.Duration(s.DelayMS) * time.Millisecond
}

// TranslateConfig defines how to contact the translation endpoint.
type TranslateConfig struct {
	Endpoint   string `yaml:"endpoint"`
	SourceLang string `yaml:"sourceLang"`
	TargetLang string `yaml:"targetLang"`
	TimeoutSec int    `yaml:"timeoutSec"`
}

// Timeout resolves the per-call translation timeout.
func (t TranslateConfig) Timeout() time.Duration {
	if t.TimeoutSec <= 0 {
		return 10 * time.Second
	}
	return time.Duration(t.TimeoutSec) * time.Second
}

// StoreConfig describes the durable news document.
type StoreConfig struct {
	Path        string `yaml:"path"`
	MaxSize     int    `yaml:"maxSize"`
	RecentHours int    `yaml:"recentHours"`
}

// APIConfig holds read-layer pagination and refresh settings.
type APIConfig struct {
	CooldownMinutes int `yaml:"cooldownMinutes"`
	DefaultLimit    int `yaml:"defaultLimit"`
	MaxLimit        int `yaml:"maxLimit"`
}

// Cooldown resolves the minimum time between triggered ingestion runs.
func (a APIConfig) Cooldown() time.Duration {
	if a.CooldownMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(a.CooldownMinutes) * time.Minute
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(serverAddrEnv); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(storePathEnv); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv(translateEndpointEnv); v != "" {
		c.Translate.Endpoint = v
	}
	if v := os.Getenv(cooldownMinutesEnv); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil && minutes > 0 {
			c.API.CooldownMinutes = minutes
		}
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Server.Addr != "" {
		base.Server.Addr = override.Server.Addr
	}
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Source.Name != "" {
		base.Source.Name = override.Source.Name
	}
	if override.Source.Scanner != "" {
		base.Source.Scanner = override.Source.Scanner
	}
	if override.Source.ListURL != "" {
		base.Source.ListURL = override.Source.ListURL
	}
	if override.Source.BaseURL != "" {
		base.Source.BaseURL = override.Source.BaseURL
	}
	if override.Source.MaxCandidates > 0 {
		base.Source.MaxCandidates = override.Source.MaxCandidates
	}
	if override.Source.DelayMS > 0 {
		base.Source.DelayMS = override.Source.DelayMS
	}
	if override.Source.TimeoutSec > 0 {
		base.Source.TimeoutSec = override.Source.TimeoutSec
	}
	if len(override.Source.Options) > 0 {
		base.Source.Options = override.Source.Options
	}

	if override.Translate.Endpoint != "" {
		base.Translate.Endpoint = override.Translate.Endpoint
	}
	if override.Translate.SourceLang != "" {
		base.Translate.SourceLang = override.Translate.SourceLang
	}
	if override.Translate.TargetLang != "" {
		base.Translate.TargetLang = override.Translate.TargetLang
	}
	if override.Translate.TimeoutSec > 0 {
		base.Translate.TimeoutSec = override.Translate.TimeoutSec
	}

	if override.Store.Path != "" {
		base.Store.Path = override.Store.Path
	}
	if override.Store.MaxSize > 0 {
		base.Store.MaxSize = override.Store.MaxSize
	}
	if override.Store.RecentHours > 0 {
		base.Store.RecentHours = override.Store.RecentHours
	}

	if override.API.CooldownMinutes > 0 {
		base.API.CooldownMinutes = override.API.CooldownMinutes
	}
	if override.API.DefaultLimit > 0 {
		base.API.DefaultLimit = override.API.DefaultLimit
	}
	if override.API.MaxLimit > 0 {
		base.API.MaxLimit = override.API.MaxLimit
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Server:  ServerConfig{Addr: "0.0.0.0:5000"},
		Logging: LoggingConfig{Level: "info"},
		Source: SourceConfig{
			Name:          "gagadget-phones",
			Scanner:       "gagadget",
			ListURL:       "https://gagadget.com/news/phones/",
			BaseURL:       "https://gagadget.com",
			MaxCandidates: 15,
			DelayMS:       1000,
			TimeoutSec:    15,
		},
		Translate: TranslateConfig{
			Endpoint:   "https://translate.googleapis.com/translate_a/single",
			SourceLang: "ru",
			TargetLang: "uz",
			TimeoutSec: 10,
		},
		Store: StoreConfig{
			Path:        "news_data.json",
			MaxSize:     200,
			RecentHours: 24,
		},
		API: APIConfig{
			CooldownMinutes: 30,
			DefaultLimit:    20,
			MaxLimit:        200,
		},
	}
}
