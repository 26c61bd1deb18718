package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ServerConfig configures the HTTP API listener.
type ServerConfig struct {
	Addr             string `yaml:"addr"`
	ReadTimeoutSecs  int    `yaml:"read_timeout_secs"`
	WriteTimeoutSecs int    `yaml:"write_timeout_secs"`
}

// SearchConfig selects and configures the search provider.
// Type is one of "auto", "serpapi" or "mock".
type SearchConfig struct {
	Type         string  `yaml:"type"`
	APIKeyEnv    string  `yaml:"api_key_env"`
	APIKey       string  `yaml:"api_key,omitempty"`
	Endpoint     string  `yaml:"endpoint"`
	Engine       string  `yaml:"engine"`
	Country      string  `yaml:"gl"`
	Language     string  `yaml:"hl"`
	TimeoutSecs  int     `yaml:"timeout_secs"`
	RatePerSec   float64 `yaml:"rate_per_sec"`
	HealthCheck  bool    `yaml:"health_check"`
	DefaultLimit int     `yaml:"default_limit"`
}

// ResolveAPIKey returns the key from the configured env var, else the inline key.
func (c SearchConfig) ResolveAPIKey() string {
	if c.APIKeyEnv != "" {
		if v := strings.TrimSpace(os.Getenv(c.APIKeyEnv)); v != "" {
			return v
		}
	}
	return strings.TrimSpace(c.APIKey)
}

// FetchConfig configures full-article extraction for live results.
type FetchConfig struct {
	Enabled     bool   `yaml:"enabled"`
	TimeoutSecs int    `yaml:"timeout_secs"`
	MaxChars    int    `yaml:"max_chars"`
	Concurrency int    `yaml:"concurrency"`
	UserAgent   string `yaml:"user_agent"`
}

// SummarizerConfig selects and configures the summarizer.
type SummarizerConfig struct {
	Type         string  `yaml:"type"`
	MaxSentences int     `yaml:"max_sentences"`
	QueryBoost   float64 `yaml:"query_boost"`
}

// ChatConfig controls how follow-up queries reuse a session's sources.
type ChatConfig struct {
	MergeSessionSources bool    `yaml:"merge_session_sources"`
	MaxMergedSources    int     `yaml:"max_merged_sources"`
	MinSimilarity       float64 `yaml:"min_similarity"`
}

// LogConfig configures the structured logger. Format is "console" or "json".
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Server     ServerConfig     `yaml:"server"`
	Search     SearchConfig     `yaml:"search"`
	Fetch      FetchConfig      `yaml:"fetch"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Chat       ChatConfig       `yaml:"chat"`
	Log        LogConfig        `yaml:"log"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML on top of the defaults, so omitted sections keep their
// default values.
func Parse(data []byte) (*AppConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(cfg)
	return cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/ragchat/config.yaml.
// If neither exists, it writes defaults to ~/.config/ragchat/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := Default()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ragchat", "config.yaml"), nil
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{Addr: ":8080", ReadTimeoutSecs: 15, WriteTimeoutSecs: 30},
		Search: SearchConfig{
			Type:         "auto",
			APIKeyEnv:    "SERPAPI_API_KEY",
			Endpoint:     "https://serpapi.com/search.json",
			Engine:       "google",
			Country:      "us",
			Language:     "en",
			TimeoutSecs:  10,
			RatePerSec:   5,
			DefaultLimit: 6,
		},
		Fetch: FetchConfig{
			Enabled:     true,
			TimeoutSecs: 8,
			MaxChars:    6000,
			Concurrency: 4,
			UserAgent:   "ragchat/1.0 (+https://github.com/ragchat)",
		},
		Summarizer: SummarizerConfig{Type: "extractive", MaxSentences: 5, QueryBoost: 1.0},
		Chat:       ChatConfig{MergeSessionSources: true, MaxMergedSources: 3, MinSimilarity: 0.05},
		Log:        LogConfig{Level: "info", Format: "console"},
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	def := Default()
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
	if cfg.Search.Type == "" {
		cfg.Search.Type = def.Search.Type
	}
	if cfg.Search.APIKeyEnv == "" {
		cfg.Search.APIKeyEnv = def.Search.APIKeyEnv
	}
	if cfg.Search.Endpoint == "" {
		cfg.Search.Endpoint = def.Search.Endpoint
	}
	if cfg.Search.Engine == "" {
		cfg.Search.Engine = def.Search.Engine
	}
	if cfg.Search.TimeoutSecs <= 0 {
		cfg.Search.TimeoutSecs = def.Search.TimeoutSecs
	}
	if cfg.Search.DefaultLimit <= 0 {
		cfg.Search.DefaultLimit = def.Search.DefaultLimit
	}
	if cfg.Fetch.TimeoutSecs <= 0 {
		cfg.Fetch.TimeoutSecs = def.Fetch.TimeoutSecs
	}
	if cfg.Fetch.MaxChars <= 0 {
		cfg.Fetch.MaxChars = def.Fetch.MaxChars
	}
	if cfg.Fetch.Concurrency <= 0 {
		cfg.Fetch.Concurrency = def.Fetch.Concurrency
	}
	if cfg.Summarizer.Type == "" {
		cfg.Summarizer.Type = def.Summarizer.Type
	}
	if cfg.Summarizer.MaxSentences <= 0 {
		cfg.Summarizer.MaxSentences = def.Summarizer.MaxSentences
	}
	if cfg.Summarizer.QueryBoost < 0 {
		cfg.Summarizer.QueryBoost = def.Summarizer.QueryBoost
	}
	if cfg.Chat.MaxMergedSources < 0 {
		cfg.Chat.MaxMergedSources = 0
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
}
